package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	maxIdentifierLength = 255
	maxPasswordLength   = 72
)

// SigninRequest payload for POST /users/signin.
type SigninRequest struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// Validate checks the payload before any lookup happens.
func (r SigninRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required, validation.Length(1, maxIdentifierLength)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
	)
}

// GeneratePasswordRequest payload for POST /generator/password.
type GeneratePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks the payload.
func (r GeneratePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Password, validation.Required, validation.Length(1, maxPasswordLength)),
	)
}

// GeneratePasswordResponse returns the hash of the submitted password.
type GeneratePasswordResponse struct {
	GeneratorPassword string `json:"generator_password"`
}

// ValidationDetails flattens ozzo errors into a field to message map.
func ValidationDetails(err error) map[string]any {
	errs, ok := err.(validation.Errors)
	if !ok {
		return map[string]any{"payload": err.Error()}
	}
	details := make(map[string]any, len(errs))
	for field, fieldErr := range errs {
		details[field] = fieldErr.Error()
	}
	return details
}
