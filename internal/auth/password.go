package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned when a plaintext does not match its hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
// A malformed hash is reported as a mismatch.
func ComparePassword(hashed, plain string) error {
	if len(plain) > MaxPasswordBytes {
		return ErrPasswordMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) ||
		errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrPasswordMismatch
	}
	var versionErr bcrypt.HashVersionTooNewError
	var prefixErr bcrypt.InvalidHashPrefixError
	if errors.As(err, &versionErr) || errors.As(err, &prefixErr) {
		return ErrPasswordMismatch
	}
	return err
}
