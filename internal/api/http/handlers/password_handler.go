package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/talos-api/internal/api/dto"
	"github.com/spec-kit/talos-api/internal/service"
	apperrors "github.com/spec-kit/talos-api/pkg/util"
)

// PasswordHandler turns plaintext passwords into storable hashes for operators
// provisioning accounts by hand.
type PasswordHandler struct {
	auth *service.AuthService
}

// NewPasswordHandler constructs handler.
func NewPasswordHandler(authService *service.AuthService) *PasswordHandler {
	return &PasswordHandler{auth: authService}
}

// Generate handles POST /generator/password.
func (h *PasswordHandler) Generate(c *fiber.Ctx) error {
	var req dto.GeneratePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string]any{"payload": "invalid payload"})
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(dto.ValidationDetails(err))
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.GeneratePasswordResponse{GeneratorPassword: hash})
}
