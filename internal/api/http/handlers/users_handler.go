package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/talos-api/internal/api/dto"
	"github.com/spec-kit/talos-api/internal/observability"
	"github.com/spec-kit/talos-api/internal/service"
	apperrors "github.com/spec-kit/talos-api/pkg/util"
)

// UsersHandler exposes the sign-in endpoint.
type UsersHandler struct {
	auth    *service.AuthService
	metrics *observability.Metrics
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, metrics *observability.Metrics) *UsersHandler {
	return &UsersHandler{auth: authService, metrics: metrics}
}

// Signin handles POST /users/signin.
func (h *UsersHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		h.metrics.RecordSignin(apperrors.KindBadRequest.Code())
		return apperrors.NewValidationError(map[string]any{"payload": "invalid payload"})
	}
	if err := req.Validate(); err != nil {
		h.metrics.RecordSignin(apperrors.KindBadRequest.Code())
		return apperrors.NewValidationError(dto.ValidationDetails(err))
	}

	pair, err := h.auth.Signin(c.UserContext(), req.ID, req.Password)
	if err != nil {
		h.metrics.RecordSignin(apperrors.ToDomainError(err).Kind.Code())
		return err
	}

	h.metrics.RecordSignin("success")
	return c.JSON(pair)
}
