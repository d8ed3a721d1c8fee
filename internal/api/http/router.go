package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/talos-api/internal/api/http/handlers"
	"github.com/spec-kit/talos-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Password *handlers.PasswordHandler
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/ping", cfg.Health.Ping)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	app.Post("/generator/password", cfg.Password.Generate)

	users := app.Group("/users")
	users.Post("/signin", cfg.Users.Signin)
}
