package http

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/talos-api/internal/config"
	"github.com/spec-kit/talos-api/internal/observability"
	apperrors "github.com/spec-kit/talos-api/pkg/util"
)

// MiddlewareConfig bundles the settings used by the global middlewares.
type MiddlewareConfig struct {
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Timeout      time.Duration
	ExposeErrors bool
	CORS         config.CORSConfig
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(corsMiddleware(cfg.CORS))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics, cfg.ExposeErrors))
}

func corsMiddleware(cfg config.CORSConfig) fiber.Handler {
	origins := strings.Join(cfg.AllowOrigins, ",")
	if origins == "" {
		origins = "*"
	}
	// fiber refuses credentials together with a wildcard origin.
	credentials := cfg.AllowCredentials && origins != "*"
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: credentials,
	})
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, exposeErrors bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(observability.RouteLabel(c), observability.MethodLabel(c), domainErr.Kind.Code())

				fields := []zap.Field{
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.String("code", domainErr.Kind.Code()),
					zap.Int("status", domainErr.HTTPStatus),
					zap.Error(domainErr),
				}
				if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
					logger.Error("request failed", fields...)
				} else {
					logger.Warn("request rejected", fields...)
				}

				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(domainErr.Envelope(exposeErrors))
				err = nil
			}
		}()
		return c.Next()
	}
}
