package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/config"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/dto"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/identity"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/routes"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/services"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/web"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options tweak the assembled app; tests turn off the access log.
type Options struct {
	AccessLog bool
}

// New wires services, handlers and middleware into a ready fiber app.
func New(cfg *config.Config, db *gorm.DB, opts Options) (*fiber.App, error) {
	tokens := services.NewTokenService(cfg)
	authService := services.NewAuthService(db, cfg, tokens)
	buyerService := services.NewBuyerService(db, cfg)
	csvService := services.NewCSVService(db, buyerService, cfg)

	authHandler := handlers.NewAuthHandler(authService)
	buyerHandler := handlers.NewBuyerHandler(buyerService, csvService)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		BodyLimit:             4 * 1024 * 1024,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
		}))
	}
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(metrics.Middleware())
	app.Use(middleware.RequestGate(identity.NewResolver(tokens)))

	if err := web.Register(app); err != nil {
		return nil, err
	}
	routes.Setup(app, authHandler, buyerHandler, healthHandler)

	return app, nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{Error: message})
}
