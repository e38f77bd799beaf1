package routes

import (
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/buyer-leads/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	authHandler *handlers.AuthHandler,
	buyerHandler *handlers.BuyerHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Operational endpoints live outside /api and are not gated.
	app.Get("/healthz", healthHandler.Check)
	app.Get("/metrics", metrics.Handler())
	app.Get("/favicon.ico", handlers.Favicon)

	api := app.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// Buyers (identity injected by the request gate)
	buyers := api.Group("/buyers")
	buyers.Get("/", buyerHandler.List)
	buyers.Post("/", buyerHandler.Create)
	buyers.Get("/export", buyerHandler.Export)
	buyers.Post("/import", buyerHandler.Import)
	buyers.Get("/:id", buyerHandler.Get)
	buyers.Put("/:id", buyerHandler.Update)
	buyers.Delete("/:id", buyerHandler.Delete)
	buyers.Get("/:id/history", buyerHandler.History)
}
