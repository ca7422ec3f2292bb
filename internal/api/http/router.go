package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/client-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Clients *handlers.ClientsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	clients := app.Group("/api/v1/clients")
	clients.Post("", cfg.Clients.Register)
	clients.Get("", cfg.Clients.Search)
	clients.Put("/:id", cfg.Clients.Update)
	clients.Delete("/:id", cfg.Clients.Delete)
}
