package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Branding       *handlers.BrandingHandler
	Suggestions    *handlers.SuggestionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Branding reads and login are public;
// everything else requires a valid token, with technician and admin
// guards layered on top.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)
	app.Get("/branding", cfg.Branding.Get)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets")
	tickets.Get("", cfg.Tickets.List)
	tickets.Get("/report", cfg.Tickets.Report)
	tickets.Post("", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", auth.RequireTechnician(), cfg.Tickets.Update)
	tickets.Post("/:id/assignee", auth.RequireTechnician(), cfg.Tickets.Reassign)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/archive", auth.RequireTechnician(), cfg.Tickets.ToggleArchive)

	protected.Post("/suggestions", cfg.Suggestions.Suggest)

	admin := protected.Group("", auth.RequireAdmin())
	admin.Put("/branding", cfg.Branding.Update)
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Patch("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Delete)
}
