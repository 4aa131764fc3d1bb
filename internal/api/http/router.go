package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campusdesk/helpdesk/internal/api/http/handlers"
	"github.com/campusdesk/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Notifications  *handlers.NotificationsHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	// Public auth surface.
	api.Post("/register", cfg.Users.Register)
	api.Post("/login", cfg.Users.Login)
	api.Post("/logout", cfg.Users.Logout)
	api.Post("/forgot-password", cfg.Users.ForgotPassword)
	api.Get("/reset-password/:token", cfg.Users.ValidateResetToken)
	api.Post("/reset-password/:token", cfg.Users.ResetPassword)

	// Everything below requires a caller identity.
	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuth())

	protected.Get("/me", cfg.Users.Me)
	protected.Put("/profile", cfg.Users.UpdateProfile)
	protected.Put("/password", cfg.Users.ChangePassword)

	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.List)
	// Search registers before /tickets/:id so "search" is not read as an id.
	protected.Get("/tickets/search", cfg.Tickets.Search)
	protected.Get("/tickets/:id", cfg.Tickets.Get)
	protected.Delete("/tickets/:id", cfg.Tickets.Delete)
	protected.Post("/tickets/:id/respond", cfg.Tickets.Respond)

	// Admin guard attaches per route; a group-level Use would run on every
	// /api route registered after it.
	protected.Put("/tickets/:id/status", auth.RequireAdmin(), cfg.Tickets.UpdateStatus)
	protected.Put("/tickets/:id/assign", auth.RequireAdmin(), cfg.Tickets.AssignDepartment)
	protected.Get("/stats", auth.RequireAdmin(), cfg.Stats.AdminStats)

	protected.Get("/user-stats", cfg.Stats.UserStats)

	protected.Get("/notifications", cfg.Notifications.List)
	// read-all registers before /:id/read for the same routing reason.
	protected.Put("/notifications/read-all", cfg.Notifications.MarkAllRead)
	protected.Put("/notifications/:id/read", cfg.Notifications.MarkRead)
}
