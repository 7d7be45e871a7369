package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/api/http/handlers"
	"github.com/spec-kit/complaint-desk/internal/auth"
	"github.com/spec-kit/complaint-desk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Complaints     *handlers.ComplaintsHandler
	Departments    *handlers.DepartmentsHandler
	Analytics      *handlers.AnalyticsHandler
	Metrics        fiber.Handler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics)
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	staff := auth.RequireStaff()
	admin := auth.RequireRole(domain.RoleAdmin)
	supervisors := auth.RequireRole(domain.RoleAdmin, domain.RoleManager)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	api.Post("/users", admin, cfg.Auth.CreateUser)
	api.Post("/classify", cfg.Complaints.Classify)

	complaints := api.Group("/complaints")
	complaints.Post("/", cfg.Complaints.Create)
	complaints.Get("/", cfg.Complaints.List)
	complaints.Get("/:id", cfg.Complaints.Get)
	complaints.Patch("/:id", staff, cfg.Complaints.Update)
	complaints.Delete("/:id", admin, cfg.Complaints.Delete)
	complaints.Post("/:id/forward", staff, cfg.Complaints.Forward)
	complaints.Post("/:id/complete", staff, cfg.Complaints.Complete)
	complaints.Post("/:id/escalate", staff, cfg.Complaints.Escalate)
	complaints.Get("/:id/notes", staff, cfg.Complaints.ListNotes)
	complaints.Post("/:id/notes", staff, cfg.Complaints.AddNote)
	complaints.Get("/:id/feedback", cfg.Complaints.GetFeedback)
	complaints.Post("/:id/feedback", cfg.Complaints.SubmitFeedback)

	api.Post("/sla/check", supervisors, cfg.Complaints.CheckSLA)
	api.Post("/priorities/assign", supervisors, cfg.Complaints.AssignPriorities)

	departments := api.Group("/departments")
	departments.Get("/", staff, cfg.Departments.List)
	departments.Post("/", admin, cfg.Departments.Create)
	departments.Delete("/:id", admin, cfg.Departments.Delete)

	analytics := api.Group("/analytics", supervisors)
	analytics.Get("/", cfg.Analytics.Summary)
	analytics.Get("/kpi", cfg.Analytics.KPI)
}
