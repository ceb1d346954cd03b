package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cohortly/cohort-api/internal/config"
	"github.com/cohortly/cohort-api/internal/handler"
	"github.com/cohortly/cohort-api/internal/middleware"
	"github.com/cohortly/cohort-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SubmissionHandler       *handler.SubmissionHandler
	ResourceHandler         *handler.ResourceHandler
	StudentDashboardHandler *handler.StudentDashboardHandler
	WebhookHandler          *handler.WebhookHandler
	JWTMiddleware           fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Webhooks carry their own shared-secret check instead of a bearer token.
	if deps.WebhookHandler != nil {
		deps.WebhookHandler.Register(api.Group("/webhooks", middleware.RateLimit("webhooks", 60, time.Minute)))
	}

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api.Group("/projects", jwtMiddleware, middleware.RateLimit("projects", 30, time.Minute)))
	}

	if deps.ResourceHandler != nil {
		deps.ResourceHandler.Register(api.Group("/resources", jwtMiddleware))
	}

	if deps.StudentDashboardHandler != nil {
		deps.StudentDashboardHandler.Register(api.Group("/student", jwtMiddleware))
	}
}
