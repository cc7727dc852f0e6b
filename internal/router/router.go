package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/GoldenFighter/contestboard/internal/config"
	"github.com/GoldenFighter/contestboard/internal/handler"
	"github.com/GoldenFighter/contestboard/internal/middleware"
	"github.com/GoldenFighter/contestboard/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	BoardHandler      *handler.BoardHandler
	SubmissionHandler *handler.SubmissionHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// The scrape endpoint stays outside the versioned, authenticated API.
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.BoardHandler != nil {
		boards := api.Group("/boards", jwtMiddleware)
		deps.BoardHandler.Register(boards)

		if deps.SubmissionHandler != nil {
			// Submission creation additionally runs through the per-identity
			// limiter; the engine-level cooldown throttle still applies
			// underneath it.
			boards.Use("/:id/submissions", middleware.RateLimit("submissions", 30, time.Minute))
			deps.SubmissionHandler.RegisterBoardRoutes(boards)
		}
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.RegisterSubmissionRoutes(submissions)
	}
}
