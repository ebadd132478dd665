package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Esmaay/atlas-activity/internal/config"
	"github.com/Esmaay/atlas-activity/internal/handler"
	"github.com/Esmaay/atlas-activity/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ActivityHandler *handler.ActivityHandler
	RateLimiter     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities")
		if deps.RateLimiter != nil {
			activities.Use(deps.RateLimiter)
		}
		deps.ActivityHandler.Register(activities)
	}
}
