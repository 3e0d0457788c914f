package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/middleware"
)

// NewApp assembles the Fiber application: middleware chain, error mapping and
// every route. main boots it; the integration tests drive it in process.
func NewApp(h *Handlers, cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    200 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Post("/submit-testimony", h.Testimony.Submit)
	api.Post("/contact-lead", h.Lead.Submit)

	api.Get("/testimonials", h.Display.List)
	api.Get("/testimonials/cards", h.Display.Cards)
	api.Get("/testimonials/destinations", h.Display.Destinations)

	review := api.Group("/review", middleware.ReviewerRequired(cfg.JWTSecret))
	review.Get("/testimonials", h.Display.ListForReview)
	review.Get("/submissions", h.Testimony.RecentSubmissions)

	return app
}
