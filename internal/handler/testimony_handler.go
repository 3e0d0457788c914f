package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/middleware"
	"pilgrim-testimonies/internal/service/testimony"
)

type TestimonyHandler struct {
	testimonyService testimony.Service
}

func NewTestimonyHandler(testimonyService testimony.Service) *TestimonyHandler {
	return &TestimonyHandler{testimonyService: testimonyService}
}

// Submit accepts a testimonial form post. Field aliases (Spanish names, the
// legacy single-photo shape) are resolved before anything downstream runs.
func (h *TestimonyHandler) Submit(c *fiber.Ctx) error {
	sub, err := domain.NormalizeSubmission(c.Body())
	if err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	result, err := h.testimonyService.Submit(c.Context(), sub)
	if err != nil {
		if errors.Is(err, domain.ErrHoneypot) {
			// Bots get the same shape as a success so they learn nothing.
			log.Printf("testimony: honeypot triggered from %s", c.IP())
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"success": true,
				"message": "Thank you for sharing your testimony",
			})
		}
		return err
	}

	resp := fiber.Map{
		"success":   true,
		"message":   "Thank you for sharing your testimony",
		"mediaUrls": result.MediaURLs,
	}
	if result.MediaWarning {
		resp["imageWarning"] = "Some media could not be uploaded; the testimony was saved without it"
	}
	if result.DryRun {
		resp["dryRun"] = true
		resp["payload"] = result.Payload
	}
	if result.Store != nil {
		resp["issueUrl"] = result.Store.URL
		resp["issueNumber"] = result.Store.Number
		resp["duplicate"] = !result.Store.Created
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// RecentSubmissions serves the reviewer-facing audit trail.
func (h *TestimonyHandler) RecentSubmissions(c *fiber.Ctx) error {
	entries, err := h.testimonyService.RecentSubmissions(c.Context(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"submissions": entries})
}
