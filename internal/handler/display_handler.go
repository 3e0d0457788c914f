package handler

import (
	"github.com/gofiber/fiber/v2"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/middleware"
	"pilgrim-testimonies/internal/service/display"
)

type DisplayHandler struct {
	displayService display.Service
}

func NewDisplayHandler(displayService display.Service) *DisplayHandler {
	return &DisplayHandler{displayService: displayService}
}

func listParams(c *fiber.Ctx) (domain.ListParams, error) {
	var params domain.ListParams
	if err := c.QueryParser(&params); err != nil {
		return params, middleware.BadRequest("Invalid query parameters")
	}
	params.Validate()
	return params, nil
}

func (h *DisplayHandler) List(c *fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	page, err := h.displayService.List(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// ListForReview serves the moderation queue: unverified and needs-review
// records included. Routed behind the reviewer token.
func (h *DisplayHandler) ListForReview(c *fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	page, err := h.displayService.ListForReview(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *DisplayHandler) Cards(c *fiber.Ctx) error {
	params, err := listParams(c)
	if err != nil {
		return err
	}

	page, err := h.displayService.Cards(c.Context(), params)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

func (h *DisplayHandler) Destinations(c *fiber.Ctx) error {
	destinations, err := h.displayService.Destinations(c.Context())
	if err != nil {
		return err
	}
	if destinations == nil {
		destinations = []string{}
	}
	return c.JSON(fiber.Map{"destinations": destinations})
}
