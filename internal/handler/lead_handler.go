package handler

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/middleware"
	"pilgrim-testimonies/internal/service/lead"
)

type LeadHandler struct {
	leadService lead.Service
}

func NewLeadHandler(leadService lead.Service) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	var l domain.Lead
	if err := c.BodyParser(&l); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if l.Honeypot != "" {
		log.Printf("lead: honeypot triggered from %s", c.IP())
		return middleware.BadRequest("Invalid submission")
	}

	id, err := h.leadService.Submit(c.Context(), &l, requestLocale(c))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Lead saved successfully",
		"id":      id,
	})
}

// requestLocale picks the response language from the lang query parameter or
// the Accept-Language header, defaulting to English.
func requestLocale(c *fiber.Ctx) string {
	if lang := c.Query("lang"); lang == domain.LanguageSpanish {
		return domain.LanguageSpanish
	}
	if strings.HasPrefix(c.Get("Accept-Language"), "es") {
		return domain.LanguageSpanish
	}
	return domain.LanguageEnglish
}
