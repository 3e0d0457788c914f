// Package lead forwards contact-form submissions into the Notion lead
// database.
package lead

import (
	"context"
	"log"
	"strings"
	"time"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/validate"
)

type Service interface {
	Submit(ctx context.Context, l *domain.Lead, locale string) (string, error)
}

type service struct {
	validator *validate.Validator
	notion    *NotionClient
}

func NewService(validator *validate.Validator, cfg *config.Config) Service {
	return &service{
		validator: validator,
		notion:    NewNotionClient(cfg.NotionAPIKey, cfg.NotionDatabaseID),
	}
}

// Submit validates the lead and creates the Notion page. The returned string
// is the new page ID.
func (s *service) Submit(ctx context.Context, l *domain.Lead, locale string) (string, error) {
	if err := s.validator.Lead(l, locale); err != nil {
		return "", err
	}
	if !s.notion.Configured() {
		return "", domain.ErrLeadStoreNotConfigured
	}

	id, err := s.notion.CreatePage(ctx, leadProperties(l, time.Now()))
	if err != nil {
		return "", err
	}
	log.Printf("lead: saved %s", id)
	return id, nil
}

// leadProperties maps a lead onto the database schema. Free-text fields are
// capped to the limits the database columns were created with.
func leadProperties(l *domain.Lead, now time.Time) map[string]any {
	props := map[string]any{
		"Name":                titleText(strings.TrimSpace(l.FirstName) + " " + strings.TrimSpace(l.LastName)),
		"Email":               map[string]any{"email": strings.TrimSpace(l.Email)},
		"Phone":               richText(strings.TrimSpace(l.Phone)),
		"Preferred Contact":   map[string]any{"select": map[string]string{"name": l.PreferredContact}},
		"Pilgrimage Interest": richText(truncate(strings.TrimSpace(l.PilgrimageInterest), 2000)),
		"Consent Contact":     map[string]any{"checkbox": l.ConsentContact},
		"Consent Marketing":   map[string]any{"checkbox": l.ConsentMarketing},
		"Source Page":         richText(l.SourcePage),
		"Submitted At":        map[string]any{"date": map[string]string{"start": now.UTC().Format(time.RFC3339)}},
	}
	if msg := strings.TrimSpace(l.Message); msg != "" {
		props["Message"] = richText(truncate(msg, 2000))
	}
	if l.UTMSource != "" {
		props["UTM Source"] = richText(truncate(l.UTMSource, 200))
	}
	if l.UTMMedium != "" {
		props["UTM Medium"] = richText(truncate(l.UTMMedium, 200))
	}
	if l.UTMCampaign != "" {
		props["UTM Campaign"] = richText(truncate(l.UTMCampaign, 200))
	}
	return props
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
