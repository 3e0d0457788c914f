// Package notify sends reviewer emails when a new testimony lands in the
// review queue. Delivery is best effort; callers fire it from a goroutine.
package notify

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/resend/resend-go/v2"

	"pilgrim-testimonies/internal/config"
)

type Service interface {
	NotifyNewTestimony(ctx context.Context, name, trip, reviewURL string) error
}

type service struct {
	client    *resend.Client
	from      string
	reviewers []string
}

// NewService returns nil when no API key or reviewer addresses are
// configured, which disables notifications entirely.
func NewService(cfg *config.Config) Service {
	if cfg.ResendAPIKey == "" || len(cfg.ReviewerEmails) == 0 {
		return nil
	}
	return &service{
		client:    resend.NewClient(cfg.ResendAPIKey),
		from:      cfg.FromEmail,
		reviewers: cfg.ReviewerEmails,
	}
}

// reviewEmailBody builds the notification markup. Submitter-supplied fields
// go straight into it, so escape them.
func reviewEmailBody(name, trip, reviewURL string) string {
	return fmt.Sprintf(`
		<h2>New pilgrim testimony</h2>
		<p><strong>%s</strong> submitted a testimony about <strong>%s</strong>.</p>
		<p>It carries the <code>needs-review</code> label and will not be published until a reviewer approves it.</p>
		<p><a href="%s">Open the submission</a></p>
	`, html.EscapeString(name), html.EscapeString(trip), html.EscapeString(reviewURL))
}

func (s *service) NotifyNewTestimony(ctx context.Context, name, trip, reviewURL string) error {
	subject := fmt.Sprintf("New testimony awaiting review: %s", trip)
	body := reviewEmailBody(name, trip, reviewURL)

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      s.reviewers,
		Subject: subject,
		Html:    body,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send reviewer email: %w", err)
	}
	log.Printf("notify: reviewer email sent: %s", sent.Id)
	return nil
}
