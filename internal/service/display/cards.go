package display

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"pilgrim-testimonies/internal/domain"
)

// CardPage is the server-rendered variant of a listing page: one sanitized
// HTML fragment per testimonial, ready to drop into a grid.
type CardPage struct {
	Cards      []string `json:"cards"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalItems int64    `json:"total_items"`
}

var cardMarkdown = goldmark.New(
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

func (s *service) Cards(ctx context.Context, params domain.ListParams) (*CardPage, error) {
	page, err := s.List(ctx, params)
	if err != nil {
		return nil, err
	}

	cards := make([]string, 0, len(page.Data))
	for _, r := range page.Data {
		cards = append(cards, renderCard(r))
	}
	return &CardPage{
		Cards:      cards,
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}, nil
}

// renderCard builds one card fragment. The narrative runs through the
// markdown renderer; every other field is escaped verbatim.
func renderCard(r domain.TestimonialRecord) string {
	var body bytes.Buffer
	if err := cardMarkdown.Convert([]byte(r.Content), &body); err != nil {
		body.Reset()
		body.WriteString("<p>" + html.EscapeString(r.Content) + "</p>")
	}

	var b strings.Builder
	b.WriteString(`<article class="testimonial-card"`)
	if r.Featured {
		b.WriteString(` data-featured="true"`)
	}
	b.WriteString(">\n")
	fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(r.Name))
	fmt.Fprintf(&b, `<p class="trip">%s</p>`+"\n", html.EscapeString(r.Trip))
	if r.TripDate != "" {
		fmt.Fprintf(&b, `<time>%s</time>`+"\n", html.EscapeString(r.TripDate))
	}
	b.WriteString(`<div class="content">` + "\n")
	b.Write(body.Bytes())
	b.WriteString("</div>\n")
	for _, m := range r.Media {
		switch m.Kind {
		case domain.MediaVideo:
			fmt.Fprintf(&b, `<video controls src="%s"></video>`+"\n", html.EscapeString(m.URL))
		case domain.MediaAudio:
			fmt.Fprintf(&b, `<audio controls src="%s"></audio>`+"\n", html.EscapeString(m.URL))
		default:
			fmt.Fprintf(&b, `<img src="%s" alt="%s" loading="lazy" onerror="this.style.display='none'">`+"\n", html.EscapeString(m.URL), html.EscapeString(m.Alt))
		}
	}
	b.WriteString("</article>")
	return b.String()
}
