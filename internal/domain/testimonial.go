package domain

import "time"

// TestimonialRecord is the display-ready record derived from a Document by the
// parser. It is rebuilt on every fetch and never persisted.
type TestimonialRecord struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Trip        string             `json:"trip"`
	Content     string             `json:"content"`
	Media       []TestimonialMedia `json:"media"`
	Destination string             `json:"destination"`
	Language    string             `json:"language"`
	Featured    bool               `json:"featured"`
	Verified    bool               `json:"verified"`
	NeedsReview bool               `json:"needsReview"`
	TripDate    string             `json:"tripDate,omitempty"`
	Rating      *float64           `json:"rating,omitempty"`
	Tags        []string           `json:"tags"`
	URL         string             `json:"url"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type TestimonialMedia struct {
	URL  string    `json:"url"`
	Alt  string    `json:"alt"`
	Kind MediaKind `json:"kind"`
}

// ListParams are the client-chosen filters of the read side.
type ListParams struct {
	Destination string `query:"destination"`
	Search      string `query:"search"`
	Page        int    `query:"page"`
	PageSize    int    `query:"page_size"`
}

const DefaultPageSize = 9

func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = DefaultPageSize
	}
	if p.Destination == "all" {
		p.Destination = ""
	}
}
