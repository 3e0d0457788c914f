package domain

import "time"

// Store labels. "testimony" marks every document; "verified" and
// "needs-review" control public visibility and are flipped by moderators.
const (
	LabelTestimony   = "testimony"
	LabelVerified    = "verified"
	LabelNeedsReview = "needs-review"
)

// EncodedDocument is the textual form of a submission ready for the store:
// a key: "value" header block, the narrative body, and category labels.
type EncodedDocument struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Labels      []string `json:"labels"`
	Fingerprint string   `json:"fingerprint"`
}

// Document is one persisted testimonial as returned by the store.
type Document struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Labels    []string  `json:"labels"`
	URL       string    `json:"url"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func (d Document) HasLabel(name string) bool {
	for _, l := range d.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// CreateResult reports an idempotent store write. Created is false when an
// existing document with the same fingerprint was found instead.
type CreateResult struct {
	ID      int64  `json:"id"`
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Created bool   `json:"created"`
}
