package domain

import "time"

// Submission log outcomes.
const (
	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
	OutcomeDryRun    = "dry_run"
	OutcomeFailed    = "failed"
)

// SubmissionLog is one row of the optional ingestion audit trail. It exists
// for operations (tracing duplicate fingerprints, upload warnings), not for
// serving reads.
type SubmissionLog struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Trip        string    `db:"trip" json:"trip"`
	Language    string    `db:"language" json:"language"`
	Fingerprint string    `db:"fingerprint" json:"fingerprint"`
	Outcome     string    `db:"outcome" json:"outcome"`
	IssueNumber *int      `db:"issue_number" json:"issue_number,omitempty"`
	MediaCount  int       `db:"media_count" json:"media_count"`
	MediaWarned bool      `db:"media_warned" json:"media_warned"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
