package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pilgrim-testimonies/internal/domain"
)

// SubmissionLogRepository records ingestion attempts for operations. It is
// optional infrastructure; callers must tolerate it being absent.
type SubmissionLogRepository interface {
	Create(ctx context.Context, entry *domain.SubmissionLog) error
	ListRecent(ctx context.Context, limit int) ([]domain.SubmissionLog, error)
}

type submissionLogRepository struct {
	db *sqlx.DB
}

func NewSubmissionLogRepository(db *sqlx.DB) SubmissionLogRepository {
	return &submissionLogRepository{db: db}
}

func (r *submissionLogRepository) Create(ctx context.Context, entry *domain.SubmissionLog) error {
	query := `
		INSERT INTO submission_log (name, trip, language, fingerprint, outcome, issue_number, media_count, media_warned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.Name, entry.Trip, entry.Language, entry.Fingerprint,
		entry.Outcome, entry.IssueNumber, entry.MediaCount, entry.MediaWarned,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *submissionLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.SubmissionLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var entries []domain.SubmissionLog
	query := `SELECT * FROM submission_log ORDER BY created_at DESC LIMIT $1`
	err := r.db.SelectContext(ctx, &entries, query, limit)
	return entries, err
}
