package repository

import (
	"github.com/jmoiron/sqlx"

	"pilgrim-testimonies/internal/config"
)

type Repositories struct {
	Testimony     TestimonyRepository
	SubmissionLog SubmissionLogRepository
}

// NewRepositories wires the document store client and, when a database is
// configured, the submission log. db may be nil; the log is then disabled.
func NewRepositories(cfg *config.Config, db *sqlx.DB) *Repositories {
	repos := &Repositories{
		Testimony: NewTestimonyRepository(cfg),
	}
	if db != nil {
		repos.SubmissionLog = NewSubmissionLogRepository(db)
	}
	return repos
}
