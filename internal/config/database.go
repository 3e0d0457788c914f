package config

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// The database only backs the optional submission audit log, so the schema is
// small enough to bootstrap in place instead of running migrations.
const submissionLogSchema = `
CREATE TABLE IF NOT EXISTS submission_log (
	id           BIGSERIAL PRIMARY KEY,
	name         TEXT NOT NULL,
	trip         TEXT NOT NULL,
	language     TEXT NOT NULL,
	fingerprint  TEXT NOT NULL,
	outcome      TEXT NOT NULL,
	issue_number INTEGER,
	media_count  INTEGER NOT NULL DEFAULT 0,
	media_warned BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_submission_log_fingerprint ON submission_log (fingerprint);
`

func NewPostgresDB(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if _, err := db.Exec(submissionLogSchema); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
