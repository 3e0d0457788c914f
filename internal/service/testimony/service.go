// Package testimony orchestrates the ingestion pipeline: validation, media
// upload, document encoding and the idempotent store write.
package testimony

import (
	"context"
	"errors"
	"log"
	"time"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/frontmatter"
	"pilgrim-testimonies/internal/repository"
	"pilgrim-testimonies/internal/service/media"
	"pilgrim-testimonies/internal/service/notify"
	"pilgrim-testimonies/internal/validate"
)

type Service interface {
	Submit(ctx context.Context, sub *domain.Submission) (*SubmitResult, error)
	RecentSubmissions(ctx context.Context, limit int) ([]domain.SubmissionLog, error)
	SetNotifier(n notify.Service)
}

// SubmitResult reports one accepted submission. MediaWarning is set when the
// warn policy dropped a failed upload and continued. In dry-run mode Payload
// carries the document that would have been written.
type SubmitResult struct {
	Store        *domain.CreateResult    `json:"store,omitempty"`
	MediaURLs    []string                `json:"mediaUrls"`
	MediaWarning bool                    `json:"mediaWarning"`
	DryRun       bool                    `json:"dryRun"`
	Payload      *domain.EncodedDocument `json:"payload,omitempty"`
}

type service struct {
	validator *validate.Validator
	uploader  media.Uploader
	repo      repository.TestimonyRepository
	logRepo   repository.SubmissionLogRepository
	notifier  notify.Service
	cfg       *config.Config
}

func NewService(validator *validate.Validator, uploader media.Uploader, repo repository.TestimonyRepository, logRepo repository.SubmissionLogRepository, cfg *config.Config) Service {
	return &service{
		validator: validator,
		uploader:  uploader,
		repo:      repo,
		logRepo:   logRepo,
		cfg:       cfg,
	}
}

func (s *service) SetNotifier(n notify.Service) {
	s.notifier = n
}

// RecentSubmissions reads the audit trail for reviewers. Without a database
// the trail is empty, not an error.
func (s *service) RecentSubmissions(ctx context.Context, limit int) ([]domain.SubmissionLog, error) {
	if s.logRepo == nil {
		return []domain.SubmissionLog{}, nil
	}
	return s.logRepo.ListRecent(ctx, limit)
}

// Submit runs the full pipeline. Validation always runs here regardless of
// what the client claims to have checked. Uploads are sequential so a failure
// is attributable to a specific file.
func (s *service) Submit(ctx context.Context, sub *domain.Submission) (*SubmitResult, error) {
	if err := s.validator.Submission(sub); err != nil {
		return nil, err
	}

	uploaded, warned, err := s.uploadAll(ctx, sub)
	if err != nil {
		return nil, err
	}

	doc := frontmatter.Encode(sub, uploaded, time.Now())

	urls := make([]string, len(uploaded))
	for i, m := range uploaded {
		urls[i] = m.URL
	}

	if s.cfg.DryRun {
		log.Printf("testimony: dry run, skipping store write for %q", doc.Title)
		s.logOutcome(sub, doc.Fingerprint, domain.OutcomeDryRun, nil, len(uploaded), warned)
		return &SubmitResult{
			MediaURLs:    urls,
			MediaWarning: warned,
			DryRun:       true,
			Payload:      &doc,
		}, nil
	}

	result, err := s.repo.CreateIfAbsent(ctx, doc)
	if err != nil {
		s.logOutcome(sub, doc.Fingerprint, domain.OutcomeFailed, nil, len(uploaded), warned)
		return nil, err
	}

	outcome := domain.OutcomeCreated
	if !result.Created {
		outcome = domain.OutcomeDuplicate
	}
	s.logOutcome(sub, doc.Fingerprint, outcome, &result.Number, len(uploaded), warned)

	if result.Created && s.notifier != nil {
		go func() {
			if err := s.notifier.NotifyNewTestimony(context.Background(), sub.Name, sub.Trip, result.URL); err != nil {
				log.Printf("testimony: reviewer notification failed: %v", err)
			}
		}()
	}

	return &SubmitResult{
		Store:        result,
		MediaURLs:    urls,
		MediaWarning: warned,
	}, nil
}

// uploadAll uploads each file in order. Under the "warn" policy a failed file
// is skipped and flagged; under "fail" the first failure aborts the whole
// submission. Both behaviors are deliberate, configured choices.
func (s *service) uploadAll(ctx context.Context, sub *domain.Submission) ([]domain.UploadedMedia, bool, error) {
	if len(sub.Media) == 0 {
		return nil, false, nil
	}

	uploaded := make([]domain.UploadedMedia, 0, len(sub.Media))
	warned := false
	for _, file := range sub.Media {
		m, err := s.uploader.Upload(ctx, file)
		if err != nil {
			var uerr *domain.UploadError
			if !errors.As(err, &uerr) {
				uerr = &domain.UploadError{FileName: file.Name, Err: err}
			}
			if s.cfg.UploadFailurePolicy == "fail" {
				return nil, false, uerr
			}
			log.Printf("testimony: continuing without media %q: %v", file.Name, uerr.Err)
			warned = true
			continue
		}
		uploaded = append(uploaded, *m)
	}
	return uploaded, warned, nil
}

func (s *service) logOutcome(sub *domain.Submission, fingerprint, outcome string, issueNumber *int, mediaCount int, warned bool) {
	if s.logRepo == nil {
		return
	}
	entry := &domain.SubmissionLog{
		Name:        sub.Name,
		Trip:        sub.Trip,
		Language:    sub.Language,
		Fingerprint: fingerprint,
		Outcome:     outcome,
		IssueNumber: issueNumber,
		MediaCount:  mediaCount,
		MediaWarned: warned,
	}
	if err := s.logRepo.Create(context.Background(), entry); err != nil {
		log.Printf("testimony: submission log write failed: %v", err)
	}
}
