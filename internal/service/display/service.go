// Package display serves the read side: fetch documents from the store, parse
// them into display records, cache the result and answer filtered, paginated
// listings.
package display

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/frontmatter"
	"pilgrim-testimonies/internal/repository"
)

type Service interface {
	List(ctx context.Context, params domain.ListParams) (*domain.PaginatedResponse[domain.TestimonialRecord], error)
	ListForReview(ctx context.Context, params domain.ListParams) (*domain.PaginatedResponse[domain.TestimonialRecord], error)
	Destinations(ctx context.Context) ([]string, error)
	Cards(ctx context.Context, params domain.ListParams) (*CardPage, error)
}

type service struct {
	repo     repository.TestimonyRepository
	parser   *frontmatter.Parser
	cache    Cache
	cacheTTL time.Duration
}

func NewService(repo repository.TestimonyRepository, parser *frontmatter.Parser, cache Cache, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		parser:   parser,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// List returns the public page: verified records only, featured first, newest
// first within each group.
func (s *service) List(ctx context.Context, params domain.ListParams) (*domain.PaginatedResponse[domain.TestimonialRecord], error) {
	params.Validate()
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(filterRecords(publicOnly(records), params), params), nil
}

// ListForReview includes unverified and needs-review records. The handler
// gates it behind the reviewer token.
func (s *service) ListForReview(ctx context.Context, params domain.ListParams) (*domain.PaginatedResponse[domain.TestimonialRecord], error) {
	params.Validate()
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(filterRecords(records, params), params), nil
}

// Destinations lists distinct destinations of public records, alphabetically.
func (s *service) Destinations(ctx context.Context) ([]string, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range publicOnly(records) {
		if r.Destination == "" || seen[r.Destination] {
			continue
		}
		seen[r.Destination] = true
		out = append(out, r.Destination)
	}
	sort.Strings(out)
	return out, nil
}

// load returns the current record set, preferring the fresh cache entry. When
// the store is unreachable it falls back to the last successfully parsed set;
// only with no fallback available does the caller see a FetchError.
func (s *service) load(ctx context.Context) ([]domain.TestimonialRecord, error) {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, freshKey); ok {
			var records []domain.TestimonialRecord
			if err := json.Unmarshal([]byte(raw), &records); err == nil {
				return records, nil
			}
		}
	}

	docs, err := s.repo.ListTestimonyDocuments(ctx)
	if err != nil {
		if s.cache != nil {
			if raw, ok := s.cache.Get(ctx, lastGoodKey); ok {
				var records []domain.TestimonialRecord
				if jerr := json.Unmarshal([]byte(raw), &records); jerr == nil {
					log.Printf("display: store fetch failed, serving stale records: %v", err)
					return records, nil
				}
			}
		}
		return nil, &domain.FetchError{Err: err}
	}

	records := s.parser.ParseAll(docs)
	sortRecords(records)

	if s.cache != nil {
		if raw, merr := json.Marshal(records); merr == nil {
			if cerr := s.cache.Set(ctx, freshKey, string(raw), s.cacheTTL); cerr != nil {
				log.Printf("display: cache write failed: %v", cerr)
			}
			_ = s.cache.Set(ctx, lastGoodKey, string(raw), 0)
		}
	}
	return records, nil
}

func publicOnly(records []domain.TestimonialRecord) []domain.TestimonialRecord {
	out := make([]domain.TestimonialRecord, 0, len(records))
	for _, r := range records {
		if r.Verified && !r.NeedsReview {
			out = append(out, r)
		}
	}
	return out
}

func filterRecords(records []domain.TestimonialRecord, params domain.ListParams) []domain.TestimonialRecord {
	if params.Destination == "" && params.Search == "" {
		return records
	}
	needle := strings.ToLower(params.Search)
	out := make([]domain.TestimonialRecord, 0, len(records))
	for _, r := range records {
		if params.Destination != "" && r.Destination != params.Destination {
			continue
		}
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r domain.TestimonialRecord, needle string) bool {
	for _, field := range []string{r.Name, r.Trip, r.Content, r.Destination} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// sortRecords orders featured records before the rest, newest first within
// each group. The sort is stable so equal timestamps keep store order.
func sortRecords(records []domain.TestimonialRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Featured != records[j].Featured {
			return records[i].Featured
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func paginate(records []domain.TestimonialRecord, params domain.ListParams) *domain.PaginatedResponse[domain.TestimonialRecord] {
	total := len(records)
	start := (params.Page - 1) * params.PageSize
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	resp := domain.NewPaginatedResponse(records[start:end], params.Page, params.PageSize, int64(total))
	return &resp
}
