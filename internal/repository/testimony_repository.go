package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
)

const userAgent = "pilgrim-testimonies/1.0"

// TestimonyRepository persists testimonial documents in the external issue
// tracker. Documents are append-mostly: this service creates them and reads
// them back; moderators mutate labels out of band.
type TestimonyRepository interface {
	CreateIfAbsent(ctx context.Context, doc domain.EncodedDocument) (*domain.CreateResult, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Document, error)
	ListTestimonyDocuments(ctx context.Context) ([]domain.Document, error)
}

type testimonyRepository struct {
	client    *http.Client
	apiBase   string
	owner     string
	repo      string
	token     string
	assignees []string
}

func NewTestimonyRepository(cfg *config.Config) TestimonyRepository {
	return &testimonyRepository{
		client:    &http.Client{Timeout: 15 * time.Second},
		apiBase:   strings.TrimRight(cfg.GitHubAPIBase, "/"),
		owner:     cfg.GitHubOwner,
		repo:      cfg.GitHubRepo,
		token:     cfg.GitHubToken,
		assignees: cfg.ReviewAssignees,
	}
}

type issuePayload struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees,omitempty"`
}

type issueResponse struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	Labels    []struct {
		Name string `json:"name"`
	} `json:"labels"`
	User struct {
		Login string `json:"login"`
	} `json:"user"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
	Message     string    `json:"message,omitempty"`
}

// CreateIfAbsent searches for a document carrying the same fingerprint before
// writing. On a hit the existing document is returned unchanged; this is the
// system's only duplicate-submission guard and it is best-effort, so a search
// failure logs and proceeds to create rather than blocking the submission.
func (r *testimonyRepository) CreateIfAbsent(ctx context.Context, doc domain.EncodedDocument) (*domain.CreateResult, error) {
	if r.token == "" || r.owner == "" || r.repo == "" {
		return nil, domain.ErrStoreNotConfigured
	}

	existing, err := r.FindByFingerprint(ctx, doc.Fingerprint)
	if err != nil {
		log.Printf("store: fingerprint search failed, proceeding to create: %v", err)
	} else if existing != nil {
		log.Printf("store: duplicate fingerprint %s matches document #%d", doc.Fingerprint[:12], existing.Number)
		return &domain.CreateResult{
			ID:      existing.ID,
			Number:  existing.Number,
			URL:     existing.URL,
			Created: false,
		}, nil
	}

	return r.create(ctx, doc)
}

// create posts the document, walking an ordered list of payload fallbacks on
// validation rejections. The store rejects unknown assignees with a 422; the
// submission must survive that, so the next attempt drops them.
func (r *testimonyRepository) create(ctx context.Context, doc domain.EncodedDocument) (*domain.CreateResult, error) {
	base := issuePayload{
		Title:     doc.Title,
		Body:      doc.Body,
		Labels:    doc.Labels,
		Assignees: r.assignees,
	}

	fallbacks := []struct {
		name      string
		transform func(issuePayload) issuePayload
	}{
		{"full payload", func(p issuePayload) issuePayload { return p }},
		{"without assignees", func(p issuePayload) issuePayload {
			p.Assignees = nil
			return p
		}},
		{"minimal labels", func(p issuePayload) issuePayload {
			p.Assignees = nil
			p.Labels = []string{domain.LabelTestimony}
			return p
		}},
	}

	var lastStatus int
	var lastMsg string
	for _, fb := range fallbacks {
		payload := fb.transform(base)
		status, issue, err := r.postIssue(ctx, payload)
		if err != nil {
			return nil, &domain.StoreWriteError{StatusCode: 0, Message: err.Error()}
		}
		if status == http.StatusCreated {
			return &domain.CreateResult{
				ID:      issue.ID,
				Number:  issue.Number,
				URL:     issue.HTMLURL,
				Created: true,
			}, nil
		}
		lastStatus, lastMsg = status, issue.Message
		if status != http.StatusUnprocessableEntity {
			break
		}
		log.Printf("store: create rejected (%s, status %d): %s", fb.name, status, issue.Message)
	}

	return nil, &domain.StoreWriteError{StatusCode: lastStatus, Message: lastMsg}
}

func (r *testimonyRepository) postIssue(ctx context.Context, payload issuePayload) (int, *issueResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	u := fmt.Sprintf("%s/repos/%s/%s/issues", r.apiBase, r.owner, r.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	r.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var issue issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decoding store response: %w", err)
	}
	return resp.StatusCode, &issue, nil
}

type searchResponse struct {
	TotalCount int             `json:"total_count"`
	Items      []issueResponse `json:"items"`
}

// FindByFingerprint looks for an open testimony document whose body contains
// the fingerprint. Returns nil, nil when none exists.
func (r *testimonyRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Document, error) {
	q := fmt.Sprintf("%q repo:%s/%s label:%s in:body", fingerprint, r.owner, r.repo, domain.LabelTestimony)
	u := fmt.Sprintf("%s/search/issues?q=%s&per_page=1", r.apiBase, url.QueryEscape(q))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fingerprint search returned status %d: %s", resp.StatusCode, snippet)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.TotalCount == 0 || len(result.Items) == 0 {
		return nil, nil
	}

	doc := toDocument(result.Items[0])
	return &doc, nil
}

// ListTestimonyDocuments fetches open testimony documents, newest first. Pull
// requests share the issues endpoint and are filtered out.
func (r *testimonyRepository) ListTestimonyDocuments(ctx context.Context) ([]domain.Document, error) {
	params := url.Values{
		"state":     {"open"},
		"labels":    {domain.LabelTestimony},
		"sort":      {"created"},
		"direction": {"desc"},
		"per_page":  {"100"},
	}
	u := fmt.Sprintf("%s/repos/%s/%s/issues?%s", r.apiBase, r.owner, r.repo, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("document fetch returned status %d: %s", resp.StatusCode, snippet)
	}

	var issues []issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(issues))
	for _, issue := range issues {
		if issue.PullRequest != nil {
			continue
		}
		docs = append(docs, toDocument(issue))
	}
	return docs, nil
}

// setHeaders adds the API headers. The token is optional on reads, where it
// only raises rate limits.
func (r *testimonyRepository) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", userAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "token "+r.token)
	}
}

func toDocument(issue issueResponse) domain.Document {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.Name)
	}
	return domain.Document{
		ID:        issue.ID,
		Number:    issue.Number,
		Title:     issue.Title,
		Body:      issue.Body,
		Labels:    labels,
		URL:       issue.HTMLURL,
		Author:    issue.User.Login,
		CreatedAt: issue.CreatedAt,
	}
}
