package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/handler"
	"pilgrim-testimonies/internal/pkg/i18n"
	"pilgrim-testimonies/internal/repository"
	"pilgrim-testimonies/internal/service"
)

const testJWTSecret = "integration-secret"

func TestMain(m *testing.M) {
	if err := i18n.LoadTranslations("../../locales"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// storedIssue is one document held by the fake issue tracker.
type storedIssue struct {
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
}

func makeLabels(names ...string) []struct {
	Name string `json:"name"`
} {
	labels := make([]struct {
		Name string `json:"name"`
	}, len(names))
	for i, n := range names {
		labels[i].Name = n
	}
	return labels
}

// fakeDocumentStore is an in-memory stand-in for the issue tracker API:
// create, list and fingerprint search against the same backing slice.
type fakeDocumentStore struct {
	mu     sync.Mutex
	issues []storedIssue
}

func (s *fakeDocumentStore) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		switch r.Method {
		case http.MethodPost:
			var payload struct {
				Title     string   `json:"title"`
				Body      string   `json:"body"`
				Labels    []string `json:"labels"`
				Assignees []string `json:"assignees"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			number := len(s.issues) + 1
			issue := storedIssue{
				ID:        int64(1000 + number),
				Number:    number,
				Title:     payload.Title,
				Body:      payload.Body,
				HTMLURL:   fmt.Sprintf("https://github.com/peregrinos/testimonies/issues/%d", number),
				CreatedAt: time.Now().UTC(),
				Labels:    makeLabels(payload.Labels...),
			}
			s.issues = append(s.issues, issue)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(issue)

		case http.MethodGet:
			// Newest first, matching sort=created&direction=desc.
			out := make([]storedIssue, len(s.issues))
			for i, issue := range s.issues {
				out[len(s.issues)-1-i] = issue
			}
			json.NewEncoder(w).Encode(out)

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		q := r.URL.Query().Get("q")
		needle := ""
		if parts := strings.SplitN(q, `"`, 3); len(parts) == 3 {
			needle = parts[1]
		}

		var items []storedIssue
		if needle != "" {
			for _, issue := range s.issues {
				if strings.Contains(issue.Body, needle) {
					items = append(items, issue)
					break
				}
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total_count": len(items),
			"items":       items,
		})
	})

	return mux
}

func (s *fakeDocumentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issues)
}

// setLabels replays what a moderator does out of band: flipping the labels
// that control public visibility.
func (s *fakeDocumentStore) setLabels(number int, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].Number == number {
			s.issues[i].Labels = makeLabels(names...)
		}
	}
}

type TestEnv struct {
	App   *fiber.App
	Store *fakeDocumentStore

	storeSrv *httptest.Server
	mediaSrv *httptest.Server
}

// SetupTestEnv boots the full application in process with the document store
// and the media provider replaced by local fakes. No database, no cache.
func SetupTestEnv(t *testing.T) *TestEnv {
	store := &fakeDocumentStore{}
	storeSrv := httptest.NewServer(store.handler())

	mediaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.FormValue("signature") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"secure_url":    "https://res.cloudinary.com/demo/image/upload/v1/testimonies/pilgrim.jpg",
			"bytes":         2048,
			"resource_type": "image",
		})
	}))

	cfg := &config.Config{
		Environment: "test",

		GitHubAPIBase: storeSrv.URL,
		GitHubToken:   "test-token",
		GitHubOwner:   "peregrinos",
		GitHubRepo:    "testimonies",

		MediaDriver:         "cloudinary",
		CloudinaryAPIBase:   mediaSrv.URL,
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
		CloudinaryFolder:    "testimonies",

		JWTSecret:   testJWTSecret,
		CORSOrigins: "*",
		CacheTTL:    time.Minute,

		AllowedMediaHosts: []string{"res.cloudinary.com", "i.imgur.com"},

		UploadFailurePolicy: "warn",
	}

	repos := repository.NewRepositories(cfg, nil)
	services := service.NewServices(repos, nil, nil, cfg)
	handlers := handler.NewHandlers(services)

	return &TestEnv{
		App:      handler.NewApp(handlers, cfg),
		Store:    store,
		storeSrv: storeSrv,
		mediaSrv: mediaSrv,
	}
}

func (e *TestEnv) Teardown() {
	e.storeSrv.Close()
	e.mediaSrv.Close()
}

func reviewerToken(t *testing.T) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "reviewer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
