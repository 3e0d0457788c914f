package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Optional. When empty the submission log is disabled.
	DatabaseURL string

	RedisURL string

	// Document store (GitHub Issues REST API).
	GitHubAPIBase   string
	GitHubToken     string
	GitHubOwner     string
	GitHubRepo      string
	ReviewAssignees []string

	// Media upload backend: "cloudinary" or "minio".
	MediaDriver string

	CloudinaryAPIBase   string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	MinIOEndpoint       string
	MinIOPublicEndpoint string
	MinIOAccessKey      string
	MinIOSecretKey      string
	MinIOBucket         string
	MinIOUseSSL         bool
	MinIOPublicUseSSL   bool

	NotionAPIKey     string
	NotionDatabaseID string

	ResendAPIKey   string
	FromEmail      string
	ReviewerEmails []string

	JWTSecret string

	CORSOrigins string

	CacheTTL time.Duration

	AllowedMediaHosts []string

	// "warn" continues a submission after a failed upload, "fail" aborts it.
	UploadFailurePolicy string

	// Validate and encode only; skip the store write.
	DryRun bool
}

func Load() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		GitHubAPIBase:   getEnv("GITHUB_API_BASE", "https://api.github.com"),
		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		GitHubOwner:     getEnv("GITHUB_OWNER", ""),
		GitHubRepo:      getEnv("GITHUB_REPO", ""),
		ReviewAssignees: getListEnv("REVIEW_ASSIGNEES", nil),

		MediaDriver: getEnv("MEDIA_DRIVER", "cloudinary"),

		CloudinaryAPIBase:   getEnv("CLOUDINARY_API_BASE", "https://api.cloudinary.com/v1_1"),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "pilgrim-testimonies"),

		MinIOEndpoint:       getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOPublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "localhost:9000")),
		MinIOAccessKey:      getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:      getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:         getEnv("MINIO_BUCKET", "testimony-media"),
		MinIOUseSSL:         getBoolEnv("MINIO_USE_SSL", false),
		MinIOPublicUseSSL:   getBoolEnv("MINIO_PUBLIC_USE_SSL", true),

		NotionAPIKey:     getEnv("NOTION_API_KEY", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),

		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		FromEmail:      getEnv("FROM_EMAIL", "noreply@example.com"),
		ReviewerEmails: getListEnv("REVIEWER_EMAILS", nil),

		JWTSecret: getEnv("JWT_SECRET", ""),

		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		AllowedMediaHosts: getListEnv("ALLOWED_MEDIA_HOSTS", []string{
			"imgur.com",
			"i.imgur.com",
			"github.com",
			"user-images.githubusercontent.com",
			"raw.githubusercontent.com",
			"res.cloudinary.com",
			"cloudinary.com",
		}),

		UploadFailurePolicy: getEnv("UPLOAD_FAILURE_POLICY", "warn"),

		DryRun: getBoolEnv("DRY_RUN", false),
	}

	defaultTTL := 5 * time.Minute
	if !cfg.IsProduction() {
		defaultTTL = 30 * time.Second
	}
	cfg.CacheTTL = getDurationEnv("CACHE_TTL", defaultTTL)

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
