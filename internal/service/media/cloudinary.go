package media

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"pilgrim-testimonies/internal/config"
	"pilgrim-testimonies/internal/domain"
)

// CloudinaryUploader posts base64 data URIs to the Cloudinary upload API with
// a server-computed signature. Audio goes through the provider's video
// pipeline; anything that is not image, video or audio uploads as raw.
type CloudinaryUploader struct {
	client    *http.Client
	apiBase   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

func NewCloudinaryUploader(cfg *config.Config) *CloudinaryUploader {
	apiBase := strings.TrimRight(cfg.CloudinaryAPIBase, "/")
	if apiBase == "" {
		apiBase = "https://api.cloudinary.com/v1_1"
	}
	return &CloudinaryUploader{
		client:    &http.Client{Timeout: 30 * time.Second},
		apiBase:   apiBase,
		cloudName: cfg.CloudinaryCloudName,
		apiKey:    cfg.CloudinaryAPIKey,
		apiSecret: cfg.CloudinaryAPISecret,
		folder:    cfg.CloudinaryFolder,
	}
}

type cloudinaryResponse struct {
	SecureURL    string  `json:"secure_url"`
	Bytes        int64   `json:"bytes"`
	Duration     float64 `json:"duration"`
	ResourceType string  `json:"resource_type"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file domain.MediaFile) (*domain.UploadedMedia, error) {
	if u.cloudName == "" || u.apiKey == "" || u.apiSecret == "" {
		return nil, &domain.UploadError{FileName: file.Name, Err: fmt.Errorf("cloudinary credentials missing")}
	}

	kind := file.Kind()
	resourceType := resourcePipeline(kind)
	timestamp := time.Now().Unix()

	// The signature covers exactly this parameter set, sorted by key. The
	// same three values must appear in the form below or the provider
	// rejects the upload.
	signed := map[string]string{
		"folder":        u.folder,
		"resource_type": resourceType,
		"timestamp":     fmt.Sprintf("%d", timestamp),
	}
	signature := Signature(signed, u.apiSecret)

	form := url.Values{}
	form.Set("file", fmt.Sprintf("data:%s;base64,%s", file.Type, file.Data))
	form.Set("api_key", u.apiKey)
	form.Set("timestamp", fmt.Sprintf("%d", timestamp))
	form.Set("signature", signature)
	form.Set("resource_type", resourceType)
	form.Set("folder", u.folder)

	endpoint := fmt.Sprintf("%s/%s/%s/upload", u.apiBase, u.cloudName, resourceType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.UploadError{FileName: file.Name, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &domain.UploadError{FileName: file.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &domain.UploadError{FileName: file.Name, Err: err}
	}

	var result cloudinaryResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("media: unparseable provider response (status %d): %s", resp.StatusCode, raw)
		return nil, &domain.UploadError{FileName: file.Name, Err: fmt.Errorf("invalid provider response (status %d)", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || result.SecureURL == "" {
		// The raw provider error goes into the server log, never to clients.
		log.Printf("media: provider rejected upload of %q (status %d): %s", file.Name, resp.StatusCode, raw)
		msg := "upload rejected by provider"
		if result.Error != nil {
			msg = result.Error.Message
		}
		return nil, &domain.UploadError{FileName: file.Name, Err: fmt.Errorf("%s (status %d)", msg, resp.StatusCode)}
	}

	uploaded := &domain.UploadedMedia{
		URL:      result.SecureURL,
		Kind:     kind,
		ByteSize: result.Bytes,
	}
	if result.Duration > 0 {
		uploaded.DurationSeconds = result.Duration
	}
	return uploaded, nil
}

// Signature computes the upload signature: SHA-1 over the url-encoded
// parameters sorted by key, concatenated with the API secret.
func Signature(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// resourcePipeline maps a media kind onto the provider's upload pipeline.
func resourcePipeline(kind domain.MediaKind) string {
	switch kind {
	case domain.MediaImage:
		return "image"
	case domain.MediaVideo, domain.MediaAudio:
		return "video"
	default:
		return "raw"
	}
}
