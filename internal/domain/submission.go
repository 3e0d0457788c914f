package domain

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

const (
	LanguageEnglish = "en"
	LanguageSpanish = "es"
)

// Per-kind upload caps, in bytes.
const (
	MaxImageBytes = 10 * 1024 * 1024
	MaxVideoBytes = 150 * 1024 * 1024
	MaxAudioBytes = 50 * 1024 * 1024
)

// Submission is a normalized testimonial form submission. It is created once
// from a request, consumed by the ingestion pipeline and never persisted.
type Submission struct {
	Name      string      `json:"name" validate:"required,min=2,max=100"`
	Trip      string      `json:"trip" validate:"required,min=5,max=200"`
	Narrative string      `json:"testimony" validate:"required,min=50,max=2000"`
	Email     string      `json:"email" validate:"omitempty,email"`
	Language  string      `json:"language" validate:"required,oneof=en es"`
	Media     []MediaFile `json:"media"`
	Consent   bool        `json:"consent"`
	Honeypot  string      `json:"website"`
}

// MediaFile is one base64-encoded asset attached to a submission.
type MediaFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// DecodedSize estimates the file size from the base64 payload when the
// client-reported size is absent.
func (f MediaFile) DecodedSize() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(base64.StdEncoding.DecodedLen(len(f.Data)))
}

// Kind buckets a MIME type into the media kinds the pipeline understands.
func (f MediaFile) Kind() MediaKind {
	switch {
	case strings.HasPrefix(f.Type, "image/"):
		return MediaImage
	case strings.HasPrefix(f.Type, "video/"):
		return MediaVideo
	case strings.HasPrefix(f.Type, "audio/"):
		return MediaAudio
	default:
		return MediaUnknown
	}
}

type MediaKind string

const (
	MediaImage   MediaKind = "image"
	MediaVideo   MediaKind = "video"
	MediaAudio   MediaKind = "audio"
	MediaUnknown MediaKind = ""
)

// MaxBytes is the per-kind size cap for uploads.
func (k MediaKind) MaxBytes() int64 {
	switch k {
	case MediaVideo:
		return MaxVideoBytes
	case MediaAudio:
		return MaxAudioBytes
	default:
		return MaxImageBytes
	}
}

// UploadedMedia is the durable result of one media upload.
type UploadedMedia struct {
	URL             string    `json:"url"`
	Kind            MediaKind `json:"kind"`
	ByteSize        int64     `json:"byteSize"`
	DurationSeconds float64   `json:"durationSeconds,omitempty"`
}

// submissionAliases maps the accepted Spanish and legacy field names onto the
// canonical schema. The historical form posted a single "photo" object; current
// clients post a "media" array. All shapes are accepted at the ingress boundary
// so nothing downstream ever sees an alias.
type submissionRequest struct {
	Name       string `json:"name"`
	Nombre     string `json:"nombre"`
	Trip       string `json:"trip"`
	Viaje      string `json:"viaje"`
	Testimony  string `json:"testimony"`
	Testimonio string `json:"testimonio"`
	Email      string `json:"email"`
	Correo     string `json:"correo"`
	Language   string `json:"language"`
	Idioma     string `json:"idioma"`

	Media  []MediaFile `json:"media"`
	Photos []MediaFile `json:"photos"`
	Photo  *MediaFile  `json:"photo"`

	Consent  bool   `json:"consent"`
	Honeypot string `json:"website"`
}

// NormalizeSubmission decodes a raw request body, resolving field aliases to
// the canonical Submission schema. Values are trimmed; language defaults to
// English when unrecognized.
func NormalizeSubmission(body []byte) (*Submission, error) {
	var req submissionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}

	s := &Submission{
		Name:      strings.TrimSpace(firstNonEmpty(req.Name, req.Nombre)),
		Trip:      strings.TrimSpace(firstNonEmpty(req.Trip, req.Viaje)),
		Narrative: strings.TrimSpace(firstNonEmpty(req.Testimony, req.Testimonio)),
		Email:     strings.TrimSpace(firstNonEmpty(req.Email, req.Correo)),
		Language:  strings.TrimSpace(firstNonEmpty(req.Language, req.Idioma)),
		Consent:   req.Consent,
		Honeypot:  strings.TrimSpace(req.Honeypot),
	}

	if s.Language != LanguageSpanish {
		s.Language = LanguageEnglish
	}

	switch {
	case len(req.Media) > 0:
		s.Media = req.Media
	case len(req.Photos) > 0:
		s.Media = req.Photos
	case req.Photo != nil:
		s.Media = []MediaFile{*req.Photo}
	}

	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
