// Package frontmatter encodes testimonial submissions into header+body
// documents and parses them back into display records. The header grammar is
// deliberately minimal: `key: "quoted"` or `key: bareword` scalar lines
// between --- delimiters, with a single special-cased `media:` list. It is not
// a general YAML parser and rejects nothing it does not understand.
package frontmatter

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"pilgrim-testimonies/internal/domain"
)

const defaultTags = "pilgrimage, faith, testimony"

// Fingerprint hashes the raw, trimmed field values joined with the media URLs.
// The hash is computed before quote escaping so client and server versions
// agree on the canonical pre-hash representation.
func Fingerprint(name, trip, narrative string, mediaURLs []string) string {
	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(name)))
	h.Write([]byte{'\n'})
	h.Write([]byte(strings.TrimSpace(trip)))
	h.Write([]byte{'\n'})
	h.Write([]byte(strings.TrimSpace(narrative)))
	h.Write([]byte{'\n'})
	h.Write([]byte(strings.Join(mediaURLs, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// Encode serializes a validated submission and its uploaded media into the
// document format stored in the tracker.
func Encode(sub *domain.Submission, media []domain.UploadedMedia, now time.Time) domain.EncodedDocument {
	urls := make([]string, len(media))
	for i, m := range media {
		urls[i] = m.URL
	}
	fingerprint := Fingerprint(sub.Name, sub.Trip, sub.Narrative, urls)

	var b strings.Builder
	b.WriteString("---\n")
	writeField(&b, "name", sub.Name)
	writeField(&b, "trip", sub.Trip)
	writeField(&b, "language", sub.Language)
	b.WriteString("featured: false\n")
	b.WriteString("verified: false\n")
	writeField(&b, "rating", "5")
	writeField(&b, "tags", defaultTags)
	writeField(&b, "fingerprint", fingerprint)
	if len(media) > 0 {
		b.WriteString("media:\n")
		for _, m := range media {
			fmt.Fprintf(&b, "  - url: %q\n", m.URL)
			fmt.Fprintf(&b, "    alt: %q\n", mediaAlt(sub.Language, m.Kind))
		}
	}
	b.WriteString("---\n\n")

	b.WriteString(strings.TrimSpace(sub.Narrative))
	b.WriteString("\n")

	if len(media) > 0 {
		b.WriteString("\n## " + mediaHeading(sub.Language) + "\n\n")
		for _, m := range media {
			fmt.Fprintf(&b, "![%s](%s)\n", mediaAlt(sub.Language, m.Kind), m.URL)
		}
	}

	b.WriteString("\n---\n")
	fmt.Fprintf(&b, "**%s:** %s\n", submittedLabel(sub.Language), formatDate(sub.Language, now))
	if email := strings.TrimSpace(sub.Email); email != "" {
		fmt.Fprintf(&b, "**%s:** %s\n", contactLabel(sub.Language), email)
	}

	return domain.EncodedDocument{
		Title:       Title(sub.Language, sub.Name, sub.Trip),
		Body:        b.String(),
		Labels:      []string{domain.LabelTestimony, domain.LabelNeedsReview},
		Fingerprint: fingerprint,
	}
}

// Title builds the fixed "<prefix> <name> - <trip>" document title.
func Title(language, name, trip string) string {
	if language == domain.LanguageSpanish {
		return fmt.Sprintf("Testimonio de %s - %s", name, trip)
	}
	return fmt.Sprintf("Testimony from %s - %s", name, trip)
}

func writeField(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "%s: \"%s\"\n", key, strings.ReplaceAll(value, `"`, `\"`))
}

func mediaHeading(language string) string {
	if language == domain.LanguageSpanish {
		return "Media del Testimonio"
	}
	return "Testimony Media"
}

func mediaAlt(language string, kind domain.MediaKind) string {
	if language == domain.LanguageSpanish {
		switch kind {
		case domain.MediaVideo:
			return "Video del Testimonio"
		case domain.MediaAudio:
			return "Audio del Testimonio"
		default:
			return "Foto del Testimonio"
		}
	}
	switch kind {
	case domain.MediaVideo:
		return "Testimony video"
	case domain.MediaAudio:
		return "Testimony audio"
	default:
		return "Testimony photo"
	}
}

func submittedLabel(language string) string {
	if language == domain.LanguageSpanish {
		return "Enviado"
	}
	return "Submitted"
}

func contactLabel(language string) string {
	if language == domain.LanguageSpanish {
		return "Email de contacto"
	}
	return "Contact email"
}

func formatDate(language string, t time.Time) string {
	if language == domain.LanguageSpanish {
		return t.Format("2/1/2006")
	}
	return t.Format("1/2/2006")
}
