package frontmatter

import (
	"regexp"
	"strconv"
	"strings"

	"pilgrim-testimonies/internal/domain"
)

// The functions in this file are best-effort guesses from free text. Callers
// must treat the results as hints, never as validated fields.

var spanishHints = []string{
	" el ", " la ", " de ", " y ", " que ", " con ", " para ", " experiencia ", " viaje ",
}

var (
	parenPrefix  = regexp.MustCompile(`^(.+?)\s*\(`)
	tripDateExpr = regexp.MustCompile(`(?i)(ene|feb|mar|abr|may|jun|jul|ago|sep|oct|nov|dic|jan|apr|aug|dec)[a-z]*\s+(\d{4})`)
	bareYear     = regexp.MustCompile(`\b(20\d{2})\b`)

	videoExt = map[string]bool{"mp4": true, "webm": true, "avi": true, "mov": true}
	audioExt = map[string]bool{"mp3": true, "wav": true, "ogg": true, "m4a": true, "aac": true}
)

// DetectLanguage guesses es/en by counting Spanish stop-words in the text.
// Two or more hits means Spanish.
func DetectLanguage(text string) string {
	t := " " + strings.ToLower(text) + " "
	hits := 0
	for _, w := range spanishHints {
		if strings.Contains(t, w) {
			hits++
		}
	}
	if hits >= 2 {
		return domain.LanguageSpanish
	}
	return domain.LanguageEnglish
}

// ExtractDestination guesses the destination from free trip text: everything
// before the first parenthesis, else the part before the first hyphen or comma.
func ExtractDestination(trip string) string {
	trip = strings.TrimSpace(trip)
	if trip == "" {
		return "Unknown"
	}
	if m := parenPrefix.FindStringSubmatch(trip); m != nil {
		return strings.TrimSpace(m[1])
	}
	if i := strings.IndexAny(trip, "-,"); i >= 0 {
		return strings.TrimSpace(trip[:i])
	}
	return trip
}

// ExtractTripDate pulls a rough "month year" or bare year out of trip text.
func ExtractTripDate(trip string) string {
	if trip == "" {
		return ""
	}
	if m := tripDateExpr.FindStringSubmatch(trip); m != nil {
		return m[1] + " " + m[2]
	}
	if m := bareYear.FindStringSubmatch(trip); m != nil {
		return m[1]
	}
	return ""
}

// MediaKindFromURL infers the media kind from the URL's file extension,
// defaulting to image.
func MediaKindFromURL(raw string) domain.MediaKind {
	clean := raw
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	ext := strings.ToLower(clean[strings.LastIndex(clean, ".")+1:])
	switch {
	case videoExt[ext]:
		return domain.MediaVideo
	case audioExt[ext]:
		return domain.MediaAudio
	default:
		return domain.MediaImage
	}
}

func parseRating(val string) *float64 {
	if val == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseTags(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
