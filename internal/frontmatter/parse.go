package frontmatter

import (
	"log"
	"net/url"
	"regexp"
	"strings"

	"pilgrim-testimonies/internal/domain"
)

var (
	headerSplit = regexp.MustCompile(`(?s)^---[ \t]*\n(.*?)\n---[ \t]*\n(.*)$`)
	headerLine  = regexp.MustCompile(`^\s*([A-Za-z0-9_-]+)\s*:\s*(.*?)\s*$`)

	mediaURLLine = regexp.MustCompile(`^\s*-\s*url:\s*"([^"]+)"`)
	mediaAltLine = regexp.MustCompile(`^\s*alt:\s*"([^"]*)"`)

	mdImage        = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdImageCapture = regexp.MustCompile(`!\[([^\]]*)\]\((https?://[^\s)]+)\)`)
	htmlImage      = regexp.MustCompile(`(?i)<img[^>]+src=["']([^"']+)["'][^>]*>`)
	bareCDNURL     = regexp.MustCompile(`https?://res\.cloudinary\.com/[^\s)"']+`)

	htmlComment   = regexp.MustCompile(`(?s)<!--.*?-->`)
	headerEcho    = regexp.MustCompile(`(?im)^(?:name|trip|language|featured|verified|rating|tags|fingerprint|media)\s*:.*$`)
	mediaHeadings = regexp.MustCompile(`(?im)^##\s*(?:Testimony Media|Media del Testimonio|Foto del Viaje)\s*$`)

	emailLabelLine = regexp.MustCompile(`(?im)^.*\*\*\s*(?:Contact email|Email de contacto|Correo|Email)\s*:\s*\*\*.*$`)
	emailPlainLine = regexp.MustCompile(`(?im)^\s*Email:\s*\S+@\S+\.\S+\s*$`)
	bareEmail      = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	separatorLine  = regexp.MustCompile(`(?m)^\s*-{3,}\s*$`)
	excessBlanks   = regexp.MustCompile(`\n{3,}`)

	titleNameES = regexp.MustCompile(`(?i)^(?:\[Testimonio\]\s*|Testimonio de\s+)(.+?)\s*[-–]`)
	titleNameEN = regexp.MustCompile(`(?i)^(?:\[Testimony\]\s*|Testimony (?:of|from)\s+)(.+?)\s*[-–]`)
)

// Parser turns store documents into TestimonialRecords. Media URLs whose host
// is not on the allow-list are discarded so the site never renders content
// from arbitrary origins.
type Parser struct {
	allowedHosts []string
}

func NewParser(allowedHosts []string) *Parser {
	return &Parser{allowedHosts: allowedHosts}
}

// ParseAll converts documents into records, dropping the malformed ones. A
// broken document is logged and skipped; it never fails the whole list.
func (p *Parser) ParseAll(docs []domain.Document) []domain.TestimonialRecord {
	records := make([]domain.TestimonialRecord, 0, len(docs))
	for _, doc := range docs {
		if rec := p.ParseOne(doc); rec != nil {
			records = append(records, *rec)
		} else {
			log.Printf("parser: dropping malformed document #%d (%s)", doc.Number, doc.Title)
		}
	}
	return records
}

// ParseOne parses a single document. It returns nil when the document has no
// usable name or its body is empty after cleaning. A document without a header
// block is still included, with best-effort field extraction.
func (p *Parser) ParseOne(doc domain.Document) *domain.TestimonialRecord {
	headerText, bodyText := splitHeader(doc.Body)
	header := parseHeaderFields(headerText)

	media := p.extractHeaderMedia(headerText)
	media = p.mergeBodyMedia(media, bodyText)

	content := cleanBody(bodyText)

	name := displayName(doc, header["name"])
	if name == "" || content == "" {
		return nil
	}

	trip := header["trip"]
	if trip == "" {
		trip = "Pilgrimage Experience"
	}

	language := header["language"]
	if language == "" {
		language = DetectLanguage(content)
	}

	rec := &domain.TestimonialRecord{
		ID:          doc.Number,
		Name:        name,
		Trip:        trip,
		Content:     content,
		Media:       media,
		Destination: ExtractDestination(header["trip"]),
		Language:    language,
		Featured:    header["featured"] == "true" || doc.HasLabel("featured"),
		Verified:    doc.HasLabel(domain.LabelVerified),
		NeedsReview: doc.HasLabel(domain.LabelNeedsReview),
		TripDate:    ExtractTripDate(header["trip"]),
		Rating:      parseRating(header["rating"]),
		Tags:        parseTags(header["tags"]),
		URL:         doc.URL,
		CreatedAt:   doc.CreatedAt,
	}
	return rec
}

// splitHeader separates the --- delimited header block from the body. When no
// header is present the whole text is body.
func splitHeader(body string) (string, string) {
	if m := headerSplit.FindStringSubmatch(body); m != nil {
		return m[1], m[2]
	}
	return "", body
}

// parseHeaderFields applies the key: value line grammar. Values may be quoted
// or bare; lines that do not match the shape are ignored, as are the media
// list lines, which have their own extraction.
func parseHeaderFields(headerText string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(headerText, "\n") {
		if mediaURLLine.MatchString(line) || mediaAltLine.MatchString(line) {
			continue
		}
		m := headerLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key, val := m[1], m[2]
		if len(val) >= 2 {
			if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
				val = val[1 : len(val)-1]
			}
		}
		val = strings.ReplaceAll(val, `\"`, `"`)
		fields[key] = val
	}
	return fields
}

// extractHeaderMedia reads the structured media list from the header block.
func (p *Parser) extractHeaderMedia(headerText string) []domain.TestimonialMedia {
	var media []domain.TestimonialMedia
	lines := strings.Split(headerText, "\n")
	for i, line := range lines {
		m := mediaURLLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		u := m[1]
		if !p.HostAllowed(u) {
			log.Printf("parser: skipping media from non-allowed host: %s", u)
			continue
		}
		alt := "Testimony media"
		if i+1 < len(lines) {
			if am := mediaAltLine.FindStringSubmatch(lines[i+1]); am != nil && am[1] != "" {
				alt = am[1]
			}
		}
		media = append(media, domain.TestimonialMedia{URL: u, Alt: alt, Kind: MediaKindFromURL(u)})
	}
	return media
}

// mergeBodyMedia adds inline markdown images, HTML img tags and bare CDN URLs
// found in the body, de-duplicated by URL against what the header provided.
func (p *Parser) mergeBodyMedia(media []domain.TestimonialMedia, bodyText string) []domain.TestimonialMedia {
	seen := make(map[string]bool, len(media))
	for _, m := range media {
		seen[m.URL] = true
	}
	add := func(u, alt string) {
		if u == "" || seen[u] {
			return
		}
		if !p.HostAllowed(u) {
			log.Printf("parser: skipping media from non-allowed host: %s", u)
			return
		}
		if alt == "" {
			alt = "Testimony photo"
		}
		seen[u] = true
		media = append(media, domain.TestimonialMedia{URL: u, Alt: alt, Kind: MediaKindFromURL(u)})
	}

	for _, m := range mdImageCapture.FindAllStringSubmatch(bodyText, -1) {
		add(m[2], m[1])
	}
	for _, m := range htmlImage.FindAllStringSubmatch(bodyText, -1) {
		add(m[1], "")
	}
	for _, u := range bareCDNURL.FindAllString(bodyText, -1) {
		add(u, "")
	}
	return media
}

// HostAllowed reports whether a media URL's host is on the allow-list. A host
// matches exactly or as a subdomain of an allowed entry.
func (p *Parser) HostAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range p.allowedHosts {
		allowed = strings.ToLower(allowed)
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// cleanBody strips everything that must never reach a rendered card: media
// markup, comments, header-echo lines, email lines in every label format the
// site has ever produced, bare addresses, and orphaned separators. Label
// lines are removed before bare addresses so a whole labeled line goes, not
// just the address inside it.
func cleanBody(bodyText string) string {
	s := mdImage.ReplaceAllString(bodyText, "")
	s = htmlImage.ReplaceAllString(s, "")
	s = htmlComment.ReplaceAllString(s, "")
	s = mediaHeadings.ReplaceAllString(s, "")
	s = headerEcho.ReplaceAllString(s, "")
	s = emailLabelLine.ReplaceAllString(s, "")
	s = emailPlainLine.ReplaceAllString(s, "")
	s = bareEmail.ReplaceAllString(s, "")
	s = separatorLine.ReplaceAllString(s, "")
	s = excessBlanks.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// displayName prefers the header field, then the title patterns both title
// templates produce, then the document author.
func displayName(doc domain.Document, headerName string) string {
	if n := strings.TrimSpace(headerName); n != "" {
		return n
	}
	if m := titleNameES.FindStringSubmatch(doc.Title); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titleNameEN.FindStringSubmatch(doc.Title); m != nil {
		return strings.TrimSpace(m[1])
	}
	if doc.Author != "" {
		return doc.Author
	}
	return "Anonymous"
}
