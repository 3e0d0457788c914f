package frontmatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilgrim-testimonies/internal/domain"
)

var testHosts = []string{
	"imgur.com", "i.imgur.com", "github.com", "user-images.githubusercontent.com",
	"raw.githubusercontent.com", "res.cloudinary.com", "cloudinary.com",
}

func testParser() *Parser {
	return NewParser(testHosts)
}

func TestParseOne_RoundTrip(t *testing.T) {
	sub := sampleSubmission()
	media := []domain.UploadedMedia{
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/a.jpg", Kind: domain.MediaImage},
	}
	encoded := Encode(sub, media, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))

	rec := testParser().ParseOne(domain.Document{
		Number:    42,
		Title:     encoded.Title,
		Body:      encoded.Body,
		Labels:    encoded.Labels,
		CreatedAt: time.Now(),
	})

	require.NotNil(t, rec)
	assert.Equal(t, 42, rec.ID)
	assert.Equal(t, "Maria Lopez", rec.Name)
	assert.Equal(t, "Camino de Santiago - Octubre 2025", rec.Trip)
	assert.Equal(t, "es", rec.Language)
	assert.False(t, rec.Verified)
	assert.True(t, rec.NeedsReview)
	require.Len(t, rec.Media, 1)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/a.jpg", rec.Media[0].URL)
	assert.Equal(t, "Foto del Testimonio", rec.Media[0].Alt)
}

func TestParseOne_StripsContactEmail(t *testing.T) {
	sub := sampleSubmission()
	encoded := Encode(sub, nil, time.Now())

	rec := testParser().ParseOne(domain.Document{Number: 1, Title: encoded.Title, Body: encoded.Body})

	require.NotNil(t, rec)
	assert.NotContains(t, rec.Content, "maria@example.com")
	assert.NotContains(t, rec.Content, "@")
}

func TestParseOne_StripsAllEmailShapes(t *testing.T) {
	body := `---
name: "Ana"
trip: "Fatima - May 2025"
---

A beautiful journey of faith and renewal that changed everything for me.

**Email:** ana@example.com
Email: ana2@example.com
Reach me at hidden@example.org anytime.
<!-- internal note -->
---
`
	rec := testParser().ParseOne(domain.Document{Number: 2, Title: "Testimony from Ana - Fatima", Body: body})

	require.NotNil(t, rec)
	assert.NotContains(t, rec.Content, "example.com")
	assert.NotContains(t, rec.Content, "example.org")
	assert.NotContains(t, rec.Content, "internal note")
	assert.NotContains(t, rec.Content, "\n---")
	assert.Contains(t, rec.Content, "Reach me at")
}

func TestParseOne_HeaderEchoRemoved(t *testing.T) {
	body := `---
name: "Ana"
---

name: "Ana"
rating: "5"

The pilgrimage was a deep encounter with silence and prayer at every stage.
`
	rec := testParser().ParseOne(domain.Document{Number: 3, Title: "t", Body: body})

	require.NotNil(t, rec)
	assert.NotContains(t, rec.Content, `name:`)
	assert.NotContains(t, rec.Content, `rating:`)
}

func TestParseOne_DisallowedHostDropped(t *testing.T) {
	body := `---
name: "Ana"
trip: "Lourdes - April 2025"
media:
  - url: "https://evil.example.com/x.jpg"
    alt: "nope"
  - url: "https://i.imgur.com/ok.jpg"
    alt: "ok"
---

Walking to the grotto at dawn was the most peaceful moment of my life.

![inline](https://attacker.net/y.png)
`
	rec := testParser().ParseOne(domain.Document{Number: 4, Title: "t", Body: body})

	require.NotNil(t, rec)
	require.Len(t, rec.Media, 1)
	assert.Equal(t, "https://i.imgur.com/ok.jpg", rec.Media[0].URL)
}

func TestHostAllowed(t *testing.T) {
	p := testParser()

	assert.True(t, p.HostAllowed("https://i.imgur.com/a.jpg"))
	assert.True(t, p.HostAllowed("https://res.cloudinary.com/demo/a.jpg"))
	assert.True(t, p.HostAllowed("https://sub.github.com/a.jpg"))
	assert.False(t, p.HostAllowed("https://imgur.com.evil.net/a.jpg"))
	assert.False(t, p.HostAllowed("https://example.com/a.jpg"))
	assert.False(t, p.HostAllowed("not a url"))
}

func TestParseOne_BodyMediaMergedAndDeduped(t *testing.T) {
	body := `---
name: "Ana"
media:
  - url: "https://i.imgur.com/a.jpg"
    alt: "header"
---

Our group walked together for ten days and shared stories every night.

![header dup](https://i.imgur.com/a.jpg)
![second](https://i.imgur.com/b.jpg)
<img src="https://res.cloudinary.com/demo/c.jpg">
See https://res.cloudinary.com/demo/video/upload/d.mp4
`
	rec := testParser().ParseOne(domain.Document{Number: 5, Title: "t", Body: body})

	require.NotNil(t, rec)
	urls := make([]string, len(rec.Media))
	for i, m := range rec.Media {
		urls[i] = m.URL
	}
	assert.Equal(t, []string{
		"https://i.imgur.com/a.jpg",
		"https://i.imgur.com/b.jpg",
		"https://res.cloudinary.com/demo/c.jpg",
		"https://res.cloudinary.com/demo/video/upload/d.mp4",
	}, urls)
	assert.Equal(t, domain.MediaVideo, rec.Media[3].Kind)
}

func TestParseOne_NoHeaderFallback(t *testing.T) {
	rec := testParser().ParseOne(domain.Document{
		Number: 6,
		Title:  "Testimonio de Carlos Ruiz - Tierra Santa",
		Body:   "Un viaje que nunca olvidare, caminamos donde camino el Senor con el grupo.",
	})

	require.NotNil(t, rec)
	assert.Equal(t, "Carlos Ruiz", rec.Name)
	assert.Equal(t, "Pilgrimage Experience", rec.Trip)
	assert.Equal(t, "es", rec.Language)
}

func TestParseOne_TitleNameEnglish(t *testing.T) {
	rec := testParser().ParseOne(domain.Document{
		Number: 7,
		Title:  "Testimony from John Smith - Holy Land",
		Body:   "The sites we visited brought the scriptures to life in ways I never expected.",
	})

	require.NotNil(t, rec)
	assert.Equal(t, "John Smith", rec.Name)
	assert.Equal(t, "en", rec.Language)
}

func TestParseOne_MalformedReturnsNil(t *testing.T) {
	p := testParser()

	assert.Nil(t, p.ParseOne(domain.Document{Number: 8, Title: "x", Body: ""}))
	assert.Nil(t, p.ParseOne(domain.Document{Number: 9, Title: "x", Body: "![only](https://i.imgur.com/a.jpg)"}))
}

func TestParseAll_DropsMalformed(t *testing.T) {
	docs := []domain.Document{
		{Number: 1, Title: "Testimony from A B - Rome", Body: "A short but complete account of our pilgrimage through the eternal city."},
		{Number: 2, Title: "broken", Body: ""},
	}

	records := testParser().ParseAll(docs)

	assert.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID)
}

func TestParseOne_FeaturedFromHeaderOrLabel(t *testing.T) {
	body := "---\nname: \"Ana\"\nfeatured: true\n---\n\nEvery step of the road taught us something new about patience and grace."
	rec := testParser().ParseOne(domain.Document{Number: 10, Title: "t", Body: body})
	require.NotNil(t, rec)
	assert.True(t, rec.Featured)

	rec = testParser().ParseOne(domain.Document{
		Number: 11,
		Title:  "t",
		Body:   "---\nname: \"Ana\"\n---\n\nEvery step of the road taught us something new about patience and grace.",
		Labels: []string{"featured", domain.LabelVerified},
	})
	require.NotNil(t, rec)
	assert.True(t, rec.Featured)
	assert.True(t, rec.Verified)
}

func TestParseOne_VerifiedVisibilityFlags(t *testing.T) {
	body := "---\nname: \"Ana\"\n---\n\nA pilgrimage that renewed my faith and gave me friends for life on the road."

	verified := testParser().ParseOne(domain.Document{Number: 12, Title: "t", Body: body, Labels: []string{domain.LabelTestimony, domain.LabelVerified}})
	pending := testParser().ParseOne(domain.Document{Number: 13, Title: "t", Body: body, Labels: []string{domain.LabelTestimony, domain.LabelNeedsReview}})

	require.NotNil(t, verified)
	require.NotNil(t, pending)
	assert.True(t, verified.Verified)
	assert.False(t, verified.NeedsReview)
	assert.False(t, pending.Verified)
	assert.True(t, pending.NeedsReview)
}

func TestCleanBody_CollapsesBlankRuns(t *testing.T) {
	got := cleanBody("line one\n\n\n\n\nline two")
	assert.Equal(t, "line one\n\nline two", got)
	assert.False(t, strings.Contains(got, "\n\n\n"))
}
