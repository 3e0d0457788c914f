package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pilgrim-testimonies/internal/domain"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "es", DetectLanguage("La experiencia de caminar con el grupo fue inolvidable"))
	assert.Equal(t, "en", DetectLanguage("Walking with the group was unforgettable"))
	// One hint alone is not enough.
	assert.Equal(t, "en", DetectLanguage("We stayed at la posada"))
}

func TestExtractDestination(t *testing.T) {
	assert.Equal(t, "Camino de Santiago", ExtractDestination("Camino de Santiago - Octubre 2025"))
	assert.Equal(t, "Fatima", ExtractDestination("Fatima (May 2025)"))
	assert.Equal(t, "Holy Land", ExtractDestination("Holy Land, Spring 2024"))
	assert.Equal(t, "Rome", ExtractDestination("Rome"))
	assert.Equal(t, "Unknown", ExtractDestination("  "))
}

func TestExtractTripDate(t *testing.T) {
	assert.Equal(t, "Oct 2025", ExtractTripDate("Camino - Octubre 2025"))
	assert.Equal(t, "May 2025", ExtractTripDate("Fatima (May 2025)"))
	assert.Equal(t, "2024", ExtractTripDate("Holy Land Spring 2024"))
	assert.Equal(t, "", ExtractTripDate("Rome"))
	assert.Equal(t, "", ExtractTripDate(""))
}

func TestMediaKindFromURL(t *testing.T) {
	assert.Equal(t, domain.MediaImage, MediaKindFromURL("https://i.imgur.com/a.jpg"))
	assert.Equal(t, domain.MediaVideo, MediaKindFromURL("https://res.cloudinary.com/demo/v.mp4?x=1"))
	assert.Equal(t, domain.MediaAudio, MediaKindFromURL("https://res.cloudinary.com/demo/a.mp3#t"))
	assert.Equal(t, domain.MediaImage, MediaKindFromURL("https://example.com/noext"))
}

func TestParseRatingAndTags(t *testing.T) {
	r := parseRating("4.5")
	assert.NotNil(t, r)
	assert.Equal(t, 4.5, *r)
	assert.Nil(t, parseRating(""))
	assert.Nil(t, parseRating("five"))

	assert.Equal(t, []string{"pilgrimage", "faith"}, parseTags("pilgrimage, faith, "))
	assert.Nil(t, parseTags(""))
}
