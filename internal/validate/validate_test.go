package validate

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/pkg/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.LoadTranslations("../../locales"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func validSubmission() *domain.Submission {
	return &domain.Submission{
		Name:      "Maria Lopez",
		Trip:      "Camino de Santiago - Octubre 2025",
		Narrative: strings.Repeat("Walking the Camino changed my life. ", 3),
		Email:     "maria@example.com",
		Language:  "en",
		Consent:   true,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	verr, ok := err.(*domain.ValidationError)
	require.True(t, ok, "expected *domain.ValidationError, got %T", err)
	return verr.Fields
}

func TestSubmission_Valid(t *testing.T) {
	assert.NoError(t, New().Submission(validSubmission()))
}

func TestSubmission_Honeypot(t *testing.T) {
	sub := validSubmission()
	sub.Honeypot = "http://spam.example"

	assert.ErrorIs(t, New().Submission(sub), domain.ErrHoneypot)
}

func TestSubmission_RequiredFields(t *testing.T) {
	sub := &domain.Submission{Language: "en"}

	fields := fieldsOf(t, New().Submission(sub))

	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Trip information is required", fields["trip"])
	assert.Equal(t, "Testimony is required", fields["testimony"])
	assert.Equal(t, "You must accept the terms to continue", fields["consent"])
}

func TestSubmission_LengthBounds(t *testing.T) {
	val := New()

	sub := validSubmission()
	sub.Name = "A"
	fields := fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "Name must be at least 2 characters", fields["name"])

	sub = validSubmission()
	sub.Narrative = strings.Repeat("x", 49)
	fields = fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "Testimony must be at least 50 characters", fields["testimony"])

	sub = validSubmission()
	sub.Narrative = strings.Repeat("x", 2001)
	fields = fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "Testimony cannot exceed 2000 characters", fields["testimony"])

	// Exactly at the bounds passes.
	sub = validSubmission()
	sub.Narrative = strings.Repeat("x", 50)
	assert.NoError(t, val.Submission(sub))

	sub = validSubmission()
	sub.Narrative = strings.Repeat("x", 2000)
	assert.NoError(t, val.Submission(sub))
}

func TestSubmission_SpanishMessages(t *testing.T) {
	sub := validSubmission()
	sub.Language = "es"
	sub.Name = ""

	fields := fieldsOf(t, New().Submission(sub))

	assert.Equal(t, "El nombre es obligatorio", fields["name"])
}

func TestSubmission_NamePattern(t *testing.T) {
	val := New()

	sub := validSubmission()
	sub.Name = "Maria <script>"
	fields := fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "Name contains invalid characters", fields["name"])

	// Accents, dots and hyphens are fine.
	sub = validSubmission()
	sub.Name = "José María O.-Núñez"
	assert.NoError(t, val.Submission(sub))
}

func TestSubmission_OptionalEmail(t *testing.T) {
	val := New()

	sub := validSubmission()
	sub.Email = ""
	assert.NoError(t, val.Submission(sub))

	sub.Email = "not-an-email"
	fields := fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "Please enter a valid email address", fields["email"])
}

func TestSubmission_MediaRules(t *testing.T) {
	val := New()

	sub := validSubmission()
	sub.Media = []domain.MediaFile{{Name: "x.exe", Type: "application/octet-stream", Data: "aaaa"}}
	fields := fieldsOf(t, val.Submission(sub))
	assert.Contains(t, fields["media"], "Invalid file format")

	sub = validSubmission()
	sub.Media = []domain.MediaFile{{Name: "big.jpg", Type: "image/jpeg", Size: domain.MaxImageBytes + 1}}
	fields = fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "File too large. Maximum size: 10MB", fields["media"])

	// Video and audio get their own caps.
	sub = validSubmission()
	sub.Media = []domain.MediaFile{{Name: "v.mp4", Type: "video/mp4", Size: domain.MaxVideoBytes - 1}}
	assert.NoError(t, val.Submission(sub))

	sub = validSubmission()
	sub.Media = []domain.MediaFile{{Name: "a.mp3", Type: "audio/mpeg", Size: domain.MaxAudioBytes + 1}}
	fields = fieldsOf(t, val.Submission(sub))
	assert.Equal(t, "File too large. Maximum size: 50MB", fields["media"])
}

func TestSubmission_SizeFromBase64WhenUnreported(t *testing.T) {
	data := base64.StdEncoding.EncodeToString(make([]byte, 128))
	sub := validSubmission()
	sub.Media = []domain.MediaFile{{Name: "p.png", Type: "image/png", Data: data}}

	assert.NoError(t, New().Submission(sub))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+573001234567"))
	assert.True(t, ValidPhone("+57 (300) 123-4567"))
	assert.True(t, ValidPhone("3001234"))
	assert.False(t, ValidPhone("123"))
	assert.False(t, ValidPhone("30012345678901234"))
	assert.False(t, ValidPhone("phone"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.co"))
	assert.False(t, ValidEmail("a@b@c.co"))
}

func validLead() *domain.Lead {
	return &domain.Lead{
		FirstName:          "Ana",
		LastName:           "Ruiz",
		Email:              "ana@example.com",
		Phone:              "+573001234567",
		PreferredContact:   "WhatsApp",
		PilgrimageInterest: "Camino de Santiago",
		ConsentContact:     true,
	}
}

func TestLead_Valid(t *testing.T) {
	assert.NoError(t, New().Lead(validLead(), "en"))
}

func TestLead_Honeypot(t *testing.T) {
	l := validLead()
	l.Honeypot = "bot"

	assert.ErrorIs(t, New().Lead(l, "en"), domain.ErrHoneypot)
}

func TestLead_Rules(t *testing.T) {
	val := New()

	l := validLead()
	l.Phone = "abc"
	fields := fieldsOf(t, val.Lead(l, "en"))
	assert.Equal(t, "Please enter a valid phone number", fields["phone"])

	l = validLead()
	l.PreferredContact = "Fax"
	fields = fieldsOf(t, val.Lead(l, "en"))
	assert.Equal(t, "Invalid input", fields["preferredContact"])

	l = validLead()
	l.ConsentContact = false
	fields = fieldsOf(t, val.Lead(l, "es"))
	assert.Equal(t, "Debes aceptar los términos para continuar", fields["consentContact"])
}
