package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pilgrim-testimonies/internal/config"
)

func TestNewService_DisabledWithoutConfig(t *testing.T) {
	assert.Nil(t, NewService(&config.Config{ReviewerEmails: []string{"r@example.com"}}))
	assert.Nil(t, NewService(&config.Config{ResendAPIKey: "re_key"}))
	assert.NotNil(t, NewService(&config.Config{
		ResendAPIKey:   "re_key",
		ReviewerEmails: []string{"r@example.com"},
	}))
}

func TestReviewEmailBody_EscapesSubmitterFields(t *testing.T) {
	body := reviewEmailBody(`Ana <script>alert(1)</script>`, `Rome "2025" & back`, "https://example.com/issues/7")

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "Ana &lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, "Rome &#34;2025&#34; &amp; back")
	assert.Contains(t, body, `href="https://example.com/issues/7"`)
}
