package email

import (
	"context"
	"testing"

	"github.com/deppfellow/tourism/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_AllTemplates(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	for _, name := range Templates {
		t.Run(string(name), func(t *testing.T) {
			data, ok := PreviewData[name]
			require.True(t, ok, "missing preview data")

			html, err := Render(tmpl, name, data)
			require.NoError(t, err)
			assert.Contains(t, html, "Noor Travel")
			assert.Contains(t, html, "</html>")
		})
	}
}

func TestRender_BookingReceived(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	html, err := Render(tmpl, TemplateBookingReceived, PreviewData[TemplateBookingReceived])
	require.NoError(t, err)
	assert.Contains(t, html, "Aisha")
	assert.Contains(t, html, "3F1C9A7E")
	assert.Contains(t, html, "PENDING")
	assert.Contains(t, html, "2025-03-10 to 2025-03-14")
}

func TestRender_EscapesUserInput(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	html, err := Render(tmpl, TemplateContactAck, ContactAckData{Name: "x", Topic: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestClient_SendEmail_WithoutAPIKeySkips(t *testing.T) {
	logger := zerolog.Nop()
	c, err := NewClient(&config.Config{}, &logger)
	require.NoError(t, err)

	err = c.SendWelcomeEmail(context.Background(), "guest@example.com", WelcomeData{Name: "guest"})
	assert.NoError(t, err)
}
