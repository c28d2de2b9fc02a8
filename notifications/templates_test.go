package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyVariables(t *testing.T) {
	vars := map[string]string{
		"firstName": "Maria",
		"date":      "15/09/2026",
	}

	assert.Equal(t, "Olá Maria, a sua sessão é a 15/09/2026.",
		ApplyVariables("Olá {{firstName}}, a sua sessão é a {{date}}.", vars))

	// Unknown placeholders pass through untouched.
	assert.Equal(t, "Hello {{unknown}}", ApplyVariables("Hello {{unknown}}", vars))

	assert.Equal(t, "Maria Maria", ApplyVariables("{{firstName}} {{firstName}}", vars))
}

func TestRenderTemplateLocalization(t *testing.T) {
	vars := map[string]string{
		"firstName": "Maria",
		"date":      "15/09/2026",
		"time":      "10:00",
	}

	subject, html, ok := RenderTemplate("BOOKING_CONFIRMATION", "en", vars)
	require.True(t, ok)
	assert.Equal(t, "Booking Confirmed: 15/09/2026 at 10:00", subject)
	assert.Contains(t, html, "Hello Maria")

	subject, _, ok = RenderTemplate("BOOKING_CONFIRMATION", "de", vars)
	require.True(t, ok)
	assert.Contains(t, subject, "Buchung bestätigt")
}

func TestRenderTemplateFallsBackToDefaultLanguage(t *testing.T) {
	vars := map[string]string{"firstName": "Maria", "date": "15/09/2026", "time": "10:00"}

	subject, html, ok := RenderTemplate("BOOKING_CONFIRMATION", "ja", vars)
	require.True(t, ok)
	assert.Contains(t, subject, "Reserva Confirmada")
	assert.Contains(t, html, "Olá Maria")
}

func TestRenderTemplateUnknownName(t *testing.T) {
	_, _, ok := RenderTemplate("NO_SUCH_TEMPLATE", "en", nil)
	assert.False(t, ok)
}

func TestDefaultTemplatesCoverAllNames(t *testing.T) {
	templates := DefaultTemplates()
	require.Len(t, templates, len(TemplateNames()))
	for _, tmpl := range templates {
		assert.NotEmpty(t, tmpl.Subject)
		assert.NotEmpty(t, tmpl.HTMLContent)
		assert.True(t, tmpl.IsActive)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "49.99 EUR", FormatAmount(4999, "EUR"))
	assert.Equal(t, "0.00 EUR", FormatAmount(0, "EUR"))
	assert.Equal(t, "100.00 EUR", FormatAmount(10000, "EUR"))
}
