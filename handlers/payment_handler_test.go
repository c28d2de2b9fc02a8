package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anavidal/session_booking/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webhookApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/webhooks/stripe", HandleStripeWebhook)
	return app
}

// Unsigned and badly signed deliveries must be rejected before the payload is
// parsed; nothing in the body can be trusted until the signature checks out.
func TestStripeWebhookRejectsMissingSignature(t *testing.T) {
	app := webhookApp()

	req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe",
		bytes.NewReader([]byte(`{"type":"payment_intent.succeeded"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	app := webhookApp()

	payload := []byte(`{"type":"payment_intent.succeeded"}`)
	header := payments.SignWebhookPayload(payload, "some-other-secret", time.Now())

	req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", header)

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
