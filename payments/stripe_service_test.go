package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "whsec_test_secret"
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid signature", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		assert.NoError(t, VerifyWebhookSignature(payload, header, secret, now))
	})

	t.Run("signature ages within tolerance", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		assert.NoError(t, VerifyWebhookSignature(payload, header, secret, now.Add(4*time.Minute)))
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now)
		tampered := []byte(`{"id":"evt_1","type":"payment_intent.payment_failed"}`)
		assert.Error(t, VerifyWebhookSignature(tampered, header, secret, now))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := SignWebhookPayload(payload, "whsec_other", now)
		assert.Error(t, VerifyWebhookSignature(payload, header, secret, now))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.Error(t, VerifyWebhookSignature(payload, "", secret, now))
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Error(t, VerifyWebhookSignature(payload, "garbage", secret, now))
	})

	t.Run("timestamp too old", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now.Add(-10*time.Minute))
		assert.Error(t, VerifyWebhookSignature(payload, header, secret, now))
	})

	t.Run("timestamp in the future", func(t *testing.T) {
		header := SignWebhookPayload(payload, secret, now.Add(10*time.Minute))
		assert.Error(t, VerifyWebhookSignature(payload, header, secret, now))
	})
}

func TestMockIntentHelpers(t *testing.T) {
	id := NewMockIntentID()
	require.True(t, IsMockIntentID(id))
	assert.False(t, IsMockIntentID("pi_1AbCdEfGhIjKlMnO"))
	assert.Equal(t, "mock_secret_"+id, MockClientSecret(id))
}
