package services

import (
	"testing"
	"time"

	"github.com/anavidal/session_booking/models"
	"github.com/stretchr/testify/assert"
)

func TestRefundStatusFor(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		status       string
		sessionStart time.Time
		want         string
	}{
		{
			name:         "confirmed more than 24h before session",
			status:       "CONFIRMED",
			sessionStart: now.Add(48 * time.Hour),
			want:         "FULL_REFUND",
		},
		{
			name:         "confirmed exactly 24h before session",
			status:       "CONFIRMED",
			sessionStart: now.Add(24 * time.Hour),
			want:         "FULL_REFUND",
		},
		{
			name:         "confirmed less than 24h before session",
			status:       "CONFIRMED",
			sessionStart: now.Add(23 * time.Hour),
			want:         "NO_REFUND",
		},
		{
			name:         "confirmed after session started",
			status:       "CONFIRMED",
			sessionStart: now.Add(-time.Hour),
			want:         "NO_REFUND",
		},
		{
			name:         "pending payment never refunds",
			status:       "PENDING_PAYMENT",
			sessionStart: now.Add(72 * time.Hour),
			want:         "NO_REFUND",
		},
		{
			name:         "completed never refunds",
			status:       "COMPLETED",
			sessionStart: now.Add(72 * time.Hour),
			want:         "NO_REFUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &models.Booking{Status: tt.status}
			assert.Equal(t, tt.want, RefundStatusFor(booking, tt.sessionStart, now))
		})
	}
}
