package services

import (
	"testing"
	"time"

	"github.com/anavidal/session_booking/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyCoupon(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name         string
		base         int64
		coupon       *models.Coupon
		wantDiscount int64
		wantApplied  bool
	}{
		{
			name:         "nil coupon",
			base:         5000,
			coupon:       nil,
			wantDiscount: 0,
			wantApplied:  false,
		},
		{
			name: "percentage discount",
			base: 5000,
			coupon: &models.Coupon{
				Code: "SUMMER10", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, ValidUntil: &future,
			},
			wantDiscount: 500,
			wantApplied:  true,
		},
		{
			name: "percentage rounds to nearest cent",
			base: 4999,
			coupon: &models.Coupon{
				Code: "SUMMER10", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true,
			},
			wantDiscount: 500,
			wantApplied:  true,
		},
		{
			name: "fixed amount discount",
			base: 5000,
			coupon: &models.Coupon{
				Code: "TENOFF", DiscountType: "FIXED_AMOUNT", DiscountValue: 1000,
				IsActive: true,
			},
			wantDiscount: 1000,
			wantApplied:  true,
		},
		{
			name: "fixed amount can exceed base",
			base: 500,
			coupon: &models.Coupon{
				Code: "TENOFF", DiscountType: "FIXED_AMOUNT", DiscountValue: 1000,
				IsActive: true,
			},
			wantDiscount: 1000,
			wantApplied:  true,
		},
		{
			name: "inactive coupon",
			base: 5000,
			coupon: &models.Coupon{
				Code: "OLD", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: false,
			},
			wantDiscount: 0,
			wantApplied:  false,
		},
		{
			name: "expired coupon",
			base: 5000,
			coupon: &models.Coupon{
				Code: "LATE", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, ValidUntil: &past,
			},
			wantDiscount: 0,
			wantApplied:  false,
		},
		{
			name: "usage limit reached",
			base: 5000,
			coupon: &models.Coupon{
				Code: "FULL", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, MaxUses: 5, UsedCount: 5,
			},
			wantDiscount: 0,
			wantApplied:  false,
		},
		{
			name: "usage limit not yet reached",
			base: 5000,
			coupon: &models.Coupon{
				Code: "ALMOST", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, MaxUses: 5, UsedCount: 4,
			},
			wantDiscount: 500,
			wantApplied:  true,
		},
		{
			name: "zero max uses means unlimited",
			base: 5000,
			coupon: &models.Coupon{
				Code: "FOREVER", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, MaxUses: 0, UsedCount: 9999,
			},
			wantDiscount: 500,
			wantApplied:  true,
		},
		{
			name: "expiry boundary is inclusive",
			base: 5000,
			coupon: &models.Coupon{
				Code: "EDGE", DiscountType: "PERCENTAGE", DiscountValue: 10,
				IsActive: true, ValidUntil: &now,
			},
			wantDiscount: 500,
			wantApplied:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, applied := ApplyCoupon(tt.base, tt.coupon, now)
			assert.Equal(t, tt.wantDiscount, discount)
			assert.Equal(t, tt.wantApplied, applied)
		})
	}
}
