package services

import (
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/anavidal/session_booking/models"
	"gorm.io/gorm"
)

const DefaultSessionPriceCents int64 = 4999

// SystemSessionPrice reads the configured default session price, falling back
// to the hard-coded default when the setting is missing or unparseable.
func SystemSessionPrice(db *gorm.DB) int64 {
	var setting models.SystemSetting
	if err := db.Where("key = ?", "SESSION_PRICE_CENTS").First(&setting).Error; err == nil {
		if v, err := strconv.ParseInt(setting.Value, 10, 64); err == nil && v > 0 {
			return v
		}
		log.Printf("⚠️ SESSION_PRICE_CENTS has invalid value %q, using default", setting.Value)
	}
	return DefaultSessionPriceCents
}

// ApplyCoupon computes the discount a coupon grants on a base amount.
// Returns (0, false) when the coupon does not apply: inactive, exhausted or expired.
func ApplyCoupon(base int64, coupon *models.Coupon, now time.Time) (int64, bool) {
	if coupon == nil || !coupon.IsActive {
		return 0, false
	}
	if coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses {
		return 0, false
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return 0, false
	}

	if coupon.DiscountType == "PERCENTAGE" {
		return int64(math.Round(float64(base) * float64(coupon.DiscountValue) / 100)), true
	}
	return coupon.DiscountValue, true
}

// ResolvePrice computes the amounts for a booking against a slot: slot price
// override, else system default. An invalid coupon code yields zero discount
// instead of an error so a bad code never blocks booking creation.
func ResolvePrice(db *gorm.DB, slot *models.AvailabilitySlot, couponCode string) (base, discount, final int64, appliedCode *string) {
	base = SystemSessionPrice(db)
	if slot.Price != nil {
		base = *slot.Price
	}

	if couponCode != "" {
		var coupon models.Coupon
		if err := db.Where("code = ?", strings.ToUpper(couponCode)).First(&coupon).Error; err != nil {
			log.Printf("Invalid coupon code used: %s", couponCode)
		} else if d, ok := ApplyCoupon(base, &coupon, time.Now()); ok {
			discount = d
			code := coupon.Code
			appliedCode = &code
		}
	}

	final = base - discount
	if final < 0 {
		final = 0
	}
	return base, discount, final, appliedCode
}
