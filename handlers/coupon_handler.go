package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ValidateCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// ValidateCoupon lets the checkout preview a discount before the booking is
// created. Validation failures are spelled out here; booking creation itself
// silently ignores a bad coupon.
func ValidateCoupon(c *fiber.Ctx) error {
	var req ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var coupon models.Coupon
	if err := database.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"valid": false, "error": "Coupon not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	now := time.Now()
	switch {
	case !coupon.IsActive:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "error": "Coupon is no longer active"})
	case coupon.MaxUses > 0 && coupon.UsedCount >= coupon.MaxUses:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "error": "Coupon has reached its usage limit"})
	case coupon.ValidUntil != nil && now.After(*coupon.ValidUntil):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"valid": false, "error": "Coupon has expired"})
	}

	base := services.SystemSessionPrice(database.DB)
	discounted, _ := services.ApplyCoupon(base, &coupon, now)

	return c.JSON(fiber.Map{
		"valid":          true,
		"code":           coupon.Code,
		"discount_type":  coupon.DiscountType,
		"discount_value": coupon.DiscountValue,
		"sample_base":    base,
		"sample_final":   discounted,
	})
}

func ListCoupons(c *fiber.Ctx) error {
	var coupons []models.Coupon
	if err := database.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch coupons"})
	}
	return c.JSON(coupons)
}

type CreateCouponRequest struct {
	Code          string  `json:"code" validate:"required,min=2"`
	DiscountType  string  `json:"discount_type" validate:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	DiscountValue int64   `json:"discount_value" validate:"required,min=1"`
	MaxUses       int     `json:"max_uses" validate:"omitempty,min=0"`
	ValidUntil    *string `json:"valid_until"`
}

func CreateCoupon(c *fiber.Ctx) error {
	var req CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.DiscountType == "PERCENTAGE" && req.DiscountValue > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Percentage discount cannot exceed 100"})
	}

	var validUntil *time.Time
	if req.ValidUntil != nil && *req.ValidUntil != "" {
		parsed, err := time.Parse(time.RFC3339, *req.ValidUntil)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid valid_until format, expected RFC3339"})
		}
		validUntil = &parsed
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	var count int64
	if err := database.DB.Model(&models.Coupon{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A coupon with this code already exists"})
	}

	coupon := models.Coupon{
		Code:          code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
		ValidUntil:    validUntil,
		IsActive:      true,
	}
	if err := database.DB.Create(&coupon).Error; err != nil {
		log.Printf("🔥 Failed to create coupon %s: %v", code, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create coupon"})
	}

	return c.Status(fiber.StatusCreated).JSON(coupon)
}

type UpdateCouponStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func UpdateCouponStatus(c *fiber.Ctx) error {
	couponID := c.Params("couponId")
	if _, err := uuid.Parse(couponID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coupon ID format"})
	}

	var req UpdateCouponStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var coupon models.Coupon
	if err := database.DB.First(&coupon, "id = ?", couponID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}

	coupon.IsActive = *req.IsActive
	if err := database.DB.Save(&coupon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update coupon"})
	}
	return c.JSON(coupon)
}

func DeleteCoupon(c *fiber.Ctx) error {
	couponID := c.Params("couponId")
	if _, err := uuid.Parse(couponID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid coupon ID format"})
	}

	var coupon models.Coupon
	if err := database.DB.First(&coupon, "id = ?", couponID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Coupon not found"})
	}

	if err := database.DB.Delete(&coupon).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete coupon"})
	}
	return c.JSON(fiber.Map{"message": "Coupon deleted successfully"})
}
