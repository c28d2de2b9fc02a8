package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/notifications"
	"github.com/anavidal/session_booking/payments"
	"github.com/anavidal/session_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreateBookingRequest struct {
	SlotID     string  `json:"slot_id" validate:"required,uuid"`
	Type       string  `json:"type" validate:"required,oneof=IN_PERSON ONLINE"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	Phone      string  `json:"phone" validate:"required"`
	Language   string  `json:"language" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
	CouponCode string  `json:"coupon_code,omitempty"`
}

var errSlotFull = errors.New("slot is full")

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	slotID, _ := uuid.Parse(req.SlotID)

	var slot models.AvailabilitySlot
	if err := database.DB.First(&slot, "id = ?", slotID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
	}
	if slot.Status != "AVAILABLE" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Slot is not available for booking"})
	}
	if slot.Type != req.Type {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Slot type does not match booking type"})
	}

	base, discount, final, appliedCode := services.ResolvePrice(database.DB, &slot, req.CouponCode)

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Row lock so two concurrent requests for the same slot serialize here
		// and both re-read capacity after the other commits.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, "id = ?", slotID).Error; err != nil {
			return err
		}

		var activeCount int64
		if err := tx.Model(&models.Booking{}).
			Where("availability_slot_id = ? AND status <> ?", slot.ID, "CANCELLED").
			Count(&activeCount).Error; err != nil {
			return err
		}
		if activeCount >= int64(slot.MaxCapacity) {
			return errSlotFull
		}

		booking = models.Booking{
			AvailabilitySlotID: slot.ID,
			FirstName:          req.FirstName,
			LastName:           req.LastName,
			Email:              req.Email,
			Phone:              req.Phone,
			Language:           req.Language,
			Notes:              req.Notes,
			Type:               req.Type,
			Status:             "PENDING_PAYMENT",
			TotalAmount:        base,
			DiscountAmount:     discount,
			FinalAmount:        final,
			Currency:           "EUR",
			CouponCode:         appliedCode,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Group sessions with remaining capacity stay open.
		if activeCount+1 >= int64(slot.MaxCapacity) {
			if err := tx.Model(&models.AvailabilitySlot{}).Where("id = ?", slot.ID).
				Update("status", "BOOKED").Error; err != nil {
				return err
			}
		}
		return nil
	})

	if errors.Is(err, errSlotFull) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This time slot is no longer available."})
	}
	if err != nil {
		log.Printf("🔥 Failed to create booking for slot %s: %v", slotID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var booking models.Booking
	err := database.DB.
		Preload("AvailabilitySlot.Location").
		Preload("Payment").
		Preload("GoogleMeetEvent").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(booking)
}

func ListBookings(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email query parameter is required"})
	}

	var bookings []models.Booking
	if err := database.DB.
		Preload("AvailabilitySlot.Location").
		Where("email = ?", email).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func CancelBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	err := database.DB.
		Preload("AvailabilitySlot.Location").
		Preload("Payment").
		Preload("GoogleMeetEvent").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.Status == "CANCELLED" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking is already cancelled"})
	}

	now := time.Now()
	refundStatus := services.RefundStatusFor(&booking, booking.AvailabilitySlot.StartTime(), now)

	if refundStatus == "FULL_REFUND" && booking.Payment != nil && booking.Payment.Status == "SUCCEEDED" {
		var refundErr error
		if !payments.IsMockIntentID(booking.Payment.StripePaymentIntent) {
			_, refundErr = payments.CreateRefund(booking.Payment.StripePaymentIntent)
		}
		if refundErr != nil {
			// Cancellation proceeds regardless; the refund is reconciled manually.
			log.Printf("🔥 Refund failed for booking %s: %v", booking.ID, refundErr)
		} else {
			amount := booking.Payment.Amount
			reason := "Customer cancellation more than 24h before session"
			if err := database.DB.Model(booking.Payment).Updates(map[string]interface{}{
				"status":        "REFUNDED",
				"refund_amount": amount,
				"refund_reason": reason,
				"refunded_at":   now,
			}).Error; err != nil {
				log.Printf("🔥 Failed to update refunded payment for booking %s: %v", booking.ID, err)
			}
		}
	}

	booking.Status = "CANCELLED"
	booking.CancelledAt = &now
	booking.CancellationReason = &req.Reason
	if err := database.DB.Save(&booking).Error; err != nil {
		log.Printf("🔥 Failed to cancel booking %s: %v", booking.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	// The slot reopens even if it had been closed for capacity.
	if err := database.DB.Model(&models.AvailabilitySlot{}).
		Where("id = ?", booking.AvailabilitySlotID).
		Update("status", "AVAILABLE").Error; err != nil {
		log.Printf("🔥 Failed to release slot %s: %v", booking.AvailabilitySlotID, err)
	}

	if err := notifications.SendBookingCancellation(&booking, refundStatus); err != nil {
		log.Printf("🔥 Failed to send cancellation email for booking %s: %v", booking.ID, err)
	}

	return c.JSON(fiber.Map{
		"message":       "Booking cancelled successfully",
		"refund_status": refundStatus,
		"booking":       booking,
	})
}
