package services

import (
	"fmt"
	"log"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/meetings"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/notifications"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefundStatusFor applies the cancellation policy: a confirmed booking
// cancelled at least 24 hours before the session start is fully refunded.
// A booking that never reached payment is never refunded.
func RefundStatusFor(booking *models.Booking, sessionStart, now time.Time) string {
	if booking.Status == "CONFIRMED" && sessionStart.Sub(now) >= 24*time.Hour {
		return "FULL_REFUND"
	}
	return "NO_REFUND"
}

// ProcessBookingConfirmation runs the post-payment fulfilment steps for a
// booking. It is called from both the webhook handler and the mock
// confirmation handler once the payment and booking rows are committed, so
// every step logs and continues on failure instead of rolling anything back.
func ProcessBookingConfirmation(bookingID uuid.UUID) {
	var booking models.Booking
	if err := database.DB.
		Preload("AvailabilitySlot.Location").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		log.Printf("🔥 Booking not found for confirmation: %s", bookingID)
		return
	}

	if booking.CouponCode != nil {
		err := database.DB.Model(&models.Coupon{}).
			Where("code = ?", *booking.CouponCode).
			UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
		if err != nil {
			log.Printf("🔥 Failed to increment coupon %s: %v", *booking.CouponCode, err)
		} else {
			log.Printf("Coupon %s usage incremented", *booking.CouponCode)
		}
	}

	meetLink := ""
	if booking.Type == "ONLINE" {
		meeting, err := meetings.CreateMeeting(
			booking.ID.String(),
			fmt.Sprintf("Session (%s)", booking.FirstName),
			"Booked session",
			booking.AvailabilitySlot.StartTime(),
			booking.AvailabilitySlot.Duration,
			booking.Email,
		)
		if err != nil {
			log.Printf("🔥 Failed to create meeting for booking %s: %v", booking.ID, err)
		} else {
			event := models.GoogleMeetEvent{
				BookingID:     booking.ID,
				GoogleEventID: meeting.EventID,
				MeetLink:      meeting.MeetLink,
			}
			if err := database.DB.Create(&event).Error; err != nil {
				log.Printf("🔥 Failed to save meet event for booking %s: %v", booking.ID, err)
			}
			meetLink = meeting.MeetLink
			log.Printf("✅ Meeting created for booking %s: %s", booking.ID, meetLink)
		}
	}

	if err := notifications.SendBookingConfirmation(&booking, meetLink); err != nil {
		log.Printf("🔥 Failed to send confirmation email for booking %s: %v", booking.ID, err)
	}

	if booking.Language != "pt" && booking.Language != "pt-BR" {
		if err := notifications.SendTranslatorNotice(&booking, meetLink); err != nil {
			log.Printf("🔥 Failed to notify translator desk for booking %s: %v", booking.ID, err)
		} else {
			log.Printf("✅ Translator desk notified for booking %s (%s)", booking.ID, booking.Language)
		}
	}
}
