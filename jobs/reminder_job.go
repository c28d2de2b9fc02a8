package jobs

import (
	"log"
	"time"

	"github.com/anavidal/session_booking/database"
	"github.com/anavidal/session_booking/models"
	"github.com/anavidal/session_booking/notifications"
)

// SendSessionReminders emails confirmed customers roughly 24 hours before
// their session. ReminderSentAt makes the job idempotent across runs.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()

	// Dates are stored at midnight and times as strings, so the query narrows
	// by day and the precise window check happens in Go.
	var candidates []models.Booking
	err := database.DB.
		Preload("AvailabilitySlot.Location").
		Preload("GoogleMeetEvent").
		Joins("JOIN availability_slots ON availability_slots.id = bookings.availability_slot_id").
		Where("bookings.status = ? AND bookings.reminder_sent_at IS NULL", "CONFIRMED").
		Where("availability_slots.date BETWEEN ? AND ?",
			now.Truncate(24*time.Hour), now.Add(48*time.Hour)).
		Find(&candidates).Error
	if err != nil {
		log.Printf("🔥 Error checking for upcoming sessions: %v", err)
		return
	}

	windowStart := now.Add(23*time.Hour + 30*time.Minute)
	windowEnd := now.Add(24*time.Hour + 30*time.Minute)

	sent := 0
	for i := range candidates {
		booking := &candidates[i]
		start := booking.AvailabilitySlot.StartTime()
		if start.Before(windowStart) || start.After(windowEnd) {
			continue
		}

		meetLink := ""
		if booking.GoogleMeetEvent != nil {
			meetLink = booking.GoogleMeetEvent.MeetLink
		}

		if err := notifications.SendSessionReminder(booking, meetLink); err != nil {
			log.Printf("🔥 Failed to send reminder for booking %s: %v", booking.ID, err)
			continue
		}

		if err := database.DB.Model(booking).Update("reminder_sent_at", now).Error; err != nil {
			log.Printf("🔥 Failed to mark reminder sent for booking %s: %v", booking.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		log.Printf("✅ Sent %d session reminder(s).", sent)
	}
}
