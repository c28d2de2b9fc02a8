package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleEvent() CalendarEvent {
	return CalendarEvent{
		UID:            "9f1c2d34-0000-0000-0000-000000000000",
		Start:          time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		End:            time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC),
		Summary:        "Session — Maria Silva",
		Description:    "Booked session",
		Location:       "https://meet.google.com/abc-defg-hij",
		URL:            "https://meet.google.com/abc-defg-hij",
		OrganizerName:  "Session Booking",
		OrganizerEmail: "noreply@sessionbooking.app",
		AttendeeName:   "Maria Silva",
		AttendeeEmail:  "maria@example.com",
	}
}

func TestGenerateCalendarInvite(t *testing.T) {
	ics := GenerateCalendarInvite(sampleEvent())

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "METHOD:REQUEST")
	assert.Contains(t, ics, "UID:9f1c2d34-0000-0000-0000-000000000000")
	assert.Contains(t, ics, "SUMMARY:Session")
	assert.Contains(t, ics, "mailto:noreply@sessionbooking.app")
	assert.Contains(t, ics, "maria@example.com")
	assert.NotContains(t, ics, "STATUS:CANCELLED")
}

func TestGenerateCalendarCancellation(t *testing.T) {
	ics := GenerateCalendarCancellation(sampleEvent())

	assert.Contains(t, ics, "METHOD:CANCEL")
	assert.Contains(t, ics, "STATUS:CANCELLED")
	assert.Contains(t, ics, "SEQUENCE:1")
}

// A cancellation only retracts the invite when both carry the same UID.
func TestInviteAndCancellationShareUID(t *testing.T) {
	event := sampleEvent()
	invite := GenerateCalendarInvite(event)
	cancellation := GenerateCalendarCancellation(event)

	uidLine := "UID:" + event.UID
	assert.True(t, strings.Contains(invite, uidLine))
	assert.True(t, strings.Contains(cancellation, uidLine))
}
