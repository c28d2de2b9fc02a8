package models

import (
	"time"

	"github.com/google/uuid"
)

type GoogleMeetEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID     uuid.UUID `gorm:"not null;unique" json:"booking_id"`
	GoogleEventID string    `gorm:"size:255;not null" json:"google_event_id"`
	MeetLink      string    `gorm:"size:255;not null" json:"meet_link"`

	CreatedAt time.Time `json:"created_at"`
}
