package models

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilitySlot struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LocationID    *uuid.UUID `json:"location_id"`
	Date          time.Time  `gorm:"not null" json:"date"`
	Time          string     `gorm:"size:5;not null" json:"time"`
	Duration      int        `gorm:"not null;default:60" json:"duration"`
	Type          string     `gorm:"size:20;not null" json:"type"`
	SessionFormat string     `gorm:"size:20;not null;default:'INDIVIDUAL'" json:"session_format"`
	Status        string     `gorm:"size:20;not null;default:'AVAILABLE'" json:"status"`
	Price         *int64     `json:"price"`
	MaxCapacity   int        `gorm:"not null;default:1" json:"max_capacity"`

	Location *Location `gorm:"foreignkey:LocationID" json:"location,omitempty"`
	Bookings []Booking `gorm:"foreignkey:AvailabilitySlotID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartTime combines the slot date with its "HH:MM" time string.
func (s *AvailabilitySlot) StartTime() time.Time {
	parsed, err := time.Parse("15:04", s.Time)
	if err != nil {
		return s.Date
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, s.Date.Location(),
	)
}

func (s *AvailabilitySlot) EndTime() time.Time {
	return s.StartTime().Add(time.Duration(s.Duration) * time.Minute)
}
