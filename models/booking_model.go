package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AvailabilitySlotID uuid.UUID `gorm:"not null" json:"slot_id"`
	FirstName          string    `gorm:"size:100;not null" json:"first_name"`
	LastName           string    `gorm:"size:100;not null" json:"last_name"`
	Email              string    `gorm:"size:255;not null" json:"email"`
	Phone              string    `gorm:"size:50;not null" json:"phone"`
	Language           string    `gorm:"size:10;not null;default:'pt'" json:"language"`
	Notes              *string   `gorm:"type:text" json:"notes,omitempty"`
	Type               string    `gorm:"size:20;not null" json:"type"`
	Status             string    `gorm:"size:20;not null;default:'PENDING_PAYMENT'" json:"status"`

	TotalAmount    int64   `gorm:"not null" json:"total_amount"`
	DiscountAmount int64   `gorm:"not null;default:0" json:"discount_amount"`
	FinalAmount    int64   `gorm:"not null" json:"final_amount"`
	Currency       string  `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	CouponCode     *string `gorm:"size:50" json:"coupon_code,omitempty"`

	CancellationReason *string    `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	ReminderSentAt     *time.Time `json:"-"`

	AvailabilitySlot AvailabilitySlot `gorm:"foreignkey:AvailabilitySlotID" json:"slot,omitempty"`
	Payment          *Payment         `gorm:"foreignkey:BookingID" json:"payment,omitempty"`
	GoogleMeetEvent  *GoogleMeetEvent `gorm:"foreignkey:BookingID" json:"google_meet_event,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
