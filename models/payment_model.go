package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID           uuid.UUID `gorm:"not null;unique" json:"booking_id"`
	StripePaymentIntent string    `gorm:"size:255;not null;unique" json:"stripe_payment_intent"`
	Amount              int64     `gorm:"not null" json:"amount"`
	Currency            string    `gorm:"size:3;not null" json:"currency"`
	Status              string    `gorm:"size:20;not null" json:"status"`
	PaymentMethod       *string   `gorm:"size:50" json:"payment_method,omitempty"`

	RefundAmount *int64     `json:"refund_amount,omitempty"`
	RefundReason *string    `gorm:"type:text" json:"refund_reason,omitempty"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
