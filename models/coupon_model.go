package models

import (
	"time"

	"github.com/google/uuid"
)

type Coupon struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code          string     `gorm:"size:50;not null;unique" json:"code"`
	DiscountType  string     `gorm:"size:20;not null;default:'PERCENTAGE'" json:"discount_type"`
	DiscountValue int64      `gorm:"not null" json:"discount_value"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`
	MaxUses       int        `gorm:"not null;default:0" json:"max_uses"`
	UsedCount     int        `gorm:"not null;default:0" json:"used_count"`
	ValidUntil    *time.Time `json:"valid_until,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
