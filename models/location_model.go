package models

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Address    string    `gorm:"size:255;not null" json:"address"`
	City       string    `gorm:"size:100;not null" json:"city"`
	Country    string    `gorm:"size:100;not null" json:"country"`
	PostalCode *string   `gorm:"size:20" json:"postal_code"`
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	Capacity   int       `gorm:"not null;default:1" json:"capacity"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
