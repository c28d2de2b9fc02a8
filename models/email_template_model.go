package models

import (
	"time"

	"github.com/google/uuid"
)

type EmailTemplate struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;not null;unique" json:"name"`
	Subject     string    `gorm:"size:255;not null" json:"subject"`
	HTMLContent string    `gorm:"type:text;not null" json:"html_content"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
