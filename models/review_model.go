package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	GuestID   uuid.UUID `gorm:"type:uuid;not null" json:"guest_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Guest User `gorm:"foreignkey:GuestID" json:"guest,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
