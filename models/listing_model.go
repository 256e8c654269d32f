package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Listing struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title         string          `gorm:"size:255;not null" json:"title"`
	PricePerNight decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_night"`
	Description   string          `gorm:"type:text" json:"description"`
	ImageURL      string          `gorm:"size:500" json:"image_url"`

	HostID     uuid.UUID `gorm:"type:uuid;not null;index" json:"host_id"`
	Host       User      `gorm:"foreignkey:HostID" json:"host,omitempty"`
	LocationID uuid.UUID `gorm:"type:uuid;not null" json:"location_id"`
	Location   Location  `gorm:"foreignkey:LocationID" json:"location,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
