package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusFailed    BookingStatus = "FAILED"
)

// DateLayout is the wire format of booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StartDate  time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time       `gorm:"type:date;not null" json:"end_date"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	Status     BookingStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentURL *string         `gorm:"size:500" json:"payment_url"`

	GuestID   uuid.UUID `gorm:"type:uuid;not null;index" json:"guest_id"`
	Guest     User      `gorm:"foreignkey:GuestID" json:"guest,omitempty"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index" json:"listing_id"`
	Listing   Listing   `gorm:"foreignkey:ListingID" json:"listing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Nights is the whole number of days between start and end date.
func Nights(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}
