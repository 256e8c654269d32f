package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BookingID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"booking_id"`
	TransactionID string          `gorm:"size:100;not null;unique" json:"transaction_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentStatus PaymentStatus   `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
