package models

import (
	"time"

	"github.com/google/uuid"
)

// BlacklistedToken records a refresh token revoked by logout.
type BlacklistedToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	JTI       string    `gorm:"size:64;not null;unique"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
