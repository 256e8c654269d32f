package models

import "github.com/google/uuid"

type Location struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Country string    `gorm:"size:100;not null" json:"country"`
	State   string    `gorm:"size:100" json:"state"`
	City    string    `gorm:"size:100;not null" json:"city"`
}
