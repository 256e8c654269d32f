package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// assignID gives a row a UUID before insert unless one was set already
// (seeding keeps the ids from the CSV files).
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (r *Role) BeforeCreate(tx *gorm.DB) error     { assignID(&r.ID); return nil }
func (u *User) BeforeCreate(tx *gorm.DB) error     { assignID(&u.ID); return nil }
func (l *Location) BeforeCreate(tx *gorm.DB) error { assignID(&l.ID); return nil }
func (l *Listing) BeforeCreate(tx *gorm.DB) error  { assignID(&l.ID); return nil }
func (b *Booking) BeforeCreate(tx *gorm.DB) error  { assignID(&b.ID); return nil }
func (r *Review) BeforeCreate(tx *gorm.DB) error   { assignID(&r.ID); return nil }

func (b *BlacklistedToken) BeforeCreate(tx *gorm.DB) error { assignID(&b.ID); return nil }

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusPending
	}
	return nil
}
