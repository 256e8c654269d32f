package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username    string    `gorm:"size:150;not null;unique" json:"username"`
	FirstName   string    `gorm:"size:150" json:"first_name"`
	LastName    string    `gorm:"size:150" json:"last_name"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	Password    string    `gorm:"not null" json:"-"`
	IsActive    bool      `gorm:"default:true" json:"-"`

	RoleID uuid.UUID `gorm:"type:uuid;not null" json:"-"`
	Role   Role      `gorm:"foreignkey:RoleID" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}
