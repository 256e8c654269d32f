package models

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleHost  = "HOST"
	RoleGuest = "GUEST"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:10;not null;unique" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
}

// NormalizeRoleName upper-cases and trims a role name; ok is false when the
// result is not one of the known roles.
func NormalizeRoleName(name string) (string, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	return n, n == RoleHost || n == RoleGuest
}
