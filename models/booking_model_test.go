package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(DateLayout, s)
		return d
	}

	assert.Equal(t, 3, Nights(day("2024-01-01"), day("2024-01-04")))
	assert.Equal(t, 0, Nights(day("2024-01-01"), day("2024-01-01")))
	assert.Equal(t, -2, Nights(day("2024-01-03"), day("2024-01-01")))
	assert.Equal(t, 29, Nights(day("2024-02-01"), day("2024-03-01")))
}

func TestNights_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Nights(start, end))
}

func TestNormalizeRoleName(t *testing.T) {
	name, ok := NormalizeRoleName(" host ")
	assert.True(t, ok)
	assert.Equal(t, RoleHost, name)

	_, ok = NormalizeRoleName("admin")
	assert.False(t, ok)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Abebe Kebede", User{FirstName: "Abebe", LastName: "Kebede"}.FullName())
	assert.Equal(t, "abebe", User{Username: "abebe"}.FullName())
}
