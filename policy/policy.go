// Package policy decides who may read or change listings and bookings.
// Callers resolve the resource first, so a denial here is always reported
// as forbidden rather than not found.
package policy

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/google/uuid"
)

type Action int

const (
	Read Action = iota
	Write
)

func (a Action) String() string {
	if a == Read {
		return "read"
	}
	return "write"
}

// Listing allows reads for everyone and writes for the listing's host only.
func Listing(userID uuid.UUID, listing *models.Listing, action Action) error {
	if action == Read {
		return nil
	}
	if listing.HostID != userID {
		return apperrors.NewForbiddenError("only the host of this listing can modify it")
	}
	return nil
}

// Booking allows the guest everything and the listing's host reads only.
// booking.Listing must be loaded.
func Booking(userID uuid.UUID, booking *models.Booking, action Action) error {
	if booking.GuestID == userID {
		return nil
	}
	if action == Read && booking.Listing.HostID == userID {
		return nil
	}
	return apperrors.NewForbiddenError("you do not have permission to " + action.String() + " this booking")
}
