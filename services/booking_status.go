package services

import "github.com/anjiri1684/alx_travel/models"

// BookingStatusAfterPayment returns the status a booking moves to once its
// payment has been verified as p. A failure only cancels a pending booking,
// while money that arrives late still confirms a cancelled one.
func BookingStatusAfterPayment(current models.BookingStatus, p models.PaymentStatus) (next models.BookingStatus, changed bool) {
	switch {
	case p == models.PaymentStatusSuccess && current != models.BookingStatusConfirmed:
		return models.BookingStatusConfirmed, true
	case p == models.PaymentStatusFailed && current == models.BookingStatusPending:
		return models.BookingStatusCancelled, true
	}
	return current, false
}
