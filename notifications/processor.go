package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/anjiri1684/alx_travel/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	bookingConfirmationSubject = "Booking Confirmation"
	paymentConfirmationSubject = "Payment Confirmation"
)

// Processor executes notification tasks.
type Processor struct {
	db     *gorm.DB
	mailer Mailer
}

func NewProcessor(db *gorm.DB, mailer Mailer) *Processor {
	return &Processor{db: db, mailer: mailer}
}

func (p *Processor) Handle(ctx context.Context, task Task) error {
	switch task.Name {
	case TaskBookingConfirmation:
		payload, err := DecodePayload[BookingConfirmationPayload](task)
		if err != nil {
			return err
		}
		return p.sendBookingConfirmation(ctx, payload)

	case TaskPaymentConfirmation:
		payload, err := DecodePayload[PaymentConfirmationPayload](task)
		if err != nil {
			return err
		}
		return p.mailer.Send(ctx, Message{
			ToEmail: payload.Email,
			Subject: paymentConfirmationSubject,
			Body:    fmt.Sprintf("Your payment for booking %s was successful. Thank you for booking with us!", payload.BookingID),
		})

	default:
		log.Warn().Str("task", task.Name).Msg("skip unknown notification task")
		return nil
	}
}

func (p *Processor) sendBookingConfirmation(ctx context.Context, payload BookingConfirmationPayload) error {
	var booking models.Booking
	err := p.db.WithContext(ctx).
		Preload("Guest").
		Preload("Listing").
		First(&booking, "id = ?", payload.BookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Deleted before the task ran; retrying cannot help.
		log.Warn().Str("booking_id", payload.BookingID.String()).Msg("booking gone, confirmation skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load booking %s: %w", payload.BookingID, err)
	}

	return p.mailer.Send(ctx, Message{
		ToEmail: booking.Guest.Email,
		ToName:  booking.Guest.FullName(),
		Subject: bookingConfirmationSubject,
		Body:    fmt.Sprintf("Your booking for %s has been confirmed. Thank you for booking with us!", booking.Listing.Title),
	})
}
