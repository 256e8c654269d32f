package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	TaskBookingConfirmation = "booking.confirmation"
	TaskPaymentConfirmation = "payment.confirmation"
)

// Task is one unit of background work. It travels as JSON through the broker.
type Task struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// BookingConfirmationPayload carries only the id; the booking is loaded when
// the task runs, so queueing delay never sends stale data.
type BookingConfirmationPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

type PaymentConfirmationPayload struct {
	Email     string    `json:"email"`
	BookingID uuid.UUID `json:"booking_id"`
}

func newTask(name string, payload any) Task {
	b, _ := json.Marshal(payload)
	return Task{Name: name, Payload: b}
}

func NewBookingConfirmationTask(bookingID uuid.UUID) Task {
	return newTask(TaskBookingConfirmation, BookingConfirmationPayload{BookingID: bookingID})
}

func NewPaymentConfirmationTask(email string, bookingID uuid.UUID) Task {
	return newTask(TaskPaymentConfirmation, PaymentConfirmationPayload{Email: email, BookingID: bookingID})
}

func DecodePayload[T any](t Task) (T, error) {
	var v T
	if err := json.Unmarshal(t.Payload, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s payload: %w", t.Name, err)
	}
	return v, nil
}
