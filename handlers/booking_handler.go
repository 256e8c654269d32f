package handlers

import (
	"time"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateBookingRequest carries only what a guest chooses. Guest, status
// and price are derived on the server.
type CreateBookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type UpdateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) ListBookings(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookings.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(bookings)
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	userID, id, err := userAndID(c)
	if err != nil {
		return err
	}
	booking, err := h.bookings.Get(c.UserContext(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	guestID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, end, err := parseStay(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Create(c.UserContext(), guestID, services.CreateBookingInput{
		ListingID: uuid.MustParse(req.ListingID),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *Handler) UpdateBooking(c *fiber.Ctx) error {
	userID, id, err := userAndID(c)
	if err != nil {
		return err
	}

	var req UpdateBookingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, end, err := parseStay(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	booking, err := h.bookings.Update(c.UserContext(), userID, id, services.UpdateBookingInput{StartDate: start, EndDate: end})
	if err != nil {
		return err
	}
	return c.JSON(booking)
}

func (h *Handler) DeleteBooking(c *fiber.Ctx) error {
	userID, id, err := userAndID(c)
	if err != nil {
		return err
	}
	if err := h.bookings.Delete(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func userAndID(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, id, nil
}

func parseStay(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(models.DateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(models.DateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("end_date must be YYYY-MM-DD")
	}
	return start, end, nil
}
