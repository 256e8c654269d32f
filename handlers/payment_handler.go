package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListPayments(c *fiber.Ctx) error {
	guestID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	list, err := h.payments.ListForGuest(c.UserContext(), guestID)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// VerifyPayment is the gateway's return URL, so it is public. Its body is
// always a {status, data} outcome, also on errors.
func (h *Handler) VerifyPayment(c *fiber.Ctx) error {
	outcome, err := h.payments.Verify(c.UserContext(), c.Params("tx_ref"))
	status := fiber.StatusOK
	if err != nil {
		status = apperrors.HTTPStatus(apperrors.TypeOf(err))
	}
	return c.Status(status).JSON(outcome)
}
