package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	booking := api.Group("/bookings", middleware.Protected(secret))
	booking.Get("", h.ListBookings)
	booking.Post("", middleware.GuestRequired(), h.CreateBooking)
	booking.Get("/:id", h.GetBooking)
	booking.Put("/:id", h.UpdateBooking)
	booking.Patch("/:id", h.UpdateBooking)
	booking.Delete("/:id", h.DeleteBooking)
}
