package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	payments := api.Group("/payments")
	payments.Get("/verify/:tx_ref", h.VerifyPayment)
	payments.Get("", middleware.Protected(secret), h.ListPayments)
}
