package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	uploads := api.Group("/uploads", middleware.Protected(secret), middleware.HostRequired())
	uploads.Get("/signature", h.GenerateUploadSignature)
}
