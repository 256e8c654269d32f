package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/token", h.ObtainToken)
	auth.Post("/token/refresh", h.RefreshToken)
	auth.Post("/token/verify", h.VerifyToken)
	auth.Post("/logout", middleware.Protected(secret), h.Logout)

	users := api.Group("/users", middleware.Protected(secret))
	users.Get("", h.ListUsers)
	users.Get("/:id", h.GetUser)
	users.Put("/:id", h.UpdateUser)
	users.Patch("/:id", h.UpdateUser)
	users.Delete("/:id", h.DeleteUser)
}
