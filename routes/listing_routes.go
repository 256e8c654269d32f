package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

func ListingRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	protected := middleware.Protected(secret)

	listings := api.Group("/listings")
	listings.Get("", h.ListListings)
	listings.Get("/:id", h.GetListing)
	listings.Post("", protected, middleware.HostRequired(), h.CreateListing)
	listings.Put("/:id", protected, h.UpdateListing)
	listings.Patch("/:id", protected, h.UpdateListing)
	listings.Delete("/:id", protected, h.DeleteListing)

	listings.Get("/:id/reviews", h.ListReviews)
	listings.Post("/:id/reviews", protected, middleware.GuestRequired(), h.CreateReview)
}
