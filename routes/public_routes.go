package routes

import (
	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/gofiber/fiber/v2"
)

// PublicRoutes mounts roles and locations: readable by anyone, writable
// by any signed-in user.
func PublicRoutes(api fiber.Router, h *handlers.Handler, secret string) {
	protected := middleware.Protected(secret)

	roles := api.Group("/roles")
	roles.Get("", h.ListRoles)
	roles.Get("/:id", h.GetRole)
	roles.Post("", protected, h.CreateRole)
	roles.Put("/:id", protected, h.UpdateRole)
	roles.Patch("/:id", protected, h.UpdateRole)
	roles.Delete("/:id", protected, h.DeleteRole)

	locations := api.Group("/locations")
	locations.Get("", h.ListLocations)
	locations.Get("/:id", h.GetLocation)
	locations.Post("", protected, h.CreateLocation)
	locations.Put("/:id", protected, h.UpdateLocation)
	locations.Patch("/:id", protected, h.UpdateLocation)
	locations.Delete("/:id", protected, h.DeleteLocation)
}
