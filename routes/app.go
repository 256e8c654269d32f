package routes

import (
	"time"

	"github.com/anjiri1684/alx_travel/handlers"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Options struct {
	AppName   string
	JWTSecret string
	// AccessLog turns on the request log line; tests leave it off.
	AccessLog bool
}

// NewApp builds the HTTP application with every API route mounted under /api.
func NewApp(h *handlers.Handler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       opts.AppName,
		CaseSensitive: true,
		StrictRouting: false,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler:  handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			TimeFormat: "2006-01-02 15:04:05",
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	AuthRoutes(api, h, opts.JWTSecret)
	PublicRoutes(api, h, opts.JWTSecret)
	ListingRoutes(api, h, opts.JWTSecret)
	BookingRoutes(api, h, opts.JWTSecret)
	PaymentRoutes(api, h, opts.JWTSecret)
	UploadRoutes(api, h, opts.JWTSecret)

	return app
}
