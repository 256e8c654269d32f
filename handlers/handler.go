package handlers

import (
	"errors"

	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var validate = validator.New()

// UploadConfig holds the Cloudinary account used for signed uploads.
type UploadConfig struct {
	CloudinaryURL string
	Folder        string
}

// Handler serves the HTTP API on top of the booking, payment and auth
// services. Plain resources are read and written through db directly.
type Handler struct {
	db       *gorm.DB
	auth     *services.AuthService
	bookings *services.BookingService
	payments *services.PaymentService
	uploads  UploadConfig
}

func New(db *gorm.DB, auth *services.AuthService, bookings *services.BookingService, payments *services.PaymentService, uploads UploadConfig) *Handler {
	return &Handler{db: db, auth: auth, bookings: bookings, payments: payments, uploads: uploads}
}

// ErrorHandler renders every error returned by a route as
// {"status":"error","code":TYPE,"message":...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	typ := apperrors.ErrorTypeInternal
	message := apperrors.PublicMessage(err)

	var fe *fiber.Error
	var ae *apperrors.AppError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		typ = apperrors.TypeForStatus(fe.Code)
		message = fe.Message
	case errors.As(err, &ae):
		typ = ae.Type
		code = apperrors.HTTPStatus(ae.Type)
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("request failed")
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    typ,
		"message": message,
	})
}

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("cannot parse JSON")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.NewNotFoundError("invalid id")
	}
	return id, nil
}

// first loads one row by id into dst, reporting a missing row as not found.
func (h *Handler) first(c *fiber.Ctx, dst any, id uuid.UUID, what string, preloads ...string) error {
	q := h.db.WithContext(c.UserContext())
	for _, p := range preloads {
		q = q.Preload(p)
	}
	err := q.First(dst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NewNotFoundError(what + " not found")
	}
	if err != nil {
		return apperrors.NewInternalError("failed to load "+what, err)
	}
	return nil
}
