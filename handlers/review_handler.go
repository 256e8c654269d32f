package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/gofiber/fiber/v2"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *Handler) ListReviews(c *fiber.Ctx) error {
	listing, err := h.listingFromParam(c)
	if err != nil {
		return err
	}

	var reviews []models.Review
	err = h.db.WithContext(c.UserContext()).Preload("Guest.Role").
		Where("listing_id = ?", listing.ID).
		Order("created_at desc").
		Find(&reviews).Error
	if err != nil {
		return apperrors.NewInternalError("failed to list reviews", err)
	}
	return c.JSON(reviews)
}

// CreateReview is open to guests who stayed, i.e. hold a confirmed booking.
func (h *Handler) CreateReview(c *fiber.Ctx) error {
	guestID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	listing, err := h.listingFromParam(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var stays int64
	err = h.db.WithContext(c.UserContext()).Model(&models.Booking{}).
		Where("guest_id = ? AND listing_id = ? AND status = ?", guestID, listing.ID, models.BookingStatusConfirmed).
		Count(&stays).Error
	if err != nil {
		return apperrors.NewInternalError("failed to check stays", err)
	}
	if stays == 0 {
		return apperrors.NewForbiddenError("only guests with a confirmed booking can review this listing")
	}

	review := models.Review{ListingID: listing.ID, GuestID: guestID, Rating: req.Rating, Comment: req.Comment}
	if err := h.db.WithContext(c.UserContext()).Create(&review).Error; err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
