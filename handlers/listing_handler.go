package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/anjiri1684/alx_travel/policy"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateListingRequest struct {
	Title         string          `json:"title" validate:"required,max=255"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url" validate:"omitempty,url,max=500"`
	LocationID    string          `json:"location_id" validate:"required,uuid"`
}

type UpdateListingRequest struct {
	Title         *string          `json:"title" validate:"omitempty,max=255"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	Description   *string          `json:"description"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url,max=500"`
	LocationID    *string          `json:"location_id" validate:"omitempty,uuid"`
}

func (h *Handler) ListListings(c *fiber.Ctx) error {
	q := h.db.WithContext(c.UserContext()).Preload("Host.Role").Preload("Location")
	if loc := c.Query("location"); loc != "" {
		q = q.Where("location_id = ?", loc)
	}

	var listings []models.Listing
	if err := q.Order("created_at desc").Find(&listings).Error; err != nil {
		return apperrors.NewInternalError("failed to list listings", err)
	}
	return c.JSON(listings)
}

func (h *Handler) GetListing(c *fiber.Ctx) error {
	listing, err := h.listingFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(listing)
}

func (h *Handler) CreateListing(c *fiber.Ctx) error {
	hostID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req CreateListingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !req.PricePerNight.IsPositive() {
		return apperrors.NewValidationError("price_per_night must be greater than zero")
	}
	locationID, err := h.locationExists(c, req.LocationID)
	if err != nil {
		return err
	}

	listing := models.Listing{
		Title:         req.Title,
		PricePerNight: req.PricePerNight.Round(2),
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		HostID:        hostID,
		LocationID:    locationID,
	}
	if err := h.db.WithContext(c.UserContext()).Create(&listing).Error; err != nil {
		return apperrors.NewInternalError("failed to create listing", err)
	}

	if err := h.first(c, &listing, listing.ID, "listing", "Host.Role", "Location"); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *Handler) UpdateListing(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	listing, err := h.listingFromParam(c)
	if err != nil {
		return err
	}
	if err := policy.Listing(userID, listing, policy.Write); err != nil {
		return err
	}

	var req UpdateListingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.PricePerNight != nil {
		if !req.PricePerNight.IsPositive() {
			return apperrors.NewValidationError("price_per_night must be greater than zero")
		}
		updates["price_per_night"] = req.PricePerNight.Round(2)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.LocationID != nil {
		locationID, err := h.locationExists(c, *req.LocationID)
		if err != nil {
			return err
		}
		updates["location_id"] = locationID
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.UserContext()).Model(&models.Listing{}).
			Where("id = ?", listing.ID).Updates(updates).Error; err != nil {
			return apperrors.NewInternalError("failed to update listing", err)
		}
	}

	var updated models.Listing
	if err := h.first(c, &updated, listing.ID, "listing", "Host.Role", "Location"); err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteListing removes the listing together with its reviews, bookings and
// their payments. Listings with a confirmed, cancelled or paid booking stay.
func (h *Handler) DeleteListing(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}
	listing, err := h.listingFromParam(c)
	if err != nil {
		return err
	}
	if err := policy.Listing(userID, listing, policy.Write); err != nil {
		return err
	}
	if err := services.Deletable(h.db.WithContext(c.UserContext()), "listing_id = ?", listing.ID); err != nil {
		return err
	}

	err = h.db.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		bookings := tx.Model(&models.Booking{}).Select("id").Where("listing_id = ?", listing.ID)
		if err := tx.Where("booking_id IN (?)", bookings).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listing.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Listing{}, "id = ?", listing.ID).Error
	})
	if err != nil {
		return apperrors.NewInternalError("failed to delete listing", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listingFromParam(c *fiber.Ctx) (*models.Listing, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	var listing models.Listing
	if err := h.first(c, &listing, id, "listing", "Host.Role", "Location"); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (h *Handler) locationExists(c *fiber.Ctx, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("location_id is not a valid id")
	}
	var loc models.Location
	if err := h.first(c, &loc, id, "location"); err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return uuid.Nil, apperrors.NewValidationError("location_id does not exist")
		}
		return uuid.Nil, err
	}
	return id, nil
}
