package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/gofiber/fiber/v2"
)

type LocationRequest struct {
	Country string `json:"country" validate:"required,max=100"`
	State   string `json:"state" validate:"max=100"`
	City    string `json:"city" validate:"required,max=100"`
}

func (h *Handler) ListLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := h.db.WithContext(c.UserContext()).Order("country, city").Find(&locations).Error; err != nil {
		return apperrors.NewInternalError("failed to list locations", err)
	}
	return c.JSON(locations)
}

func (h *Handler) GetLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var loc models.Location
	if err := h.first(c, &loc, id, "location"); err != nil {
		return err
	}
	return c.JSON(loc)
}

func (h *Handler) CreateLocation(c *fiber.Ctx) error {
	var req LocationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	loc := models.Location{Country: req.Country, State: req.State, City: req.City}
	if err := h.db.WithContext(c.UserContext()).Create(&loc).Error; err != nil {
		return apperrors.NewInternalError("failed to create location", err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

func (h *Handler) UpdateLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var loc models.Location
	if err := h.first(c, &loc, id, "location"); err != nil {
		return err
	}

	var req LocationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	loc.Country, loc.State, loc.City = req.Country, req.State, req.City
	if err := h.db.WithContext(c.UserContext()).Save(&loc).Error; err != nil {
		return apperrors.NewInternalError("failed to update location", err)
	}
	return c.JSON(loc)
}

func (h *Handler) DeleteLocation(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var loc models.Location
	if err := h.first(c, &loc, id, "location"); err != nil {
		return err
	}

	var listings int64
	if err := h.db.WithContext(c.UserContext()).Model(&models.Listing{}).
		Where("location_id = ?", loc.ID).Count(&listings).Error; err != nil {
		return apperrors.NewInternalError("failed to check location listings", err)
	}
	if listings > 0 {
		return apperrors.NewConflictError("location is still used by listings")
	}
	if err := h.db.WithContext(c.UserContext()).Delete(&loc).Error; err != nil {
		return apperrors.NewInternalError("failed to delete location", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
