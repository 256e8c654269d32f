package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name" validate:"omitempty,max=150"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
}

// Users can only ever see and change their own account.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	me, err := h.currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON([]models.User{*me})
}

func (h *Handler) GetUser(c *fiber.Ctx) error {
	me, err := h.selfFromParam(c)
	if err != nil {
		return err
	}
	return c.JSON(me)
}

func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	me, err := h.selfFromParam(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Email != nil && *req.Email != me.Email {
		var taken int64
		if err := h.db.WithContext(c.UserContext()).Model(&models.User{}).
			Where("email = ? AND id <> ?", *req.Email, me.ID).Count(&taken).Error; err != nil {
			return apperrors.NewInternalError("failed to check email", err)
		}
		if taken > 0 {
			return apperrors.NewConflictError("a user with this email already exists")
		}
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.UserContext()).Model(me).Updates(updates).Error; err != nil {
			return apperrors.NewInternalError("failed to update user", err)
		}
	}
	return c.JSON(me)
}

func (h *Handler) DeleteUser(c *fiber.Ctx) error {
	me, err := h.selfFromParam(c)
	if err != nil {
		return err
	}
	if err := h.db.WithContext(c.UserContext()).Delete(me).Error; err != nil {
		return apperrors.NewConflictError("account still has listings or bookings")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) currentUser(c *fiber.Ctx) (*models.User, error) {
	id, err := middleware.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := h.first(c, &user, id, "user", "Role"); err != nil {
		return nil, err
	}
	return &user, nil
}

// selfFromParam resolves :id, hiding other accounts as not found.
func (h *Handler) selfFromParam(c *fiber.Ctx) (*models.User, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, err
	}
	me, err := middleware.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	if id != me || id == uuid.Nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return h.currentUser(c)
}
