package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/gofiber/fiber/v2"
)

type RoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *Handler) ListRoles(c *fiber.Ctx) error {
	var roles []models.Role
	if err := h.db.WithContext(c.UserContext()).Order("name").Find(&roles).Error; err != nil {
		return apperrors.NewInternalError("failed to list roles", err)
	}
	return c.JSON(roles)
}

func (h *Handler) GetRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var role models.Role
	if err := h.first(c, &role, id, "role"); err != nil {
		return err
	}
	return c.JSON(role)
}

func (h *Handler) CreateRole(c *fiber.Ctx) error {
	req, err := parseRole(c)
	if err != nil {
		return err
	}
	if err := h.roleNameFree(c, req.Name, nil); err != nil {
		return err
	}

	role := models.Role{Name: req.Name, Description: req.Description}
	if err := h.db.WithContext(c.UserContext()).Create(&role).Error; err != nil {
		return apperrors.NewInternalError("failed to create role", err)
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (h *Handler) UpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var role models.Role
	if err := h.first(c, &role, id, "role"); err != nil {
		return err
	}

	req, err := parseRole(c)
	if err != nil {
		return err
	}
	if err := h.roleNameFree(c, req.Name, &role); err != nil {
		return err
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := h.db.WithContext(c.UserContext()).Save(&role).Error; err != nil {
		return apperrors.NewInternalError("failed to update role", err)
	}
	return c.JSON(role)
}

func (h *Handler) DeleteRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var role models.Role
	if err := h.first(c, &role, id, "role"); err != nil {
		return err
	}

	var users int64
	if err := h.db.WithContext(c.UserContext()).Model(&models.User{}).
		Where("role_id = ?", role.ID).Count(&users).Error; err != nil {
		return apperrors.NewInternalError("failed to check role users", err)
	}
	if users > 0 {
		return apperrors.NewConflictError("role is still assigned to users")
	}
	if err := h.db.WithContext(c.UserContext()).Delete(&role).Error; err != nil {
		return apperrors.NewInternalError("failed to delete role", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseRole(c *fiber.Ctx) (*RoleRequest, error) {
	var req RoleRequest
	if err := parseBody(c, &req); err != nil {
		return nil, err
	}
	name, ok := models.NormalizeRoleName(req.Name)
	if !ok {
		return nil, apperrors.NewValidationError("role name must be HOST or GUEST")
	}
	req.Name = name
	return &req, nil
}

func (h *Handler) roleNameFree(c *fiber.Ctx, name string, self *models.Role) error {
	q := h.db.WithContext(c.UserContext()).Model(&models.Role{}).Where("name = ?", name)
	if self != nil {
		q = q.Where("id <> ?", self.ID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return apperrors.NewInternalError("failed to check role name", err)
	}
	if n > 0 {
		return apperrors.NewConflictError("role " + name + " already exists")
	}
	return nil
}
