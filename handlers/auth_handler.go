package handlers

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/middleware"
	"github.com/anjiri1684/alx_travel/services"
	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	Role        string `json:"role"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type VerifyTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), services.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data":    user,
	})
}

// ObtainToken logs in with a username or email.
func (h *Handler) ObtainToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pair, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

func (h *Handler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	access, err := h.auth.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"access": access})
}

func (h *Handler) VerifyToken(c *fiber.Ctx) error {
	var req VerifyTokenRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.Verify(c.UserContext(), req.Token); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return err
	}

	var req LogoutRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token is required")
	}
	if err := h.auth.Logout(c.UserContext(), userID, req.RefreshToken); err != nil {
		return err
	}

	return c.Status(fiber.StatusResetContent).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}
