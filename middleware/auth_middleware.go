package middleware

import (
	"github.com/anjiri1684/alx_travel/apperrors"
	"github.com/anjiri1684/alx_travel/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Protected accepts only valid access tokens signed with secret.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     []byte(secret),
		SuccessHandler: accessOnly,
		ErrorHandler:   jwtError,
	})
}

// accessOnly rejects refresh tokens presented as bearer tokens.
func accessOnly(c *fiber.Ctx) error {
	claims, ok := userClaims(c)
	if !ok || claims["token_type"] != "access" {
		return apperrors.NewUnauthorizedError("token has wrong type")
	}
	return c.Next()
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return apperrors.NewUnauthorizedError("authentication credentials were not provided")
	}
	return apperrors.NewUnauthorizedError("token is invalid or expired")
}

func userClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// CurrentUserID returns the id of the authenticated user.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := userClaims(c)
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorizedError("authentication credentials were not provided")
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewUnauthorizedError("token carries no valid user id")
	}
	return id, nil
}

func CurrentRole(c *fiber.Ctx) string {
	claims, ok := userClaims(c)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

func HostRequired() fiber.Handler {
	return requireRole(models.RoleHost, "only hosts can perform this action")
}

func GuestRequired() fiber.Handler {
	return requireRole(models.RoleGuest, "only guests can perform this action")
}

func requireRole(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != role {
			return apperrors.NewForbiddenError(message)
		}
		return c.Next()
	}
}
