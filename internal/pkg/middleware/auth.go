package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/jwt"
)

const (
	localUserID = "user_id"
	localRole   = "role"
)

// Protected requires a valid Bearer token and stores the caller's identity in
// the request locals.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return unauthorized(c)
		}

		claims, err := jwt.ValidateToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(localUserID, claims.UserID)
		c.Locals(localRole, claims.Role)
		return c.Next()
	}
}

// AdminOnly requires the authenticated caller to carry the admin role. Must
// run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if role, _ := c.Locals(localRole).(string); role != models.ROLE_ADMIN {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin access required",
			})
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id from the request locals.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}
