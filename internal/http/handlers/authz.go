package handlers

import (
	"milkrun/internal/domain"
	applog "milkrun/internal/log"
	"milkrun/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AttachUser resolves the sid cookie into a user and stashes it in Locals.
// It never rejects; the Require* guards do that.
func AttachUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// RequireUser rejects unauthenticated requests with 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": errorBody{
				Code: "authorization", Message: "authentication required",
			}})
		}
		return c.Next()
	}
}

// RequireAdmin rejects unauthenticated requests with 401 and non-admins with 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": errorBody{
				Code: "authorization", Message: "authentication required",
			}})
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"user_id": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": errorBody{
				Code: "authorization", Message: "admin role required",
			}})
		}
		return c.Next()
	}
}
