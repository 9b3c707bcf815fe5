package middleware

import (
	"estates-backend/internal/constants"
	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth rejects requests without a session user with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(userLocal) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// AuthorizePermission checks the session user's role against constants.PermissionRoles.
func AuthorizePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		role := roleOf(user)
		if role == "" {
			return response.Error(c, "Authorization error", fiber.StatusInternalServerError, nil)
		}
		if _, ok := constants.PermissionRoles[permission]; !ok {
			return response.Error(c, "Permission configuration error", fiber.StatusInternalServerError, nil)
		}
		if !constants.AllowedRole(permission, role) {
			return response.Error(c, "User is Forbidden from performing this action", fiber.StatusForbidden, nil)
		}
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

func roleOf(user interface{}) string {
	m, ok := user.(map[string]interface{})
	if !ok {
		return ""
	}
	r, _ := m["role"].(string)
	return r
}
