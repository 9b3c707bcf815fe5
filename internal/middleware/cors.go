package middleware

import (
	"strings"

	"estates-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig allows the public site and admin area origins.
type CORSConfig struct {
	AllowedSuffix string
	DevPassword   string
}

// CORS allows origins ending with AllowedSuffix, localhost during
// development, and requests carrying the dev-password header. Credentials
// are allowed so the session cookie reaches the admin endpoints.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		allowed := isLocalOrigin(origin) ||
			(cfg.AllowedSuffix != "" && strings.HasSuffix(strings.ToLower(origin), strings.ToLower(cfg.AllowedSuffix))) ||
			(cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword)
		if !allowed {
			return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func isLocalOrigin(origin string) bool {
	return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, dev-password")
	c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
	c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
}
