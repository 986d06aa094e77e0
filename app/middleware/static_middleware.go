package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PlugStatic guards static files served below staticPrefix: dot-files stay
// hidden and pages under generatedPrefix are revalidated on every load.
func PlugStatic(staticPrefix, generatedPrefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		if !strings.HasPrefix(path, staticPrefix) || strings.HasPrefix(path, "/api/") {
			return c.Next()
		}

		if strings.HasPrefix(path, "/.well-known/") {
			return c.JSON(fiber.Map{
				"status": "ignored dynamic-static",
			})
		}

		for _, seg := range strings.Split(path, "/") {
			if strings.HasPrefix(seg, ".") {
				return fiber.ErrNotFound
			}
		}

		if strings.HasPrefix(path, generatedPrefix) {
			c.Set(fiber.HeaderCacheControl, "no-cache")
		}

		return c.Next()
	}
}
