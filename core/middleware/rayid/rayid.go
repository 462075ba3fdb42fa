// Package rayid assigns a unique ray id to every request for log
// correlation. The id is stored in the request locals and echoed in the
// X-Ray-ID response header.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New creates the ray id middleware.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Ray-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set("X-Ray-ID", rid)
		return c.Next()
	}
}
