// Package rayid assigns every request a ray id for log correlation.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header the ray id is read from and echoed back on.
const HeaderName = "X-Ray-Id"

// New returns a middleware that propagates an incoming ray id or mints a
// fresh one, stores it in locals for logger.WithRayID, and echoes it on the
// response.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
