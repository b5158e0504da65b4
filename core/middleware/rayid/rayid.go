package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the generated ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns a unique ray id to every request.
// The id is stored in locals under "ray_id" so logger.WithRayID can pick
// it up, and echoed in the response headers for client-side correlation.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		c.Locals("ray_id", id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}
