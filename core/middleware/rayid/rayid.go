package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id on the response, and is honoured on the request.
	Header = "X-Ray-ID"
	// LocalsKey is where handlers find the ray id.
	LocalsKey = "ray_id"
)

// New returns a middleware that tags every request with a ray id.
// A well-formed incoming X-Ray-ID is reused; anything else gets a fresh UUID.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
