package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	RequestTimeout  = 5 * time.Second
)

// RequestIDMiddleware echoes or assigns X-Request-ID, bounds the request
// context and logs the timing.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(HeaderRequestID, id)
		c.Locals("reqid", id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), RequestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			// render now so the logged status is the one sent
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
