package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const DBLocalsKey = "db"

// DBMiddleware puts the connection into the request locals.
func DBMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(DBLocalsKey, db)
		return c.Next()
	}
}

// DBFromCtx returns the connection stored by DBMiddleware, or nil.
func DBFromCtx(c *fiber.Ctx) *gorm.DB {
	db, _ := c.Locals(DBLocalsKey).(*gorm.DB)
	return db
}
