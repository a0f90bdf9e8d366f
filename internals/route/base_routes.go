package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sms_backend/internals/middlewares"
)

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Student management API is running. See /api/ for resources.")
	})

	app.Get("/health", middlewares.DBMiddleware(db), func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		conn := middlewares.DBFromCtx(c)
		if conn == nil {
			dbStatus = "Database not configured"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		} else if sqlDB, err := conn.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"server_time":    time.Now().UTC().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
		})
	})
}
