package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware writes one access line per request.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency} - ${respHeader:X-Request-ID}\n",
	})
}
