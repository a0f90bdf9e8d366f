package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"sms_backend/internals/middlewares/logger"
)

type Options struct {
	CORSOrigins  []string
	RateLimitMax int
	// AccessLog toggles the per-request log line; tests switch it off.
	AccessLog bool
}

// SetupMiddlewares installs the global chain in order: recovery, request id,
// access log, CORS, rate limit, compression, etag.
func SetupMiddlewares(app *fiber.App, opts Options) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestIDMiddleware())
	if opts.AccessLog {
		app.Use(logger.LoggerMiddleware())
	}
	app.Use(CorsMiddleware(opts.CORSOrigins))
	app.Use(GlobalRateLimiter(opts.RateLimitMax))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
