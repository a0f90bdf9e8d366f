// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "sms_backend/internals/helpers"
	"sms_backend/internals/middlewares"
	routeDetails "sms_backend/internals/route/details"
)

var startTime = time.Now()

// NewApp builds the fiber app with the JSON codec, error envelope and
// global middleware chain, then registers every route.
func NewApp(db *gorm.DB, opts middlewares.Options) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, opts)
	SetupRoutes(app, db)
	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	log.Println("[INFO] Mounting Academics routes...")
	api := app.Group("/api")
	routeDetails.AcademicsRoutes(api, db)
}
