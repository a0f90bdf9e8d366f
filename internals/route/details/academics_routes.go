package details

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoutes "sms_backend/internals/features/academics/route"
	helper "sms_backend/internals/helpers"
)

// AcademicsRoutes mounts the student records API plus a root index at /api/.
func AcademicsRoutes(api fiber.Router, db *gorm.DB) {
	api.Get("/", func(c *fiber.Ctx) error {
		base := strings.TrimRight(c.BaseURL(), "/") + "/api/"
		links := make(map[string]string, len(academicsRoutes.Resources))
		for _, r := range academicsRoutes.Resources {
			links[r] = base + r + "/"
		}
		return helper.JsonOK(c, "ok", links)
	})

	academicsRoutes.AcademicsRoutes(api, db)
}
