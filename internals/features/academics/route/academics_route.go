package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sms_backend/internals/features/academics/controller"
)

// crud is the shape every academics controller exposes.
type crud interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Patch(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

func mount(api fiber.Router, prefix string, ctrl crud) {
	g := api.Group(prefix)
	g.Get("/", ctrl.List)
	g.Post("/", ctrl.Create)
	g.Get("/:id", ctrl.Get)
	g.Put("/:id", ctrl.Update)
	g.Patch("/:id", ctrl.Patch)
	g.Delete("/:id", ctrl.Delete)
}

// AcademicsRoutes registers /students, /subjects, /enrollments and /grades
// under api (mounted at /api).
func AcademicsRoutes(api fiber.Router, db *gorm.DB) {
	mount(api, "/students", controller.NewStudentController(db))
	mount(api, "/subjects", controller.NewSubjectController(db))
	mount(api, "/enrollments", controller.NewEnrollmentController(db))
	mount(api, "/grades", controller.NewGradeController(db))
}

// Resources lists the collection names served under /api.
var Resources = []string{"students", "subjects", "enrollments", "grades"}
