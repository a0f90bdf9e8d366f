package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sms_backend/internals/features/academics/dto"
	"sms_backend/internals/features/academics/model"
	"sms_backend/internals/features/academics/service"
	helper "sms_backend/internals/helpers"
)

type EnrollmentController struct {
	DB *gorm.DB
}

func NewEnrollmentController(db *gorm.DB) *EnrollmentController {
	return &EnrollmentController{DB: db}
}

/* =========================================================
   LIST
   GET /api/enrollments?search=&student=&subject=&enrollment_date=
   Ordered by student name.
   ========================================================= */

func (h *EnrollmentController) List(c *fiber.Ctx) error {
	var q dto.ListEnrollmentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.NewBadRequestError("invalid query parameters")
	}

	tx := withCtx(c, h.DB).Model(&model.EnrollmentModel{}).
		Joins("JOIN students ON students.id = enrollments.student_id").
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id")
	if kw, ok := likeKeyword(q.Search); ok {
		tx = tx.Where("(LOWER(students.name) LIKE ? OR LOWER(subjects.name) LIKE ? OR LOWER(subjects.code) LIKE ?)", kw, kw, kw)
	}
	if q.Student > 0 {
		tx = tx.Where("enrollments.student_id = ?", q.Student)
	}
	if q.Subject > 0 {
		tx = tx.Where("enrollments.subject_id = ?", q.Subject)
	}
	if q.EnrollmentDate != "" {
		d, err := dto.ParseDate(q.EnrollmentDate)
		if err != nil {
			return helper.NewFieldValidationError("enrollment_date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		tx = tx.Where("enrollments.enrollment_date = ?", d)
	}
	tx = tx.Session(&gorm.Session{})

	page, pagination, err := paginate(c, tx)
	if err != nil {
		return err
	}

	var rows []model.EnrollmentModel
	if err := page.Preload("Subject").Preload("Grade").
		Order("students.name ASC").Order("enrollments.id ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromEnrollmentModels(rows), pagination)
}

func (h *EnrollmentController) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := service.LoadEnrollment(withCtx(c, h.DB), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromEnrollmentModel(*m))
}

/* =========================================================
   CREATE: enrollment + zero grade, atomically
   ========================================================= */

func (h *EnrollmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateEnrollmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); fe.Any() {
		return helper.NewValidationError(fe)
	}

	m, err := service.CreateEnrollmentWithGrade(withCtx(c, h.DB), uint(req.Student), uint(req.Subject), nil)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "enrollment created", dto.FromEnrollmentModel(*m))
}

// PUT /api/enrollments/:id
func (h *EnrollmentController) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CreateEnrollmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	m, err := service.UpdateEnrollmentTarget(withCtx(c, h.DB), id, func(m *model.EnrollmentModel) error {
		if fe := req.Validate(); fe.Any() {
			return helper.NewValidationError(fe)
		}
		m.StudentID = uint(req.Student)
		m.SubjectID = uint(req.Subject)
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "enrollment updated", dto.FromEnrollmentModel(*m))
}

// PATCH /api/enrollments/:id
func (h *EnrollmentController) Patch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PatchEnrollmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	m, err := service.UpdateEnrollmentTarget(withCtx(c, h.DB), id, func(m *model.EnrollmentModel) error {
		if fe := req.Validate(); fe.Any() {
			return helper.NewValidationError(fe)
		}
		req.Apply(m)
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "enrollment updated", dto.FromEnrollmentModel(*m))
}

// DELETE /api/enrollments/:id (grade goes with it)
func (h *EnrollmentController) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := service.DeleteEnrollmentCascade(withCtx(c, h.DB), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c)
}
