package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sms_backend/internals/features/academics/dto"
	"sms_backend/internals/features/academics/model"
	"sms_backend/internals/features/academics/service"
	helper "sms_backend/internals/helpers"
)

const msgGradeTaken = "grade with this enrollment already exists."

type GradeController struct {
	DB *gorm.DB
}

func NewGradeController(db *gorm.DB) *GradeController {
	return &GradeController{DB: db}
}

/* =========================================================
   LIST
   GET /api/grades?search=&subject=&enrollment=
   Ordered by the enrolled student's name.
   ========================================================= */

func (h *GradeController) List(c *fiber.Ctx) error {
	var q dto.ListGradeQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.NewBadRequestError("invalid query parameters")
	}

	tx := withCtx(c, h.DB).Model(&model.GradeModel{}).
		Joins("JOIN enrollments ON enrollments.id = grades.enrollment_id").
		Joins("JOIN students ON students.id = enrollments.student_id").
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id")
	if kw, ok := likeKeyword(q.Search); ok {
		tx = tx.Where("(LOWER(students.name) LIKE ? OR LOWER(subjects.name) LIKE ? OR LOWER(subjects.code) LIKE ?)", kw, kw, kw)
	}
	if q.Subject > 0 {
		tx = tx.Where("enrollments.subject_id = ?", q.Subject)
	}
	if q.Enrollment > 0 {
		tx = tx.Where("grades.enrollment_id = ?", q.Enrollment)
	}
	tx = tx.Session(&gorm.Session{})

	page, pagination, err := paginate(c, tx)
	if err != nil {
		return err
	}

	var rows []model.GradeModel
	if err := page.Order("students.name ASC").Order("grades.id ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromGradeModels(rows), pagination)
}

func (h *GradeController) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var m model.GradeModel
	if err := withCtx(c, h.DB).First(&m, "id = ?", id).Error; err != nil {
		return translateNotFound(err)
	}
	return helper.JsonOK(c, "ok", dto.FromGradeModel(m))
}

/* =========================================================
   CREATE
   Only useful for an enrollment whose grade was deleted;
   total_grade is always computed on save.
   ========================================================= */

func (h *GradeController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if fe := req.Validate(); fe.Any() {
		return helper.NewValidationError(fe)
	}

	m := req.ToModel()
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		if err := service.CheckGradeTarget(tx, m.EnrollmentID, 0); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return gradeConflictOr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "grade created", dto.FromGradeModel(m))
}

// PUT /api/grades/:id
func (h *GradeController) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CreateGradeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.ApplyTo)
}

// PATCH /api/grades/:id
func (h *GradeController) Patch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PatchGradeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.Apply)
}

func (h *GradeController) save(c *fiber.Ctx, id uint, validate func() helper.FieldErrors, apply func(*model.GradeModel)) error {
	var m model.GradeModel
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}
		if fe := validate(); fe.Any() {
			return helper.NewValidationError(fe)
		}
		apply(&m)
		if err := service.CheckGradeTarget(tx, m.EnrollmentID, m.ID); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return gradeConflictOr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "grade updated", dto.FromGradeModel(m))
}

// DELETE /api/grades/:id; the enrollment stays.
func (h *GradeController) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := service.DeleteGrade(withCtx(c, h.DB), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c)
}

func gradeConflictOr(err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.NewFieldConflictError("enrollment", msgGradeTaken)
	}
	return err
}
