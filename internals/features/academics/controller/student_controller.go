package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sms_backend/internals/features/academics/dto"
	"sms_backend/internals/features/academics/model"
	"sms_backend/internals/features/academics/service"
	helper "sms_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

func preloadStudentEnrollments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Enrollments", func(tx *gorm.DB) *gorm.DB { return tx.Order("enrollments.id ASC") }).
		Preload("Enrollments.Subject").
		Preload("Enrollments.Grade")
}

func loadStudent(db *gorm.DB, id uint) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := preloadStudentEnrollments(db).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &m, nil
}

/* =========================================================
   LIST
   GET /api/students?search=&date_of_birth=&page=&per_page=
   ========================================================= */

func (h *StudentController) List(c *fiber.Ctx) error {
	var q dto.ListStudentQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.NewBadRequestError("invalid query parameters")
	}

	tx := withCtx(c, h.DB).Model(&model.StudentModel{})
	if kw, ok := likeKeyword(q.Search); ok {
		tx = tx.Where("(LOWER(students.name) LIKE ? OR LOWER(students.student_id) LIKE ? OR LOWER(students.email) LIKE ?)", kw, kw, kw)
	}
	if q.DateOfBirth != "" {
		d, err := dto.ParseDate(q.DateOfBirth)
		if err != nil {
			return helper.NewFieldValidationError("date_of_birth", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
		}
		tx = tx.Where("students.date_of_birth = ?", d)
	}
	tx = tx.Session(&gorm.Session{})

	page, pagination, err := paginate(c, tx)
	if err != nil {
		return err
	}

	var rows []model.StudentModel
	if err := preloadStudentEnrollments(page).
		Order("students.name ASC").Order("students.id ASC").
		Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromStudentModels(rows), pagination)
}

/* =========================================================
   GET BY ID
   ========================================================= */

func (h *StudentController) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := loadStudent(withCtx(c, h.DB), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", dto.FromStudentModel(*m))
}

/* =========================================================
   CREATE
   ========================================================= */

func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if fe := req.Validate(); fe.Any() {
		return helper.NewValidationError(fe)
	}

	var created *model.StudentModel
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		if err := service.CheckStudentUnique(tx, req.StudentID, req.Email, 0); err != nil {
			return err
		}
		m := req.ToModel()
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return studentConflictOr(err)
		}
		loaded, err := loadStudent(tx, m.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "student created", dto.FromStudentModel(*created))
}

/* =========================================================
   UPDATE (PUT: full replacement)
   ========================================================= */

func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CreateStudentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.ApplyTo)
}

/* =========================================================
   PATCH
   ========================================================= */

func (h *StudentController) Patch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PatchStudentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.Apply)
}

// save loads the row (404 first), validates, applies and re-checks uniqueness
// in a single transaction.
func (h *StudentController) save(c *fiber.Ctx, id uint, validate func() helper.FieldErrors, apply func(*model.StudentModel)) error {
	var updated *model.StudentModel
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		var m model.StudentModel
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}
		if fe := validate(); fe.Any() {
			return helper.NewValidationError(fe)
		}
		apply(&m)
		if err := service.CheckStudentUnique(tx, m.StudentNumber, m.Email, m.ID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return studentConflictOr(err)
		}
		loaded, err := loadStudent(tx, m.ID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "student updated", dto.FromStudentModel(*updated))
}

/* =========================================================
   DELETE (cascades to enrollments and grades)
   ========================================================= */

func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := service.DeleteStudentCascade(withCtx(c, h.DB), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c)
}

func studentConflictOr(err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.NewFieldConflictError("non_field_errors", "student with this student id or email already exists.")
	}
	return err
}
