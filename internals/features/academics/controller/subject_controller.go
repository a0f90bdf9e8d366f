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

type SubjectController struct {
	DB *gorm.DB
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{DB: db}
}

// GET /api/subjects?search=
func (h *SubjectController) List(c *fiber.Ctx) error {
	var q dto.ListSubjectQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.NewBadRequestError("invalid query parameters")
	}

	tx := withCtx(c, h.DB).Model(&model.SubjectModel{})
	if kw, ok := likeKeyword(q.Search); ok {
		tx = tx.Where("(LOWER(subjects.name) LIKE ? OR LOWER(subjects.code) LIKE ?)", kw, kw)
	}
	tx = tx.Session(&gorm.Session{})

	page, pagination, err := paginate(c, tx)
	if err != nil {
		return err
	}

	var rows []model.SubjectModel
	if err := page.Order("subjects.name ASC").Order("subjects.id ASC").Find(&rows).Error; err != nil {
		return err
	}
	return helper.JsonList(c, "ok", dto.FromSubjectModels(rows), pagination)
}

func (h *SubjectController) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var m model.SubjectModel
	if err := withCtx(c, h.DB).First(&m, "id = ?", id).Error; err != nil {
		return translateNotFound(err)
	}
	return helper.JsonOK(c, "ok", dto.FromSubjectModel(m))
}

func (h *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if fe := req.Validate(); fe.Any() {
		return helper.NewValidationError(fe)
	}

	m := req.ToModel()
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		if err := service.CheckSubjectUnique(tx, m.Code, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&m).Error; err != nil {
			return subjectConflictOr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "subject created", dto.FromSubjectModel(m))
}

// PUT /api/subjects/:id
func (h *SubjectController) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.CreateSubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.ApplyTo)
}

// PATCH /api/subjects/:id
func (h *SubjectController) Patch(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.PatchSubjectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Normalize()

	return h.save(c, id, func() helper.FieldErrors { return req.Validate() }, req.Apply)
}

func (h *SubjectController) save(c *fiber.Ctx, id uint, validate func() helper.FieldErrors, apply func(*model.SubjectModel)) error {
	var m model.SubjectModel
	err := withCtx(c, h.DB).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return translateNotFound(err)
		}
		if fe := validate(); fe.Any() {
			return helper.NewValidationError(fe)
		}
		apply(&m)
		if err := service.CheckSubjectUnique(tx, m.Code, m.ID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&m).Error; err != nil {
			return subjectConflictOr(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "subject updated", dto.FromSubjectModel(m))
}

// DELETE /api/subjects/:id (cascades to enrollments and grades)
func (h *SubjectController) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := service.DeleteSubjectCascade(withCtx(c, h.DB), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c)
}

func subjectConflictOr(err error) error {
	if helper.IsUniqueViolation(err) {
		return helper.NewFieldConflictError("code", "subject with this code already exists.")
	}
	return err
}
