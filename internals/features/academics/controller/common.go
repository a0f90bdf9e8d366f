package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "sms_backend/internals/helpers"
)

func pathID(c *fiber.Ctx) (uint, error) {
	id, ok := helper.ParseID(c.Params("id"))
	if !ok {
		return 0, helper.NewNotFoundError("")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		log.Printf("[WARN] %s %s: body: %v", c.Method(), c.OriginalURL(), err)
		return helper.NewBadRequestError("invalid request body")
	}
	return nil
}

// likeKeyword builds a case-insensitive LIKE pattern; ok is false for an empty search.
func likeKeyword(raw string) (string, bool) {
	kw := strings.ToLower(strings.TrimSpace(raw))
	if kw == "" {
		return "", false
	}
	return "%" + kw + "%", true
}

// paginate applies ?page/?per_page when given and reports the pagination
// block to return (nil when the whole list is requested).
func paginate(c *fiber.Ctx, q *gorm.DB) (*gorm.DB, *helper.Pagination, error) {
	paging, requested := helper.ResolvePaging(c)
	if !requested {
		return q, nil, nil
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, err
	}
	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return q.Offset(paging.Offset).Limit(paging.Limit), &p, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NewNotFoundError("")
	}
	return err
}

// withCtx binds queries to the request context (bounded by the request-id middleware).
func withCtx(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	return db.WithContext(c.UserContext())
}
