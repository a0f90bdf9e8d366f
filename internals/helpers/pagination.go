// file: internals/helpers/pagination.go
package helper

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 200
)

type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Count      int   `json:"count"` // items in this page
}

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= and ?per_page= (alias ?limit=). requested is false
// when neither is present, in which case the caller returns the whole list.
func ResolvePaging(c *fiber.Ctx) (p Paging, requested bool) {
	pageStr := strings.TrimSpace(c.Query("page"))
	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit"))
	}
	if pageStr == "" && perPageStr == "" {
		return Paging{}, false
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = DefaultPage
	}
	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}, true
}

func BuildPaginationFromPage(total int64, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = DefaultPage
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage)) // ceil
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

func lenOf(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}

func enrichPaginationWithCount(p *Pagination, data any) {
	if p.Count == 0 {
		p.Count = lenOf(data)
	}
}
