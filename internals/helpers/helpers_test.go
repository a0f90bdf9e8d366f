package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPatchField(t *testing.T) {
	var body struct {
		A PatchField[string] `json:"a"`
		B PatchField[string] `json:"b"`
		C PatchField[uint]   `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": null, "c": 5}`), &body))

	assert.True(t, body.A.IsNull())
	assert.False(t, body.B.Present)
	v, ok := body.C.Get()
	require.True(t, ok)
	assert.EqualValues(t, 5, *v)

	assert.Error(t, json.Unmarshal([]byte(`{"c": "x"}`), &body))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID(" 12 ")
	assert.True(t, ok)
	assert.EqualValues(t, 12, id)

	for _, raw := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}

func TestValidateStruct(t *testing.T) {
	type req struct {
		Name  string `json:"name" validate:"required,max=3"`
		Email string `json:"email" validate:"required,email"`
	}
	fe := ValidateStruct(req{Name: "abcd", Email: "x"})
	assert.Equal(t, []string{"Ensure this field has no more than 3 characters."}, fe["name"])
	assert.Equal(t, []string{"Enter a valid email address."}, fe["email"])

	assert.False(t, ValidateStruct(req{Name: "ab", Email: "a@b.co"}).Any())
}

func TestValidateVarBlank(t *testing.T) {
	fe := FieldErrors{}
	ValidateVar(fe, "name", "", "required,max=3")
	ValidateVar(fe, "code", "abcd", "required,max=3")
	ValidateVar(fe, "ok", "abc", "required,max=3")

	assert.Equal(t, []string{MsgBlank}, fe["name"])
	assert.Equal(t, []string{"Ensure this field has no more than 3 characters."}, fe["code"])
	assert.NotContains(t, fe, "ok")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: students.email (2067)")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
}

func TestMapDBError(t *testing.T) {
	status, _, ok := MapDBError(gorm.ErrDuplicatedKey)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, status)

	status, _, ok = MapDBError(gorm.ErrRecordNotFound)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)

	_, _, ok = MapDBError(errors.New("boom"))
	assert.False(t, ok)
}

func newHelperApp(h fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", h)
	return app
}

func call(t *testing.T, app *fiber.App, target string) (int, ErrorResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"validation", NewFieldValidationError("name", MsgRequired), 400, "VALIDATION_ERROR", "name"},
		{"conflict", NewFieldConflictError("code", "taken"), 409, "CONFLICT", "code"},
		{"not found", NewNotFoundError(""), 404, "NOT_FOUND", ""},
		{"fiber", fiber.ErrMethodNotAllowed, 405, "METHOD_NOT_ALLOWED", ""},
		{"db unique", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), 409, "CONFLICT", ""},
		{"unknown", errors.New("boom"), 500, "INTERNAL_ERROR", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.err
			status, body := call(t, newHelperApp(func(c *fiber.Ctx) error { return err }), "/")
			assert.Equal(t, tc.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.ErrorCode)
			if tc.field != "" {
				assert.Contains(t, body.Errors, tc.field)
			}
		})
	}
}

func TestResolvePaging(t *testing.T) {
	var got Paging
	var requested bool
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got, requested = ResolvePaging(c)
		return c.SendStatus(http.StatusNoContent)
	})
	run := func(target string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	run("/")
	assert.False(t, requested)

	run("/?page=3&per_page=10")
	assert.True(t, requested)
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, got)

	run("/?limit=1000")
	assert.True(t, requested)
	assert.Equal(t, MaxPerPage, got.PerPage)
	assert.Equal(t, 1, got.Page)

	run("/?page=-4")
	assert.Equal(t, DefaultPerPage, got.PerPage)
	assert.Equal(t, 0, got.Offset)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
