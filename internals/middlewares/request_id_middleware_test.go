package middlewares

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sms_backend/internals/helpers"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestRequestIDLogsRenderedStatus(t *testing.T) {
	buf := captureLog(t)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	app.Use(RequestIDMiddleware())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return helper.NewNotFoundError("")
	})
	app.Post("/taken", func(c *fiber.Ctx) error {
		return helper.NewFieldConflictError("code", "subject with this code already exists.")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return helper.JsonOK(c, "ok", nil)
	})

	cases := []struct {
		method string
		path   string
		status int
		logged string
	}{
		{http.MethodGet, "/missing", http.StatusNotFound, "GET /missing status=404"},
		{http.MethodPost, "/taken", http.StatusConflict, "POST /taken status=409"},
		{http.MethodGet, "/ok", http.StatusOK, "GET /ok status=200"},
	}
	for _, tc := range cases {
		buf.Reset()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set(HeaderRequestID, "req-1")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		assert.Contains(t, buf.String(), "[REQ] id=req-1 "+tc.logged, tc.path)
	}
}
