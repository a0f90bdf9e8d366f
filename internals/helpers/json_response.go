// file: internals/helpers/json_response.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Error helpers (standard shape)
=================================*/

type ErrorResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	ErrorCode string              `json:"error_code,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

func statusToErrorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusUnprocessableEntity:
		return "VALIDATION_ERROR"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusTooManyRequests:
		return "TOO_MANY_REQUESTS"
	default:
		if status >= 500 {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// JsonError: generic error (not validation)
func JsonError(c *fiber.Ctx, status int, message string) error {
	if status == 0 {
		status = fiber.StatusInternalServerError
	}
	if strings.TrimSpace(message) == "" {
		message = fiber.ErrInternalServerError.Message
		if status < 500 {
			message = "request failed"
		}
	}

	resp := ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: statusToErrorCode(status),
	}
	return c.Status(status).JSON(resp)
}

// JsonFieldError: error carrying field-level messages.
func JsonFieldError(c *fiber.Ctx, status int, code, message string, fieldErrors map[string][]string) error {
	if code == "" {
		code = statusToErrorCode(status)
	}
	resp := ErrorResponse{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Errors:    fieldErrors,
	}
	return c.Status(status).JSON(resp)
}

/* ===============================
   JSON responses (standard success)
=================================*/

// JsonList: list, with pagination only when the caller asked for a page
func JsonList(c *fiber.Ctx, message string, data any, pagination *Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	body := fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
	if pagination != nil {
		p := *pagination
		enrichPaginationWithCount(&p, data)
		body["pagination"] = p
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// JsonOK: generic success (GET detail, etc)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ok"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonCreated: create success (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "created"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonUpdated: update success (PATCH/PUT)
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "updated"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// JsonDeleted: delete success, no body
func JsonDeleted(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
