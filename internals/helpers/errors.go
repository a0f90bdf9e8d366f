package helper

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FieldErrors maps a JSON field name to its messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Any() bool { return len(fe) > 0 }

// RequestError is returned by controllers (and transaction callbacks) and
// rendered by ErrorHandler.
type RequestError struct {
	Status  int
	Code    string
	Message string
	Fields  FieldErrors
}

func (e *RequestError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for k, msgs := range e.Fields {
		parts = append(parts, k+": "+strings.Join(msgs, " "))
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func NewValidationError(fields FieldErrors) *RequestError {
	return &RequestError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewFieldValidationError is a shortcut for a single offending field.
func NewFieldValidationError(field, msg string) *RequestError {
	fe := FieldErrors{}
	fe.Add(field, msg)
	return NewValidationError(fe)
}

func NewConflictError(fields FieldErrors) *RequestError {
	return &RequestError{
		Status:  fiber.StatusConflict,
		Code:    "CONFLICT",
		Message: "uniqueness conflict",
		Fields:  fields,
	}
}

func NewFieldConflictError(field, msg string) *RequestError {
	fe := FieldErrors{}
	fe.Add(field, msg)
	return NewConflictError(fe)
}

func NewNotFoundError(message string) *RequestError {
	if message == "" {
		message = "Not found."
	}
	return &RequestError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: message,
	}
}

func NewBadRequestError(message string) *RequestError {
	return &RequestError{
		Status:  fiber.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}
}

// ErrorHandler is the fiber ErrorHandler: every error leaves as the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var re *RequestError
	if errors.As(err, &re) {
		if len(re.Fields) > 0 {
			return JsonFieldError(c, re.Status, re.Code, re.Message, re.Fields)
		}
		return JsonError(c, re.Status, re.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}

	if status, msg, ok := MapDBError(err); ok {
		return JsonError(c, status, msg)
	}

	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "")
}
