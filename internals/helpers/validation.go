package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator; field names are reported by their json tag.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the struct tags and converts failures to field messages.
func ValidateStruct(s any) FieldErrors {
	fe := FieldErrors{}
	err := Validator().Struct(s)
	if err == nil {
		return fe
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fe.Add("non_field_errors", "Invalid input.")
		return fe
	}
	for _, fieldErr := range ve {
		fe.Add(fieldErr.Field(), messageFor(fieldErr.Tag(), fieldErr.Param()))
	}
	return fe
}

// ValidateVar checks a single value (used for tri-state PATCH fields) and records
// the message under field.
func ValidateVar(fe FieldErrors, field string, value any, tag string) {
	err := Validator().Var(value, tag)
	if err == nil {
		return
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fe.Add(field, "Invalid input.")
		return
	}
	for _, fieldErr := range ve {
		// the field was sent, so a failed "required" means an empty value
		if fieldErr.Tag() == "required" {
			fe.Add(field, MsgBlank)
			continue
		}
		fe.Add(field, messageFor(fieldErr.Tag(), fieldErr.Param()))
	}
}

func messageFor(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", param)
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", param)
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	case "gt", "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", param)
	case "lt", "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", param)
	default:
		return "Invalid value (" + tag + ")."
	}
}

const (
	MsgNotNull     = "This field may not be null."
	MsgBlank       = "This field may not be blank."
	MsgRequired    = "This field is required."
	MsgDecimals    = "Ensure that there are no more than 2 decimal places."
	MsgScoreDigits = "Ensure that there are no more than 5 digits in total."
)

// MsgDoesNotExist mirrors the primary-key lookup failure message.
func MsgDoesNotExist(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
