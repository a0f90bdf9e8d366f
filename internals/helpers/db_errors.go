package helper

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func sqlState(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation works with gorm's translated errors, pgx, lib/pq and SQLite messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || sqlState(err) == pgUniqueViolation {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || sqlState(err) == pgForeignKeyViolation {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// MapDBError turns constraint violations into API statuses. ok is false for
// anything that is not a known constraint error.
func MapDBError(err error) (status int, msg string, ok bool) {
	switch {
	case IsUniqueViolation(err):
		return http.StatusConflict, "duplicate record (unique violation)", true
	case IsForeignKeyViolation(err):
		return http.StatusBadRequest, "referenced record does not exist", true
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Not found.", true
	}
	return 0, "", false
}
