package dto

import (
	"errors"
	"strconv"
	"strings"
)

// RefID is a primary-key reference in a request body. It accepts a JSON
// integer or a string holding one.
type RefID uint

var errInvalidRefID = errors.New("incorrect type, expected pk value")

func (r *RefID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unq)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return errInvalidRefID
	}
	*r = RefID(n)
	return nil
}
