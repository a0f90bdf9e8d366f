package helper

import (
	"encoding/json"
	"strconv"
	"strings"
)

/* =========================================================
   PATCH FIELD: tri-state (absent | null | value)
   ========================================================= */

type PatchField[T any] struct {
	Present bool
	Value   *T
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Present = true
	if string(b) == "null" {
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func (p PatchField[T]) Get() (*T, bool) { return p.Value, p.Present }

// IsNull reports an explicit JSON null.
func (p PatchField[T]) IsNull() bool { return p.Present && p.Value == nil }

// ParseID parses a positive integer path parameter.
func ParseID(raw string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}
