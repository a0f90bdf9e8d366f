package dto

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"sms_backend/internals/features/academics/model"
)

const DateLayout = "2006-01-02"

func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, err
	}
	return model.DateOf(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).UTC().Format(DateLayout)
}

func formatDatePtr(d *datatypes.Date) *string {
	if d == nil || time.Time(*d).IsZero() {
		return nil
	}
	s := FormatDate(*d)
	return &s
}
