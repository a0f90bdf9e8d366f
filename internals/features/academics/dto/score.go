package dto

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

// Score is a numeric(5,2) grade value. It is rendered as a JSON number with
// exactly two decimals and accepts either a number or a numeric string.
type Score float64

var errInvalidScore = errors.New("a valid number is required")

func (s Score) MarshalJSON() ([]byte, error) {
	v := model.RoundScore(float64(s))
	if v == 0 {
		v = 0 // no "-0.00"
	}
	return []byte(strconv.FormatFloat(v, 'f', 2, 64)), nil
}

func (s *Score) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return errInvalidScore
	}
	*s = Score(v)
	return nil
}

// validateScore enforces the numeric(5,2) precision: two decimals, five digits.
func validateScore(fe helper.FieldErrors, field string, s Score) {
	v := float64(s)
	if !model.HasScorePrecision(v) {
		fe.Add(field, helper.MsgDecimals)
		return
	}
	if model.RoundScore(v) > model.MaxScore || model.RoundScore(v) < model.MinScore {
		fe.Add(field, helper.MsgScoreDigits)
	}
}

// ValidateScores checks the optional activity, quiz and exam scores; nil is
// accepted as an absent score.
func ValidateScores(activity, quiz, exam *Score) helper.FieldErrors {
	fe := helper.FieldErrors{}
	for name, s := range map[string]*Score{
		"activity_grade": activity,
		"quiz_grade":     quiz,
		"exam_grade":     exam,
	} {
		if s != nil {
			validateScore(fe, name, *s)
		}
	}
	return fe
}

func scoreOrZero(s *Score) float64 {
	if s == nil {
		return 0
	}
	return float64(*s)
}
