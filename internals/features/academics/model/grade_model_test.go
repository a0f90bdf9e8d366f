package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalGrade(t *testing.T) {
	cases := []struct {
		name                 string
		activity, quiz, exam float64
		want                 float64
	}{
		{"zeros", 0, 0, 0, 0},
		{"exact", 90, 80, 70, 80},
		{"rounds down", 10, 10, 10.01, 10},
		{"rounds up", 0, 0, 0.02, 0.01},
		{"two decimals", 85.5, 90.25, 77, 84.25},
		{"thirds round up", 100, 100, 99.99, 100},
		{"thirds round down", 100, 99.99, 99.99, 99.99},
		{"negative", -10, 0, 0, -3.33},
		{"negative rounds away", -0.02, 0, 0, -0.01},
		{"max", 999.99, 999.99, 999.99, 999.99},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ComputeTotalGrade(tc.activity, tc.quiz, tc.exam), 1e-9)
		})
	}
}

func TestBeforeSaveIgnoresClientTotal(t *testing.T) {
	g := GradeModel{ActivityGrade: 90, QuizGrade: 80, ExamGrade: 70, TotalGrade: 5}
	assert.NoError(t, g.BeforeSave(nil))
	assert.InDelta(t, 80, g.TotalGrade, 1e-9)
}

func TestScorePrecision(t *testing.T) {
	assert.True(t, HasScorePrecision(85.5))
	assert.True(t, HasScorePrecision(0.07))
	assert.True(t, HasScorePrecision(-999.99))
	assert.False(t, HasScorePrecision(1.234))
	assert.False(t, HasScorePrecision(0.001))

	assert.EqualValues(t, 1001, ToCents(10.01))
	assert.InDelta(t, 0.29, RoundScore(0.285000001), 1e-9)
}

func TestDateOfTruncatesToUTCDay(t *testing.T) {
	d := Today()
	assert.Equal(t, 0, time.Time(d).Hour())
	assert.Equal(t, "UTC", time.Time(d).Location().String())
}
