package model

import (
	"math"

	"gorm.io/gorm"
)

// Score bounds for numeric(5,2).
const (
	MaxScore = 999.99
	MinScore = -999.99
)

type GradeModel struct {
	ID            uint    `gorm:"column:id;primaryKey;autoIncrement"`
	EnrollmentID  uint    `gorm:"column:enrollment_id;not null;uniqueIndex:uq_grades_enrollment"`
	ActivityGrade float64 `gorm:"column:activity_grade;type:numeric(5,2);not null;default:0"`
	QuizGrade     float64 `gorm:"column:quiz_grade;type:numeric(5,2);not null;default:0"`
	ExamGrade     float64 `gorm:"column:exam_grade;type:numeric(5,2);not null;default:0"`
	TotalGrade    float64 `gorm:"column:total_grade;type:numeric(5,2);not null;default:0"`
}

func (GradeModel) TableName() string { return "grades" }

// BeforeSave runs on every Create and Save, so total_grade can never be
// persisted out of sync with the three inputs.
func (g *GradeModel) BeforeSave(tx *gorm.DB) error {
	g.ActivityGrade = RoundScore(g.ActivityGrade)
	g.QuizGrade = RoundScore(g.QuizGrade)
	g.ExamGrade = RoundScore(g.ExamGrade)
	g.TotalGrade = ComputeTotalGrade(g.ActivityGrade, g.QuizGrade, g.ExamGrade)
	return nil
}

// ComputeTotalGrade averages the three scores in hundredths and rounds to 2 decimals.
func ComputeTotalGrade(activity, quiz, exam float64) float64 {
	sum := ToCents(activity) + ToCents(quiz) + ToCents(exam)
	q, r := sum/3, sum%3
	// r/3 is never exactly one half, so nearest rounding is unambiguous
	switch r {
	case 2:
		q++
	case -2:
		q--
	}
	return float64(q) / 100
}

func ToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func RoundScore(v float64) float64 {
	return float64(ToCents(v)) / 100
}

// HasScorePrecision reports whether v fits numeric(5,2): at most two decimals.
func HasScorePrecision(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
