package model

import (
	"time"

	"gorm.io/datatypes"
)

// EnrollmentModel links one student to one subject; the pair is unique.
// EnrollmentDate is written once at creation.
type EnrollmentModel struct {
	ID             uint           `gorm:"column:id;primaryKey;autoIncrement"`
	StudentID      uint           `gorm:"column:student_id;not null;uniqueIndex:uq_enrollments_student_subject,priority:1"`
	SubjectID      uint           `gorm:"column:subject_id;not null;index;uniqueIndex:uq_enrollments_student_subject,priority:2"`
	EnrollmentDate datatypes.Date `gorm:"column:enrollment_date;not null"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`

	// Relations
	Subject *SubjectModel `gorm:"foreignKey:SubjectID"`
	Grade   *GradeModel   `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

// Today returns the current UTC calendar date as stored in enrollment_date.
func Today() datatypes.Date {
	return DateOf(time.Now())
}

func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.UTC().Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
