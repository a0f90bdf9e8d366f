package model

import (
	"time"

	"gorm.io/datatypes"
)

type StudentModel struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name          string          `gorm:"column:name;type:varchar(255);not null;index"`
	StudentNumber string          `gorm:"column:student_id;type:varchar(50);not null;uniqueIndex:uq_students_student_id"`
	Email         string          `gorm:"column:email;type:varchar(254);not null;uniqueIndex:uq_students_email"`
	DateOfBirth   *datatypes.Date `gorm:"column:date_of_birth"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	// Relations
	Enrollments []EnrollmentModel `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (StudentModel) TableName() string { return "students" }
