package model

import "time"

type SubjectModel struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(255);not null;index"`
	Code      string    `gorm:"column:code;type:varchar(20);not null;uniqueIndex:uq_subjects_code"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Relations
	Enrollments []EnrollmentModel `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

func (SubjectModel) TableName() string { return "subjects" }
