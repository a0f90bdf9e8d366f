package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sms_backend/internals/features/academics/model"
)

// CreateEnrollmentWithGrade inserts the enrollment (dated today) and its
// grade in one transaction: if the grade insert fails the enrollment is
// rolled back. initial may be nil for an all-zero grade.
func CreateEnrollmentWithGrade(db *gorm.DB, studentID, subjectID uint, initial *model.GradeModel) (*model.EnrollmentModel, error) {
	var created *model.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := CheckEnrollmentTarget(tx, studentID, subjectID, 0); err != nil {
			return err
		}

		enrollment := model.EnrollmentModel{
			StudentID:      studentID,
			SubjectID:      subjectID,
			EnrollmentDate: model.Today(),
		}
		if err := tx.Omit(clause.Associations).Create(&enrollment).Error; err != nil {
			return conflictOr(err, "non_field_errors", "The fields student, subject must make a unique set.")
		}

		grade := model.GradeModel{EnrollmentID: enrollment.ID}
		if initial != nil {
			grade.ActivityGrade = initial.ActivityGrade
			grade.QuizGrade = initial.QuizGrade
			grade.ExamGrade = initial.ExamGrade
		}
		if err := tx.Create(&grade).Error; err != nil {
			return err
		}

		loaded, err := LoadEnrollment(tx, enrollment.ID)
		if err != nil {
			return err
		}
		created = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateEnrollmentTarget moves an enrollment to another (student, subject)
// pair. apply runs after the row is loaded and may reject the change.
// enrollment_date and the grade are untouched.
func UpdateEnrollmentTarget(db *gorm.DB, id uint, apply func(m *model.EnrollmentModel) error) (*model.EnrollmentModel, error) {
	var updated *model.EnrollmentModel
	err := db.Transaction(func(tx *gorm.DB) error {
		var m model.EnrollmentModel
		if err := tx.First(&m, "id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		enrolledOn := m.EnrollmentDate
		if err := apply(&m); err != nil {
			return err
		}
		m.EnrollmentDate = enrolledOn

		if err := CheckEnrollmentTarget(tx, m.StudentID, m.SubjectID, m.ID); err != nil {
			return err
		}
		if err := tx.Model(&m).Select("student_id", "subject_id").Updates(map[string]any{
			"student_id": m.StudentID,
			"subject_id": m.SubjectID,
		}).Error; err != nil {
			return conflictOr(err, "non_field_errors", "The fields student, subject must make a unique set.")
		}

		loaded, err := LoadEnrollment(tx, m.ID)
		if err != nil {
			return err
		}
		updated = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func LoadEnrollment(db *gorm.DB, id uint) (*model.EnrollmentModel, error) {
	var m model.EnrollmentModel
	if err := db.Preload("Subject").Preload("Grade").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &m, nil
}
