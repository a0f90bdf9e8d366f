package service

import (
	"gorm.io/gorm"

	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

// The FK constraints cascade too; deleting children explicitly keeps the
// behaviour when SQLite runs without foreign_keys.

func DeleteStudentCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteEnrollmentsWhere(tx, "student_id = ?", id); err != nil {
			return err
		}
		return deleteByID(tx, &model.StudentModel{}, id)
	})
}

func DeleteSubjectCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := deleteEnrollmentsWhere(tx, "subject_id = ?", id); err != nil {
			return err
		}
		return deleteByID(tx, &model.SubjectModel{}, id)
	})
}

func DeleteEnrollmentCascade(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_id = ?", id).Delete(&model.GradeModel{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &model.EnrollmentModel{}, id)
	})
}

// DeleteGrade removes only the grade; the enrollment stays.
func DeleteGrade(db *gorm.DB, id uint) error {
	return deleteByID(db, &model.GradeModel{}, id)
}

func deleteEnrollmentsWhere(tx *gorm.DB, cond string, id uint) error {
	sub := tx.Model(&model.EnrollmentModel{}).Select("id").Where(cond, id)
	if err := tx.Where("enrollment_id IN (?)", sub).Delete(&model.GradeModel{}).Error; err != nil {
		return err
	}
	return tx.Where(cond, id).Delete(&model.EnrollmentModel{}).Error
}

func deleteByID(tx *gorm.DB, m any, id uint) error {
	res := tx.Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NewNotFoundError("")
	}
	return nil
}
