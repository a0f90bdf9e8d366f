package service

import (
	"errors"

	"gorm.io/gorm"

	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

// Pre-checks run inside the caller's transaction so the reported field is
// precise; the unique indexes still catch races (see helper.IsUniqueViolation).

func CheckStudentUnique(tx *gorm.DB, studentNumber, email string, excludeID uint) error {
	fe := helper.FieldErrors{}

	var cnt int64
	if err := tx.Model(&model.StudentModel{}).
		Where("student_id = ? AND id <> ?", studentNumber, excludeID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		fe.Add("student_id", "student with this student id already exists.")
	}

	cnt = 0
	if err := tx.Model(&model.StudentModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		fe.Add("email", "student with this email already exists.")
	}

	if fe.Any() {
		return helper.NewConflictError(fe)
	}
	return nil
}

func CheckSubjectUnique(tx *gorm.DB, code string, excludeID uint) error {
	var cnt int64
	if err := tx.Model(&model.SubjectModel{}).
		Where("code = ? AND id <> ?", code, excludeID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return helper.NewFieldConflictError("code", "subject with this code already exists.")
	}
	return nil
}

// CheckEnrollmentTarget verifies both references resolve (400) and that the
// pair is not taken by another enrollment (409).
func CheckEnrollmentTarget(tx *gorm.DB, studentID, subjectID, excludeID uint) error {
	fe := helper.FieldErrors{}
	if ok, err := exists(tx, &model.StudentModel{}, studentID); err != nil {
		return err
	} else if !ok {
		fe.Add("student", helper.MsgDoesNotExist(studentID))
	}
	if ok, err := exists(tx, &model.SubjectModel{}, subjectID); err != nil {
		return err
	} else if !ok {
		fe.Add("subject", helper.MsgDoesNotExist(subjectID))
	}
	if fe.Any() {
		return helper.NewValidationError(fe)
	}

	var cnt int64
	if err := tx.Model(&model.EnrollmentModel{}).
		Where("student_id = ? AND subject_id = ? AND id <> ?", studentID, subjectID, excludeID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return helper.NewFieldConflictError("non_field_errors", "The fields student, subject must make a unique set.")
	}
	return nil
}

// CheckGradeTarget verifies the enrollment exists (400) and owns no other grade (409).
func CheckGradeTarget(tx *gorm.DB, enrollmentID, excludeID uint) error {
	ok, err := exists(tx, &model.EnrollmentModel{}, enrollmentID)
	if err != nil {
		return err
	}
	if !ok {
		return helper.NewFieldValidationError("enrollment", helper.MsgDoesNotExist(enrollmentID))
	}

	var cnt int64
	if err := tx.Model(&model.GradeModel{}).
		Where("enrollment_id = ? AND id <> ?", enrollmentID, excludeID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return helper.NewFieldConflictError("enrollment", "grade with this enrollment already exists.")
	}
	return nil
}

func exists(tx *gorm.DB, m any, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var cnt int64
	if err := tx.Model(m).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// conflictOr maps a unique violation that slipped past the pre-checks.
func conflictOr(err error, field, msg string) error {
	if helper.IsUniqueViolation(err) {
		return helper.NewFieldConflictError(field, msg)
	}
	return err
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.NewNotFoundError("")
	}
	return err
}
