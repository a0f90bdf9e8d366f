package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	database "sms_backend/internals/databases"
	"sms_backend/internals/features/academics/model"
	"sms_backend/internals/features/academics/service"
	helper "sms_backend/internals/helpers"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedPair(t *testing.T, db *gorm.DB) (model.StudentModel, model.SubjectModel) {
	t.Helper()
	st := model.StudentModel{Name: "Alice", StudentNumber: "S001", Email: "alice@example.com"}
	require.NoError(t, db.Create(&st).Error)
	sub := model.SubjectModel{Name: "Mathematics", Code: "MATH101"}
	require.NoError(t, db.Create(&sub).Error)
	return st, sub
}

func count(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func sameDay(t *testing.T, want, got datatypes.Date) {
	t.Helper()
	assert.Equal(t, time.Time(want).UTC().Format("2006-01-02"), time.Time(got).UTC().Format("2006-01-02"))
}

func requestError(t *testing.T, err error) *helper.RequestError {
	t.Helper()
	var re *helper.RequestError
	require.True(t, errors.As(err, &re), "want RequestError, got %v", err)
	return re
}

func TestCreateEnrollmentWithGrade(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)

	e, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	require.NoError(t, err)
	sameDay(t, model.Today(), e.EnrollmentDate)
	require.NotNil(t, e.Subject)
	assert.Equal(t, "MATH101", e.Subject.Code)
	require.NotNil(t, e.Grade)
	assert.Zero(t, e.Grade.TotalGrade)

	assert.EqualValues(t, 1, count(t, db, &model.GradeModel{}))

	_, err = service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	assert.Equal(t, 409, requestError(t, err).Status)

	_, err = service.CreateEnrollmentWithGrade(db, 99, 98, nil)
	re := requestError(t, err)
	assert.Equal(t, 400, re.Status)
	assert.Contains(t, re.Fields, "student")
	assert.Contains(t, re.Fields, "subject")
}

func TestCreateEnrollmentWithInitialScores(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)

	e, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, &model.GradeModel{
		ActivityGrade: 90, QuizGrade: 80, ExamGrade: 70, TotalGrade: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, e.Grade)
	assert.InDelta(t, 80, e.Grade.TotalGrade, 1e-9)
}

func TestCreateEnrollmentRollsBackWhenGradeFails(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)

	// occupy the grade slot of the next enrollment id
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Create(&model.GradeModel{EnrollmentID: 1}).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	_, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	require.Error(t, err)
	assert.Zero(t, count(t, db, &model.EnrollmentModel{}))
}

func TestUpdateEnrollmentTargetKeepsDate(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)
	other := model.SubjectModel{Name: "Biology", Code: "BIO101"}
	require.NoError(t, db.Create(&other).Error)

	e, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	require.NoError(t, err)
	past := model.DateOf(time.Date(2021, 5, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Model(&model.EnrollmentModel{}).Where("id = ?", e.ID).Update("enrollment_date", past).Error)

	updated, err := service.UpdateEnrollmentTarget(db, e.ID, func(m *model.EnrollmentModel) error {
		m.SubjectID = other.ID
		m.EnrollmentDate = model.Today()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.SubjectID)
	sameDay(t, past, updated.EnrollmentDate)
	require.NotNil(t, updated.Grade)
	assert.Equal(t, e.Grade.ID, updated.Grade.ID)

	_, err = service.UpdateEnrollmentTarget(db, 999, func(*model.EnrollmentModel) error { return nil })
	assert.Equal(t, 404, requestError(t, err).Status)
}

func TestCascadeDeletes(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)
	bob := model.StudentModel{Name: "Bob", StudentNumber: "S002", Email: "bob@example.com"}
	require.NoError(t, db.Create(&bob).Error)

	_, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	require.NoError(t, err)
	eb, err := service.CreateEnrollmentWithGrade(db, bob.ID, sub.ID, nil)
	require.NoError(t, err)

	require.NoError(t, service.DeleteStudentCascade(db, st.ID))
	assert.EqualValues(t, 1, count(t, db, &model.EnrollmentModel{}))
	assert.EqualValues(t, 1, count(t, db, &model.GradeModel{}))

	require.NoError(t, service.DeleteGrade(db, eb.Grade.ID))
	assert.EqualValues(t, 1, count(t, db, &model.EnrollmentModel{}))

	require.NoError(t, service.DeleteSubjectCascade(db, sub.ID))
	assert.Zero(t, count(t, db, &model.EnrollmentModel{}))
	assert.EqualValues(t, 1, count(t, db, &model.StudentModel{}))

	assert.Equal(t, 404, requestError(t, service.DeleteEnrollmentCascade(db, eb.ID)).Status)
	assert.Equal(t, 404, requestError(t, service.DeleteStudentCascade(db, st.ID)).Status)
}

func TestForeignKeysCascadeInDatabase(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)
	_, err := service.CreateEnrollmentWithGrade(db, st.ID, sub.ID, nil)
	require.NoError(t, err)

	// bypass the service: the schema alone must cascade
	require.NoError(t, db.Exec("DELETE FROM students WHERE id = ?", st.ID).Error)
	assert.Zero(t, count(t, db, &model.EnrollmentModel{}))
	assert.Zero(t, count(t, db, &model.GradeModel{}))
}

func TestUniquenessChecks(t *testing.T) {
	db := openDB(t)
	st, sub := seedPair(t, db)

	assert.NoError(t, service.CheckStudentUnique(db, "S001", "alice@example.com", st.ID))
	re := requestError(t, service.CheckStudentUnique(db, "S001", "alice@example.com", 0))
	assert.Equal(t, 409, re.Status)
	assert.Contains(t, re.Fields, "student_id")
	assert.Contains(t, re.Fields, "email")

	assert.NoError(t, service.CheckSubjectUnique(db, "MATH101", sub.ID))
	assert.Equal(t, 409, requestError(t, service.CheckSubjectUnique(db, "MATH101", 0)).Status)

	re = requestError(t, service.CheckGradeTarget(db, 42, 0))
	assert.Equal(t, 400, re.Status)
	assert.Contains(t, re.Fields, "enrollment")
}
