package academics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	database "sms_backend/internals/databases"
	"sms_backend/internals/features/academics/dto"
	"sms_backend/internals/features/academics/model"
)

func TestSeedAcademicsFromJSONIsIdempotent(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	first, err := SeedAcademicsFromJSON(db, "data_academics.json")
	require.NoError(t, err)
	assert.Equal(t, Summary{Students: 3, Subjects: 3, Enrollments: 4}, first)

	var grade model.GradeModel
	require.NoError(t, db.
		Joins("JOIN enrollments ON enrollments.id = grades.enrollment_id").
		Joins("JOIN students ON students.id = enrollments.student_id").
		Joins("JOIN subjects ON subjects.id = enrollments.subject_id").
		Where("students.student_id = ? AND subjects.code = ?", "S001", "MATH101").
		First(&grade).Error)
	assert.InDelta(t, 85, grade.TotalGrade, 1e-9)

	var bob model.StudentModel
	require.NoError(t, db.Where("student_id = ?", "S002").First(&bob).Error)
	assert.Nil(t, bob.DateOfBirth)

	second, err := SeedAcademicsFromJSON(db, "data_academics.json")
	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 10}, second)

	var grades int64
	require.NoError(t, db.Model(&model.GradeModel{}).Count(&grades).Error)
	assert.EqualValues(t, 4, grades)
}

func TestSeedAcademicsErrors(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	_, err = SeedAcademicsFromJSON(db, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"students": [`), 0o600))
	_, err = SeedAcademicsFromJSON(db, bad)
	assert.Error(t, err)

	_, err = SeedAcademics(db, SeedFile{
		Enrollments: []EnrollmentSeed{{StudentID: "nobody", SubjectCode: "NONE"}},
	})
	assert.Error(t, err)
}

func TestSeedAcademicsRejectsInvalidRows(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	good := StudentSeed{Name: "Alice", StudentID: "S001", Email: "alice@example.com"}
	tooMuch, tooFine := dto.Score(1000), dto.Score(1.234)

	cases := []struct {
		name string
		data SeedFile
		want []string
	}{
		{"bad email", SeedFile{Students: []StudentSeed{good, {Name: "Bob", StudentID: "S002", Email: "bob"}}}, []string{`students[1] "S002"`, "email"}},
		{"bad date", SeedFile{Students: []StudentSeed{{Name: "Bob", StudentID: "S002", Email: "bob@example.com", DateOfBirth: "15/03/2004"}}}, []string{"date_of_birth"}},
		{"long code", SeedFile{Subjects: []SubjectSeed{{Name: "Maths", Code: "MATHEMATICS-ADVANCED-101"}}}, []string{`subjects[0]`, "code"}},
		{"score digits", SeedFile{Enrollments: []EnrollmentSeed{{StudentID: "S001", SubjectCode: "M", ActivityGrade: &tooMuch}}}, []string{"enrollments[0] S001/M", "activity_grade"}},
		{"score decimals", SeedFile{Enrollments: []EnrollmentSeed{{StudentID: "S001", SubjectCode: "M", ExamGrade: &tooFine}}}, []string{"exam_grade"}},
	}
	for _, tc := range cases {
		_, err := SeedAcademics(db, tc.data)
		require.Error(t, err, tc.name)
		for _, w := range tc.want {
			assert.Contains(t, err.Error(), w, tc.name)
		}
	}

	// nothing from a rejected file is written
	var students int64
	require.NoError(t, db.Model(&model.StudentModel{}).Count(&students).Error)
	assert.Zero(t, students)
}
