package academics

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"sms_backend/internals/features/academics/dto"
	"sms_backend/internals/features/academics/model"
	"sms_backend/internals/features/academics/service"
	helper "sms_backend/internals/helpers"
)

type StudentSeed struct {
	Name        string `json:"name"`
	StudentID   string `json:"student_id"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
}

type SubjectSeed struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// EnrollmentSeed references rows by natural key; scores are optional.
type EnrollmentSeed struct {
	StudentID     string     `json:"student_id"`
	SubjectCode   string     `json:"subject_code"`
	ActivityGrade *dto.Score `json:"activity_grade"`
	QuizGrade     *dto.Score `json:"quiz_grade"`
	ExamGrade     *dto.Score `json:"exam_grade"`
}

type SeedFile struct {
	Students    []StudentSeed    `json:"students"`
	Subjects    []SubjectSeed    `json:"subjects"`
	Enrollments []EnrollmentSeed `json:"enrollments"`
}

type Summary struct {
	Students    int
	Subjects    int
	Enrollments int
	Skipped     int
}

func SeedAcademicsFromJSON(db *gorm.DB, filePath string) (Summary, error) {
	log.Println("[INFO] seeding from", filePath)

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return Summary{}, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedFile
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return Summary{}, fmt.Errorf("decode seed file: %w", err)
	}
	return SeedAcademics(db, data)
}

// SeedAcademics inserts what is missing and skips what already exists, so
// running it twice is a no-op.
func SeedAcademics(db *gorm.DB, data SeedFile) (Summary, error) {
	var sum Summary

	students, subjects, err := validateSeed(data)
	if err != nil {
		return sum, err
	}

	for _, s := range students {
		var existing model.StudentModel
		err := db.Where("student_id = ?", s.StudentID).First(&existing).Error
		if err == nil {
			sum.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return sum, err
		}

		m := s.ToModel()
		if err := db.Create(&m).Error; err != nil {
			return sum, fmt.Errorf("insert student %s: %w", s.StudentID, err)
		}
		sum.Students++
	}

	for _, s := range subjects {
		var existing model.SubjectModel
		err := db.Where("code = ?", s.Code).First(&existing).Error
		if err == nil {
			sum.Skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return sum, err
		}
		m := s.ToModel()
		if err := db.Create(&m).Error; err != nil {
			return sum, fmt.Errorf("insert subject %s: %w", s.Code, err)
		}
		sum.Subjects++
	}

	for _, e := range data.Enrollments {
		var student model.StudentModel
		if err := db.Where("student_id = ?", e.StudentID).First(&student).Error; err != nil {
			return sum, fmt.Errorf("enrollment %s/%s: student: %w", e.StudentID, e.SubjectCode, err)
		}
		var subject model.SubjectModel
		if err := db.Where("code = ?", e.SubjectCode).First(&subject).Error; err != nil {
			return sum, fmt.Errorf("enrollment %s/%s: subject: %w", e.StudentID, e.SubjectCode, err)
		}

		var cnt int64
		if err := db.Model(&model.EnrollmentModel{}).
			Where("student_id = ? AND subject_id = ?", student.ID, subject.ID).
			Count(&cnt).Error; err != nil {
			return sum, err
		}
		if cnt > 0 {
			sum.Skipped++
			continue
		}

		initial := &model.GradeModel{
			ActivityGrade: scoreValue(e.ActivityGrade),
			QuizGrade:     scoreValue(e.QuizGrade),
			ExamGrade:     scoreValue(e.ExamGrade),
		}
		if _, err := service.CreateEnrollmentWithGrade(db, student.ID, subject.ID, initial); err != nil {
			return sum, fmt.Errorf("enrollment %s/%s: %w", e.StudentID, e.SubjectCode, err)
		}
		sum.Enrollments++
	}

	log.Printf("[INFO] seed done: students=%d subjects=%d enrollments=%d skipped=%d",
		sum.Students, sum.Subjects, sum.Enrollments, sum.Skipped)
	return sum, nil
}

// validateSeed runs the request validation over every row so a bad file
// inserts nothing.
func validateSeed(data SeedFile) ([]dto.CreateStudentRequest, []dto.CreateSubjectRequest, error) {
	students := make([]dto.CreateStudentRequest, 0, len(data.Students))
	for i, s := range data.Students {
		req := dto.CreateStudentRequest{Name: s.Name, StudentID: s.StudentID, Email: s.Email}
		if s.DateOfBirth != "" {
			dob := s.DateOfBirth
			req.DateOfBirth = &dob
		}
		req.Normalize()
		if fe := req.Validate(); fe.Any() {
			return nil, nil, fmt.Errorf("students[%d] %q: %w", i, s.StudentID, helper.NewValidationError(fe))
		}
		students = append(students, req)
	}

	subjects := make([]dto.CreateSubjectRequest, 0, len(data.Subjects))
	for i, s := range data.Subjects {
		req := dto.CreateSubjectRequest{Name: s.Name, Code: s.Code}
		req.Normalize()
		if fe := req.Validate(); fe.Any() {
			return nil, nil, fmt.Errorf("subjects[%d] %q: %w", i, s.Code, helper.NewValidationError(fe))
		}
		subjects = append(subjects, req)
	}

	for i, e := range data.Enrollments {
		if fe := dto.ValidateScores(e.ActivityGrade, e.QuizGrade, e.ExamGrade); fe.Any() {
			return nil, nil, fmt.Errorf("enrollments[%d] %s/%s: %w", i, e.StudentID, e.SubjectCode, helper.NewValidationError(fe))
		}
	}
	return students, subjects, nil
}

func scoreValue(s *dto.Score) float64 {
	if s == nil {
		return 0
	}
	return model.RoundScore(float64(*s))
}
