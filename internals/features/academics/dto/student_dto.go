package dto

import (
	"strings"

	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

/* =========================================================
   CREATE / PUT
   ========================================================= */

type CreateStudentRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	StudentID   string  `json:"student_id" validate:"required,max=50"`
	Email       string  `json:"email" validate:"required,email,max=254"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.StudentID = strings.TrimSpace(r.StudentID)
	r.Email = strings.TrimSpace(r.Email)
	if r.DateOfBirth != nil {
		v := strings.TrimSpace(*r.DateOfBirth)
		if v == "" {
			r.DateOfBirth = nil
		} else {
			r.DateOfBirth = &v
		}
	}
}

func (r CreateStudentRequest) Validate() helper.FieldErrors {
	return helper.ValidateStruct(r)
}

func (r CreateStudentRequest) ToModel() model.StudentModel {
	var m model.StudentModel
	r.ApplyTo(&m)
	return m
}

// ApplyTo overwrites every writable column; used by create and PUT.
// Call only after Validate passed.
func (r CreateStudentRequest) ApplyTo(m *model.StudentModel) {
	m.Name = r.Name
	m.StudentNumber = r.StudentID
	m.Email = r.Email
	m.DateOfBirth = nil
	if r.DateOfBirth != nil {
		if d, err := ParseDate(*r.DateOfBirth); err == nil {
			m.DateOfBirth = &d
		}
	}
}

/* =========================================================
   PATCH: tri-state
   ========================================================= */

type PatchStudentRequest struct {
	Name        helper.PatchField[string] `json:"name"`
	StudentID   helper.PatchField[string] `json:"student_id"`
	Email       helper.PatchField[string] `json:"email"`
	DateOfBirth helper.PatchField[string] `json:"date_of_birth"`
}

func (p *PatchStudentRequest) Normalize() {
	for _, f := range []*helper.PatchField[string]{&p.Name, &p.StudentID, &p.Email, &p.DateOfBirth} {
		if f.Present && f.Value != nil {
			v := strings.TrimSpace(*f.Value)
			f.Value = &v
		}
	}
	// blank date means "clear"
	if p.DateOfBirth.Present && p.DateOfBirth.Value != nil && *p.DateOfBirth.Value == "" {
		p.DateOfBirth.Value = nil
	}
}

func (p PatchStudentRequest) Validate() helper.FieldErrors {
	fe := helper.FieldErrors{}
	required := []struct {
		name  string
		field helper.PatchField[string]
		tag   string
	}{
		{"name", p.Name, "required,max=255"},
		{"student_id", p.StudentID, "required,max=50"},
		{"email", p.Email, "required,email,max=254"},
	}
	for _, r := range required {
		if !r.field.Present {
			continue
		}
		if r.field.Value == nil {
			fe.Add(r.name, helper.MsgNotNull)
			continue
		}
		helper.ValidateVar(fe, r.name, *r.field.Value, r.tag)
	}
	if p.DateOfBirth.Present && p.DateOfBirth.Value != nil {
		helper.ValidateVar(fe, "date_of_birth", *p.DateOfBirth.Value, "datetime=2006-01-02")
	}
	return fe
}

func (p PatchStudentRequest) Apply(m *model.StudentModel) {
	if p.Name.Present && p.Name.Value != nil {
		m.Name = *p.Name.Value
	}
	if p.StudentID.Present && p.StudentID.Value != nil {
		m.StudentNumber = *p.StudentID.Value
	}
	if p.Email.Present && p.Email.Value != nil {
		m.Email = *p.Email.Value
	}
	if p.DateOfBirth.Present {
		if p.DateOfBirth.Value == nil {
			m.DateOfBirth = nil
		} else if d, err := ParseDate(*p.DateOfBirth.Value); err == nil {
			m.DateOfBirth = &d
		}
	}
}

/* =========================================================
   QUERY & RESPONSE
   ========================================================= */

type ListStudentQuery struct {
	Search      string `query:"search"`
	DateOfBirth string `query:"date_of_birth"`
}

type StudentResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	StudentID   string               `json:"student_id"`
	Email       string               `json:"email"`
	DateOfBirth *string              `json:"date_of_birth"`
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

func FromStudentModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		ID:          m.ID,
		Name:        m.Name,
		StudentID:   m.StudentNumber,
		Email:       m.Email,
		DateOfBirth: formatDatePtr(m.DateOfBirth),
		Enrollments: FromEnrollmentModels(m.Enrollments),
	}
}

func FromStudentModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStudentModel(rows[i]))
	}
	return out
}
