package dto

import (
	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

// CreateEnrollmentRequest is used by POST and PUT. enrollment_date is not
// accepted: it is set once by the server.
type CreateEnrollmentRequest struct {
	Student RefID `json:"student" validate:"required"`
	Subject RefID `json:"subject" validate:"required"`
}

func (r CreateEnrollmentRequest) Validate() helper.FieldErrors {
	return helper.ValidateStruct(r)
}

type PatchEnrollmentRequest struct {
	Student helper.PatchField[RefID] `json:"student"`
	Subject helper.PatchField[RefID] `json:"subject"`
}

func (p PatchEnrollmentRequest) Validate() helper.FieldErrors {
	fe := helper.FieldErrors{}
	validateRef(fe, "student", p.Student)
	validateRef(fe, "subject", p.Subject)
	return fe
}

func validateRef(fe helper.FieldErrors, name string, f helper.PatchField[RefID]) {
	switch {
	case !f.Present:
	case f.Value == nil:
		fe.Add(name, helper.MsgNotNull)
	case *f.Value == 0:
		fe.Add(name, helper.MsgDoesNotExist(0))
	}
}

func (p PatchEnrollmentRequest) Apply(m *model.EnrollmentModel) {
	if p.Student.Present && p.Student.Value != nil {
		m.StudentID = uint(*p.Student.Value)
	}
	if p.Subject.Present && p.Subject.Value != nil {
		m.SubjectID = uint(*p.Subject.Value)
	}
}

type ListEnrollmentQuery struct {
	Search         string `query:"search"`
	Student        uint   `query:"student"`
	Subject        uint   `query:"subject"`
	EnrollmentDate string `query:"enrollment_date"`
}

type EnrollmentResponse struct {
	ID             uint            `json:"id"`
	Student        uint            `json:"student"`
	Subject        uint            `json:"subject"`
	EnrollmentDate string          `json:"enrollment_date"`
	SubjectDetails *SubjectDetails `json:"subject_details"`
	Grades         *GradeResponse  `json:"grades"`
}

// FromEnrollmentModel expects Subject and Grade to be preloaded; missing
// relations render as null.
func FromEnrollmentModel(m model.EnrollmentModel) EnrollmentResponse {
	out := EnrollmentResponse{
		ID:             m.ID,
		Student:        m.StudentID,
		Subject:        m.SubjectID,
		EnrollmentDate: FormatDate(m.EnrollmentDate),
	}
	if m.Subject != nil {
		sd := FromSubjectModel(*m.Subject)
		out.SubjectDetails = &sd
	}
	if m.Grade != nil {
		g := FromGradeModel(*m.Grade)
		out.Grades = &g
	}
	return out
}

func FromEnrollmentModels(rows []model.EnrollmentModel) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromEnrollmentModel(rows[i]))
	}
	return out
}
