package dto

import (
	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

/* =========================================================
   CREATE / PUT
   total_grade is not a request field: anything the client
   sends for it is dropped by the decoder.
   ========================================================= */

type CreateGradeRequest struct {
	Enrollment    RefID  `json:"enrollment" validate:"required"`
	ActivityGrade *Score `json:"activity_grade"`
	QuizGrade     *Score `json:"quiz_grade"`
	ExamGrade     *Score `json:"exam_grade"`
}

func (r CreateGradeRequest) Validate() helper.FieldErrors {
	fe := helper.ValidateStruct(r)
	for name, msgs := range ValidateScores(r.ActivityGrade, r.QuizGrade, r.ExamGrade) {
		fe[name] = append(fe[name], msgs...)
	}
	return fe
}

func (r CreateGradeRequest) ToModel() model.GradeModel {
	var m model.GradeModel
	r.ApplyTo(&m)
	return m
}

// ApplyTo is a full replacement: absent scores fall back to 0.00.
func (r CreateGradeRequest) ApplyTo(m *model.GradeModel) {
	m.EnrollmentID = uint(r.Enrollment)
	m.ActivityGrade = scoreOrZero(r.ActivityGrade)
	m.QuizGrade = scoreOrZero(r.QuizGrade)
	m.ExamGrade = scoreOrZero(r.ExamGrade)
}

/* =========================================================
   PATCH
   ========================================================= */

type PatchGradeRequest struct {
	Enrollment    helper.PatchField[RefID] `json:"enrollment"`
	ActivityGrade helper.PatchField[Score] `json:"activity_grade"`
	QuizGrade     helper.PatchField[Score] `json:"quiz_grade"`
	ExamGrade     helper.PatchField[Score] `json:"exam_grade"`
}

func (p PatchGradeRequest) Validate() helper.FieldErrors {
	fe := helper.FieldErrors{}
	validateRef(fe, "enrollment", p.Enrollment)
	for name, f := range map[string]helper.PatchField[Score]{
		"activity_grade": p.ActivityGrade,
		"quiz_grade":     p.QuizGrade,
		"exam_grade":     p.ExamGrade,
	} {
		switch {
		case !f.Present:
		case f.Value == nil:
			fe.Add(name, helper.MsgNotNull)
		default:
			validateScore(fe, name, *f.Value)
		}
	}
	return fe
}

func (p PatchGradeRequest) Apply(m *model.GradeModel) {
	if v, ok := p.Enrollment.Get(); ok && v != nil {
		m.EnrollmentID = uint(*v)
	}
	if v, ok := p.ActivityGrade.Get(); ok && v != nil {
		m.ActivityGrade = float64(*v)
	}
	if v, ok := p.QuizGrade.Get(); ok && v != nil {
		m.QuizGrade = float64(*v)
	}
	if v, ok := p.ExamGrade.Get(); ok && v != nil {
		m.ExamGrade = float64(*v)
	}
}

/* =========================================================
   QUERY & RESPONSE
   ========================================================= */

type ListGradeQuery struct {
	Search     string `query:"search"`
	Subject    uint   `query:"subject"`
	Enrollment uint   `query:"enrollment"`
}

type GradeResponse struct {
	ID            uint  `json:"id"`
	Enrollment    uint  `json:"enrollment"`
	ActivityGrade Score `json:"activity_grade"`
	QuizGrade     Score `json:"quiz_grade"`
	ExamGrade     Score `json:"exam_grade"`
	TotalGrade    Score `json:"total_grade"`
}

func FromGradeModel(m model.GradeModel) GradeResponse {
	return GradeResponse{
		ID:            m.ID,
		Enrollment:    m.EnrollmentID,
		ActivityGrade: Score(m.ActivityGrade),
		QuizGrade:     Score(m.QuizGrade),
		ExamGrade:     Score(m.ExamGrade),
		TotalGrade:    Score(m.TotalGrade),
	}
}

func FromGradeModels(rows []model.GradeModel) []GradeResponse {
	out := make([]GradeResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromGradeModel(rows[i]))
	}
	return out
}
