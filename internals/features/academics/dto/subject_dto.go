package dto

import (
	"strings"

	"sms_backend/internals/features/academics/model"
	helper "sms_backend/internals/helpers"
)

type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Code string `json:"code" validate:"required,max=20"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
}

func (r CreateSubjectRequest) Validate() helper.FieldErrors {
	return helper.ValidateStruct(r)
}

func (r CreateSubjectRequest) ToModel() model.SubjectModel {
	return model.SubjectModel{Name: r.Name, Code: r.Code}
}

func (r CreateSubjectRequest) ApplyTo(m *model.SubjectModel) {
	m.Name = r.Name
	m.Code = r.Code
}

type PatchSubjectRequest struct {
	Name helper.PatchField[string] `json:"name"`
	Code helper.PatchField[string] `json:"code"`
}

func (p *PatchSubjectRequest) Normalize() {
	if p.Name.Present && p.Name.Value != nil {
		v := strings.TrimSpace(*p.Name.Value)
		p.Name.Value = &v
	}
	if p.Code.Present && p.Code.Value != nil {
		v := strings.TrimSpace(*p.Code.Value)
		p.Code.Value = &v
	}
}

func (p PatchSubjectRequest) Validate() helper.FieldErrors {
	fe := helper.FieldErrors{}
	if p.Name.IsNull() {
		fe.Add("name", helper.MsgNotNull)
	} else if p.Name.Present {
		helper.ValidateVar(fe, "name", *p.Name.Value, "required,max=255")
	}
	if p.Code.IsNull() {
		fe.Add("code", helper.MsgNotNull)
	} else if p.Code.Present {
		helper.ValidateVar(fe, "code", *p.Code.Value, "required,max=20")
	}
	return fe
}

func (p PatchSubjectRequest) Apply(m *model.SubjectModel) {
	if p.Name.Present && p.Name.Value != nil {
		m.Name = *p.Name.Value
	}
	if p.Code.Present && p.Code.Value != nil {
		m.Code = *p.Code.Value
	}
}

type ListSubjectQuery struct {
	Search string `query:"search"`
}

type SubjectResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// SubjectDetails is the read-only subject summary nested in an enrollment.
type SubjectDetails = SubjectResponse

func FromSubjectModel(m model.SubjectModel) SubjectResponse {
	return SubjectResponse{ID: m.ID, Name: m.Name, Code: m.Code}
}

func FromSubjectModels(rows []model.SubjectModel) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromSubjectModel(rows[i]))
	}
	return out
}
