package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
	model "schoolku_backend/internals/features/school/students/model"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	StudentName          string  `json:"student_name" validate:"required,min=2,max=120"`
	StudentAdmissionNo   string  `json:"student_admission_no" validate:"required,max=40"`
	StudentClassLabel    string  `json:"student_class_label" validate:"required,max=40"`
	StudentClassLevel    *int16  `json:"student_class_level" validate:"omitempty,min=1,max=12"`
	StudentSection       *string `json:"student_section" validate:"omitempty,max=20"`
	StudentGuardianName  *string `json:"student_guardian_name" validate:"omitempty,max=120"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=20"`
	StudentGuardianEmail *string `json:"student_guardian_email" validate:"omitempty,email"`
	StudentIsActive      *bool   `json:"student_is_active"`
}

// ToModel assigns the class level: explicit value wins, otherwise it is
// parsed from the label. An unparseable label leaves the level unassigned.
func (r CreateStudentRequest) ToModel() *model.StudentModel {
	label := strings.TrimSpace(r.StudentClassLabel)
	m := &model.StudentModel{
		StudentName:          strings.TrimSpace(r.StudentName),
		StudentAdmissionNo:   strings.TrimSpace(r.StudentAdmissionNo),
		StudentClassLabel:    label,
		StudentClassLevel:    resolveLevel(r.StudentClassLevel, label),
		StudentSection:       trimPtr(r.StudentSection),
		StudentGuardianName:  trimPtr(r.StudentGuardianName),
		StudentGuardianPhone: trimPtr(r.StudentGuardianPhone),
		StudentGuardianEmail: trimPtr(r.StudentGuardianEmail),
		StudentIsActive:      true,
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
	return m
}

/* ===================== UPDATE (partial) ===================== */

type UpdateStudentRequest struct {
	StudentName          *string `json:"student_name" validate:"omitempty,min=2,max=120"`
	StudentAdmissionNo   *string `json:"student_admission_no" validate:"omitempty,max=40"`
	StudentClassLabel    *string `json:"student_class_label" validate:"omitempty,max=40"`
	StudentClassLevel    *int16  `json:"student_class_level" validate:"omitempty,min=1,max=12"`
	StudentSection       *string `json:"student_section" validate:"omitempty,max=20"`
	StudentGuardianName  *string `json:"student_guardian_name" validate:"omitempty,max=120"`
	StudentGuardianPhone *string `json:"student_guardian_phone" validate:"omitempty,max=20"`
	StudentGuardianEmail *string `json:"student_guardian_email" validate:"omitempty,email"`
	StudentIsActive      *bool   `json:"student_is_active"`
}

func (r *UpdateStudentRequest) ApplyToModel(m *model.StudentModel) {
	if r.StudentName != nil {
		m.StudentName = strings.TrimSpace(*r.StudentName)
	}
	if r.StudentAdmissionNo != nil {
		m.StudentAdmissionNo = strings.TrimSpace(*r.StudentAdmissionNo)
	}
	if r.StudentClassLabel != nil {
		m.StudentClassLabel = strings.TrimSpace(*r.StudentClassLabel)
		m.StudentClassLevel = resolveLevel(r.StudentClassLevel, m.StudentClassLabel)
	} else if r.StudentClassLevel != nil {
		m.StudentClassLevel = constants.ClassLevel(*r.StudentClassLevel)
	}
	if r.StudentSection != nil {
		m.StudentSection = trimPtr(r.StudentSection)
	}
	if r.StudentGuardianName != nil {
		m.StudentGuardianName = trimPtr(r.StudentGuardianName)
	}
	if r.StudentGuardianPhone != nil {
		m.StudentGuardianPhone = trimPtr(r.StudentGuardianPhone)
	}
	if r.StudentGuardianEmail != nil {
		m.StudentGuardianEmail = trimPtr(r.StudentGuardianEmail)
	}
	if r.StudentIsActive != nil {
		m.StudentIsActive = *r.StudentIsActive
	}
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	StudentID            uuid.UUID `json:"student_id"`
	StudentName          string    `json:"student_name"`
	StudentAdmissionNo   string    `json:"student_admission_no"`
	StudentClassLabel    string    `json:"student_class_label"`
	StudentClassLevel    int16     `json:"student_class_level"`
	StudentClassKey      string    `json:"student_class_key,omitempty"`
	StudentSection       *string   `json:"student_section,omitempty"`
	StudentGuardianName  *string   `json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string   `json:"student_guardian_phone,omitempty"`
	StudentGuardianEmail *string   `json:"student_guardian_email,omitempty"`
	StudentIsActive      bool      `json:"student_is_active"`
	StudentCreatedAt     time.Time `json:"student_created_at"`
	StudentUpdatedAt     time.Time `json:"student_updated_at"`
}

func FromModel(m *model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:            m.StudentID,
		StudentName:          m.StudentName,
		StudentAdmissionNo:   m.StudentAdmissionNo,
		StudentClassLabel:    m.StudentClassLabel,
		StudentClassLevel:    int16(m.StudentClassLevel),
		StudentClassKey:      m.StudentClassLevel.Key(),
		StudentSection:       m.StudentSection,
		StudentGuardianName:  m.StudentGuardianName,
		StudentGuardianPhone: m.StudentGuardianPhone,
		StudentGuardianEmail: m.StudentGuardianEmail,
		StudentIsActive:      m.StudentIsActive,
		StudentCreatedAt:     m.StudentCreatedAt,
		StudentUpdatedAt:     m.StudentUpdatedAt,
	}
}

func FromModels(list []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

/* ===================== helpers ===================== */

func resolveLevel(explicit *int16, label string) constants.ClassLevel {
	if explicit != nil {
		return constants.ClassLevel(*explicit)
	}
	lvl, err := constants.ParseClassLevel(label)
	if err != nil {
		return constants.ClassLevelUnassigned
	}
	return lvl
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
