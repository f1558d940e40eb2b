// file: internals/features/school/students/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/constants"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	StudentName        string `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentAdmissionNo string `gorm:"column:student_admission_no;type:varchar(40);not null;uniqueIndex:uq_students_admission_no" json:"student_admission_no"`

	// Raw label as typed by admin ("Class 10-A"); level is derived once at create/update.
	StudentClassLabel string               `gorm:"column:student_class_label;type:varchar(40);not null" json:"student_class_label"`
	StudentClassLevel constants.ClassLevel `gorm:"column:student_class_level;type:smallint;not null;default:0;index:idx_students_class_level" json:"student_class_level"`
	StudentSection    *string              `gorm:"column:student_section;type:varchar(20)" json:"student_section,omitempty"`

	// Guardian contact
	StudentGuardianName  *string `gorm:"column:student_guardian_name;type:varchar(120)" json:"student_guardian_name,omitempty"`
	StudentGuardianPhone *string `gorm:"column:student_guardian_phone;type:varchar(20)" json:"student_guardian_phone,omitempty"`
	StudentGuardianEmail *string `gorm:"column:student_guardian_email;type:varchar(255)" json:"student_guardian_email,omitempty"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;type:timestamptz;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }
