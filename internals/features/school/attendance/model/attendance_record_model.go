package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Attended: present & late dihitung hadir.
func (s AttendanceStatus) Attended() bool {
	return s == AttendancePresent || s == AttendanceLate
}

type AttendanceRecordModel struct {
	AttendanceRecordID        uuid.UUID        `gorm:"column:attendance_record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"attendance_record_id"`
	AttendanceRecordStudentID uuid.UUID        `gorm:"column:attendance_record_student_id;type:uuid;not null;uniqueIndex:uq_attendance_student_date,priority:1" json:"attendance_record_student_id"`
	AttendanceRecordDate      time.Time        `gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_student_date,priority:2;index" json:"attendance_record_date"`
	AttendanceRecordStatus    AttendanceStatus `gorm:"column:attendance_record_status;type:varchar(10);not null" json:"attendance_record_status"`
	AttendanceRecordRemark    *string          `gorm:"column:attendance_record_remark;type:text" json:"attendance_record_remark,omitempty"`
	AttendanceRecordMarkedBy  *uuid.UUID       `gorm:"column:attendance_record_marked_by;type:uuid" json:"attendance_record_marked_by,omitempty"`

	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;type:timestamptz;not null;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;type:timestamptz;not null;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
