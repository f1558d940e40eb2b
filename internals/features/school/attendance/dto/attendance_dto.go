package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/attendance/model"
)

const DateLayout = "2006-01-02"

type AttendanceMark struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Remark    *string   `json:"remark" validate:"omitempty,max=500"`
}

// POST /api/a/attendance (date kosong = hari ini)
type MarkAttendanceRequest struct {
	Date    string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Records []AttendanceMark `json:"records" validate:"required,min=1,dive"`
}

// ToModels: entri dengan student yang sama, yang terakhir menang.
func (r MarkAttendanceRequest) ToModels(today time.Time, markedBy *uuid.UUID) ([]model.AttendanceRecordModel, time.Time, error) {
	date := today
	if raw := strings.TrimSpace(r.Date); raw != "" {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, time.Time{}, err
		}
		date = d
	}
	pos := make(map[uuid.UUID]int, len(r.Records))
	out := make([]model.AttendanceRecordModel, 0, len(r.Records))
	for _, rec := range r.Records {
		m := model.AttendanceRecordModel{
			AttendanceRecordStudentID: rec.StudentID,
			AttendanceRecordDate:      date,
			AttendanceRecordStatus:    model.AttendanceStatus(rec.Status),
			AttendanceRecordRemark:    rec.Remark,
			AttendanceRecordMarkedBy:  markedBy,
		}
		if i, ok := pos[rec.StudentID]; ok {
			out[i] = m
			continue
		}
		pos[rec.StudentID] = len(out)
		out = append(out, m)
	}
	return out, date, nil
}

type AttendanceSummaryResponse struct {
	StudentID  uuid.UUID `json:"student_id"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Total      int       `json:"total"`
	Present    int       `json:"present"`
	Late       int       `json:"late"`
	Absent     int       `json:"absent"`
	Excused    int       `json:"excused"`
	Attended   int       `json:"attended"`
	Percentage float64   `json:"percentage"`
}
