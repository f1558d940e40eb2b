package service

import (
	"github.com/shopspring/decimal"

	"schoolku_backend/internals/features/school/attendance/model"
)

type Summary struct {
	Total      int
	Present    int
	Late       int
	Absent     int
	Excused    int
	Attended   int
	Percentage float64
}

// Summarize counts statuses; percentage = attended / total * 100, two decimals.
// No records gives 0%.
func Summarize(rows []model.AttendanceRecordModel) Summary {
	var s Summary
	for _, r := range rows {
		s.Total++
		switch r.AttendanceRecordStatus {
		case model.AttendancePresent:
			s.Present++
		case model.AttendanceLate:
			s.Late++
		case model.AttendanceAbsent:
			s.Absent++
		case model.AttendanceExcused:
			s.Excused++
		}
		if r.AttendanceRecordStatus.Attended() {
			s.Attended++
		}
	}
	if s.Total > 0 {
		pct := decimal.NewFromInt(int64(s.Attended)).
			Mul(decimal.NewFromInt(100)).
			DivRound(decimal.NewFromInt(int64(s.Total)), 2)
		s.Percentage = pct.InexactFloat64()
	}
	return s
}
