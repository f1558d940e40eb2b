package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/attendance/model"
)

func TestToModels_LastEntryWins(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	req := MarkAttendanceRequest{
		Date: "2026-03-02",
		Records: []AttendanceMark{
			{StudentID: a, Status: "absent"},
			{StudentID: b, Status: "present"},
			{StudentID: a, Status: "late"},
		},
	}
	got, date, err := req.ToModels(time.Time{}, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), date)
	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].AttendanceRecordStudentID)
	assert.Equal(t, model.AttendanceLate, got[0].AttendanceRecordStatus)
	assert.Equal(t, model.AttendancePresent, got[1].AttendanceRecordStatus)
}

func TestToModels_DefaultsToToday(t *testing.T) {
	today := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	marker := uuid.New()
	req := MarkAttendanceRequest{Records: []AttendanceMark{{StudentID: uuid.New(), Status: "present"}}}

	got, date, err := req.ToModels(today, &marker)
	require.NoError(t, err)
	assert.Equal(t, today, date)
	assert.Equal(t, today, got[0].AttendanceRecordDate)
	assert.Equal(t, &marker, got[0].AttendanceRecordMarkedBy)

	_, _, err = MarkAttendanceRequest{Date: "01/07/2026"}.ToModels(today, nil)
	assert.Error(t, err)
}
