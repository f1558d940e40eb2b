// file: internals/features/school/attendance/controller/attendance_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/model"
	"schoolku_backend/internals/features/school/attendance/service"
	studentModel "schoolku_backend/internals/features/school/students/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
	"schoolku_backend/internals/helpers/dbtime"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// POST /api/a/attendance
func (h *AttendanceController) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	var markedBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		markedBy = &uid
	}
	rows, date, err := req.ToModels(dbtime.TodayInSchool(c), markedBy)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"date": {"must match layout " + dto.DateLayout}})
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.AttendanceRecordStudentID)
	}
	var found int64
	if err := h.DB.WithContext(c.UserContext()).
		Model(&studentModel.StudentModel{}).
		Where("student_id IN ?", ids).
		Count(&found).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to check students")
	}
	if int(found) != len(ids) {
		return helper.JsonError(c, fiber.StatusNotFound, "one or more students not found")
	}

	// Tandai ulang tanggal yang sama = update status
	if err := h.DB.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attendance_record_student_id"}, {Name: "attendance_record_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"attendance_record_status",
			"attendance_record_remark",
			"attendance_record_marked_by",
			"attendance_record_updated_at",
		}),
	}).Create(&rows).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonCreated(c, "attendance recorded", fiber.Map{"date": date.Format(dto.DateLayout), "count": len(rows)})
}

// GET /api/a/attendance/students/:id/summary?from=&to=
func (h *AttendanceController) Summary(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var n int64
	if err := h.DB.WithContext(c.UserContext()).
		Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Count(&n).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "student not found")
	}

	q := h.DB.WithContext(c.UserContext()).
		Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_student_id = ?", studentID)

	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from != "" {
		t, err := time.Parse(dto.DateLayout, from)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid from (want YYYY-MM-DD)")
		}
		q = q.Where("attendance_record_date >= ?", t)
	}
	if to != "" {
		t, err := time.Parse(dto.DateLayout, to)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid to (want YYYY-MM-DD)")
		}
		q = q.Where("attendance_record_date <= ?", t)
	}

	var rows []model.AttendanceRecordModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch attendance")
	}

	s := service.Summarize(rows)
	return helper.JsonOK(c, "ok", dto.AttendanceSummaryResponse{
		StudentID:  studentID,
		From:       from,
		To:         to,
		Total:      s.Total,
		Present:    s.Present,
		Late:       s.Late,
		Absent:     s.Absent,
		Excused:    s.Excused,
		Attended:   s.Attended,
		Percentage: s.Percentage,
	})
}
