// file: internals/features/finance/payments/controller/report_controller.go
package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"schoolku_backend/internals/constants"
	dto "schoolku_backend/internals/features/finance/payments/dto"
	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/dbtime"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	Svc *svc.FeeService
	Log *zap.Logger
}

func NewReportController(s *svc.FeeService, log *zap.Logger) *ReportController {
	return &ReportController{Svc: s, Log: log}
}

// GET /api/a/fees/report?class=10&active=true
func (h *ReportController) Report(c *fiber.Ctx) error {
	f, err := reportFilter(c)
	if err != nil {
		return err
	}
	report, err := h.Svc.BuildStatusReport(c.UserContext(), f)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"completed":       report.Completed,
		"pending":         report.Pending,
		"completed_count": len(report.Completed),
		"pending_count":   len(report.Pending),
		"skipped":         report.Skipped,
	})
}

// GET /api/a/fees/defaulters?class=10&format=xlsx
func (h *ReportController) Defaulters(c *fiber.Ctx) error {
	f, err := reportFilter(c)
	if err != nil {
		return err
	}
	groups, err := h.Svc.DefaultersByClass(c.UserContext(), f)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}

	if strings.EqualFold(strings.TrimSpace(c.Query("format")), "xlsx") {
		buf, err := svc.DefaultersWorkbook(groups)
		if err != nil {
			h.Log.Error("render defaulters workbook", zap.Error(err))
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to render workbook")
		}
		name := fmt.Sprintf("defaulters-%s.xlsx", dbtime.NowInSchool(c).Format("20060102"))
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
		return c.Send(buf.Bytes())
	}

	out := make([]dto.DefaulterGroup, 0, len(groups))
	for key, rows := range groups {
		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Due)
		}
		out = append(out, dto.DefaulterGroup{ClassKey: key, Count: len(rows), TotalDue: total, Students: rows})
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := constants.ParseClassKey(out[i].ClassKey)
		b, _ := constants.ParseClassKey(out[j].ClassKey)
		return a < b
	})
	return helper.JsonOK(c, "ok", out)
}

func reportFilter(c *fiber.Ctx) (svc.ReportFilter, error) {
	var f svc.ReportFilter
	if raw := strings.TrimSpace(c.Query("class")); raw != "" {
		lvl, err := constants.ParseClassKey(raw)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "invalid class")
		}
		f.ClassLevel = lvl
	}
	switch strings.ToLower(strings.TrimSpace(c.Query("active"))) {
	case "true", "1":
		f.ActiveOnly = true
	}
	return f, nil
}
