// file: internals/features/finance/payments/controller/ledger_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	dto "schoolku_backend/internals/features/finance/payments/dto"
	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
)

type LedgerController struct {
	Svc *svc.FeeService
	Log *zap.Logger
}

func NewLedgerController(s *svc.FeeService, log *zap.Logger) *LedgerController {
	return &LedgerController{Svc: s, Log: log}
}

// GET /api/a/fees/students/:id/ledger
func (h *LedgerController) Ledger(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	ledger, err := h.Svc.StudentLedger(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonOK(c, "ok", dto.FromLedger(ledger))
}

// GET /api/a/fees/students/:id/status
func (h *LedgerController) Status(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	st, err := h.Svc.StudentStatus(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonOK(c, "ok", dto.FromStudentStatus(st))
}

// POST /api/a/fees/students/:id/check-months
// 200 when every month is free, 409 with conflicting_months otherwise.
func (h *LedgerController) CheckMonths(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CheckMonthsRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	if err := h.Svc.CheckStudentMonths(c.UserContext(), id, req.Months); err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonOK(c, "months available", fiber.Map{"months": req.Months, "available": true})
}
