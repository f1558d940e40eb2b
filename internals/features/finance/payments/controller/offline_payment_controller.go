// file: internals/features/finance/payments/controller/offline_payment_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	dto "schoolku_backend/internals/features/finance/payments/dto"
	"schoolku_backend/internals/features/finance/payments/repository"
	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type OfflinePaymentController struct {
	Svc *svc.FeeService
	Log *zap.Logger
}

func NewOfflinePaymentController(s *svc.FeeService, log *zap.Logger) *OfflinePaymentController {
	return &OfflinePaymentController{Svc: s, Log: log}
}

// POST /api/a/fees/offline-payments
func (h *OfflinePaymentController) Record(c *fiber.Ctx) error {
	var req dto.RecordOfflinePaymentRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	var collectorID *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		collectorID = &uid
	}
	collectorName := helperAuth.GetUserName(c)
	if strings.TrimSpace(collectorName) == "" {
		collectorName = "staff"
	}

	p, err := h.Svc.RecordOfflinePayment(c.UserContext(), req.ToInput(collectorID, collectorName))
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonCreated(c, "offline payment recorded", dto.FromOfflineModel(p))
}

// GET /api/a/fees/offline-payments?student_id=
func (h *OfflinePaymentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	f := repository.OfflinePaymentFilter{Offset: p.Offset, Limit: p.Limit}

	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		f.StudentID = &id
	}

	rows, total, err := h.Svc.ListOfflinePayments(c.UserContext(), f)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonList(c, "ok", dto.FromOfflineModels(rows), helper.BuildPagination(total, p, len(rows)))
}

// DELETE /api/a/fees/offline-payments/:id
// Voids the payment and frees its months.
func (h *OfflinePaymentController) Void(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.Svc.VoidOfflinePayment(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonDeleted(c, "offline payment voided", dto.FromOfflineModel(p))
}
