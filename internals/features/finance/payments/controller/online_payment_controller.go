// file: internals/features/finance/payments/controller/online_payment_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	dto "schoolku_backend/internals/features/finance/payments/dto"
	model "schoolku_backend/internals/features/finance/payments/model"
	"schoolku_backend/internals/features/finance/payments/repository"
	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type OnlinePaymentController struct {
	Svc *svc.FeeService
	Log *zap.Logger
}

func NewOnlinePaymentController(s *svc.FeeService, log *zap.Logger) *OnlinePaymentController {
	return &OnlinePaymentController{Svc: s, Log: log}
}

// POST /api/u/fees/online-orders
func (h *OnlinePaymentController) OpenOrder(c *fiber.Ctx) error {
	var req dto.OpenOnlineOrderRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	order, err := h.Svc.OpenOnlineOrder(c.UserContext(), req.ToInput(createdBy))
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonCreated(c, "gateway order opened", dto.FromOnlineOrder(order))
}

// POST /api/u/fees/online-payments/verify
// Client-side confirmation after Snap closes; same signed fields as the webhook.
func (h *OnlinePaymentController) Verify(c *fiber.Ctx) error {
	var req dto.GatewayNotificationRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.Svc.HandleGatewayNotification(c.UserContext(), req.ToNotification(c.Body()))
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonOK(c, "payment verified", res)
}

// GET /api/a/fees/online-payments?student_id=&status=
func (h *OnlinePaymentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)
	f := repository.OnlinePaymentFilter{Offset: p.Offset, Limit: p.Limit}

	if s := strings.TrimSpace(c.Query("student_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
		}
		f.StudentID = &id
	}
	switch st := model.OnlinePaymentStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))); st {
	case "":
	case model.OnlinePaymentStatusCreated, model.OnlinePaymentStatusSuccess, model.OnlinePaymentStatusFailed:
		f.Status = st
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be one of created, success, failed")
	}

	rows, total, err := h.Svc.ListOnlinePayments(c.UserContext(), f)
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return helper.JsonList(c, "ok", dto.FromOnlineModels(rows), helper.BuildPagination(total, p, len(rows)))
}
