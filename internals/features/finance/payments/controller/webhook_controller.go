// file: internals/features/finance/payments/controller/webhook_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	dto "schoolku_backend/internals/features/finance/payments/dto"
	svc "schoolku_backend/internals/features/finance/payments/service"
	helper "schoolku_backend/internals/helpers"
)

type WebhookController struct {
	Svc *svc.FeeService
	Log *zap.Logger
}

func NewWebhookController(s *svc.FeeService, log *zap.Logger) *WebhookController {
	return &WebhookController{Svc: s, Log: log}
}

// POST /api/public/payments/midtrans/notification
func (h *WebhookController) MidtransNotification(c *fiber.Ctx) error {
	var req dto.GatewayNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload: "+err.Error())
	}
	if err := helper.Validate.Struct(&req); err != nil {
		// signature fields missing: nothing to verify
		return helper.JsonError(c, fiber.StatusUnauthorized, svc.ErrInvalidSignature.Error())
	}

	res, err := h.Svc.HandleGatewayNotification(c.UserContext(), req.ToNotification(c.Body()))
	if err != nil {
		return writeServiceError(c, h.Log, err)
	}
	return c.JSON(fiber.Map{
		"status":         "ok",
		"outcome":        res.Outcome,
		"payment_id":     res.PaymentID,
		"payment_status": res.PaymentStatus,
		"reason":         res.Reason,
	})
}
