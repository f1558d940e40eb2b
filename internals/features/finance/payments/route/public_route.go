package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	feeController "schoolku_backend/internals/features/finance/payments/controller"
	svc "schoolku_backend/internals/features/finance/payments/service"
)

// FeePublicRoutes: gateway webhook, authenticated by signature only.
func FeePublicRoutes(r fiber.Router, s *svc.FeeService, log *zap.Logger) {
	ctl := feeController.NewWebhookController(s, log)
	r.Post("/payments/midtrans/notification", ctl.MidtransNotification)
}
