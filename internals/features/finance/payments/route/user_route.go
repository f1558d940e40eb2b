package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolku_backend/internals/constants"
	feeController "schoolku_backend/internals/features/finance/payments/controller"
	svc "schoolku_backend/internals/features/finance/payments/service"
	rateLimiter "schoolku_backend/internals/middlewares"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// FeeUserRoutes mounts under /api/u (any logged-in staff).
func FeeUserRoutes(r fiber.Router, s *svc.FeeService, log *zap.Logger) {
	ctl := feeController.NewOnlinePaymentController(s, log)

	fees := r.Group("/fees",
		authMiddleware.OnlyRoles(constants.RoleErrorAnyStaff("online fee payments"), constants.AllRoles...),
	)
	fees.Post("/online-orders", rateLimiter.OrderRateLimiter(), ctl.OpenOrder)
	fees.Post("/online-payments/verify", ctl.Verify)
}
