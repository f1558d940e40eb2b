// file: internals/route/details/finance_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	FeeStructureRoute "schoolku_backend/internals/features/finance/fee_structures/route"
	PaymentRoute "schoolku_backend/internals/features/finance/payments/route"
	feeService "schoolku_backend/internals/features/finance/payments/service"
)

func FinancePublicRoutes(r fiber.Router, fees *feeService.FeeService, log *zap.Logger) {
	PaymentRoute.FeePublicRoutes(r, fees, log)
}

func FinanceUserRoutes(r fiber.Router, fees *feeService.FeeService, log *zap.Logger) {
	PaymentRoute.FeeUserRoutes(r, fees, log)
}

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB, fees *feeService.FeeService, log *zap.Logger) {
	FeeStructureRoute.FeeStructureAdminRoutes(r, db)
	PaymentRoute.FeeAdminRoutes(r, fees, log)
}
