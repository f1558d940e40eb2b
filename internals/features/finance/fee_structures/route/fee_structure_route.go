package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	feeController "schoolku_backend/internals/features/finance/fee_structures/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// FeeStructureAdminRoutes mounts under /api/a
func FeeStructureAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := feeController.NewFeeStructureController(db)

	g := r.Group("/fee-structures",
		authMiddleware.OnlyRoles(constants.RoleErrorFinance("fee structures"), constants.FinanceRoles...),
	)
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
