package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	studentController "schoolku_backend/internals/features/school/students/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

// StudentAdminRoutes mounts under /api/a
func StudentAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := studentController.NewStudentController(db)

	students := r.Group("/students",
		authMiddleware.OnlyRoles(constants.RoleErrorFinance("student management"), constants.FinanceRoles...),
	)
	students.Post("/", ctl.Create)
	students.Get("/", ctl.List)
	students.Get("/:id", ctl.GetByID)
	students.Patch("/:id", ctl.Update)

	// destructive: admin only
	students.Delete("/:id",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("student deletion"), constants.AdminOnly...),
		ctl.Delete,
	)
}
