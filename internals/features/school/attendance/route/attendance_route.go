package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/attendance/controller"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewAttendanceController(db)

	g := r.Group("/attendance",
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("attendance"), constants.AttendanceRoles...),
	)
	g.Post("/", h.Mark)
	g.Get("/students/:id/summary", h.Summary)
}
