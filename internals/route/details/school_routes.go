package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AttendanceRoute "schoolku_backend/internals/features/school/attendance/route"
	StudentRoute "schoolku_backend/internals/features/school/students/route"
)

func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	StudentRoute.StudentAdminRoutes(r, db)
	AttendanceRoute.AttendanceAdminRoutes(r, db)
}
