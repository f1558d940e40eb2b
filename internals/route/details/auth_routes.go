package details

import (
	"github.com/gofiber/fiber/v2"

	authController "schoolku_backend/internals/features/users/auth/controller"
	authRoute "schoolku_backend/internals/features/users/auth/route"
)

func AuthPublicRoutes(r fiber.Router, ac *authController.AuthController) {
	authRoute.AuthPublicRoutes(r, ac)
}

func AuthUserRoutes(r fiber.Router, ac *authController.AuthController) {
	authRoute.AuthUserRoutes(r, ac)
}
