// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	controller "schoolku_backend/internals/features/users/auth/controller"
	rateLimiter "schoolku_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth/login (tanpa token)
func AuthPublicRoutes(r fiber.Router, ac *controller.AuthController) {
	auth := r.Group("/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ac.Login)
}

// AuthUserRoutes: dipasang di group yang sudah melewati AuthJWT
func AuthUserRoutes(r fiber.Router, ac *controller.AuthController) {
	auth := r.Group("/auth")
	auth.Get("/me", ac.Me)
	auth.Post("/logout", ac.Logout)
}
