// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	feeService "schoolku_backend/internals/features/finance/payments/service"
	authController "schoolku_backend/internals/features/users/auth/controller"
	authRepo "schoolku_backend/internals/features/users/auth/repository"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

type Deps struct {
	DB   *gorm.DB
	Cfg  *configs.Config
	Log  *zap.Logger
	Fees *feeService.FeeService
}

var startTime time.Time

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := d.Log

	log.Info("setting up base routes")
	BaseRoutes(app, d.DB, d.Cfg)

	jwtAuth := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              d.Cfg.JWTSecret,
		AllowCookieFallback: true,
		Log:                 log,
		BlacklistChecker: func(c *fiber.Ctx, raw string) (bool, error) {
			return authRepo.IsBlacklisted(c.UserContext(), d.DB, raw, d.Cfg.JWTSecret)
		},
	})
	ac := authController.NewAuthController(d.DB, d.Cfg.JWTSecret, d.Cfg.JWTTTL, log)

	// ===================== GROUPS =====================
	api := app.Group("/api")
	public := app.Group("/api/public")
	private := app.Group("/api/u", jwtAuth)
	admin := app.Group("/api/a", jwtAuth)

	// ===================== MOUNT ROUTES =====================
	log.Info("mounting auth routes")
	routeDetails.AuthPublicRoutes(api, ac)
	routeDetails.AuthUserRoutes(private, ac)

	log.Info("mounting finance routes")
	routeDetails.FinancePublicRoutes(public, d.Fees, log)
	routeDetails.FinanceUserRoutes(private, d.Fees, log)
	routeDetails.FinanceAdminRoutes(admin, d.DB, d.Fees, log)

	log.Info("mounting school routes")
	routeDetails.SchoolAdminRoutes(admin, d.DB)
}
