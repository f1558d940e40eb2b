package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schoolku_backend/internals/constants"
	feeController "schoolku_backend/internals/features/finance/payments/controller"
	svc "schoolku_backend/internals/features/finance/payments/service"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

/*
Admin routes: fee ledger (mount: FeeAdminRoutes(app.Group("/api/a"), feeSvc, log))
- /api/a/fees/students/:id/ledger|status|check-months
- /api/a/fees/offline-payments
- /api/a/fees/online-payments
- /api/a/fees/report, /api/a/fees/defaulters
*/
func FeeAdminRoutes(r fiber.Router, s *svc.FeeService, log *zap.Logger) {
	ledgerCtl := feeController.NewLedgerController(s, log)
	offlineCtl := feeController.NewOfflinePaymentController(s, log)
	onlineCtl := feeController.NewOnlinePaymentController(s, log)
	reportCtl := feeController.NewReportController(s, log)

	fees := r.Group("/fees",
		authMiddleware.OnlyRoles(constants.RoleErrorFinance("the fee ledger"), constants.FinanceRoles...),
	)

	students := fees.Group("/students/:id")
	students.Get("/ledger", ledgerCtl.Ledger)
	students.Get("/status", ledgerCtl.Status)
	students.Post("/check-months", ledgerCtl.CheckMonths)

	offline := fees.Group("/offline-payments")
	offline.Post("/", offlineCtl.Record)
	offline.Get("/", offlineCtl.List)
	offline.Delete("/:id", offlineCtl.Void)

	fees.Get("/online-payments", onlineCtl.List)

	fees.Get("/report", reportCtl.Report)
	fees.Get("/defaulters", reportCtl.Defaulters)
}
