package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"schoolku_backend/internals/features/finance/payments/service"
)

// RegisterOrderReaper schedules ExpireStaleOrders on c.
func RegisterOrderReaper(c *cron.Cron, svc *service.FeeService, schedule string, log *zap.Logger) (cron.EntryID, error) {
	log = log.Named("order-reaper")
	return c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := svc.ExpireStaleOrders(ctx)
		if err != nil {
			log.Error("[REAPER] gagal expire order", zap.Error(err))
			return
		}
		log.Debug("[REAPER] selesai", zap.Int("expired", n))
	})
}
