package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authRepo "schoolku_backend/internals/features/users/auth/repository"
)

// RegisterBlacklistCleanup purges token_blacklist rows that expired more
// than `retention` ago.
func RegisterBlacklistCleanup(c *cron.Cron, db *gorm.DB, schedule string, retention time.Duration, log *zap.Logger) (cron.EntryID, error) {
	log = log.Named("blacklist-cleanup")
	return c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		n, err := authRepo.PurgeBlacklist(ctx, db, time.Now().Add(-retention))
		if err != nil {
			log.Error("purge failed", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("purged expired tokens", zap.Int64("deleted", n))
		}
	})
}
