package scheduler

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"skb_backend/internals/features/users/auth/repository"
)

const cleanupBatch = 500

// StartBlacklistCleanupScheduler purges expired revoked tokens until ctx is done.
func StartBlacklistCleanupScheduler(ctx context.Context, repo repository.BlacklistRepository, every time.Duration) {
	if every <= 0 {
		every = 24 * time.Hour
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			RunBlacklistCleanup(ctx, repo, time.Now().UTC())
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// RunBlacklistCleanup deletes in batches until nothing expired is left.
func RunBlacklistCleanup(ctx context.Context, repo repository.BlacklistRepository, now time.Time) int64 {
	var total int64
	for {
		n, err := repo.PurgeExpired(ctx, now, cleanupBatch)
		if err != nil {
			logrus.WithError(err).Error("token blacklist cleanup failed")
			return total
		}
		total += n
		if n < cleanupBatch {
			break
		}
	}
	if total > 0 {
		logrus.WithField("deleted", total).Info("token blacklist cleaned")
	}
	return total
}
