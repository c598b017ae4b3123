package scheduler

import (
	"context"
	"log"
	"time"

	"suryaghar_backend/internals/configs"
	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
)

const cleanupBatch = 100

// CleanupExpired deletes up to one batch of blacklist rows whose token
// expired more than ttl ago. It returns how many rows were removed.
func CleanupExpired(ctx context.Context, blacklist datastore.Table[model.TokenBlacklist], now time.Time, ttl time.Duration) (int, error) {
	deleteBefore := now.Add(-ttl)
	expired, err := blacklist.Find(ctx, datastore.Where(
		datastore.Lt("expired_at", deleteBefore),
		datastore.IsNull("deleted_at"),
	).Page(cleanupBatch, 0))
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, row := range expired {
		if err := blacklist.Delete(ctx, row.ID); err != nil && !datastore.IsNotFound(err) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// StartBlacklistCleanupScheduler runs CleanupExpired now and then every 24h
// until ctx is cancelled.
func StartBlacklistCleanupScheduler(ctx context.Context, blacklist datastore.Table[model.TokenBlacklist]) {
	ttlDays := configs.GetEnvInt("TOKEN_BLACKLIST_TTL_DAYS", 7)
	ttl := time.Duration(ttlDays) * 24 * time.Hour

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			log.Println("[CLEANUP] Running token_blacklist cleanup...")
			runCtx, cancel := context.WithTimeout(ctx, time.Minute)
			n, err := CleanupExpired(runCtx, blacklist, time.Now(), ttl)
			cancel()
			switch {
			case datastore.IsNotConfigured(err):
				log.Println("[CLEANUP] Datastore not configured, scheduler stopped")
				return
			case err != nil:
				log.Printf("[CLEANUP ERROR] Failed to remove expired tokens: %v", err)
			case n > 0:
				log.Printf("[CLEANUP] %d expired tokens removed", n)
			default:
				log.Println("[CLEANUP] Nothing to remove")
			}

			select {
			case <-ctx.Done():
				log.Println("[CLEANUP] Scheduler stopped")
				return
			case <-ticker.C:
			}
		}
	}()
}
