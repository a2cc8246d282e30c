package tasks

import (
	"context"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

// StartAnnouncementCron refreshes the nearly-sold-out announcement on a
// fixed interval until ctx is cancelled. It runs one refresh immediately
// so the cache is warm right after startup.
func StartAnnouncementCron(ctx context.Context, confService domain.ConferenceService, interval time.Duration, logger *slog.Logger) {
	go func() {
		refresh := func() {
			if _, err := confService.RecomputeAnnouncement(ctx); err != nil {
				logger.Error("announcement refresh failed", "error", err)
			}
		}
		refresh()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refresh()
			}
		}
	}()
}
