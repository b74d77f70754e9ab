package worker

// Background goroutine that periodically drains the offline-sync queue,
// replaying pending operations through the stock ledger. Terminal state
// handling (synced / failed / DLQ) lives in the sync service; this loop only
// provides the schedule.

import (
	"context"
	"time"

	"stockward/internal/service"

	"github.com/rs/zerolog/log"
)

// StartSyncLoop launches the drain loop. It ticks every interval and runs
// one Process pass; it respects the context for graceful shutdown.
func StartSyncLoop(ctx context.Context, svc service.SyncService, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("sync_loop: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("sync_loop: shutting down")
				return
			case <-ticker.C:
				if _, err := svc.Process(ctx); err != nil {
					log.Error().Err(err).Msg("sync_loop: drain pass failed")
				}
			}
		}
	}()
}
