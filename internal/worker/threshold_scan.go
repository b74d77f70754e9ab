package worker

// Scheduled threshold scan: walks all stock rows once per schedule and
// pushes low-stock / near-expiry events to the dispatcher. Mutation-time
// evaluation already covers keys that change; this scan catches breaches
// that develop without a mutation (time passing toward an expiry date).

import (
	"context"

	"stockward/internal/alert"
	"stockward/internal/repository"
	"stockward/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ThresholdScan holds the scan dependencies.
type ThresholdScan struct {
	Stocks    repository.StockRepository
	Evaluator *alert.Evaluator
	Alerts    service.AlertSink
}

// Run performs one full scan pass.
func (s *ThresholdScan) Run(ctx context.Context) {
	stocks, err := s.Stocks.ListWithProduct(ctx)
	if err != nil {
		log.Error().Err(err).Msg("threshold_scan: failed to list stock")
		return
	}

	fired := 0
	for i := range stocks {
		st := &stocks[i]
		minStock := 0
		if st.Product != nil {
			minStock = st.Product.MinStock
		}
		if ev := s.Evaluator.EvaluateStock(st, minStock); ev != nil {
			s.Alerts.Dispatch(*ev)
			fired++
		}
	}

	log.Info().Int("records", len(stocks)).Int("alerts", fired).Msg("threshold_scan: pass complete")
}

// StartThresholdScan schedules the scan with the given cron spec (e.g.
// "0 8 * * *" for daily at 08:00) and returns the started scheduler, which
// the caller stops on shutdown.
func StartThresholdScan(ctx context.Context, scan *ThresholdScan, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { scan.Run(ctx) }); err != nil {
		return nil, err
	}
	c.Start()
	log.Info().Str("schedule", spec).Msg("threshold_scan: scheduled")
	return c, nil
}
