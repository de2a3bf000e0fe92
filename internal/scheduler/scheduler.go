// Package scheduler runs the periodic price refresh when a cron schedule is
// configured.
package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/stockportfoliotracker/backend/internal/service"
)

// Scheduler wraps a cron runner that periodically refreshes portfolio and
// watchlist prices.
type Scheduler struct {
	cron           *cron.Cron
	refreshService *service.RefreshService
	stockService   *service.StockService
}

// New creates a Scheduler for the given services.
func New(refreshService *service.RefreshService, stockService *service.StockService) *Scheduler {
	return &Scheduler{
		cron:           cron.New(),
		refreshService: refreshService,
		stockService:   stockService,
	}
}

// Start registers the refresh job under the given cron spec and starts the
// runner. An empty spec disables scheduling.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(spec, s.runRefresh); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduled price refresh: %s", spec)
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runRefresh() {
	ctx := context.Background()

	result, err := s.refreshService.RefreshPortfolio(ctx)
	if err != nil {
		log.Printf("scheduled portfolio refresh failed: %v", err)
	} else {
		log.Printf("scheduled portfolio refresh: %d transactions updated, %d tickers failed",
			result.UpdatedCount, len(result.FailedTickers))
	}

	stockResult, err := s.stockService.RefreshAll(ctx)
	if err != nil {
		log.Printf("scheduled watchlist refresh failed: %v", err)
	} else {
		log.Printf("scheduled watchlist refresh: %d stocks updated, %d tickers failed",
			stockResult.UpdatedCount, len(stockResult.FailedTickers))
	}
}
