// Package scheduler refills the joke store on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"jokes-fetcher/internal/config"
	"jokes-fetcher/internal/service"
	"jokes-fetcher/pkg/logger"
)

const runTimeout = 5 * time.Minute

type Retriever interface {
	Retrieve(ctx context.Context, count int) (*service.RetrieveResult, error)
}

type Scheduler struct {
	retriever Retriever
	cfg       config.SchedulerConfig
}

func New(retriever Retriever, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{retriever: retriever, cfg: cfg}
}

// Start runs one retrieval immediately and then one per interval until ctx
// is done. A failed run is logged and the next tick tries again.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		return nil
	}

	logger.Info("Scheduler started",
		logger.Duration("interval", s.cfg.Interval),
		logger.Int("count", s.cfg.Count),
	)

	s.run(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Scheduler stopped")
			return nil
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	res, err := s.retriever.Retrieve(runCtx, s.cfg.Count)
	if err != nil {
		logger.Error("Scheduled retrieve failed", logger.Err(err))
		return
	}
	logger.Info("Scheduled retrieve completed", logger.Int("saved", res.SavedCount))
}
