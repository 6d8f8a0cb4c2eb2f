package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"citypulse/backend/internal/service"
	"citypulse/backend/pkg/logger"
)

// Scheduler periodically refreshes the service alert feed and retries
// comments whose translation is still pending.
type Scheduler struct {
	alertService    service.AlertService
	analysisService service.AnalysisService
	interval        time.Duration
	stopCh          chan struct{}
	wg              sync.WaitGroup
	cancelFunc      context.CancelFunc // cancels the current tick
	mu              sync.Mutex         // protects cancelFunc
}

func New(alertService service.AlertService, analysisService service.AnalysisService, interval time.Duration) *Scheduler {
	return &Scheduler{
		alertService:    alertService,
		analysisService: analysisService,
		interval:        interval,
		stopCh:          make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "interval", s.interval)
}

func (s *Scheduler) Stop() {
	// Cancel any tick in flight first
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) tick() {
	// Bound each tick by the interval so a stuck fetch cannot overlap the
	// next one.
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	s.refreshAlerts(ctx)
	s.retryPending(ctx)
}

func (s *Scheduler) refreshAlerts(ctx context.Context) {
	if _, err := s.alertService.Refresh(ctx); err != nil {
		switch {
		case ctx.Err() != nil:
			logger.Info("scheduled alert refresh cancelled")
		case errors.Is(err, service.ErrAlertsNotConfigured):
			logger.Debug("scheduled alert refresh skipped", "reason", "not configured")
		case errors.Is(err, service.ErrAlreadyRefreshing):
			logger.Debug("scheduled alert refresh skipped", "reason", "already running")
		default:
			logger.Error("scheduled alert refresh", "error", err)
		}
	}
}

func (s *Scheduler) retryPending(ctx context.Context) {
	n, err := s.analysisService.ReanalyzePending(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("pending translation retry cancelled")
			return
		}
		logger.Error("pending translation retry", "error", err)
		return
	}
	if n > 0 {
		logger.Info("pending translations processed", "count", n)
	}
}
