// Package scheduler runs the periodic background jobs of the service.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// AnalyticsRefresher recomputes the analytics cache of every supplier
type AnalyticsRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// AnalyticsRefreshConfig holds configuration for the analytics refresh scheduler
type AnalyticsRefreshConfig struct {
	Enabled bool

	// Interval between two refresh runs
	Interval time.Duration

	// JobTimeout bounds a single run
	JobTimeout time.Duration

	// RunOnStart triggers a run immediately instead of after the first interval
	RunOnStart bool
}

// DefaultAnalyticsRefreshConfig returns default configuration
func DefaultAnalyticsRefreshConfig() AnalyticsRefreshConfig {
	return AnalyticsRefreshConfig{
		Enabled:    true,
		Interval:   15 * time.Minute,
		JobTimeout: 5 * time.Minute,
		RunOnStart: true,
	}
}

// AnalyticsRefreshScheduler periodically rebuilds the supplier dashboards
type AnalyticsRefreshScheduler struct {
	refresher AnalyticsRefresher
	logger    *zap.Logger
	config    AnalyticsRefreshConfig
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewAnalyticsRefreshScheduler creates a new analytics refresh scheduler
func NewAnalyticsRefreshScheduler(refresher AnalyticsRefresher, logger *zap.Logger, config AnalyticsRefreshConfig) *AnalyticsRefreshScheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultAnalyticsRefreshConfig().Interval
	}
	return &AnalyticsRefreshScheduler{
		refresher: refresher,
		logger:    logger,
		config:    config,
	}
}

// Start starts the refresh loop
func (s *AnalyticsRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Analytics refresh scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Analytics refresh scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *AnalyticsRefreshScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Analytics refresh scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Analytics refresh scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the loop is active
func (s *AnalyticsRefreshScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *AnalyticsRefreshScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.RunOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Analytics refresh loop stopping")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single refresh run
func (s *AnalyticsRefreshScheduler) RunOnce(ctx context.Context) {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	refreshed, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		s.logger.Error("Analytics refresh run finished with errors",
			zap.Int("refreshed", refreshed),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Analytics refresh run completed",
		zap.Int("refreshed", refreshed),
		zap.Duration("duration", time.Since(start)),
	)
}
