// Package sweeper expires idle matrix sessions in the background.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MikeSquared-Agency/Matrix/internal/hermes"
	"github.com/MikeSquared-Agency/Matrix/internal/metrics"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

// DefaultInterval is used when New is given a non-positive interval.
const DefaultInterval = time.Minute

type Sweeper struct {
	store    store.Store
	hermes   hermes.Client
	logger   *slog.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// New creates a sweeper. h may be nil when event publishing is disabled.
func New(s store.Store, h hermes.Client, interval, ttl time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		logger.Warn("non-positive sweep interval, using default", "interval", interval, "default", DefaultInterval)
		interval = DefaultInterval
	}
	return &Sweeper{
		store:    s,
		hermes:   h,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep removes sessions idle for longer than the TTL and refreshes the
// session gauges. It returns the number of sessions removed.
func (s *Sweeper) Sweep(ctx context.Context) int {
	expired := 0
	if s.ttl > 0 {
		ids, err := s.store.DeleteIdle(ctx, s.now().Add(-s.ttl))
		if err != nil {
			s.logger.Error("failed to expire idle sessions", "error", err)
		}
		for _, id := range ids {
			s.logger.Info("session expired", "session_id", id)
			metrics.SessionsExpired.Inc()
			if s.hermes != nil {
				_ = s.hermes.Publish(hermes.SubjectSessionExpired(id.String()), hermes.SessionEvent{
					SessionID: id.String(),
					Timestamp: s.now().UTC(),
				})
			}
		}
		expired = len(ids)
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to read session stats", "error", err)
		return expired
	}
	byStage := make(map[string]int, len(stats.ByStage))
	for stage, n := range stats.ByStage {
		byStage[string(stage)] = n
	}
	metrics.SetActiveSessions(byStage)
	return expired
}
