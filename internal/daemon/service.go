// Package daemon runs the periodic sync loop: outbox flush, pull, and
// efficiency roll-up on a fixed interval. The service is an explicit
// long-lived object constructed once at startup; there is never more
// than one active schedule per service.
package daemon

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	reposync "github.com/ripemerchant/repsync/internal/sync"
)

// Service drives the periodic sync cycle.
type Service struct {
	engine   *reposync.Engine
	interval time.Duration

	mu    sync.Mutex
	sched gocron.Scheduler
}

// New creates a service that ticks at the given interval.
func New(engine *reposync.Engine, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Service{engine: engine, interval: interval}
}

// Start begins the periodic cycle, running one immediate tick. Calling
// Start on a running service is a no-op, so at most one schedule is
// ever active.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched != nil {
		slog.Debug("daemon: already running, ignoring start")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.tick),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule sync job: %w", err)
	}

	sched.Start()
	s.sched = sched
	slog.Info("daemon: periodic sync started", "interval", s.interval)
	return nil
}

// Stop halts the schedule. Safe to call on a stopped service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sched == nil {
		return
	}
	if err := s.sched.Shutdown(); err != nil {
		slog.Warn("daemon: scheduler shutdown", "err", err)
	}
	s.sched = nil
	slog.Info("daemon: periodic sync stopped")
}

// Running reports whether the periodic cycle is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

// Jobs returns the number of scheduled jobs, for introspection.
func (s *Service) Jobs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return 0
	}
	return len(s.sched.Jobs())
}

// tick runs one sync cycle. Each step's failure is logged and
// swallowed so one failing step never halts the schedule.
func (s *Service) tick() {
	if result, err := s.engine.Flush(); err != nil {
		slog.Warn("daemon: flush", "err", err)
	} else if result.Delivered+result.Dropped+result.Failed > 0 {
		slog.Info("daemon: flushed outbox",
			"delivered", result.Delivered, "failed", result.Failed, "dropped", result.Dropped)
	}

	if err := s.engine.Pull(); err != nil {
		slog.Warn("daemon: pull", "err", err)
	}

	if err := s.engine.RollupEfficiency(); err != nil {
		slog.Warn("daemon: efficiency rollup", "err", err)
	}
}
