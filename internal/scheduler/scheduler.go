package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// TickFunc runs one reminder pass. A returned error marks the tick as failed
// but never stops the scheduler; the next tick retries on schedule.
type TickFunc func(ctx context.Context) error

// Status is a snapshot of the runner for the control API.
type Status struct {
	Running   bool       `json:"running"`
	LastTick  *time.Time `json:"lastTick,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

type Scheduler struct {
	interval time.Duration
	tickFn   TickFunc

	running atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// statusMu is separate from mu: Stop holds mu while waiting for an
	// in-flight tick, and that tick records its outcome here.
	statusMu sync.Mutex
	lastTick *time.Time
	lastErr  string
}

func New(interval time.Duration, tickFn TickFunc) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("interval must be > 0")
	}
	if tickFn == nil {
		return nil, errors.New("tickFn must not be nil")
	}
	return &Scheduler{
		interval: interval,
		tickFn:   tickFn,
		done:     make(chan struct{}),
	}, nil
}

func (s *Scheduler) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running.Load() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running.Store(true)

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		slog.Info("scheduler started", "interval", s.interval.String())

		s.safeTick(ctx)

		for {
			select {
			case <-ctx.Done():
				slog.Info("scheduler stopping")
				return
			case <-ticker.C:
				s.safeTick(ctx)
			}
		}
	}()

	return true
}

func (s *Scheduler) Stop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running.Load() {
		return false
	}

	s.cancel()
	<-s.done
	s.running.Store(false)

	slog.Info("scheduler stopped")
	return true
}

func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

func (s *Scheduler) Status() Status {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()

	return Status{
		Running:   s.running.Load(),
		LastTick:  s.lastTick,
		LastError: s.lastErr,
	}
}

func (s *Scheduler) safeTick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduler tick panic recovered", "panic", r)
		}
	}()

	start := time.Now()
	err := s.tickFn(ctx)

	s.statusMu.Lock()
	t := start
	s.lastTick = &t
	if err != nil {
		s.lastErr = err.Error()
	} else {
		s.lastErr = ""
	}
	s.statusMu.Unlock()

	if err != nil {
		slog.Error("scheduler tick failed", "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return
	}
	slog.Info("scheduler tick completed", "duration_ms", time.Since(start).Milliseconds())
}
