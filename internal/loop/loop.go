// Package loop paces the display tick at a fixed period.
package loop

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Clock is the time source of a Scheduler.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever comes first.
	Sleep(ctx context.Context, d time.Duration) error
}

// WallClock is the system clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

func (WallClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TickFunc is one iteration of work. now is the tick start time.
type TickFunc func(ctx context.Context, now time.Time)

// Scheduler runs a TickFunc every period. A tick that takes longer than the
// period is followed by the next one immediately; ticks are never skipped or
// batched.
type Scheduler struct {
	period time.Duration
	clock  Clock
	log    *zap.Logger

	ticks    uint64
	overruns uint64
}

func New(period time.Duration, clock Clock, log *zap.Logger) *Scheduler {
	if clock == nil {
		clock = WallClock{}
	}
	return &Scheduler{period: period, clock: clock, log: log.Named("loop")}
}

// Run ticks until ctx is done and returns ctx's error.
func (s *Scheduler) Run(ctx context.Context, tick TickFunc) error {
	s.log.Info("tick loop starting", zap.Duration("period", s.period))
	for {
		if err := ctx.Err(); err != nil {
			s.log.Info("tick loop stopped", zap.Uint64("ticks", s.ticks), zap.Uint64("overruns", s.overruns))
			return err
		}
		start := s.clock.Now()
		tick(ctx, start)
		s.ticks++

		elapsed := s.clock.Now().Sub(start)
		wait := s.period - elapsed
		if wait < 0 {
			s.overruns++
			s.log.Debug("tick overran its period", zap.Duration("elapsed", elapsed))
			wait = 0
		}
		if err := s.clock.Sleep(ctx, wait); err != nil {
			s.log.Info("tick loop stopped", zap.Uint64("ticks", s.ticks), zap.Uint64("overruns", s.overruns))
			return err
		}
	}
}

// Ticks returns how many ticks have run.
func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Overruns returns how many ticks took longer than the period.
func (s *Scheduler) Overruns() uint64 { return s.overruns }
