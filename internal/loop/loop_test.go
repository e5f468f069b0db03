package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeClock advances only when ticked work or sleeps move it.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

func TestRunPacesTicks(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	s := New(200*time.Millisecond, clock, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	costs := []time.Duration{50 * time.Millisecond, 200 * time.Millisecond, 350 * time.Millisecond, 0}
	var starts []time.Time
	err := s.Run(ctx, func(ctx context.Context, now time.Time) {
		starts = append(starts, now)
		clock.now = clock.now.Add(costs[len(starts)-1])
		if len(starts) == len(costs) {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}

	want := []time.Duration{150 * time.Millisecond, 0, 0, 200 * time.Millisecond}
	if len(clock.sleeps) != len(want) {
		t.Fatalf("sleeps: %v", clock.sleeps)
	}
	for i := range want {
		if clock.sleeps[i] != want[i] {
			t.Errorf("sleep %d: got %v, want %v", i, clock.sleeps[i], want[i])
		}
	}
	if s.Ticks() != 4 || s.Overruns() != 1 {
		t.Errorf("ticks %d overruns %d", s.Ticks(), s.Overruns())
	}
	// An overrun tick is followed immediately by the next one.
	if got := starts[3].Sub(starts[2]); got != 350*time.Millisecond {
		t.Errorf("gap after overrun: %v", got)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(time.Second, &fakeClock{}, zap.NewNop())
	err := s.Run(ctx, func(context.Context, time.Time) { t.Fatal("tick after cancel") })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v", err)
	}
}

func TestWallClockSleepCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := (WallClock{}).Sleep(ctx, time.Minute); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("got %v", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Error("sleep ignored the context")
	}
	if err := (WallClock{}).Sleep(context.Background(), 0); err != nil {
		t.Errorf("zero sleep: %v", err)
	}
}
