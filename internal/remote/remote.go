// Package remote reads the infra-red remote and turns its keys into
// symbolic events for the tick loop.
package remote

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
)

// ErrNoDevice is returned by a Source whose device is absent. The remote
// then reports KeyNone forever.
var ErrNoDevice = errors.New("remote device not found")

const (
	bufferSize = 16
	retryDelay = 2 * time.Second
)

// Event is one key press as read from a source.
type Event struct {
	Key Key
	At  time.Time
}

// Source blocks reading key presses into out until ctx is done or the
// device fails.
type Source interface {
	Run(ctx context.Context, out chan<- Event) error
}

// Remote buffers events from a Source and hands them out one per tick.
type Remote struct {
	src     Source
	log     *zap.Logger
	fastGap time.Duration
	events  chan Event
	last    time.Time
}

func New(cfg config.RemoteConfig, src Source, log *zap.Logger) *Remote {
	return &Remote{
		src:     src,
		log:     log.Named("remote"),
		fastGap: cfg.FastGap.Duration,
		events:  make(chan Event, bufferSize),
	}
}

// NewSource builds the source named in cfg. "none" yields nil.
func NewSource(cfg config.RemoteConfig) Source {
	switch cfg.Source {
	case "evdev":
		return &EvdevSource{Name: cfg.Device}
	case "lirc":
		return &LircSource{Path: cfg.LircSocket}
	default:
		return nil
	}
}

// Run reads the source until ctx is done. Transient read errors are retried;
// ErrNoDevice ends the reader.
func (r *Remote) Run(ctx context.Context) {
	if r.src == nil {
		return
	}
	for {
		err := r.src.Run(ctx, r.events)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ErrNoDevice) {
			r.log.Warn("remote disabled", zap.Error(err))
			return
		}
		r.log.Warn("remote read failed", zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

// Next returns the oldest buffered key without blocking, or KeyNone.
func (r *Remote) Next() (Key, Speed) {
	select {
	case ev := <-r.events:
		speed := Slow
		if !r.last.IsZero() && ev.At.Sub(r.last) < r.fastGap {
			speed = Fast
		}
		r.last = ev.At
		return ev.Key, speed
	default:
		return KeyNone, Slow
	}
}

// send queues ev unless the buffer is full; a stalled display drops keys
// rather than blocking the reader.
func send(ctx context.Context, out chan<- Event, ev Event) {
	if ev.Key == KeyNone {
		return
	}
	select {
	case out <- ev:
	case <-ctx.Done():
	default:
	}
}
