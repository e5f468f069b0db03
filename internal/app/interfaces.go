package app

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/audiophonics/raspdac-oled/internal/network"
	"github.com/audiophonics/raspdac-oled/internal/remote"
	"github.com/audiophonics/raspdac-oled/internal/render"
)

// Player is the media player daemon.
type Player interface {
	// Poll refreshes status and current song. Both maps are filled with
	// defaults when the daemon is unreachable.
	Poll(now time.Time) (status, song map[string]string, err error)
	// State is play, pause or stop.
	State() string
	// Volume is 0..100, or -1 when the mixer has no volume.
	Volume() int

	Previous()
	Next()
	Stop()
	Toggle()
	VolumeUp(step int)
	VolumeDown(step int)
	Close() error
}

// Mixer is the DAC driver control surface.
type Mixer interface {
	Poll(ctx context.Context, now time.Time, force bool) error
	// Active maps control name to its value in effect.
	Active() map[string]string
	// Input is the selected DAC input, I2S or SPDIF.
	Input() string
	Apply(ctx context.Context, command, value string) error
	Unmute(ctx context.Context) error
}

// Network reports address and connectivity.
type Network interface {
	Poll(ctx context.Context, now time.Time) network.Snapshot
	// RunProbe blocks until ctx is done.
	RunProbe(ctx context.Context)
}

// Remote hands out at most one key per tick.
type Remote interface {
	Next() (remote.Key, remote.Speed)
	// Run blocks until ctx is done.
	Run(ctx context.Context)
}

// Canvas shows the ops of a tick.
type Canvas interface {
	Draw(ops []render.Op) error
	Close() error
}
