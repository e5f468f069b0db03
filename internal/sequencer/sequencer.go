// Package sequencer picks the page to show on every tick. It is a priority
// ladder of rules: the first rule whose guard matches decides the tick.
package sequencer

import (
	"time"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/page"
)

// State is a sequencer state. It is not always the displayed page: IP_INIT
// shows IP, and I2S_PLAY alternates between two pages.
type State string

const (
	StateInit    State = "INIT"
	StateIPInit  State = "IP_INIT"
	StateVolume  State = "VOLUME"
	StateSaver   State = "SAVER"
	StateMenu    State = "MENU"
	StateSPDIF   State = "SPDIF"
	StateIP      State = "IP"
	StateI2SPlay State = "I2S_PLAY"
)

// DAC inputs as the mixer reports them.
const (
	InputI2S   = "I2S"
	InputSPDIF = "SPDIF"
)

const playerStop = "stop"

// Input is everything a tick feeds the sequencer.
type Input struct {
	Now         time.Time
	DACInput    string
	PlayerState string
	Volume      int
	MenuOn      bool
}

// Output is the decision for one tick.
type Output struct {
	State       State
	Page        string
	Entry       time.Time
	Refresh     bool
	ResetScroll bool
}

// Sequencer owns the page state. It is driven by a single goroutine.
type Sequencer struct {
	timing config.TimingConfig
	log    *zap.Logger
	rules  []rule

	started bool
	out     Output
	anchor  time.Time

	prevVolume int
	prevInput  string
	prevSecond int64
}

func New(timing config.TimingConfig, log *zap.Logger) *Sequencer {
	s := &Sequencer{
		timing: timing,
		log:    log.Named("sequencer"),
		out:    Output{State: StateInit, Page: page.Init, Refresh: true, ResetScroll: true},
	}
	s.rules = s.ladder()
	return s
}

// Current returns the last decision.
func (s *Sequencer) Current() Output { return s.out }

// Step runs the ladder once and returns the decision for this tick.
func (s *Sequencer) Step(in Input) Output {
	if in.PlayerState != "play" && in.PlayerState != "pause" {
		in.PlayerState = playerStop
	}
	prev := s.out

	t := tick{Input: in}
	if s.started {
		t.newSecond = in.Now.Unix() != s.prevSecond
		t.volumeChanged = in.Volume != s.prevVolume
		t.inputSteady = in.DACInput == s.prevInput
	}
	for _, r := range s.rules {
		if r.guard(t) {
			r.action(t)
			break
		}
	}

	s.started = true
	s.prevVolume = in.Volume
	s.prevInput = in.DACInput
	s.prevSecond = in.Now.Unix()

	if s.out.State != prev.State || s.out.Page != prev.Page {
		s.log.Info("sequencer state changed",
			zap.String("from", string(prev.State)),
			zap.String("to", string(s.out.State)),
			zap.String("page", s.out.Page))
	}
	return s.out
}

// tick is one Input plus the comparisons against the previous tick.
type tick struct {
	Input
	newSecond     bool
	volumeChanged bool
	inputSteady   bool
}

type rule struct {
	name   string
	guard  func(t tick) bool
	action func(t tick)
}

// Rules returns the rule names in evaluation order.
func (s *Sequencer) Rules() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.name
	}
	return names
}

func (s *Sequencer) ladder() []rule {
	return []rule{
		{"boot", func(t tick) bool { return !s.started }, func(t tick) {
			s.set(StateInit, "", t.Now)
		}},
		{"init-hold", func(t tick) bool {
			return s.in(StateInit) && s.since(t) < s.timing.Init.Duration
		}, func(t tick) {
			s.hold(false, false)
		}},
		{"init-exit", func(t tick) bool { return s.in(StateInit) }, func(t tick) {
			s.set(StateIPInit, page.IP, t.Now)
		}},
		{"ip-init-hold", func(t tick) bool {
			return s.in(StateIPInit) && s.since(t) < s.timing.IPInit.Duration
		}, func(t tick) {
			s.hold(t.newSecond, false)
		}},
		{"volume-change", func(t tick) bool { return t.volumeChanged }, func(t tick) {
			s.set(StateVolume, "", t.Now)
		}},
		{"volume-hold", func(t tick) bool {
			return s.in(StateVolume) && s.since(t) < s.timing.Volume.Duration
		}, func(t tick) {
			s.hold(false, false)
		}},
		{"saver", func(t tick) bool {
			return s.since(t) >= s.timing.Inactivity.Duration && t.inputSteady &&
				(t.DACInput != InputI2S || t.PlayerState == playerStop)
		}, func(t tick) {
			if !s.in(StateSaver) {
				s.set(StateSaver, "", s.out.Entry)
				return
			}
			s.hold(t.newSecond, t.newSecond)
		}},
		{"menu", func(t tick) bool { return t.MenuOn }, func(t tick) {
			if !s.in(StateMenu) {
				s.set(StateMenu, "", t.Now)
				return
			}
			s.out.Entry = t.Now
			s.hold(true, false)
		}},
		{"spdif", func(t tick) bool { return t.DACInput == InputSPDIF }, func(t tick) {
			if !s.in(StateSPDIF) {
				s.set(StateSPDIF, "", t.Now)
				return
			}
			s.hold(false, false)
		}},
		{"ip", func(t tick) bool {
			return t.PlayerState == playerStop && s.since(t) < s.timing.Inactivity.Duration
		}, func(t tick) {
			if !s.in(StateIP) {
				s.set(StateIP, "", t.Now)
				return
			}
			s.hold(t.newSecond, false)
		}},
		{"play", func(t tick) bool {
			return s.since(t) < s.timing.Inactivity.Duration ||
				(s.in(StateSaver) && t.PlayerState != playerStop)
		}, s.play},
		{"idle", func(t tick) bool { return true }, func(t tick) {
			s.hold(false, false)
		}},
	}
}

// play enters I2S_PLAY on PLAY1 or alternates its two pages on a cycle
// anchored at entry.
func (s *Sequencer) play(t tick) {
	if !s.in(StateI2SPlay) {
		s.set(StateI2SPlay, page.I2SPlay1, t.Now)
		s.anchor = t.Now
		return
	}
	if t.PlayerState != playerStop {
		s.out.Entry = t.Now
	}
	next := SubPage(t.Now.Sub(s.anchor), s.timing.Play1.Duration, s.timing.Play2.Duration)
	s.out.ResetScroll = next != s.out.Page
	s.out.Page = next
	s.out.Refresh = true
}

// SubPage returns the I2S_PLAY page shown at elapsed into the cycle.
func SubPage(elapsed, play1, play2 time.Duration) string {
	cycle := play1 + play2
	if cycle <= 0 || elapsed%cycle < play1 {
		return page.I2SPlay1
	}
	return page.I2SPlay2
}

func (s *Sequencer) in(state State) bool { return s.out.State == state }

func (s *Sequencer) since(t tick) time.Duration { return t.Now.Sub(s.out.Entry) }

// set enters state. An empty displayed page means the page named as the state.
func (s *Sequencer) set(state State, display string, entry time.Time) {
	if display == "" {
		display = string(state)
	}
	s.out = Output{State: state, Page: display, Entry: entry, Refresh: true, ResetScroll: true}
}

func (s *Sequencer) hold(refresh, reset bool) {
	s.out.Refresh = refresh
	s.out.ResetScroll = reset
}
