package sequencer

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/page"
)

var t0 = time.Unix(1_700_000_000, 0)

type harness struct {
	t  *testing.T
	s  *Sequencer
	in Input
}

func newHarness(t *testing.T, in Input) *harness {
	return &harness{t: t, s: New(config.DefaultConfig().Timing, zap.NewNop()), in: in}
}

func (h *harness) at(d time.Duration) Output {
	h.in.Now = t0.Add(d)
	return h.s.Step(h.in)
}

// run ticks every 200ms over [from, to] and returns the last output.
func (h *harness) run(from, to time.Duration) Output {
	var out Output
	for d := from; d <= to; d += 200 * time.Millisecond {
		out = h.at(d)
	}
	return out
}

func (h *harness) expect(out Output, state State, pg string) {
	h.t.Helper()
	if out.State != state || out.Page != pg {
		h.t.Fatalf("at %v: got %s/%s, want %s/%s", h.in.Now.Sub(t0), out.State, out.Page, state, pg)
	}
}

func playing() Input {
	return Input{DACInput: InputI2S, PlayerState: "play", Volume: 40}
}

func TestLadderOrder(t *testing.T) {
	want := []string{
		"boot", "init-hold", "init-exit", "ip-init-hold", "volume-change", "volume-hold",
		"saver", "menu", "spdif", "ip", "play", "idle",
	}
	if got := New(config.DefaultConfig().Timing, zap.NewNop()).Rules(); !slices.Equal(got, want) {
		t.Errorf("got %v", got)
	}
}

func TestBoot(t *testing.T) {
	h := newHarness(t, playing())
	out := h.at(0)
	h.expect(out, StateInit, page.Init)
	if !out.Refresh || !out.ResetScroll {
		t.Error("boot should refresh and reset")
	}
	out = h.run(200*time.Millisecond, 9800*time.Millisecond)
	h.expect(out, StateInit, page.Init)
	if out.Refresh {
		t.Error("INIT hold should not refresh")
	}

	out = h.at(10 * time.Second)
	h.expect(out, StateIPInit, page.IP)
	if !out.Refresh {
		t.Error("entering IP_INIT should refresh")
	}
	if out = h.at(10200 * time.Millisecond); out.Refresh {
		t.Error("IP_INIT refreshes only when the second changes")
	}
	if out = h.at(11 * time.Second); !out.Refresh || out.ResetScroll {
		t.Errorf("IP_INIT second tick: %+v", out)
	}

	h.run(11200*time.Millisecond, 19800*time.Millisecond)
	out = h.at(20 * time.Second)
	h.expect(out, StateI2SPlay, page.I2SPlay1)
	if h.s.Current() != out {
		t.Errorf("Current() = %+v, want %+v", h.s.Current(), out)
	}
}

func TestSubPage(t *testing.T) {
	play1, play2 := 15*time.Second, 10*time.Second
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, page.I2SPlay1},
		{14 * time.Second, page.I2SPlay1},
		{15 * time.Second, page.I2SPlay2},
		{16 * time.Second, page.I2SPlay2},
		{25 * time.Second, page.I2SPlay1},
		{41 * time.Second, page.I2SPlay2},
	}
	for _, tt := range tests {
		if got := SubPage(tt.elapsed, play1, play2); got != tt.want {
			t.Errorf("SubPage(%v) = %s, want %s", tt.elapsed, got, tt.want)
		}
	}
}

func TestPlayAlternates(t *testing.T) {
	h := newHarness(t, playing())
	h.run(0, 20*time.Second)

	out := h.run(20200*time.Millisecond, 34800*time.Millisecond)
	h.expect(out, StateI2SPlay, page.I2SPlay1)
	if !out.Refresh || out.ResetScroll {
		t.Errorf("steady PLAY1: %+v", out)
	}

	out = h.at(35 * time.Second)
	h.expect(out, StateI2SPlay, page.I2SPlay2)
	if !out.ResetScroll {
		t.Error("sub-page change should reset scrolling")
	}
	if out = h.at(35200 * time.Millisecond); out.ResetScroll {
		t.Error("reset should last one tick")
	}

	out = h.run(35400*time.Millisecond, 45*time.Second)
	h.expect(out, StateI2SPlay, page.I2SPlay1)
	if !out.ResetScroll {
		t.Error("wrap back to PLAY1 should reset scrolling")
	}
}

func TestPlayingHoldsOffSaver(t *testing.T) {
	h := newHarness(t, playing())
	out := h.run(0, 400*time.Second)
	if out.State != StateI2SPlay {
		t.Fatalf("got %s after 400s of playback", out.State)
	}
	if !out.Entry.Equal(h.in.Now) {
		t.Errorf("entry should follow now while playing, got %v", out.Entry.Sub(t0))
	}
}

func TestVolumeHold(t *testing.T) {
	h := newHarness(t, playing())
	h.run(0, 36800*time.Millisecond)

	h.in.Volume = 45
	out := h.at(37 * time.Second)
	h.expect(out, StateVolume, page.Volume)

	// Player and input changes do not cut the hold short.
	h.in.PlayerState = "stop"
	h.in.DACInput = InputSPDIF
	h.expect(h.run(37200*time.Millisecond, 38800*time.Millisecond), StateVolume, page.Volume)

	// Another change restarts the timer.
	h.in.Volume = 50
	h.at(39 * time.Second)
	out = h.run(39200*time.Millisecond, 42800*time.Millisecond)
	h.expect(out, StateVolume, page.Volume)
	if out.Refresh {
		t.Error("VOLUME hold should not force refresh")
	}

	h.expect(h.at(43*time.Second), StateSPDIF, page.SPDIF)
}

func TestVolumeReturnsToPlay(t *testing.T) {
	h := newHarness(t, playing())
	h.run(0, 36800*time.Millisecond)
	h.expect(h.at(37*time.Second), StateI2SPlay, page.I2SPlay2)

	h.in.Volume = 45
	h.expect(h.at(37200*time.Millisecond), StateVolume, page.Volume)
	h.expect(h.run(37400*time.Millisecond, 41*time.Second), StateVolume, page.Volume)

	out := h.at(41200 * time.Millisecond)
	h.expect(out, StateI2SPlay, page.I2SPlay1)
	if !out.Refresh || !out.ResetScroll {
		t.Errorf("re-entry: %+v", out)
	}
}

func TestSaver(t *testing.T) {
	h := newHarness(t, Input{DACInput: InputI2S, PlayerState: "stop", Volume: 40})
	h.run(0, 20*time.Second)
	h.expect(h.at(20*time.Second), StateIP, page.IP)
	ipEntry := t0.Add(20 * time.Second)

	out := h.run(20200*time.Millisecond, 259800*time.Millisecond)
	h.expect(out, StateIP, page.IP)

	out = h.at(260 * time.Second)
	h.expect(out, StateSaver, page.Saver)
	if !out.Entry.Equal(ipEntry) {
		t.Errorf("saver should keep the previous entry time, got %v", out.Entry.Sub(t0))
	}

	if out = h.at(260200 * time.Millisecond); out.Refresh || !out.Entry.Equal(ipEntry) {
		t.Errorf("saver mid-second: %+v", out)
	}
	if out = h.at(261 * time.Second); !out.Refresh || !out.ResetScroll {
		t.Errorf("saver should refresh and re-roll each second: %+v", out)
	}

	// Playback resuming on I2S leaves the saver.
	h.in.PlayerState = "play"
	h.expect(h.at(262*time.Second), StateI2SPlay, page.I2SPlay1)
}

// The saver rule sits above the menu rule, so a menu opened over the saver
// on a stopped I2S player is not shown.
func TestSaverPreemptsMenu(t *testing.T) {
	h := newHarness(t, Input{DACInput: InputI2S, PlayerState: "stop", Volume: 40})
	h.run(0, 260*time.Second)
	h.expect(h.s.Current(), StateSaver, page.Saver)

	h.in.MenuOn = true
	h.expect(h.run(260200*time.Millisecond, 262*time.Second), StateSaver, page.Saver)

	// Switching to SPDIF lets the menu through: the input is no longer
	// steady for one tick.
	h.in.DACInput = InputSPDIF
	h.expect(h.at(262200*time.Millisecond), StateMenu, page.Menu)
}

func TestSaverNeedsSteadyInput(t *testing.T) {
	h := newHarness(t, Input{DACInput: InputSPDIF, PlayerState: "stop", Volume: 40})
	h.run(0, 20*time.Second)
	h.expect(h.at(20*time.Second), StateSPDIF, page.SPDIF)
	h.run(20200*time.Millisecond, 259800*time.Millisecond)

	// The input switch tick matches no rule past the inactivity timeout, so
	// the page holds; the saver takes over once the input is steady again.
	h.in.DACInput = InputI2S
	out := h.at(260 * time.Second)
	h.expect(out, StateSPDIF, page.SPDIF)
	if out.Refresh {
		t.Error("an unmatched tick should not refresh")
	}
	h.expect(h.at(260200*time.Millisecond), StateSaver, page.Saver)
}

func TestMenu(t *testing.T) {
	h := newHarness(t, Input{DACInput: InputSPDIF, PlayerState: "stop", Volume: 40})
	h.run(0, 20*time.Second)

	h.in.MenuOn = true
	h.expect(h.at(20200*time.Millisecond), StateMenu, page.Menu)
	out := h.run(20400*time.Millisecond, 400*time.Second)
	h.expect(out, StateMenu, page.Menu)
	if !out.Refresh || out.ResetScroll {
		t.Errorf("menu hold: %+v", out)
	}
	if !out.Entry.Equal(h.in.Now) {
		t.Error("an open menu should keep resetting the inactivity clock")
	}

	h.in.MenuOn = false
	h.expect(h.at(400200*time.Millisecond), StateSPDIF, page.SPDIF)
}

func TestUnknownPlayerStateIsStop(t *testing.T) {
	h := newHarness(t, Input{DACInput: InputI2S, PlayerState: "buffering", Volume: 40})
	h.run(0, 20*time.Second)
	h.expect(h.at(20*time.Second), StateIP, page.IP)
}

func TestOnePagePerTick(t *testing.T) {
	pages := []string{page.Init, page.IP, page.Volume, page.Saver, page.Menu, page.SPDIF, page.I2SPlay1, page.I2SPlay2}
	states := []string{"play", "pause", "stop", "??"}
	inputs := []string{InputI2S, InputSPDIF}
	rng := rand.New(rand.NewPCG(7, 11))

	h := newHarness(t, playing())
	for i := 0; i < 20000; i++ {
		if rng.IntN(50) == 0 {
			h.in.PlayerState = states[rng.IntN(len(states))]
		}
		if rng.IntN(200) == 0 {
			h.in.DACInput = inputs[rng.IntN(len(inputs))]
		}
		if rng.IntN(100) == 0 {
			h.in.Volume = rng.IntN(101)
		}
		if rng.IntN(300) == 0 {
			h.in.MenuOn = !h.in.MenuOn
		}
		out := h.at(time.Duration(i) * 200 * time.Millisecond)
		if !slices.Contains(pages, out.Page) {
			t.Fatalf("tick %d: page %q", i, out.Page)
		}
	}
}

// guard returns the named rule's guard evaluated on s as it stands.
func guard(t *testing.T, s *Sequencer, name string) func(tick) bool {
	t.Helper()
	for _, r := range s.rules {
		if r.name == name {
			return r.guard
		}
	}
	t.Fatalf("no rule %q", name)
	return nil
}

func TestGuards(t *testing.T) {
	const idle = 240 * time.Second
	tests := []struct {
		name   string
		rule   string
		state  State
		since  time.Duration
		input  string
		player string
		steady bool
		want   bool
	}{
		{"saver after timeout on stopped I2S", "saver", StateIP, idle, InputI2S, playerStop, true, true},
		{"saver before timeout", "saver", StateIP, idle - time.Second, InputI2S, playerStop, true, false},
		{"saver on SPDIF while playing", "saver", StateSPDIF, idle, InputSPDIF, "play", true, true},
		{"saver held off by I2S playback", "saver", StateSaver, idle, InputI2S, "play", true, false},
		{"saver needs a steady input", "saver", StateSPDIF, idle, InputI2S, playerStop, false, false},

		{"ip while stopped", "ip", StateIP, time.Second, InputI2S, playerStop, true, true},
		{"ip gives way at timeout", "ip", StateIP, idle, InputI2S, playerStop, true, false},
		{"ip not while playing", "ip", StateI2SPlay, time.Second, InputI2S, "play", true, false},

		{"play within timeout", "play", StateIP, time.Second, InputI2S, "play", true, true},
		{"play past timeout", "play", StateIP, idle, InputI2S, "pause", true, false},
		{"play resumes from saver", "play", StateSaver, 10 * idle, InputI2S, "play", true, true},
		{"paused playback also leaves saver", "play", StateSaver, 10 * idle, InputI2S, "pause", true, true},
		{"stopped saver stays", "play", StateSaver, 10 * idle, InputI2S, playerStop, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(config.DefaultConfig().Timing, zap.NewNop())
			s.started = true
			s.out = Output{State: tt.state, Page: string(tt.state), Entry: t0}
			tk := tick{
				Input:       Input{Now: t0.Add(tt.since), DACInput: tt.input, PlayerState: tt.player, Volume: 40},
				inputSteady: tt.steady,
			}
			if got := guard(t, s, tt.rule)(tk); got != tt.want {
				t.Errorf("%s guard = %v, want %v", tt.rule, got, tt.want)
			}
		})
	}
}
