package player

import (
	"errors"
	"testing"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
)

type fakeConn struct {
	status, song mpd.Attrs
	statusErr    error
	volume       int
	paused       *bool
	played       bool
	closed       bool
	calls        []string
}

func (f *fakeConn) Status() (mpd.Attrs, error)      { return f.status, f.statusErr }
func (f *fakeConn) CurrentSong() (mpd.Attrs, error) { return f.song, nil }
func (f *fakeConn) Previous() error                 { f.calls = append(f.calls, "previous"); return nil }
func (f *fakeConn) Next() error                     { f.calls = append(f.calls, "next"); return nil }
func (f *fakeConn) Stop() error                     { f.calls = append(f.calls, "stop"); return nil }
func (f *fakeConn) Play(int) error                  { f.played = true; return nil }
func (f *fakeConn) Pause(p bool) error              { f.paused = &p; return nil }
func (f *fakeConn) SetVolume(v int) error           { f.volume = v; return nil }
func (f *fakeConn) Close() error                    { f.closed = true; return nil }

func testConfig() config.MPDConfig {
	return config.DefaultConfig().MPD
}

func TestPollFillsDefaults(t *testing.T) {
	fc := &fakeConn{
		status: mpd.Attrs{"state": "play", "volume": "40"},
		song:   mpd.Attrs{"Artist": "Nina Simone"},
	}
	c := New(testConfig(), func(string, string) (Conn, error) { return fc, nil }, zap.NewNop())

	st, sg, err := c.Poll(time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if st["volume"] != "40" || st["audio"] != "0:0:0" {
		t.Errorf("status: got volume %q audio %q", st["volume"], st["audio"])
	}
	if sg["Artist"] != "Nina Simone" || sg["Album"] != "no album" {
		t.Errorf("song: got %q / %q", sg["Artist"], sg["Album"])
	}
	if c.State() != StatePlay || c.Volume() != 40 {
		t.Errorf("accessors: %q %d", c.State(), c.Volume())
	}
}

func TestPollRetryDelay(t *testing.T) {
	dials := 0
	dial := func(string, string) (Conn, error) {
		dials++
		return nil, errors.New("connection refused")
	}
	c := New(testConfig(), dial, zap.NewNop())
	start := time.Unix(100, 0)

	st, _, err := c.Poll(start)
	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
	if st["state"] != StateStop {
		t.Errorf("disconnected state: got %q", st["state"])
	}
	c.Poll(start.Add(time.Second))
	if dials != 1 {
		t.Errorf("dialled %d times within the retry delay", dials)
	}
	c.Poll(start.Add(2 * time.Second))
	if dials != 2 {
		t.Errorf("expected a re-dial after the retry delay, got %d dials", dials)
	}
}

func TestPollDropsBrokenConnection(t *testing.T) {
	fc := &fakeConn{statusErr: errors.New("broken pipe")}
	c := New(testConfig(), func(string, string) (Conn, error) { return fc, nil }, zap.NewNop())
	if _, _, err := c.Poll(time.Unix(0, 0)); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
	if !fc.closed {
		t.Error("broken connection should be closed")
	}
}

func TestStateUnknownIsStop(t *testing.T) {
	fc := &fakeConn{status: mpd.Attrs{"state": "buffering"}}
	c := New(testConfig(), func(string, string) (Conn, error) { return fc, nil }, zap.NewNop())
	c.Poll(time.Unix(0, 0))
	if c.State() != StateStop {
		t.Errorf("got %q", c.State())
	}
}

func TestTransport(t *testing.T) {
	fc := &fakeConn{status: mpd.Attrs{"state": "play", "volume": "99"}}
	c := New(testConfig(), func(string, string) (Conn, error) { return fc, nil }, zap.NewNop())
	c.Poll(time.Unix(0, 0))

	c.VolumeUp(2)
	if fc.volume != 100 {
		t.Errorf("volume should clamp at 100, got %d", fc.volume)
	}
	c.Toggle()
	if fc.paused == nil || !*fc.paused {
		t.Error("toggle while playing should pause")
	}
	c.Previous()
	c.Next()
	c.Stop()
	if len(fc.calls) != 3 {
		t.Errorf("calls: %v", fc.calls)
	}

	fc.status = mpd.Attrs{"state": "stop", "volume": "1"}
	c.Poll(time.Unix(1, 0))
	c.VolumeDown(2)
	if fc.volume != 0 {
		t.Errorf("volume should clamp at 0, got %d", fc.volume)
	}
	c.Toggle()
	if !fc.played {
		t.Error("toggle while stopped should play")
	}
}

func TestVolumeDisabledIgnoresAdjust(t *testing.T) {
	fc := &fakeConn{status: mpd.Attrs{"state": "play", "volume": "-1"}, volume: 7}
	c := New(testConfig(), func(string, string) (Conn, error) { return fc, nil }, zap.NewNop())
	c.Poll(time.Unix(0, 0))
	c.VolumeUp(1)
	if fc.volume != 7 {
		t.Errorf("disabled volume should not be set, got %d", fc.volume)
	}
}
