// Package player queries the local MPD daemon for the playback status and the
// current song, and forwards transport commands from the remote.
package player

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fhs/gompd/v2/mpd"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
)

// ErrDisconnected is returned by Poll while MPD cannot be reached.
var ErrDisconnected = errors.New("mpd disconnected")

// Conn is the part of *mpd.Client the player uses.
type Conn interface {
	Status() (mpd.Attrs, error)
	CurrentSong() (mpd.Attrs, error)
	Previous() error
	Next() error
	Stop() error
	Play(pos int) error
	Pause(pause bool) error
	SetVolume(volume int) error
	Close() error
}

// DialFunc opens a connection to MPD.
type DialFunc func(network, addr string) (Conn, error)

// DialMPD dials with gompd.
func DialMPD(network, addr string) (Conn, error) {
	c, err := mpd.Dial(network, addr)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Client keeps one lazily dialled MPD connection and the last answers.
type Client struct {
	cfg  config.MPDConfig
	log  *zap.Logger
	dial DialFunc

	conn      Conn
	nextDial  time.Time
	connected bool

	status map[string]string
	song   map[string]string
}

func New(cfg config.MPDConfig, dial DialFunc, log *zap.Logger) *Client {
	if dial == nil {
		dial = DialMPD
	}
	return &Client{
		cfg:       cfg,
		log:       log.Named("player"),
		dial:      dial,
		connected: true,
		status:    DefaultStatus(),
		song:      DefaultSong(),
	}
}

// Poll refreshes status and song. On failure the default tables are kept and
// the error wraps ErrDisconnected. At most one dial is attempted per call
// and none before the retry delay has passed.
func (c *Client) Poll(now time.Time) (status, song map[string]string, err error) {
	if err := c.poll(now); err != nil {
		c.status, c.song = DefaultStatus(), DefaultSong()
		c.setConnected(false, err)
		return c.Status(), c.Song(), err
	}
	c.setConnected(true, nil)
	return c.Status(), c.Song(), nil
}

func (c *Client) poll(now time.Time) error {
	if c.conn == nil {
		if now.Before(c.nextDial) {
			return ErrDisconnected
		}
		conn, err := c.dial(c.cfg.Network, c.cfg.Address)
		if err != nil {
			c.nextDial = now.Add(c.cfg.Retry.Duration)
			return fmt.Errorf("%w: dial %s: %v", ErrDisconnected, c.cfg.Address, err)
		}
		c.conn = conn
	}

	st, err := c.conn.Status()
	if err != nil {
		c.drop(now)
		return fmt.Errorf("%w: status: %v", ErrDisconnected, err)
	}
	sg, err := c.conn.CurrentSong()
	if err != nil {
		c.drop(now)
		return fmt.Errorf("%w: currentsong: %v", ErrDisconnected, err)
	}
	c.status = fill(st, statusDefaults)
	c.song = fill(sg, songDefaults)
	return nil
}

func (c *Client) drop(now time.Time) {
	_ = c.conn.Close()
	c.conn = nil
	c.nextDial = now.Add(c.cfg.Retry.Duration)
}

func (c *Client) setConnected(ok bool, err error) {
	if ok == c.connected {
		return
	}
	c.connected = ok
	if ok {
		c.log.Info("mpd connected", zap.String("address", c.cfg.Address))
		return
	}
	c.log.Warn("mpd unreachable", zap.String("address", c.cfg.Address), zap.Error(err))
}

// Status returns a copy of the last status dictionary.
func (c *Client) Status() map[string]string { return fill(c.status, nil) }

// Song returns a copy of the last song dictionary.
func (c *Client) Song() map[string]string { return fill(c.song, nil) }

// State returns the transport state. Anything unrecognised reads as stop.
func (c *Client) State() string {
	switch s := c.status["state"]; s {
	case StatePlay, StatePause:
		return s
	default:
		return StateStop
	}
}

// Volume returns the mixer volume, -1 when volume control is disabled.
func (c *Client) Volume() int {
	v, err := strconv.Atoi(c.status["volume"])
	if err != nil {
		return 0
	}
	return v
}

func (c *Client) Previous() { c.do("previous", func(conn Conn) error { return conn.Previous() }) }
func (c *Client) Next()     { c.do("next", func(conn Conn) error { return conn.Next() }) }
func (c *Client) Stop()     { c.do("stop", func(conn Conn) error { return conn.Stop() }) }

// Toggle pauses a playing track, resumes a paused one and starts a stopped
// queue.
func (c *Client) Toggle() {
	switch c.State() {
	case StatePlay:
		c.do("pause", func(conn Conn) error { return conn.Pause(true) })
	case StatePause:
		c.do("resume", func(conn Conn) error { return conn.Pause(false) })
	default:
		c.do("play", func(conn Conn) error { return conn.Play(-1) })
	}
}

func (c *Client) VolumeUp(step int)   { c.adjustVolume(step) }
func (c *Client) VolumeDown(step int) { c.adjustVolume(-step) }

func (c *Client) adjustVolume(delta int) {
	cur := c.Volume()
	if cur < 0 {
		return
	}
	v := min(max(cur+delta, 0), 100)
	if v == cur {
		return
	}
	if c.do("setvol", func(conn Conn) error { return conn.SetVolume(v) }) {
		// Held until the next poll so fast repeats stack.
		c.status["volume"] = strconv.Itoa(v)
	}
}

func (c *Client) do(name string, fn func(Conn) error) bool {
	if c.conn == nil {
		c.log.Debug("command dropped, not connected", zap.String("command", name))
		return false
	}
	if err := fn(c.conn); err != nil {
		c.log.Warn("mpd command failed", zap.String("command", name), zap.Error(err))
		return false
	}
	return true
}

// Close releases the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
