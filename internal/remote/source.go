package remote

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/holoplot/go-evdev"
)

// EvdevSource reads key presses from the input device called Name, as
// registered by the gpio-ir kernel driver.
type EvdevSource struct {
	Name string
}

func (s *EvdevSource) Run(ctx context.Context, out chan<- Event) error {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return fmt.Errorf("list input devices: %w", err)
	}
	var devPath string
	for _, p := range paths {
		if p.Name == s.Name {
			devPath = p.Path
			break
		}
	}
	if devPath == "" {
		return fmt.Errorf("%w: no input device named %q", ErrNoDevice, s.Name)
	}

	dev, err := evdev.Open(devPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", devPath, err)
	}
	stop := context.AfterFunc(ctx, func() { dev.Close() })
	defer func() {
		if stop() {
			dev.Close()
		}
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			return fmt.Errorf("read %s: %w", devPath, err)
		}
		// 1 is a press, 2 an autorepeat; releases are ignored.
		if ev.Type != evdev.EV_KEY || ev.Value == 0 {
			continue
		}
		send(ctx, out, Event{Key: fromEvdev(ev.Code), At: time.Now()})
	}
}

// LircSource reads the lircd socket, whose lines look like
// "<code> <repeat> <KEY_NAME> <remote>".
type LircSource struct {
	Path string
}

func (s *LircSource) Run(ctx context.Context, out chan<- Event) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", s.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer func() {
		if stop() {
			conn.Close()
		}
	}()
	return readLirc(ctx, conn, out)
}

func readLirc(ctx context.Context, conn net.Conn, out chan<- Event) error {
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		send(ctx, out, Event{Key: ParseKey(fields[2]), At: time.Now()})
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read lircd: %w", err)
	}
	return fmt.Errorf("lircd closed the connection")
}
