// Package mixer reads and sets the DAC driver controls through amixer.
package mixer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
)

// ErrParse is reported when the amixer output lacks a configured control or
// carries a value outside its candidate list.
var ErrParse = errors.New("amixer output not understood")

const (
	KindEnum   = "enum"
	KindSwitch = "switch"

	// InputControl is the control whose value selects the DAC input.
	InputControl = "INPUT"

	cmdTimeout = 2 * time.Second
)

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs the command directly, without a shell.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Mixer caches the active value of every configured control.
type Mixer struct {
	cfg  config.MixerConfig
	run  Runner
	log  *zap.Logger
	last time.Time
	// active maps a control name to its value; absent until first read.
	active map[string]string
	failed bool
}

func New(cfg config.MixerConfig, run Runner, log *zap.Logger) *Mixer {
	if run == nil {
		run = ExecRunner
	}
	return &Mixer{
		cfg:    cfg,
		run:    run,
		log:    log.Named("mixer"),
		active: make(map[string]string, len(cfg.Controls)),
	}
}

// Poll re-reads the driver when the poll period has elapsed or force is set.
// Controls that cannot be read keep their previous value.
func (m *Mixer) Poll(ctx context.Context, now time.Time, force bool) error {
	if !force && !m.last.IsZero() && now.Sub(m.last) < m.cfg.Poll.Duration {
		return nil
	}
	m.last = now

	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	out, err := m.run(ctx, "amixer", "-c", strconv.Itoa(m.cfg.Card))
	if err != nil {
		m.report(err)
		return fmt.Errorf("amixer -c %d: %w", m.cfg.Card, err)
	}
	values, err := Parse(out, m.cfg.Controls)
	for name, v := range values {
		m.active[name] = v
	}
	m.report(err)
	return err
}

func (m *Mixer) report(err error) {
	if (err != nil) == m.failed {
		return
	}
	m.failed = err != nil
	if err != nil {
		m.log.Warn("mixer read failed", zap.Error(err))
		return
	}
	m.log.Info("mixer read recovered")
}

// Active returns a copy of control name → active value.
func (m *Mixer) Active() map[string]string {
	out := make(map[string]string, len(m.active))
	for k, v := range m.active {
		out[k] = v
	}
	return out
}

// ActiveIndex returns the index of the active value of control among its
// candidates, 0 when unknown.
func (m *Mixer) ActiveIndex(control string) int {
	for _, c := range m.cfg.Controls {
		if c.Name == control {
			if i := slices.Index(c.Values, m.active[control]); i >= 0 {
				return i
			}
		}
	}
	return 0
}

// Input returns the DAC input currently selected, "I2S" when unknown.
func (m *Mixer) Input() string {
	if v, ok := m.active[InputControl]; ok && v != "" {
		return v
	}
	return "I2S"
}

// Apply sets command (the amixer control key) to value.
func (m *Mixer) Apply(ctx context.Context, command, value string) error {
	ctx, cancel := context.WithTimeout(ctx, cmdTimeout)
	defer cancel()
	if _, err := m.run(ctx, "amixer", "sset", "-c", strconv.Itoa(m.cfg.Card), command, value); err != nil {
		return fmt.Errorf("amixer sset %q %q: %w", command, value, err)
	}
	m.log.Info("control applied", zap.String("control", command), zap.String("value", value))
	return nil
}

// Unmute applies the first value of every switch control.
func (m *Mixer) Unmute(ctx context.Context) error {
	var errs []error
	for _, c := range m.cfg.Controls {
		if c.Kind == KindSwitch {
			errs = append(errs, m.Apply(ctx, c.Command, c.Values[0]))
		}
	}
	return errors.Join(errs...)
}

// Parse extracts the active value of every control from `amixer -c N`
// output. Enum controls read the Item0 line; switch controls read the first
// [on]/[off] marker, mapping on to Values[0] and off to Values[1].
func Parse(out []byte, controls []config.ControlConfig) (map[string]string, error) {
	sections := splitSections(out)
	values := make(map[string]string, len(controls))
	var errs []error
	for _, c := range controls {
		body, ok := sections[c.Command]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: control %q missing", ErrParse, c.Command))
			continue
		}
		var v string
		switch c.Kind {
		case KindEnum:
			v = enumValue(body)
		case KindSwitch:
			switch switchValue(body) {
			case "on":
				v = c.Values[0]
			case "off":
				v = c.Values[1]
			}
		}
		if !slices.Contains(c.Values, v) {
			errs = append(errs, fmt.Errorf("%w: control %q has value %q", ErrParse, c.Command, v))
			continue
		}
		values[c.Name] = v
	}
	return values, errors.Join(errs...)
}

const sectionPrefix = "Simple mixer control '"

func splitSections(out []byte) map[string][]string {
	sections := make(map[string][]string)
	var current string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if rest, ok := strings.CutPrefix(line, sectionPrefix); ok {
			if i := strings.LastIndex(rest, "',"); i >= 0 {
				rest = rest[:i]
			}
			current = rest
			sections[current] = nil
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], strings.TrimSpace(line))
		}
	}
	return sections
}

func enumValue(body []string) string {
	for _, line := range body {
		rest, ok := strings.CutPrefix(line, "Item0:")
		if !ok {
			continue
		}
		parts := strings.Split(rest, "'")
		if len(parts) >= 2 {
			return parts[1]
		}
	}
	return ""
}

func switchValue(body []string) string {
	for _, line := range body {
		switch {
		case strings.Contains(line, "[on]"):
			return "on"
		case strings.Contains(line, "[off]"):
			return "off"
		}
	}
	return ""
}
