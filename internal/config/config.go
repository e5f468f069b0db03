// Package config holds the daemon settings, read from a TOML file on top of
// built-in defaults that match the RaspDAC Mini hardware.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is tried when neither --config nor $RASPDAC_OLED_CONFIG is set.
const DefaultPath = "/etc/raspdac-oled/config.toml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	General GeneralConfig `toml:"general"`
	Timing  TimingConfig  `toml:"timing"`
	Render  RenderConfig  `toml:"render"`
	MPD     MPDConfig     `toml:"mpd"`
	Mixer   MixerConfig   `toml:"mixer"`
	Network NetworkConfig `toml:"network"`
	Remote  RemoteConfig  `toml:"remote"`
	Display DisplayConfig `toml:"display"`
	HTTP    HTTPConfig    `toml:"http"`
}

type GeneralConfig struct {
	Tick     Duration `toml:"tick"`
	LogLevel string   `toml:"log_level"`
	// Pages is a path to a JSON page template; empty selects the embedded one.
	Pages string `toml:"pages"`
	// Fonts is the directory holding the TrueType files the template names.
	Fonts string `toml:"fonts"`
}

// TimingConfig holds the page hold durations used by the sequencer.
type TimingConfig struct {
	Init       Duration `toml:"init"`
	IPInit     Duration `toml:"ip_init"`
	Play1      Duration `toml:"play1"`
	Play2      Duration `toml:"play2"`
	Volume     Duration `toml:"volume"`
	Inactivity Duration `toml:"inactivity"`
}

type RenderConfig struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	ScrollSpeed     int    `toml:"scroll_speed"`
	ScrollSeparator string `toml:"scroll_separator"`
	Strict          bool   `toml:"strict"`
}

type MPDConfig struct {
	Network string   `toml:"network"`
	Address string   `toml:"address"`
	Retry   Duration `toml:"retry"`
}

// ControlConfig describes one audio-driver control reachable from the menu.
// Kind "enum" reads the Item0 value; kind "switch" maps [on] to Values[0]
// and [off] to Values[1].
type ControlConfig struct {
	Name     string   `toml:"name"`
	Command  string   `toml:"command"`
	Kind     string   `toml:"kind"`
	Values   []string `toml:"values"`
	Comments []string `toml:"comments"`
}

type MixerConfig struct {
	Card          int             `toml:"card"`
	Poll          Duration        `toml:"poll"`
	UnmuteOnStart bool            `toml:"unmute_on_start"`
	Controls      []ControlConfig `toml:"controls"`
}

type NetworkConfig struct {
	Wired         string   `toml:"wired"`
	Wireless      string   `toml:"wireless"`
	Poll          Duration `toml:"poll"`
	ProbeHost     string   `toml:"probe_host"`
	ProbeInterval Duration `toml:"probe_interval"`
	ProbeTimeout  Duration `toml:"probe_timeout"`
}

type RemoteConfig struct {
	Source         string   `toml:"source"`
	Device         string   `toml:"device"`
	LircSocket     string   `toml:"lirc_socket"`
	FastGap        Duration `toml:"fast_gap"`
	VolumeStepSlow int      `toml:"volume_step_slow"`
	VolumeStepFast int      `toml:"volume_step_fast"`
}

type DisplayConfig struct {
	Driver  string `toml:"driver"`
	SPIPort string `toml:"spi_port"`
	DCPin   string `toml:"dc_pin"`
	RSTPin  string `toml:"rst_pin"`
	Rotated bool   `toml:"rotated"`
	SpeedHz int64  `toml:"speed_hz"`
}

type HTTPConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
	Scale   int    `toml:"scale"`
}

// Resolve picks the settings file: explicit path, then $RASPDAC_OLED_CONFIG,
// then DefaultPath.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("RASPDAC_OLED_CONFIG"); v != "" {
		return v
	}
	return DefaultPath
}

// LoadFromFile reads configuration from path. A missing file yields defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes TOML from r over DefaultConfig and validates it.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	// Controls listed in the file replace the defaults as a whole.
	cfg.Mixer.Controls = nil
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("mixer", "controls") {
		cfg.Mixer.Controls = defaultControls()
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the settings of the stock appliance.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Tick:     Duration{200 * time.Millisecond},
			LogLevel: "info",
			Fonts:    "/usr/share/raspdac-oled/fonts",
		},
		Timing: TimingConfig{
			Init:       Duration{10 * time.Second},
			IPInit:     Duration{10 * time.Second},
			Play1:      Duration{15 * time.Second},
			Play2:      Duration{10 * time.Second},
			Volume:     Duration{4 * time.Second},
			Inactivity: Duration{240 * time.Second},
		},
		Render: RenderConfig{
			Width:           128,
			Height:          64,
			ScrollSpeed:     30,
			ScrollSeparator: " - ",
		},
		MPD: MPDConfig{
			Network: "tcp",
			Address: "localhost:6600",
			Retry:   Duration{2 * time.Second},
		},
		Mixer: MixerConfig{
			Card:          0,
			Poll:          Duration{1 * time.Second},
			UnmuteOnStart: true,
			Controls:      defaultControls(),
		},
		Network: NetworkConfig{
			Wired:         "eth0",
			Wireless:      "wlan0",
			Poll:          Duration{5 * time.Second},
			ProbeInterval: Duration{30 * time.Second},
			ProbeTimeout:  Duration{1 * time.Second},
		},
		Remote: RemoteConfig{
			Source:         "evdev",
			Device:         "gpio_ir_recv",
			LircSocket:     "/var/run/lirc/lircd",
			FastGap:        Duration{300 * time.Millisecond},
			VolumeStepSlow: 1,
			VolumeStepFast: 2,
		},
		Display: DisplayConfig{
			Driver:  "ssd1306",
			DCPin:   "GPIO27",
			RSTPin:  "GPIO24",
			Rotated: true,
			SpeedHz: 8000000,
		},
		HTTP: HTTPConfig{
			Listen: ":8081",
			Scale:  4,
		},
	}
}

// defaultControls are the ES9038Q2M controls exposed by the menu.
func defaultControls() []ControlConfig {
	return []ControlConfig{
		{
			Name:     "MUTE",
			Command:  "Digital",
			Kind:     "switch",
			Values:   []string{"unmute", "mute"},
			Comments: []string{"0 : set mute to OFF", "1 : set mute to ON"},
		},
		{
			Name:    "FILTER",
			Command: "FIR Filter Type",
			Kind:    "enum",
			Values: []string{
				"brick wall",
				"corrected minimum phase fast",
				"minimum phase slow",
				"minimum phase fast",
				"linear phase slow",
				"linear phase fast",
				"apodizing fast",
			},
			Comments: []string{
				"0 : brick wall",
				"1 : corrected minimum phase fast",
				"2 : minimum phase slow",
				"3 : minimum phase fast",
				"4 : linear phase slow",
				"5 : linear phase fast",
				"6 : apodizing fast",
			},
		},
		{
			Name:     "INPUT",
			Command:  "I2S/SPDIF Select",
			Kind:     "enum",
			Values:   []string{"I2S", "SPDIF"},
			Comments: []string{"0 : set input to I2S", "1 : set input to SPDIF"},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RASPDAC_OLED_MPD"); v != "" {
		cfg.MPD.Address = v
	}
	if v := os.Getenv("RASPDAC_OLED_DISPLAY"); v != "" {
		cfg.Display.Driver = v
	}
	if v := os.Getenv("RASPDAC_OLED_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
}

// Validate reports the first inconsistency found, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c.General.Tick.Duration <= 0 {
		return fmt.Errorf("%w: general.tick must be positive", ErrInvalid)
	}
	if c.Timing.Play1.Duration+c.Timing.Play2.Duration <= 0 {
		return fmt.Errorf("%w: timing.play1 + timing.play2 must be positive", ErrInvalid)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if len(c.Mixer.Controls) == 0 {
		return fmt.Errorf("%w: no mixer controls", ErrInvalid)
	}
	for _, ctl := range c.Mixer.Controls {
		if len(ctl.Values) == 0 {
			return fmt.Errorf("%w: control %q has no values", ErrInvalid, ctl.Name)
		}
		if len(ctl.Comments) != len(ctl.Values) {
			return fmt.Errorf("%w: control %q has %d values but %d comments",
				ErrInvalid, ctl.Name, len(ctl.Values), len(ctl.Comments))
		}
		switch ctl.Kind {
		case "enum":
		case "switch":
			if len(ctl.Values) != 2 {
				return fmt.Errorf("%w: switch control %q needs exactly 2 values", ErrInvalid, ctl.Name)
			}
		default:
			return fmt.Errorf("%w: control %q has unknown kind %q", ErrInvalid, ctl.Name, ctl.Kind)
		}
	}
	switch c.Remote.Source {
	case "evdev", "lirc", "none":
	default:
		return fmt.Errorf("%w: remote.source %q", ErrInvalid, c.Remote.Source)
	}
	switch c.Display.Driver {
	case "ssd1306", "terminal", "none":
	default:
		return fmt.Errorf("%w: display.driver %q", ErrInvalid, c.Display.Driver)
	}
	return nil
}
