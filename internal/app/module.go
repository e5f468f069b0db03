package app

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/display"
	"github.com/audiophonics/raspdac-oled/internal/mixer"
	"github.com/audiophonics/raspdac-oled/internal/network"
	"github.com/audiophonics/raspdac-oled/internal/page"
	"github.com/audiophonics/raspdac-oled/internal/player"
	"github.com/audiophonics/raspdac-oled/internal/remote"
)

// Flags are the command line overrides.
type Flags struct {
	ConfigPath string
	Dev        bool
	Display    string
	HTTP       bool
}

// Module wires the daemon. It needs a Flags value supplied.
var Module = fx.Options(
	fx.Provide(
		NewConfig,
		NewLogger,
		fx.Annotate(NewPlayer, fx.As(new(Player))),
		fx.Annotate(NewMixer, fx.As(new(Mixer))),
		fx.Annotate(NewNetwork, fx.As(new(Network))),
		fx.Annotate(NewRemote, fx.As(new(Remote))),
		NewCanvas,
		NewModel,
		New,
	),
	fx.Invoke(register),
)

// NewConfig loads the settings file and applies the flags.
func NewConfig(f Flags) (*config.Config, error) {
	cfg, err := config.LoadFromFile(config.Resolve(f.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.Display != "" {
		cfg.Display.Driver = f.Display
	}
	if f.HTTP {
		cfg.HTTP.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewLogger builds the production logger, or the development one with --dev.
func NewLogger(cfg *config.Config, f Flags) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if f.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.General.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.General.LogLevel, err)
	}
	if !f.Dev {
		zc.Level = level
	}
	return zc.Build()
}

func NewPlayer(cfg *config.Config, log *zap.Logger) *player.Client {
	return player.New(cfg.MPD, player.DialMPD, log)
}

func NewMixer(cfg *config.Config, log *zap.Logger) *mixer.Mixer {
	return mixer.New(cfg.Mixer, mixer.ExecRunner, log)
}

func NewNetwork(cfg *config.Config, log *zap.Logger) *network.Monitor {
	return network.New(cfg.Network, log)
}

func NewRemote(cfg *config.Config, log *zap.Logger) *remote.Remote {
	return remote.New(cfg.Remote, remote.NewSource(cfg.Remote), log)
}

// NewCanvas opens the configured display, mirrored by the HTTP preview when
// enabled.
func NewCanvas(cfg *config.Config, log *zap.Logger) (Canvas, error) {
	c, err := display.Open(cfg.Display, cfg.Render, log)
	if err != nil {
		return nil, err
	}
	if cfg.HTTP.Enabled {
		return display.NewPreview(cfg.HTTP, c, cfg.Render.Width, cfg.Render.Height, log), nil
	}
	return c, nil
}

// NewModel loads the page templates and their fonts.
func NewModel(cfg *config.Config, log *zap.Logger) (*page.Model, error) {
	m, err := page.LoadFile(cfg.General.Pages, page.FileFaces(cfg.General.Fonts, log))
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	return m, nil
}

func register(lc fx.Lifecycle, a *App) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error { return a.Start(ctx) },
		OnStop:  func(ctx context.Context) error { return a.Stop(ctx) },
	})
}
