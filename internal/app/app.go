// Package app runs one display tick: it gathers the collaborators' data,
// feeds the menu and the sequencer, and renders the chosen page.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/loop"
	"github.com/audiophonics/raspdac-oled/internal/menu"
	"github.com/audiophonics/raspdac-oled/internal/page"
	"github.com/audiophonics/raspdac-oled/internal/player"
	"github.com/audiophonics/raspdac-oled/internal/remote"
	"github.com/audiophonics/raspdac-oled/internal/render"
	"github.com/audiophonics/raspdac-oled/internal/sequencer"
	"github.com/audiophonics/raspdac-oled/internal/snapshot"
)

const clockLayout = "15:04:05"

// Deps are the collaborators of an App.
type Deps struct {
	fx.In

	Player  Player
	Mixer   Mixer
	Network Network
	Remote  Remote
	Canvas  Canvas
	Model   *page.Model
}

// observer is implemented by canvases that report the sequencer decision.
type observer interface {
	Observe(state, page string)
}

// server is implemented by canvases that serve a preview.
type server interface {
	Serve() error
}

type App struct {
	cfg *config.Config
	log *zap.Logger

	player  Player
	mixer   Mixer
	network Network
	remote  Remote
	canvas  Canvas
	model   *page.Model

	nav       *menu.Navigator
	seq       *sequencer.Sequencer
	renderer  *render.Renderer
	scheduler *loop.Scheduler
	steps     remote.Steps

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(cfg *config.Config, deps Deps, log *zap.Logger) *App {
	tick := cfg.General.Tick.Duration
	return &App{
		cfg:       cfg,
		log:       log.Named("app"),
		player:    deps.Player,
		mixer:     deps.Mixer,
		network:   deps.Network,
		remote:    deps.Remote,
		canvas:    deps.Canvas,
		model:     deps.Model,
		nav:       menu.New(menu.ControlsFrom(cfg.Mixer.Controls)),
		seq:       sequencer.New(cfg.Timing, log),
		renderer:  render.New(cfg.Render, tick, nil, log),
		scheduler: loop.New(tick, loop.WallClock{}, log),
		steps:     remote.Steps{Slow: cfg.Remote.VolumeStepSlow, Fast: cfg.Remote.VolumeStepFast},
	}
}

// Navigator exposes the menu state.
func (a *App) Navigator() *menu.Navigator { return a.nav }

// Start unmutes the DAC if configured and starts the background readers and
// the tick loop. It returns immediately.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.Mixer.UnmuteOnStart {
		if err := a.mixer.Unmute(ctx); err != nil {
			a.log.Warn("unmute on start failed", zap.Error(err))
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.goRun(func() { a.remote.Run(runCtx) })
	a.goRun(func() { a.network.RunProbe(runCtx) })
	if s, ok := a.canvas.(server); ok {
		go func() {
			if err := s.Serve(); err != nil {
				a.log.Error("preview server stopped", zap.Error(err))
			}
		}()
	}
	a.goRun(func() { a.scheduler.Run(runCtx, a.Tick) })
	a.log.Info("display started", zap.Duration("tick", a.cfg.General.Tick.Duration))
	return nil
}

func (a *App) goRun(fn func()) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		fn()
	}()
}

// Stop cancels the loop and the readers, waits for them within ctx, and
// releases the canvas and the player connection.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("waiting for tick loop: %w", ctx.Err())
	}

	var err error
	if cerr := a.canvas.Close(); cerr != nil {
		err = fmt.Errorf("close canvas: %w", cerr)
	}
	if perr := a.player.Close(); perr != nil && err == nil {
		err = fmt.Errorf("close player: %w", perr)
	}
	a.log.Info("display stopped")
	return err
}

// Tick runs one full iteration at now. A panic anywhere in the iteration is
// logged and the tick is abandoned; the next one starts from the state the
// components were left in.
func (a *App) Tick(ctx context.Context, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("tick panicked", zap.Time("now", now), zap.Any("panic", r))
		}
	}()
	a.tick(ctx, now)
}

func (a *App) tick(ctx context.Context, now time.Time) {
	net := a.network.Poll(ctx, now)

	key, speed := a.remote.Next()
	a.handleKey(ctx, key, speed)

	force := a.nav.On() && key == remote.KeyEnter
	if err := a.mixer.Poll(ctx, now, force); err != nil {
		a.log.Debug("mixer poll", zap.Error(err))
	}
	for name, value := range a.mixer.Active() {
		a.nav.SetActive(name, value)
	}

	status, song, err := a.player.Poll(now)
	if err != nil {
		a.log.Debug("player poll", zap.Error(err))
	}

	icons := snapshot.Icons()
	icons.Alias(snapshot.IconIPType, net.Kind.Icon())
	icons.Alias(snapshot.IconPlayerState, a.player.State())

	data := snapshot.Data{
		snapshot.GroupIcons:   icons,
		snapshot.GroupClock:   {"hms": now.Format(clockLayout)},
		snapshot.GroupNetwork: {"ip": net.IP, "type": net.Kind.String()},
		snapshot.GroupStatus:  snapshot.FromStrings(status),
		snapshot.GroupSong:    snapshot.FromStrings(song),
		snapshot.GroupDerived: player.Derive(status, song),
		snapshot.GroupMenu:    a.nav.Projection(),
	}

	out := a.seq.Step(sequencer.Input{
		Now:         now,
		DACInput:    a.mixer.Input(),
		PlayerState: a.player.State(),
		Volume:      a.player.Volume(),
		MenuOn:      a.nav.On(),
	})
	if o, ok := a.canvas.(observer); ok {
		o.Observe(string(out.State), out.Page)
	}
	if out.Refresh {
		a.draw(out, data)
	}
}

// handleKey routes a key to the menu when it is open or asked for, and to
// the player otherwise.
func (a *App) handleKey(ctx context.Context, key remote.Key, speed remote.Speed) {
	if key == remote.KeyNone {
		return
	}
	if !a.nav.On() && key != remote.KeyMenu {
		remote.Dispatch(key, speed, a.player, a.steps)
		return
	}
	cmd, ok := a.nav.Handle(key)
	if !ok {
		return
	}
	if err := a.mixer.Apply(ctx, cmd.Control, cmd.Value); err != nil {
		a.log.Warn("apply control failed", zap.String("control", cmd.Control),
			zap.String("value", cmd.Value), zap.Error(err))
	}
}

// draw renders the page and flushes it. A panic in the render pass is
// logged and the tick ends without a frame.
func (a *App) draw(out sequencer.Output, data snapshot.Data) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("render panicked", zap.String("page", out.Page), zap.Any("panic", r))
		}
	}()

	frame, err := a.model.Frame(out.Page)
	if err != nil {
		a.log.Error("no frame for page", zap.String("page", out.Page), zap.Error(err))
		return
	}
	ops, err := a.renderer.Render(frame, data, out.ResetScroll)
	if err != nil {
		a.log.Error("render failed", zap.String("page", out.Page), zap.Error(err))
		return
	}
	if err := a.canvas.Draw(ops); err != nil {
		a.log.Warn("canvas flush failed", zap.String("page", out.Page), zap.Error(err))
	}
}
