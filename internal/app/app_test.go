package app

import (
	"context"
	"slices"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/audiophonics/raspdac-oled/internal/app/mocks"
	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/network"
	"github.com/audiophonics/raspdac-oled/internal/page"
	"github.com/audiophonics/raspdac-oled/internal/player"
	"github.com/audiophonics/raspdac-oled/internal/remote"
	"github.com/audiophonics/raspdac-oled/internal/render"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	app     *App
	player  *mocks.MockPlayer
	mixer   *mocks.MockMixer
	network *mocks.MockNetwork
	remote  *mocks.MockRemote
	canvas  *mocks.MockCanvas
	keys    []keyPress
}

type keyPress struct {
	key   remote.Key
	speed remote.Speed
}

// newFixture wires an App on mocks. Reads return a stopped player on the
// I2S input; keys are served from f.keys. Each setup function runs before
// those defaults are registered, so its expectations are matched first.
func newFixture(t *testing.T, setup ...func(*fixture)) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		player:  mocks.NewMockPlayer(ctrl),
		mixer:   mocks.NewMockMixer(ctrl),
		network: mocks.NewMockNetwork(ctrl),
		remote:  mocks.NewMockRemote(ctrl),
		canvas:  mocks.NewMockCanvas(ctrl),
	}
	model, err := page.Default(func(page.FontSpec) (font.Face, error) { return basicfont.Face7x13, nil })
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Render.Strict = true
	f.app = New(cfg, Deps{
		Player:  f.player,
		Mixer:   f.mixer,
		Network: f.network,
		Remote:  f.remote,
		Canvas:  f.canvas,
		Model:   model,
	}, zap.NewNop())

	for _, fn := range setup {
		fn(f)
	}
	f.network.EXPECT().Poll(gomock.Any(), gomock.Any()).
		Return(network.Snapshot{IP: "192.168.1.20", Kind: network.Wired}).AnyTimes()
	f.mixer.EXPECT().Poll(gomock.Any(), gomock.Any(), false).Return(nil).AnyTimes()
	f.mixer.EXPECT().Active().
		Return(map[string]string{"MUTE": "unmute", "FILTER": "brick wall", "INPUT": "I2S"}).AnyTimes()
	f.mixer.EXPECT().Input().Return("I2S").AnyTimes()
	f.player.EXPECT().Poll(gomock.Any()).Return(player.DefaultStatus(), player.DefaultSong(), nil).AnyTimes()
	f.player.EXPECT().State().Return("stop").AnyTimes()
	f.player.EXPECT().Volume().Return(0).AnyTimes()
	f.remote.EXPECT().Next().DoAndReturn(func() (remote.Key, remote.Speed) {
		if len(f.keys) == 0 {
			return remote.KeyNone, remote.Slow
		}
		k := f.keys[0]
		f.keys = f.keys[1:]
		return k.key, k.speed
	}).AnyTimes()
	return f
}

// press queues a slow key.
func (f *fixture) press(keys ...remote.Key) {
	for _, k := range keys {
		f.keys = append(f.keys, keyPress{k, remote.Slow})
	}
}

// pressFast queues a fast key.
func (f *fixture) pressFast(k remote.Key) {
	f.keys = append(f.keys, keyPress{k, remote.Fast})
}

func texts(ops []render.Op) []string {
	var out []string
	for _, op := range ops {
		if op.Kind == render.OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func TestBootDrawsInitOnce(t *testing.T) {
	f := newFixture(t)
	var drawn [][]render.Op
	f.canvas.EXPECT().Draw(gomock.Any()).DoAndReturn(func(ops []render.Op) error {
		drawn = append(drawn, ops)
		return nil
	}).Times(1)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		f.app.Tick(ctx, t0.Add(time.Duration(i)*200*time.Millisecond))
	}
	if len(drawn) != 1 {
		t.Fatalf("drew %d frames", len(drawn))
	}
	if got := texts(drawn[0]); !slices.Equal(got, []string{"Network player", "Raspdac Mini", "Linn Openhome"}) {
		t.Errorf("INIT texts: %v", got)
	}
}

func TestIPPageBindings(t *testing.T) {
	f := newFixture(t)
	var last []render.Op
	f.canvas.EXPECT().Draw(gomock.Any()).DoAndReturn(func(ops []render.Op) error {
		last = ops
		return nil
	}).AnyTimes()

	ctx := context.Background()
	f.app.Tick(ctx, t0)
	f.app.Tick(ctx, t0.Add(10*time.Second))
	got := texts(last)
	for _, want := range []string{"12:00:10", "192.168.1.20", "0"} {
		if !slices.Contains(got, want) {
			t.Errorf("IP page lacks %q: %v", want, got)
		}
	}
}

func TestMenuCommitAppliesAndForcesPoll(t *testing.T) {
	f := newFixture(t)
	var last []render.Op
	f.canvas.EXPECT().Draw(gomock.Any()).DoAndReturn(func(ops []render.Op) error {
		last = ops
		return nil
	}).AnyTimes()
	f.mixer.EXPECT().Apply(gomock.Any(), "I2S/SPDIF Select", "SPDIF").Return(nil).Times(1)
	f.mixer.EXPECT().Poll(gomock.Any(), gomock.Any(), true).Return(nil).Times(1)

	ctx := context.Background()
	f.app.Tick(ctx, t0)
	f.app.Tick(ctx, t0.Add(10*time.Second))

	f.press(remote.KeyMenu, remote.KeyUp, remote.KeyRight)
	for i := 0; i < 3; i++ {
		f.app.Tick(ctx, t0.Add(20*time.Second+time.Duration(i)*200*time.Millisecond))
	}
	if !f.app.Navigator().On() {
		t.Fatal("menu should be open")
	}
	got := texts(last)
	if !slices.Contains(got, "INPUT") || !slices.Contains(got, "1") {
		t.Errorf("menu page: %v", got)
	}

	f.press(remote.KeyEnter)
	f.app.Tick(ctx, t0.Add(21*time.Second))
}

func TestTransportWhenMenuClosed(t *testing.T) {
	f := newFixture(t)
	f.canvas.EXPECT().Draw(gomock.Any()).Return(nil).AnyTimes()
	gomock.InOrder(
		f.player.EXPECT().VolumeUp(2),
		f.player.EXPECT().VolumeDown(1),
		f.player.EXPECT().Toggle(),
		f.player.EXPECT().Next(),
		f.player.EXPECT().Previous(),
		f.player.EXPECT().Stop(),
	)

	f.pressFast(remote.KeyUp)
	f.press(remote.KeyDown, remote.KeyPlay, remote.KeyRight, remote.KeyLeft, remote.KeyEnter)
	for i := 0; i < 6; i++ {
		f.app.Tick(context.Background(), t0.Add(time.Duration(i)*200*time.Millisecond))
	}
	if f.app.Navigator().On() {
		t.Error("transport keys must not open the menu")
	}
}

func TestRenderPanicIsContained(t *testing.T) {
	f := newFixture(t)
	f.canvas.EXPECT().Draw(gomock.Any()).DoAndReturn(func([]render.Op) error {
		panic("framebuffer gone")
	}).Times(1)

	f.app.Tick(context.Background(), t0)
}

func TestCollaboratorPanicIsContained(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.player.EXPECT().Poll(gomock.Any()).
			DoAndReturn(func(time.Time) (map[string]string, map[string]string, error) {
				panic("truncated reply")
			}).Times(1)
	})
	// The first tick dies before the sequencer steps, so boot is drawn on
	// the second.
	f.canvas.EXPECT().Draw(gomock.Any()).Return(nil).Times(1)

	ctx := context.Background()
	f.app.Tick(ctx, t0)
	f.app.Tick(ctx, t0.Add(200*time.Millisecond))
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)
	f.canvas.EXPECT().Draw(gomock.Any()).Return(nil).AnyTimes()
	f.mixer.EXPECT().Unmute(gomock.Any()).Return(nil).Times(1)
	block := func(ctx context.Context) { <-ctx.Done() }
	f.remote.EXPECT().Run(gomock.Any()).Do(block).Times(1)
	f.network.EXPECT().RunProbe(gomock.Any()).Do(block).Times(1)
	f.canvas.EXPECT().Close().Return(nil).Times(1)
	f.player.EXPECT().Close().Return(nil).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.app.Start(ctx); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := f.app.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}
