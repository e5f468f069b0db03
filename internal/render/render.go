// Package render turns a page frame and the tick's runtime data into an
// ordered list of draw operations. It owns the scroll offsets and the
// screensaver position between ticks.
package render

import (
	"errors"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/page"
	"github.com/audiophonics/raspdac-oled/internal/snapshot"
)

// ErrMissingBinding is returned in strict mode when an object is bound to a
// field the runtime data lacks.
var ErrMissingBinding = errors.New("missing binding")

type stateKey struct {
	page, object string
}

// Renderer keeps per-object animation state across ticks.
type Renderer struct {
	width, height int
	step          int
	separator     string
	strict        bool
	rng           *rand.Rand
	log           *zap.Logger

	scroll  map[stateKey]int
	saver   map[stateKey]image.Point
	missing map[page.Binding]bool
}

// New builds a renderer for a canvas of cfg's size. The scroll step per tick
// is scroll_speed × tick period, rounded to whole pixels.
func New(cfg config.RenderConfig, tick time.Duration, rng *rand.Rand, log *zap.Logger) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Renderer{
		width:     cfg.Width,
		height:    cfg.Height,
		step:      int(math.Round(float64(cfg.ScrollSpeed) * tick.Seconds())),
		separator: cfg.ScrollSeparator,
		strict:    cfg.Strict,
		rng:       rng,
		log:       log.Named("render"),
		scroll:    make(map[stateKey]int),
		saver:     make(map[stateKey]image.Point),
		missing:   make(map[page.Binding]bool),
	}
}

// Step returns the scroll advance per tick in pixels.
func (r *Renderer) Step() int { return r.step }

// Render emits one op per drawn object, in frame order. reset snaps scroll
// offsets back to their window origin and re-rolls the screensaver.
func (r *Renderer) Render(f *page.Frame, data snapshot.Data, reset bool) ([]Op, error) {
	ops := make([]Op, 0, len(f.Objects))
	for i := range f.Objects {
		obj := &f.Objects[i]
		v, err := r.resolve(f.ID, obj, data)
		if err != nil {
			return ops, err
		}
		key := stateKey{f.ID, obj.ID}

		switch obj.Kind {
		case page.KindText, page.KindIcon:
			ops = append(ops, r.text(obj, snapshot.Text(v)))
		case page.KindScrolling:
			ops = append(ops, r.scrolling(key, obj, snapshot.Text(v), reset))
		case page.KindSaver:
			ops = append(ops, r.screensaver(key, obj, snapshot.Text(v), reset))
		case page.KindRectangle:
			if obj.Binding == nil || snapshot.Bool(v) {
				ops = append(ops, rectangle(obj))
			}
		case page.KindVolumeBar:
			if op, ok := volumeBar(obj, parseInt(v)); ok {
				ops = append(ops, op)
			}
		case page.KindElapsedBar:
			elapsed, duration := parsePair(v)
			if op, ok := elapsedBar(obj, elapsed, duration); ok {
				ops = append(ops, op)
			}
		}
	}
	return ops, nil
}

// resolve returns the bound value, or the static one for unbound objects.
func (r *Renderer) resolve(pageID string, obj *page.Object, data snapshot.Data) (any, error) {
	if obj.Binding == nil {
		return obj.Value, nil
	}
	v, ok := data.Lookup(obj.Binding.Group, obj.Binding.Field)
	if ok {
		return v, nil
	}
	if r.strict {
		return nil, fmt.Errorf("%w: page %s object %s wants %s", ErrMissingBinding, pageID, obj.ID, obj.Binding)
	}
	if !r.missing[*obj.Binding] {
		r.missing[*obj.Binding] = true
		r.log.Warn("runtime data lacks a bound field",
			zap.String("page", pageID), zap.String("object", obj.ID), zap.Stringer("binding", obj.Binding))
	}
	return nil, nil
}

func (r *Renderer) text(obj *page.Object, s string) Op {
	at := Justify(obj.Pos, obj.Justify, Measure(obj.Face, s))
	return Op{Kind: OpText, Object: obj.ID, At: at, Text: s, Face: obj.Face}
}

// window returns the horizontal span a scrolling object may use.
func (r *Renderer) window(obj *page.Object) (xmin, width int) {
	if obj.Bounds != nil {
		return obj.Bounds.XMin, obj.Bounds.XMax - obj.Bounds.XMin + 1
	}
	return 0, r.width
}

// scrolling draws s justified when it fits its window. Otherwise it draws
// s+separator+s from a persisted offset that moves left by one step per tick.
// The offset is kept modulo one period, so the content always moves exactly
// one step on screen, across the wrap included.
func (r *Renderer) scrolling(key stateKey, obj *page.Object, s string, reset bool) Op {
	xmin, width := r.window(obj)
	e := Measure(obj.Face, s)
	if e.W <= width {
		r.scroll[key] = xmin
		return r.text(obj, s)
	}

	period := Measure(obj.Face, s+r.separator).W
	x, ok := r.scroll[key]
	switch {
	case reset || !ok:
		x = xmin
	default:
		x -= r.step
		if x <= xmin-period {
			x += period
		}
	}
	r.scroll[key] = x

	line := s + r.separator + s
	at := Justify(obj.Pos, obj.Justify, Measure(obj.Face, line))
	return Op{Kind: OpText, Object: obj.ID, At: image.Pt(x, at.Y), Text: line, Face: obj.Face}
}

// screensaver draws s at a random position that keeps it inside the canvas.
// The position is only re-rolled on reset.
func (r *Renderer) screensaver(key stateKey, obj *page.Object, s string, reset bool) Op {
	pos, ok := r.saver[key]
	if reset || !ok {
		e := Measure(obj.Face, s)
		pos = image.Pt(r.rng.IntN(max(r.width-e.W, 0)+1), r.rng.IntN(max(r.height-e.H, 0)+1))
		r.saver[key] = pos
	}
	return Op{Kind: OpText, Object: obj.ID, At: pos, Text: s, Face: obj.Face}
}

func rectangle(obj *page.Object) Op {
	b := obj.Bounds
	return Op{Kind: OpOutline, Object: obj.ID, At: image.Pt(b.XMin, b.YMin), To: image.Pt(b.XMax, b.YMax)}
}

// volumeBar and elapsedBar report false for a bar at its minimum: fill
// corners are inclusive, so a zero-length bar would still light a line.
func volumeBar(obj *page.Object, v int) (Op, bool) {
	b := obj.Bounds
	level := VolumeLevel(v, obj.Range, *b)
	if level == b.YMin {
		return Op{}, false
	}
	return Op{
		Kind:   OpFill,
		Object: obj.ID,
		At:     image.Pt(b.XMin, b.YMin),
		To:     image.Pt(b.XMax, level),
	}, true
}

func elapsedBar(obj *page.Object, elapsed, duration int) (Op, bool) {
	b := obj.Bounds
	level := ElapsedLevel(elapsed, duration, *b)
	if level == b.XMin {
		return Op{}, false
	}
	return Op{
		Kind:   OpFill,
		Object: obj.ID,
		At:     image.Pt(b.XMin, b.YMin),
		To:     image.Pt(level, b.YMax),
	}, true
}
