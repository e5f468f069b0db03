package display

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"strconv"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/render"
)

const indexPage = `<!DOCTYPE html>
<html><head><title>raspdac-oled</title></head>
<body style="background:#222">
<img id="frame" src="/frame.png" style="image-rendering:pixelated">
<script>setInterval(function(){document.getElementById("frame").src="/frame.png?"+Date.now()},500)</script>
</body></html>`

// State is what /state reports.
type State struct {
	State     string `json:"state"`
	Page      string `json:"page"`
	Refreshes uint64 `json:"refreshes"`
}

// Preview mirrors every frame drawn on the wrapped canvas and serves it over
// HTTP.
type Preview struct {
	next   Canvas
	raster *Raster
	scale  int
	listen string
	log    *zap.Logger
	app    *fiber.App

	mu    sync.RWMutex
	frame *image.RGBA
	ops   []render.Op
	state State
}

func NewPreview(cfg config.HTTPConfig, next Canvas, width, height int, log *zap.Logger) *Preview {
	p := &Preview{
		next:   next,
		raster: NewRaster(width, height),
		scale:  max(cfg.Scale, 1),
		listen: cfg.Listen,
		log:    log.Named("preview"),
		frame:  image.NewRGBA(image.Rect(0, 0, width, height)),
		app:    fiber.New(fiber.Config{DisableStartupMessage: true}),
	}
	draw.Draw(p.frame, p.frame.Bounds(), image.NewUniform(Ground), image.Point{}, draw.Src)

	p.app.Get("/", p.index)
	p.app.Get("/frame.png", p.serveFrame)
	p.app.Get("/frame.svg", p.serveSVG)
	p.app.Get("/state", p.serveState)
	return p
}

// Draw records ops and the painted frame, then forwards ops.
func (p *Preview) Draw(ops []render.Op) error {
	img := p.raster.Paint(ops)
	p.mu.Lock()
	copy(p.frame.Pix, img.Pix)
	p.ops = append(p.ops[:0], ops...)
	p.state.Refreshes++
	p.mu.Unlock()

	if p.next == nil {
		return nil
	}
	return p.next.Draw(ops)
}

// Observe records the sequencer decision of the current tick.
func (p *Preview) Observe(state, page string) {
	p.mu.Lock()
	p.state.State, p.state.Page = state, page
	p.mu.Unlock()
}

// App exposes the HTTP handler.
func (p *Preview) App() *fiber.App { return p.app }

// Serve listens until Close.
func (p *Preview) Serve() error {
	p.log.Info("starting preview server", zap.String("listen", p.listen))
	return p.app.Listen(p.listen)
}

func (p *Preview) Close() error {
	err := p.app.Shutdown()
	if p.next != nil {
		if cerr := p.next.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (p *Preview) index(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(indexPage)
}

func (p *Preview) serveFrame(c *fiber.Ctx) error {
	p.mu.RLock()
	b := p.frame.Bounds()
	scaled := imaging.Resize(p.frame, b.Dx()*p.scale, b.Dy()*p.scale, imaging.NearestNeighbor)
	p.mu.RUnlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode image")
	}
	c.Set("Content-Type", "image/png")
	c.Set("Content-Length", strconv.Itoa(buf.Len()))
	return c.Send(buf.Bytes())
}

func (p *Preview) serveSVG(c *fiber.Ctx) error {
	p.mu.RLock()
	b := p.frame.Bounds()
	var buf bytes.Buffer
	WriteSVG(&buf, p.ops, b.Dx(), b.Dy(), p.scale)
	p.mu.RUnlock()

	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

func (p *Preview) serveState(c *fiber.Ctx) error {
	p.mu.RLock()
	s := p.state
	p.mu.RUnlock()
	return c.JSON(s)
}

// WriteSVG redraws ops as vector shapes, every coordinate multiplied by
// scale.
func WriteSVG(w io.Writer, ops []render.Op, width, height, scale int) {
	canvas := svg.New(w)
	canvas.Start(width*scale, height*scale)
	canvas.Rect(0, 0, width*scale, height*scale, "fill:black")
	for _, op := range ops {
		switch op.Kind {
		case render.OpText:
			if op.Face == nil || op.Text == "" {
				continue
			}
			m := op.Face.Metrics()
			ascent := m.Ascent.Ceil()
			size := (ascent + m.Descent.Ceil()) * scale
			canvas.Text(op.At.X*scale, (op.At.Y+ascent)*scale, op.Text,
				fmt.Sprintf("fill:white;font-family:sans-serif;font-size:%dpx", size))
		case render.OpFill, render.OpOutline:
			r := op.Rect()
			style := "fill:white"
			if op.Kind == render.OpOutline {
				style = fmt.Sprintf("fill:none;stroke:white;stroke-width:%d", scale)
			}
			canvas.Rect(r.Min.X*scale, r.Min.Y*scale, r.Dx()*scale, r.Dy()*scale, style)
		}
	}
	canvas.End()
}
