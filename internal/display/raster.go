// Package display turns draw ops into pixels and pushes them to a panel, a
// terminal, or a browser preview.
package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/llgcode/draw2d/draw2dimg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/audiophonics/raspdac-oled/internal/render"
)

var (
	Ground = color.RGBA{A: 255}
	Ink    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Canvas accepts the ops of one tick.
type Canvas interface {
	Draw(ops []render.Op) error
	Close() error
}

// Raster is an in-memory monochrome framebuffer.
type Raster struct {
	img *image.RGBA
}

func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image returns the framebuffer. It is overwritten by the next Paint.
func (r *Raster) Image() *image.RGBA { return r.img }

// Clear fills the framebuffer with the ground colour.
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(Ground), image.Point{}, draw.Src)
}

// Paint clears the framebuffer and draws ops in order.
func (r *Raster) Paint(ops []render.Op) *image.RGBA {
	r.Clear()
	for _, op := range ops {
		switch op.Kind {
		case render.OpText:
			r.text(op)
		case render.OpFill:
			draw.Draw(r.img, op.Rect(), image.NewUniform(Ink), image.Point{}, draw.Src)
		case render.OpOutline:
			r.outline(op.Rect())
		}
	}
	return r.img
}

// text draws with the origin at the top-left of the line box.
func (r *Raster) text(op render.Op) {
	if op.Face == nil || op.Text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(Ink),
		Face: op.Face,
		Dot:  fixed.P(op.At.X, op.At.Y+op.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(op.Text)
}

// outline strokes the 1 px border of rect through pixel centres.
func (r *Raster) outline(rect image.Rectangle) {
	x0, y0 := float64(rect.Min.X)+0.5, float64(rect.Min.Y)+0.5
	x1, y1 := float64(rect.Max.X)-0.5, float64(rect.Max.Y)-0.5

	gc := draw2dimg.NewGraphicContext(r.img)
	gc.SetStrokeColor(Ink)
	gc.SetLineWidth(1)
	gc.MoveTo(x0, y0)
	gc.LineTo(x1, y0)
	gc.LineTo(x1, y1)
	gc.LineTo(x0, y1)
	gc.Close()
	gc.Stroke()
}

// Lit reports whether the pixel at (x, y) reads as ink.
func Lit(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return (r+g+b)/3 > 0x7fff
}
