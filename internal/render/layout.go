package render

import (
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/font"

	"github.com/audiophonics/raspdac-oled/internal/page"
)

// Extent is the measured box of a string under a face, plus the offset of
// its ink from the top-left of the line box.
type Extent struct {
	W, H       int
	OffX, OffY int
}

// Measure returns the extent of s drawn with face.
func Measure(face font.Face, s string) Extent {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	e := Extent{
		W: font.MeasureString(face, s).Ceil(),
		H: ascent + m.Descent.Ceil(),
	}
	if s == "" {
		return e
	}
	ink, _ := font.BoundString(face, s)
	e.OffX = ink.Min.X.Floor()
	e.OffY = ink.Min.Y.Floor() + ascent
	return e
}

// Justify returns the draw origin that puts the anchor of a box of extent e
// on pos. Half the ink offset is taken off so glyphs look centred, not just
// their box.
func Justify(pos image.Point, j page.Justify, e Extent) image.Point {
	var dx, dy int
	switch j.H {
	case page.Center:
		dx = e.W
	case page.Right:
		dx = 2 * e.W
	}
	switch j.V {
	case page.Middle:
		dy = e.H
	case page.Bottom:
		dy = 2 * e.H
	}
	return image.Pt(pos.X-dx/2-e.OffX/2, pos.Y-dy/2-e.OffY/2)
}

// VolumeLevel maps v from r onto the y span of b. Values outside r are
// clamped.
func VolumeLevel(v int, r page.Range, b page.Bounds) int {
	span := r.Max - r.Min
	if span <= 0 {
		return b.YMin
	}
	dv := min(max(v-r.Min, 0), span)
	return b.YMin + dv*(b.YMax-b.YMin)/span
}

// ElapsedLevel maps elapsed/duration onto the x span of b. A zero duration
// yields XMin.
func ElapsedLevel(elapsed, duration int, b page.Bounds) int {
	if duration <= 0 {
		return b.XMin
	}
	e := min(max(elapsed, 0), duration)
	return b.XMin + e*(b.XMax-b.XMin)/duration
}

// parseInt reads a bound integer given as int or decimal string.
func parseInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			return n
		}
	}
	return 0
}

// parsePair reads an "elapsed:duration" pair.
func parsePair(v any) (int, int) {
	s, _ := v.(string)
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0
	}
	return parseInt(a), parseInt(b)
}
