package render

import (
	"image"

	"golang.org/x/image/font"
)

// OpKind tells a canvas what an Op draws.
type OpKind int

const (
	OpText OpKind = iota
	// OpFill is a solid rectangle.
	OpFill
	// OpOutline is a one-pixel rectangle border.
	OpOutline
)

func (k OpKind) String() string {
	switch k {
	case OpText:
		return "text"
	case OpFill:
		return "fill"
	case OpOutline:
		return "outline"
	}
	return "unknown"
}

// Op is one absolute draw command.
//
// For OpText, At is the top-left of the line box: the baseline sits at
// At.Y plus the face ascent. For rectangles, At and To are opposite corners,
// both inclusive, in any order.
type Op struct {
	Kind   OpKind
	Object string
	At     image.Point
	To     image.Point
	Text   string
	Face   font.Face
}

// Rect returns the pixel rectangle covered by a rectangle op.
func (o Op) Rect() image.Rectangle {
	return image.Rect(
		min(o.At.X, o.To.X), min(o.At.Y, o.To.Y),
		max(o.At.X, o.To.X)+1, max(o.At.Y, o.To.Y)+1,
	)
}
