// Package page holds the declarative description of every screen: which
// objects a page draws, where, with which font, and where their values come
// from.
package page

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
)

var (
	ErrUnknownFont = errors.New("unknown font")
	ErrUnknownType = errors.New("unknown object type")
	ErrBadJustify  = errors.New("bad justification")
	ErrUnknownPage = errors.New("unknown page")
	ErrBadObject   = errors.New("bad object")
)

// Page identifiers.
const (
	Init      = "INIT"
	IP        = "IP"
	Menu      = "MENU"
	Volume    = "VOLUME"
	SPDIF     = "SPDIF"
	Saver     = "SAVER"
	I2SPlay1  = "I2S_PLAY1"
	I2SPlay2  = "I2S_PLAY2"
	pageCount = 8
)

// Required lists the pages every template must define.
var Required = [pageCount]string{Init, IP, Menu, Volume, SPDIF, Saver, I2SPlay1, I2SPlay2}

// Kind is the object type.
type Kind string

const (
	KindText       Kind = "text"
	KindIcon       Kind = "icon"
	KindScrolling  Kind = "scrolling"
	KindRectangle  Kind = "rectangle"
	KindVolumeBar  Kind = "volume_bar"
	KindElapsedBar Kind = "elapsed_bar"
	KindSaver      Kind = "saver"
)

// HasText reports whether objects of kind k draw a string with a font.
func (k Kind) HasText() bool {
	switch k {
	case KindText, KindIcon, KindScrolling, KindSaver:
		return true
	}
	return false
}

func (k Kind) valid() bool {
	switch k {
	case KindText, KindIcon, KindScrolling, KindRectangle, KindVolumeBar, KindElapsedBar, KindSaver:
		return true
	}
	return false
}

type HAlign int

const (
	Left HAlign = iota
	Center
	Right
)

type VAlign int

const (
	Top VAlign = iota
	Middle
	Bottom
)

// Justify is the anchor of an object on its declared position.
type Justify struct {
	H HAlign
	V VAlign
}

// ParseJustify reads a two-letter anchor: L, C or R, then H (top), C or B.
func ParseJustify(s string) (Justify, error) {
	if len(s) != 2 {
		return Justify{}, fmt.Errorf("%w: %q", ErrBadJustify, s)
	}
	var j Justify
	switch s[0] {
	case 'L':
		j.H = Left
	case 'C':
		j.H = Center
	case 'R':
		j.H = Right
	default:
		return Justify{}, fmt.Errorf("%w: %q", ErrBadJustify, s)
	}
	switch s[1] {
	case 'H':
		j.V = Top
	case 'C':
		j.V = Middle
	case 'B':
		j.V = Bottom
	default:
		return Justify{}, fmt.Errorf("%w: %q", ErrBadJustify, s)
	}
	return j, nil
}

// Binding points an object at RuntimeData[Group][Field].
type Binding struct {
	Group, Field string
}

func (b Binding) String() string { return b.Group + "." + b.Field }

// Bounds are pixel corners, both inclusive. Min may exceed Max to run a bar
// in the opposite direction.
type Bounds struct {
	XMin int `json:"xmin"`
	YMin int `json:"ymin"`
	XMax int `json:"xmax"`
	YMax int `json:"ymax"`
}

// Range is the value domain of a bar.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Object is one visual element of a frame.
type Object struct {
	ID      string
	Kind    Kind
	Pos     image.Point
	Justify Justify
	Font    string
	Face    font.Face
	Binding *Binding
	Value   string
	// Bounds is the bar or rectangle extent, or the scroll window.
	Bounds *Bounds
	Range  Range
}

// Frame is the ordered object list of one page.
type Frame struct {
	ID      string
	Objects []Object
}

// Model holds every frame, built once at startup.
type Model struct {
	frames map[string]*Frame
}

// Frame returns the frame of page id.
func (m *Model) Frame(id string) (*Frame, error) {
	f, ok := m.frames[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPage, id)
	}
	return f, nil
}
