package page

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"golang.org/x/image/font"
)

//go:embed pages.json
var defaultTemplate []byte

// Position defines X and Y coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Element is one object as written in the template file.
type Element struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Value    string   `json:"value,omitempty"`
	DataKey  string   `json:"data_key,omitempty"`
	Font     string   `json:"font,omitempty"`
	Justify  string   `json:"justify,omitempty"`
	Position Position `json:"position"`
	Bounds   *Bounds  `json:"bounds,omitempty"`
	Range    *Range   `json:"range,omitempty"`
}

// Template is the JSON page description: a font table and, per page, the
// ordered element list.
type Template struct {
	Fonts map[string]FontSpec  `json:"fonts"`
	Pages map[string][]Element `json:"pages"`
}

// Default builds the model from the embedded template.
func Default(load FaceLoader) (*Model, error) {
	return Load(bytes.NewReader(defaultTemplate), load)
}

// LoadFile builds the model from the template at path, or the embedded one
// when path is empty.
func LoadFile(path string, load FaceLoader) (*Model, error) {
	if path == "" {
		return Default(load)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, load)
}

// Load decodes and validates a template and resolves its fonts.
func Load(r io.Reader, load FaceLoader) (*Model, error) {
	var tpl Template
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tpl); err != nil {
		return nil, fmt.Errorf("decode page template: %w", err)
	}
	return Build(tpl, load)
}

// Build validates tpl and turns it into a Model.
func Build(tpl Template, load FaceLoader) (*Model, error) {
	res := &resolver{specs: tpl.Fonts, load: load, faces: make(map[string]font.Face)}
	m := &Model{frames: make(map[string]*Frame, len(tpl.Pages))}
	for id, elements := range tpl.Pages {
		f := &Frame{ID: id, Objects: make([]Object, 0, len(elements))}
		seen := make(map[string]bool, len(elements))
		for _, el := range elements {
			if seen[el.ID] {
				return nil, fmt.Errorf("page %s: %w: duplicate id %q", id, ErrBadObject, el.ID)
			}
			seen[el.ID] = true
			obj, err := buildObject(el, res)
			if err != nil {
				return nil, fmt.Errorf("page %s object %s: %w", id, el.ID, err)
			}
			f.Objects = append(f.Objects, obj)
		}
		m.frames[id] = f
	}
	for _, id := range Required {
		if _, ok := m.frames[id]; !ok {
			return nil, fmt.Errorf("%w: template has no %s page", ErrUnknownPage, id)
		}
	}
	return m, nil
}

func buildObject(el Element, res *resolver) (Object, error) {
	kind := Kind(el.Type)
	if !kind.valid() {
		return Object{}, fmt.Errorf("%w: %q", ErrUnknownType, el.Type)
	}
	obj := Object{
		ID:    el.ID,
		Kind:  kind,
		Pos:   image.Pt(el.Position.X, el.Position.Y),
		Value: el.Value,
		Font:  el.Font,
	}
	if el.DataKey != "" {
		group, field, ok := strings.Cut(el.DataKey, ".")
		if !ok || group == "" || field == "" {
			return Object{}, fmt.Errorf("%w: data_key %q is not group.field", ErrBadObject, el.DataKey)
		}
		obj.Binding = &Binding{Group: group, Field: field}
	}

	if kind.HasText() {
		j, err := ParseJustify(el.Justify)
		if err != nil {
			return Object{}, err
		}
		obj.Justify = j
		if obj.Face, err = res.face(el.Font); err != nil {
			return Object{}, err
		}
	}

	switch kind {
	case KindRectangle, KindVolumeBar, KindElapsedBar:
		if el.Bounds == nil {
			return Object{}, fmt.Errorf("%w: %s needs bounds", ErrBadObject, kind)
		}
		obj.Bounds = el.Bounds
	case KindScrolling:
		obj.Bounds = el.Bounds
	}
	switch kind {
	case KindVolumeBar, KindElapsedBar:
		if obj.Binding == nil {
			return Object{}, fmt.Errorf("%w: %s needs a data_key", ErrBadObject, kind)
		}
	}
	if kind == KindVolumeBar {
		if el.Range == nil || el.Range.Max <= el.Range.Min {
			return Object{}, fmt.Errorf("%w: volume_bar needs a range with max > min", ErrBadObject)
		}
		obj.Range = *el.Range
	}
	return obj, nil
}
