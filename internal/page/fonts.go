package page

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontSpec names a TrueType file and a size in points.
type FontSpec struct {
	File string  `json:"file"`
	Size float64 `json:"size"`
}

// FaceLoader turns a FontSpec into a face.
type FaceLoader func(spec FontSpec) (font.Face, error)

// FileFaces loads specs from dir. A file that cannot be read falls back to
// Go Regular at the same size so the display still comes up.
func FileFaces(dir string, log *zap.Logger) FaceLoader {
	parsed := make(map[string]*opentype.Font)
	var fallback *opentype.Font
	return func(spec FontSpec) (font.Face, error) {
		f, ok := parsed[spec.File]
		if !ok {
			var err error
			f, err = parseFile(filepath.Join(dir, spec.File))
			if err != nil {
				log.Warn("font unavailable, using Go Regular", zap.String("file", spec.File), zap.Error(err))
				if fallback == nil {
					if fallback, err = opentype.Parse(goregular.TTF); err != nil {
						return nil, err
					}
				}
				f = fallback
			}
			parsed[spec.File] = f
		}
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    spec.Size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
}

func parseFile(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

// resolver resolves each font name of a template once.
type resolver struct {
	specs map[string]FontSpec
	load  FaceLoader
	faces map[string]font.Face
}

func (r *resolver) face(name string) (font.Face, error) {
	if f, ok := r.faces[name]; ok {
		return f, nil
	}
	spec, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	if spec.Size <= 0 {
		return nil, fmt.Errorf("%w: %q has size %v", ErrUnknownFont, name, spec.Size)
	}
	f, err := r.load(spec)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %q", ErrUnknownFont, name), err)
	}
	r.faces[name] = f
	return f, nil
}
