package display

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/audiophonics/raspdac-oled/internal/render"
)

// home moves the cursor to the top-left so frames overwrite each other.
const home = "\x1b[H"

// Terminal draws the framebuffer with half-block characters, two pixel rows
// per text line, for bench use without a panel.
type Terminal struct {
	out    io.Writer
	raster *Raster
	style  lipgloss.Style
}

func NewTerminal(out io.Writer, width, height int) *Terminal {
	return &Terminal{
		out:    out,
		raster: NewRaster(width, height),
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6B7280")),
	}
}

func (t *Terminal) Draw(ops []render.Op) error {
	frame := t.style.Render(HalfBlocks(t.raster.Paint(ops)))
	if _, err := fmt.Fprint(t.out, home+frame+"\n"); err != nil {
		return fmt.Errorf("write terminal frame: %w", err)
	}
	return nil
}

func (t *Terminal) Close() error { return nil }

// HalfBlocks renders img as lines of ' ', '▀', '▄' and '█'.
func HalfBlocks(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := Lit(img, x, y)
			bottom := y+1 < b.Max.Y && Lit(img, x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
