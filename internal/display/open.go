package display

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/render"
)

// Drivers accepted in display.driver.
const (
	DriverSSD1306  = "ssd1306"
	DriverTerminal = "terminal"
	DriverNone     = "none"
)

// ErrUnknownDriver is returned for an unsupported display.driver.
var ErrUnknownDriver = errors.New("unknown display driver")

// Null discards every frame.
type Null struct{}

func (Null) Draw([]render.Op) error { return nil }
func (Null) Close() error           { return nil }

// Open builds the configured canvas.
func Open(cfg config.DisplayConfig, rc config.RenderConfig, log *zap.Logger) (Canvas, error) {
	switch cfg.Driver {
	case DriverSSD1306:
		return OpenPanel(cfg, rc.Width, rc.Height, log)
	case DriverTerminal:
		return NewTerminal(os.Stdout, rc.Width, rc.Height), nil
	case DriverNone, "":
		return Null{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
