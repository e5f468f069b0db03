package display

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"

	"github.com/audiophonics/raspdac-oled/internal/config"
	"github.com/audiophonics/raspdac-oled/internal/render"
)

// ErrNoPin is returned when a configured GPIO name does not resolve.
var ErrNoPin = errors.New("gpio pin not found")

const resetPulse = 10 * time.Millisecond

// Panel is the SSD1306 OLED on SPI.
type Panel struct {
	port   spi.PortCloser
	dev    *ssd1306.Dev
	raster *Raster
	log    *zap.Logger
}

// OpenPanel initialises the host drivers, pulses reset and opens the
// controller.
func OpenPanel(cfg config.DisplayConfig, width, height int, log *zap.Logger) (*Panel, error) {
	log = log.Named("panel")
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	dc := gpioreg.ByName(cfg.DCPin)
	if dc == nil {
		return nil, fmt.Errorf("dc %q: %w", cfg.DCPin, ErrNoPin)
	}
	if cfg.RSTPin != "" {
		rst := gpioreg.ByName(cfg.RSTPin)
		if rst == nil {
			return nil, fmt.Errorf("rst %q: %w", cfg.RSTPin, ErrNoPin)
		}
		if err := pulse(rst); err != nil {
			return nil, fmt.Errorf("reset panel: %w", err)
		}
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", cfg.SPIPort, err)
	}
	if cfg.SpeedHz > 0 {
		if err := port.LimitSpeed(physic.Frequency(cfg.SpeedHz) * physic.Hertz); err != nil {
			port.Close()
			return nil, fmt.Errorf("limit spi speed: %w", err)
		}
	}

	opts := ssd1306.DefaultOpts
	opts.W, opts.H = width, height
	opts.Rotated = cfg.Rotated
	dev, err := ssd1306.NewSPI(port, dc, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("open ssd1306: %w", err)
	}

	log.Info("panel ready", zap.String("port", port.String()), zap.Stringer("bounds", dev.Bounds()))
	return &Panel{port: port, dev: dev, raster: NewRaster(width, height), log: log}, nil
}

func pulse(rst gpio.PinOut) error {
	if err := rst.Out(gpio.Low); err != nil {
		return err
	}
	time.Sleep(resetPulse)
	if err := rst.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(resetPulse)
	return nil
}

func (p *Panel) Draw(ops []render.Op) error {
	img := p.raster.Paint(ops)
	if err := p.dev.Draw(img.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("flush panel: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the port.
func (p *Panel) Close() error {
	p.log.Info("halting panel")
	return errors.Join(p.dev.Halt(), p.port.Close())
}
