package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/audiophonics/raspdac-oled/internal/app"
)

func main() {
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fxApp := fx.New(appOptions(flags))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fxApp.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()

	if err := fxApp.Stop(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// appOptions is the whole dependency graph for flags.
func appOptions(flags app.Flags) fx.Option {
	return fx.Options(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Supply(flags),
		app.Module,
	)
}

func parseFlags(args []string) (app.Flags, error) {
	var f app.Flags
	fs := flag.NewFlagSet("raspdac-oled", flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "path to the TOML settings file")
	fs.BoolVar(&f.Dev, "dev", false, "development logging")
	fs.StringVar(&f.Display, "display", "", "display driver: ssd1306, terminal or none")
	fs.BoolVar(&f.HTTP, "http", false, "serve the frame preview over HTTP")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	return f, nil
}
