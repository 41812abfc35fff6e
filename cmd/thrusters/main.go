// cmd/thrusters/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-thrusters/pkg/clock"
	"github.com/opd-ai/go-thrusters/pkg/config"
	"github.com/opd-ai/go-thrusters/pkg/engine"
	"github.com/opd-ai/go-thrusters/pkg/logging"
	engorender "github.com/opd-ai/go-thrusters/pkg/render/engo"
)

func main() {
	logger := logging.NewLogger()
	defer logger.Sync()

	configPath := flag.String("config", "", "Path to a YAML or JSON configuration file")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Render.Width = *width
	}
	if *height > 0 {
		cfg.Render.Height = *height
	}

	surface := engorender.NewEngoSurface(cfg.Render.Width, cfg.Render.Height)
	world, err := engine.NewWorldFromConfig(ctx, cfg, clock.NewFrameClock(cfg.FrameRate), surface,
		engine.WithLogger(logger))
	if err != nil {
		logger.Error(ctx, "Failed to create world", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Opening window",
		"width", cfg.Render.Width,
		"height", cfg.Render.Height,
		"ships", len(world.Ships),
	)

	opts := engo.RunOptions{
		Title:      "Thrusters",
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: *fullscreen,
		VSync:      true,
	}
	engo.Run(opts, engorender.NewSimScene(ctx, world, surface, logger))
}
