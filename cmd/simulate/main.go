// cmd/simulate/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-thrusters/pkg/clock"
	"github.com/opd-ai/go-thrusters/pkg/config"
	"github.com/opd-ai/go-thrusters/pkg/engine"
	"github.com/opd-ai/go-thrusters/pkg/entity"
	"github.com/opd-ai/go-thrusters/pkg/event"
	"github.com/opd-ai/go-thrusters/pkg/logging"
	"github.com/opd-ai/go-thrusters/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	defer logger.Sync()

	configPath := flag.String("config", "", "Path to a YAML or JSON configuration file")
	createDefault := flag.String("default", "", "Write the default configuration to this path and exit")
	surfaceName := flag.String("surface", "", "Surface override: terminal or null")
	ticks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	period := flag.Duration("period", 20*time.Millisecond, "Time between ticks")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())

	if *createDefault != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *createDefault); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *createDefault,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *createDefault,
		)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		os.Exit(1)
	}
	if *surfaceName != "" {
		cfg.Render.Surface = *surfaceName
	}

	var surface entity.Surface
	switch cfg.Render.Surface {
	case config.SurfaceTerminal:
		surface = render.NewTerminalSurface(cfg.Render.Width/10, cfg.Render.Height/20, os.Stdout,
			render.WithANSI(true))
	case config.SurfaceNull:
		surface = render.NewNullSurface(logger)
	default:
		logger.Error(ctx, "Surface not available headless", nil,
			"surface", cfg.Render.Surface,
			"message", "use cmd/thrusters for the engo window",
		)
		os.Exit(1)
	}

	world, err := engine.NewWorldFromConfig(ctx, cfg, clock.NewFrameClock(cfg.FrameRate), surface,
		engine.WithLogger(logger))
	if err != nil {
		logger.Error(ctx, "Failed to create world", err)
		os.Exit(1)
	}

	collisions := 0
	world.EventBus.Subscribe(event.ShipCollision, func(event.Event) { collisions++ })

	logger.Info(ctx, "Starting simulation",
		"surface", cfg.Render.Surface,
		"ships", len(world.Ships),
		"period", period.String(),
		"ticks", *ticks,
	)
	if err := world.Run(ctx, *period, *ticks); err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}
	if ts, ok := surface.(*render.TerminalSurface); ok && ts.Err() != nil {
		logger.Error(ctx, "Terminal output failed", ts.Err())
	}
	logger.Info(ctx, "Simulation stopped",
		"ticks", world.CurrentTick,
		"collisions", collisions,
	)
}
