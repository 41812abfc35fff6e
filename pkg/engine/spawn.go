package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/opd-ai/go-thrusters/pkg/clock"
	"github.com/opd-ai/go-thrusters/pkg/config"
	"github.com/opd-ai/go-thrusters/pkg/entity"
	"github.com/opd-ai/go-thrusters/pkg/shipdef"
)

// SettingsFromConfig extracts collision settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		BroadPhase:       cfg.Physics.BroadPhase,
		BroadPhaseMargin: cfg.Physics.BroadPhaseMargin,
		WorldSize:        cfg.Physics.WorldSize,
	}
}

// AutopilotFromConfig converts the configured follower tuning.
func AutopilotFromConfig(cfg *config.Config) entity.AutopilotConfig {
	a := cfg.Autopilot
	return entity.AutopilotConfig{
		Steer:        entity.PIDGains{Kp: a.Steer.Kp, Ki: a.Steer.Ki, Kd: a.Steer.Kd},
		Approach:     entity.PIDGains{Kp: a.Approach.Kp, Ki: a.Approach.Ki, Kd: a.Approach.Kd},
		DeadBand:     a.DeadBand,
		LeadDistance: a.LeadDistance,
	}
}

// NewWorldFromConfig loads every configured ship definition, builds the
// ships at their start positions and adds them to a new world. The player
// ship, if any, starts focused. Every other ship keeps its configured pilot.
func NewWorldFromConfig(ctx context.Context, cfg *config.Config, clk clock.Clock, surface entity.Surface, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	paths := make([]string, len(cfg.Ships))
	for i, s := range cfg.Ships {
		paths[i] = s.Definition
	}
	defs, err := shipdef.LoadFleet(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("loading fleet: %w", err)
	}

	opts = append([]Option{WithSettings(SettingsFromConfig(cfg))}, opts...)
	w, err := NewWorld(surface, opts...)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	var shared *entity.DecayTimer
	if cfg.Physics.SharedSmokeDecay {
		shared = entity.NewDecayTimer()
	}

	player := -1
	for i, sc := range cfg.Ships {
		def := defs[i]
		if sc.Name != "" {
			def.Name = sc.Name
		}

		shipOpts := []entity.Option{
			entity.WithRand(rand.New(rand.NewPCG(seed, uint64(i)))),
			entity.WithDampingFactor(cfg.Physics.DampingFactor),
			entity.WithAutopilot(AutopilotFromConfig(cfg)),
		}
		if shared != nil {
			shipOpts = append(shipOpts, entity.WithDecayTimer(shared))
		}

		ship, err := entity.NewShip(def, clk, shipOpts...)
		if err != nil {
			return nil, fmt.Errorf("ships[%d]: %w", i, err)
		}
		ship.Translate(sc.X, sc.Y)

		role := RoleIdle
		switch sc.Pilot {
		case config.PilotPlayer:
			player = i
		case config.PilotFollower:
			role = RoleFollower
		}
		w.AddShip(ctx, ship, role)
	}

	if player > 0 {
		w.focus = player
	}
	return w, nil
}
