// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. THRUSTERS_FRAME_RATE or
// THRUSTERS_PHYSICS_DAMPING_FACTOR.
const EnvPrefix = "THRUSTERS"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Pilot values for ShipConfig.Pilot.
const (
	PilotPlayer   = "player"
	PilotFollower = "follower"
	PilotIdle     = "idle"
)

// Surface values for RenderConfig.Surface.
const (
	SurfaceEngo     = "engo"
	SurfaceTerminal = "terminal"
	SurfaceNull     = "null"
)

// Config contains configuration for a simulation run
type Config struct {
	// FrameRate is the clock divisor: one unit of simulated time per
	// FrameRate wall milliseconds.
	FrameRate float64 `mapstructure:"frame_rate" yaml:"frame_rate"`
	// Seed fixes the particle random source. Zero picks a random seed.
	Seed      uint64          `mapstructure:"seed" yaml:"seed"`
	Physics   PhysicsConfig   `mapstructure:"physics" yaml:"physics"`
	Autopilot AutopilotConfig `mapstructure:"autopilot" yaml:"autopilot"`
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
	Ships     []ShipConfig    `mapstructure:"ships" yaml:"ships"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	DampingFactor    float64 `mapstructure:"damping_factor" yaml:"damping_factor"`
	SharedSmokeDecay bool    `mapstructure:"shared_smoke_decay" yaml:"shared_smoke_decay"`
	BroadPhase       bool    `mapstructure:"broad_phase" yaml:"broad_phase"`
	BroadPhaseMargin float64 `mapstructure:"broad_phase_margin" yaml:"broad_phase_margin"`
	WorldSize        float64 `mapstructure:"world_size" yaml:"world_size"`
}

// PIDConfig holds one controller's gains
type PIDConfig struct {
	Kp float64 `mapstructure:"kp" yaml:"kp"`
	Ki float64 `mapstructure:"ki" yaml:"ki"`
	Kd float64 `mapstructure:"kd" yaml:"kd"`
}

// AutopilotConfig contains follower tuning
type AutopilotConfig struct {
	Steer        PIDConfig `mapstructure:"steer" yaml:"steer"`
	Approach     PIDConfig `mapstructure:"approach" yaml:"approach"`
	DeadBand     float64   `mapstructure:"dead_band" yaml:"dead_band"`
	LeadDistance float64   `mapstructure:"lead_distance" yaml:"lead_distance"`
}

// RenderConfig contains output surface configuration
type RenderConfig struct {
	Width   int    `mapstructure:"width" yaml:"width"`
	Height  int    `mapstructure:"height" yaml:"height"`
	Surface string `mapstructure:"surface" yaml:"surface"`
}

// ShipConfig places one ship in the world
type ShipConfig struct {
	Name       string  `mapstructure:"name" yaml:"name"`
	Definition string  `mapstructure:"definition" yaml:"definition"`
	X          float64 `mapstructure:"x" yaml:"x"`
	Y          float64 `mapstructure:"y" yaml:"y"`
	Pilot      string  `mapstructure:"pilot" yaml:"pilot"`
}

// DefaultConfig returns the stock configuration: a player x-wing chased by
// an interceptor.
func DefaultConfig() *Config {
	return &Config{
		FrameRate: 100,
		Physics: PhysicsConfig{
			DampingFactor:    0.3,
			BroadPhase:       true,
			BroadPhaseMargin: 5,
			WorldSize:        100000,
		},
		Autopilot: AutopilotConfig{
			Steer:        PIDConfig{Kp: 300, Ki: 0.01, Kd: 0.00001},
			Approach:     PIDConfig{Kp: 800, Ki: 2, Kd: 0.05},
			DeadBand:     50,
			LeadDistance: 750,
		},
		Render: RenderConfig{
			Width:   800,
			Height:  600,
			Surface: SurfaceTerminal,
		},
		Ships: []ShipConfig{
			{Name: "red-leader", Definition: "assets/ships/xwing.ship", Pilot: PilotPlayer},
			{Name: "bandit", Definition: "assets/ships/interceptor.ship", X: 400, Y: -300, Pilot: PilotFollower},
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("frame_rate", d.FrameRate)
	v.SetDefault("seed", d.Seed)

	v.SetDefault("physics.damping_factor", d.Physics.DampingFactor)
	v.SetDefault("physics.shared_smoke_decay", d.Physics.SharedSmokeDecay)
	v.SetDefault("physics.broad_phase", d.Physics.BroadPhase)
	v.SetDefault("physics.broad_phase_margin", d.Physics.BroadPhaseMargin)
	v.SetDefault("physics.world_size", d.Physics.WorldSize)

	v.SetDefault("autopilot.steer.kp", d.Autopilot.Steer.Kp)
	v.SetDefault("autopilot.steer.ki", d.Autopilot.Steer.Ki)
	v.SetDefault("autopilot.steer.kd", d.Autopilot.Steer.Kd)
	v.SetDefault("autopilot.approach.kp", d.Autopilot.Approach.Kp)
	v.SetDefault("autopilot.approach.ki", d.Autopilot.Approach.Ki)
	v.SetDefault("autopilot.approach.kd", d.Autopilot.Approach.Kd)
	v.SetDefault("autopilot.dead_band", d.Autopilot.DeadBand)
	v.SetDefault("autopilot.lead_distance", d.Autopilot.LeadDistance)

	v.SetDefault("render.width", d.Render.Width)
	v.SetDefault("render.height", d.Render.Height)
	v.SetDefault("render.surface", d.Render.Surface)

	v.SetDefault("ships", d.Ships)
}

// LoadConfig reads a YAML or JSON configuration from path, chosen by file
// extension, on top of DefaultConfig. An empty path loads the defaults only.
// THRUSTERS_* environment variables override both. Relative ship definition
// paths in a file are resolved against the file's directory.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if path != "" && v.InConfig("ships") {
		dir := filepath.Dir(path)
		for i := range cfg.Ships {
			if def := cfg.Ships[i].Definition; def != "" && !filepath.IsAbs(def) {
				cfg.Ships[i].Definition = filepath.Join(dir, def)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves a configuration to a file as YAML
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.FrameRate > 0, "frame_rate must be positive, got %g", c.FrameRate)
	check(c.Physics.DampingFactor >= 0 && c.Physics.DampingFactor <= 1,
		"physics.damping_factor must be within [0, 1], got %g", c.Physics.DampingFactor)
	check(c.Physics.BroadPhaseMargin >= 0, "physics.broad_phase_margin must not be negative")
	check(c.Physics.WorldSize > 0, "physics.world_size must be positive")
	check(c.Autopilot.DeadBand >= 0, "autopilot.dead_band must not be negative")
	check(c.Autopilot.LeadDistance >= 0, "autopilot.lead_distance must not be negative")
	check(c.Render.Width > 0 && c.Render.Height > 0,
		"render size must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	switch c.Render.Surface {
	case SurfaceEngo, SurfaceTerminal, SurfaceNull:
	default:
		errs = append(errs, fmt.Errorf("render.surface %q is not one of engo, terminal, null", c.Render.Surface))
	}

	players := 0
	for i, s := range c.Ships {
		check(s.Definition != "", "ships[%d]: definition is required", i)
		switch s.Pilot {
		case PilotPlayer:
			players++
		case PilotFollower, PilotIdle:
		default:
			errs = append(errs, fmt.Errorf("ships[%d]: pilot %q is not one of player, follower, idle", i, s.Pilot))
		}
	}
	check(players <= 1, "at most one ship may have the player pilot, got %d", players)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
