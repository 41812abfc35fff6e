// Package shipdef describes ship layouts and reads them from the
// line-oriented ship file format or from YAML.
package shipdef

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrMalformed reports a ship file that cannot be parsed.
	ErrMalformed = errors.New("shipdef: malformed ship file")
	// ErrInvalidDefinition reports a parsed definition with values no ship
	// can be built from.
	ErrInvalidDefinition = errors.New("shipdef: invalid definition")
)

// RectSpec places one rectangle relative to the ship's reference point.
type RectSpec struct {
	ExtentX float64 `yaml:"extent_x"`
	ExtentY float64 `yaml:"extent_y"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Theta   float64 `yaml:"theta"` // radians
	Mass    float64 `yaml:"mass"`
}

// EngineSpec is a rectangle that also produces thrust along its Y axis.
type EngineSpec struct {
	RectSpec `yaml:",inline"`
	Thrust   float64 `yaml:"thrust"`
}

// RGB is a ship's draw color. Channels range over 0..255.
type RGB struct {
	R int `yaml:"r"`
	G int `yaml:"g"`
	B int `yaml:"b"`
}

// RGBA converts to an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 0xff}
}

// Definition is everything needed to build a ship.
type Definition struct {
	Name            string       `yaml:"name"`
	Hull            []RectSpec   `yaml:"hull"`
	Engines         []EngineSpec `yaml:"engines"`
	Color           RGB          `yaml:"color"`
	MaxSpeed        float64      `yaml:"max_speed"`
	MaxAngularSpeed float64      `yaml:"max_angular_speed"`
}

// NumRects returns the total rect count, engines included.
func (d *Definition) NumRects() int {
	return len(d.Hull) + len(d.Engines)
}

// Validate checks that a ship can be built from d. All problems found are
// reported together.
func (d *Definition) Validate() error {
	var errs []error

	if d.NumRects() == 0 {
		errs = append(errs, errors.New("no rects"))
	}
	for i, r := range d.Hull {
		if err := r.validate(); err != nil {
			errs = append(errs, fmt.Errorf("hull rect %d: %w", i, err))
		}
	}
	for i, e := range d.Engines {
		if err := e.validate(); err != nil {
			errs = append(errs, fmt.Errorf("engine %d: %w", i, err))
		}
		if !(e.Thrust > 0) {
			errs = append(errs, fmt.Errorf("engine %d: thrust %g must be positive", i, e.Thrust))
		}
	}
	for _, ch := range []int{d.Color.R, d.Color.G, d.Color.B} {
		if ch < 0 || ch > 255 {
			errs = append(errs, fmt.Errorf("color %v out of range", d.Color))
			break
		}
	}
	if !(d.MaxSpeed > 0) {
		errs = append(errs, fmt.Errorf("max speed %g must be positive", d.MaxSpeed))
	}
	if !(d.MaxAngularSpeed > 0) {
		errs = append(errs, fmt.Errorf("max angular speed %g must be positive", d.MaxAngularSpeed))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, errors.Join(errs...))
}

func (r RectSpec) validate() error {
	if !(r.ExtentX > 0) || !(r.ExtentY > 0) {
		return fmt.Errorf("extents (%g, %g) must be positive", r.ExtentX, r.ExtentY)
	}
	if !(r.Mass > 0) {
		return fmt.Errorf("mass %g must be positive", r.Mass)
	}
	return nil
}
