// pkg/render/renderer.go
package render

import (
	"context"
	"image/color"
	"sync/atomic"

	"github.com/opd-ai/go-thrusters/pkg/entity"
	"github.com/opd-ai/go-thrusters/pkg/logging"
)

// NullSurface is an entity.Surface that draws nothing. It counts primitives
// per frame and logs each flipped frame at debug level.
type NullSurface struct {
	logger   *logging.Logger
	viewport Viewport

	points atomic.Int64
	lines  atomic.Int64
	frames atomic.Int64
}

// NewNullSurface creates a new NullSurface with structured logging.
func NewNullSurface(logger *logging.Logger) *NullSurface {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &NullSurface{
		logger:   logger,
		viewport: NewViewport(0, 0),
	}
}

// DrawScaledPoint implements entity.Surface.
func (s *NullSurface) DrawScaledPoint(x, y float64, c color.RGBA) {
	s.points.Add(1)
}

// DrawScaledLine implements entity.Surface.
func (s *NullSurface) DrawScaledLine(x1, y1, x2, y2 float64, c color.RGBA) {
	s.lines.Add(1)
}

// SetScale implements entity.Surface.
func (s *NullSurface) SetScale(k float64) {
	s.viewport.Scale = k
}

// ShiftOrigin implements entity.Surface.
func (s *NullSurface) ShiftOrigin(x, y float64) {
	s.viewport.ShiftX, s.viewport.ShiftY = x, y
}

// Lock implements entity.Surface.
func (s *NullSurface) Lock() {}

// Unlock implements entity.Surface.
func (s *NullSurface) Unlock() {}

// Clear implements entity.Surface.
func (s *NullSurface) Clear() {
	s.points.Store(0)
	s.lines.Store(0)
}

// Flip implements entity.Surface.
func (s *NullSurface) Flip() {
	frame := s.frames.Add(1)
	s.logger.Debug(context.Background(), "frame flipped",
		"frame", frame,
		"points", s.points.Load(),
		"lines", s.lines.Load(),
		"scale", s.viewport.Scale,
		"shift_x", s.viewport.ShiftX,
		"shift_y", s.viewport.ShiftY,
	)
}

// Points returns the number of points drawn since the last Clear.
func (s *NullSurface) Points() int64 { return s.points.Load() }

// Lines returns the number of lines drawn since the last Clear.
func (s *NullSurface) Lines() int64 { return s.lines.Load() }

// Frames returns the number of flipped frames.
func (s *NullSurface) Frames() int64 { return s.frames.Load() }

// Viewport returns the current scale and origin.
func (s *NullSurface) Viewport() Viewport { return s.viewport }

var _ entity.Surface = (*NullSurface)(nil)
