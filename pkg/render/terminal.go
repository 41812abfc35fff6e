package render

import (
	"image/color"
	"io"
	"strings"

	"github.com/opd-ai/go-thrusters/pkg/entity"
)

// referenceWidth is the pixel width the default zoom is calibrated against.
const referenceWidth = 800

const (
	clearScreen = "\033[H\033[2J"
	lineGlyph   = '#'
	pointGlyph  = '.'
)

// TerminalSurface provides a simple ASCII-based rendering for terminals
type TerminalSurface struct {
	out      io.Writer
	viewport Viewport
	buffer   [][]rune
	zoom     float64
	scale    float64
	glyphs   map[color.RGBA]rune
	ansi     bool
	err      error
}

// TerminalOption customizes a TerminalSurface.
type TerminalOption func(*TerminalSurface)

// WithZoom sets how many cells one pixel of the reference window covers.
func WithZoom(zoom float64) TerminalOption {
	return func(s *TerminalSurface) { s.zoom = zoom }
}

// WithGlyph draws points of color c with r.
func WithGlyph(c color.RGBA, r rune) TerminalOption {
	return func(s *TerminalSurface) { s.glyphs[c] = r }
}

// WithANSI clears the terminal before every frame.
func WithANSI(enabled bool) TerminalOption {
	return func(s *TerminalSurface) { s.ansi = enabled }
}

// NewTerminalSurface creates a width x height character surface that writes
// frames to out. The default zoom shrinks an 800 pixel wide window to fit.
func NewTerminalSurface(width, height int, out io.Writer, opts ...TerminalOption) *TerminalSurface {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	s := &TerminalSurface{
		out:      out,
		viewport: NewViewport(width, height),
		buffer:   buffer,
		zoom:     float64(width) / referenceWidth,
		scale:    1,
		glyphs: map[color.RGBA]rune{
			entity.SmokeColor:       '.',
			entity.RedFlameColor:    '*',
			entity.OrangeFlameColor: '+',
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.viewport.Scale = s.scale * s.zoom
	s.Clear()
	return s
}

// DrawScaledPoint implements entity.Surface
func (s *TerminalSurface) DrawScaledPoint(x, y float64, c color.RGBA) {
	sx, sy := s.viewport.ToScreen(x, y)
	if s.viewport.Contains(sx, sy) {
		s.buffer[sy][sx] = s.glyph(c)
	}
}

// DrawScaledLine implements entity.Surface
func (s *TerminalSurface) DrawScaledLine(x1, y1, x2, y2 float64, c color.RGBA) {
	ax, ay := s.viewport.ToScreen(x1, y1)
	bx, by := s.viewport.ToScreen(x2, y2)
	s.viewport.line(ax, ay, bx, by, func(x, y int) {
		s.buffer[y][x] = lineGlyph
	})
}

// SetScale implements entity.Surface
func (s *TerminalSurface) SetScale(k float64) {
	s.scale = k
	s.viewport.Scale = k * s.zoom
}

// ShiftOrigin implements entity.Surface
func (s *TerminalSurface) ShiftOrigin(x, y float64) {
	s.viewport.ShiftX, s.viewport.ShiftY = x, y
}

// Lock implements entity.Surface. The buffer is only touched by the
// simulation goroutine.
func (s *TerminalSurface) Lock() {}

// Unlock implements entity.Surface
func (s *TerminalSurface) Unlock() {}

// Clear implements entity.Surface
func (s *TerminalSurface) Clear() {
	for y := range s.buffer {
		for x := range s.buffer[y] {
			s.buffer[y][x] = ' '
		}
	}
}

// Flip implements entity.Surface by writing the framed buffer to the output.
// The first write error is kept and later frames are dropped.
func (s *TerminalSurface) Flip() {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.out, s.String())
}

// String renders the current buffer with a border.
func (s *TerminalSurface) String() string {
	var b strings.Builder
	if s.ansi {
		b.WriteString(clearScreen)
	}

	border := "+" + strings.Repeat("-", s.viewport.Width) + "+\n"
	b.WriteString(border)
	for y := range s.buffer {
		b.WriteByte('|')
		b.WriteString(string(s.buffer[y]))
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

// Err returns the first error met while writing a frame.
func (s *TerminalSurface) Err() error { return s.err }

// Viewport returns the current mapping from world to cells.
func (s *TerminalSurface) Viewport() Viewport { return s.viewport }

// At returns the glyph at cell (x, y), or zero off the grid.
func (s *TerminalSurface) At(x, y int) rune {
	if !s.viewport.Contains(x, y) {
		return 0
	}
	return s.buffer[y][x]
}

func (s *TerminalSurface) glyph(c color.RGBA) rune {
	if r, ok := s.glyphs[c]; ok {
		return r
	}
	return pointGlyph
}

var _ entity.Surface = (*TerminalSurface)(nil)
