// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"
	"sync"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-thrusters/pkg/entity"
	"github.com/opd-ai/go-thrusters/pkg/render"
)

const (
	pointSize = 2
	lineWidth = 1
)

// SpriteAdder receives the sprites a surface creates. *common.RenderSystem
// implements it.
type SpriteAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// sprite is one pooled rectangle entity.
type sprite struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoSurface implements entity.Surface on top of the Engo render system.
// Every point and line segment is a rectangle entity. Entities are pooled
// and hidden on Clear rather than removed, so a frame only creates entities
// when it draws more than any frame before it.
type EngoSurface struct {
	mu       sync.Mutex
	viewport render.Viewport
	adder    SpriteAdder

	sprites []*sprite
	used    int
}

// NewEngoSurface creates a surface for a width x height window. Sprites are
// created once the surface is attached to a render system.
func NewEngoSurface(width, height int) *EngoSurface {
	return &EngoSurface{viewport: render.NewViewport(width, height)}
}

// Attach hands every pooled and future sprite to adder.
func (s *EngoSurface) Attach(adder SpriteAdder) {
	s.adder = adder
	for _, sp := range s.sprites {
		adder.Add(&sp.basic, &sp.render, &sp.space)
	}
}

// DrawScaledPoint implements entity.Surface
func (s *EngoSurface) DrawScaledPoint(x, y float64, c color.RGBA) {
	sx, sy := s.viewport.ToScreenF(x, y)
	if !s.viewport.Contains(int(sx), int(sy)) {
		return
	}

	sp := s.next()
	sp.space.Position = engo.Point{X: float32(sx), Y: float32(sy)}
	sp.space.Width = pointSize
	sp.space.Height = pointSize
	sp.space.Rotation = 0
	sp.render.Color = c
}

// DrawScaledLine implements entity.Surface
func (s *EngoSurface) DrawScaledLine(x1, y1, x2, y2 float64, c color.RGBA) {
	sx1, sy1 := s.viewport.ToScreenF(x1, y1)
	sx2, sy2 := s.viewport.ToScreenF(x2, y2)
	if s.viewport.OffScreen(int(sx1), int(sy1), int(sx2), int(sy2)) {
		return
	}

	dx, dy := sx2-sx1, sy2-sy1
	sp := s.next()
	sp.space.Position = engo.Point{X: float32(sx1), Y: float32(sy1)}
	sp.space.Width = float32(math.Hypot(dx, dy))
	sp.space.Height = lineWidth
	sp.space.Rotation = float32(math.Atan2(dy, dx) * 180 / math.Pi)
	sp.render.Color = c
}

// SetScale implements entity.Surface
func (s *EngoSurface) SetScale(k float64) { s.viewport.Scale = k }

// ShiftOrigin implements entity.Surface
func (s *EngoSurface) ShiftOrigin(x, y float64) {
	s.viewport.ShiftX = x
	s.viewport.ShiftY = y
}

// Lock implements entity.Surface
func (s *EngoSurface) Lock() { s.mu.Lock() }

// Unlock implements entity.Surface
func (s *EngoSurface) Unlock() { s.mu.Unlock() }

// Flip implements entity.Surface. The render system draws the visible
// sprites on its own update, so there is nothing to swap.
func (s *EngoSurface) Flip() {}

// Clear implements entity.Surface
func (s *EngoSurface) Clear() {
	for _, sp := range s.sprites[:s.used] {
		sp.render.Hidden = true
	}
	s.used = 0
}

// Visible returns the number of sprites drawn since the last Clear.
func (s *EngoSurface) Visible() int { return s.used }

// Pooled returns the number of sprites created so far.
func (s *EngoSurface) Pooled() int { return len(s.sprites) }

// Viewport returns the current world to screen mapping.
func (s *EngoSurface) Viewport() render.Viewport { return s.viewport }

// next returns a visible sprite, reusing a hidden one when possible.
func (s *EngoSurface) next() *sprite {
	if s.used < len(s.sprites) {
		sp := s.sprites[s.used]
		sp.render.Hidden = false
		s.used++
		return sp
	}

	sp := &sprite{
		basic:  ecs.NewBasic(),
		render: common.RenderComponent{Drawable: common.Rectangle{}},
	}
	s.sprites = append(s.sprites, sp)
	s.used++
	if s.adder != nil {
		s.adder.Add(&sp.basic, &sp.render, &sp.space)
	}
	return sp
}

var _ entity.Surface = (*EngoSurface)(nil)
