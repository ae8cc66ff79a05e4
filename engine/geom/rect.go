package geom

import "github.com/chewxy/math32"

// Rect is an axis-aligned box in pixel space, top-left origin, y-down.
// Width and Height are never negative.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// R builds a Rect, clamping negative extents to zero.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, Width: math32.Max(w, 0), Height: math32.Max(h, 0)}
}

// RectFrom builds a Rect from a position and a size.
func RectFrom(pos, size Vec2) Rect { return R(pos.X, pos.Y, size.X, size.Y) }

// Contains reports whether p lies inside r. Both edges are inclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Rect) Position() Vec2 { return Vec2{X: r.X, Y: r.Y} }
func (r Rect) Size() Vec2     { return Vec2{X: r.Width, Y: r.Height} }
func (r Rect) Min() Vec2      { return r.Position() }
func (r Rect) Max() Vec2      { return Vec2{X: r.X + r.Width, Y: r.Y + r.Height} }
func (r Rect) Empty() bool    { return r.Width == 0 || r.Height == 0 }
