// Package geom holds the pixel-space primitives shared by every widget: vectors, rectangles,
// and the pixel/clip/texture coordinate mappings.
package geom

import "github.com/chewxy/math32"

// Vec2 is a 2D position or size. Pixel space unless converted explicitly.
type Vec2 struct {
	X, Y float32
}

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2    { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2    { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Mul(s float32) Vec2 { return Vec2{X: v.X * s, Y: v.Y * s} }
func (v Vec2) Round() Vec2        { return Vec2{X: math32.Round(v.X), Y: math32.Round(v.Y)} }
func (v Vec2) IsZero() bool       { return v.X == 0 && v.Y == 0 }
func (v Vec2) Array() [2]float32  { return [2]float32{v.X, v.Y} }
func (v Vec2) ApproxEq(o Vec2, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps
}

// Max returns the component-wise maximum.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: math32.Max(v.X, o.X), Y: math32.Max(v.Y, o.Y)}
}

// Vec4 carries four scalars. Paddings use X=left, Y=top, Z=bottom, W=right.
type Vec4 struct {
	X, Y, Z, W float32
}

func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }
