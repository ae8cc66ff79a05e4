package gfx

import "github.com/hubastard/trellis/engine/geom"

// Drawable records its draw calls into a pass.
type Drawable interface {
	Draw(p *Pass)
}

// Transformable has a pixel-space position. SetPosition re-derives dependent geometry
// immediately.
type Transformable interface {
	Position() geom.Vec2
	SetPosition(pos geom.Vec2)
}
