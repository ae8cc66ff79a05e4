package text

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/hubastard/trellis/engine/geom"
)

// Glyph is one laid-out character. Position is the caret on the baseline.
type Glyph struct {
	Character rune
	ID        GlyphID
	Size      float32
	Position  geom.Vec2
	Advance   float32
	Bounds    Bounds
	Blank     bool
}

// PixelBounds is the outline box at Position, rounded outwards to whole pixels.
func (g Glyph) PixelBounds() (image.Rectangle, bool) {
	if g.Blank {
		return image.Rectangle{}, false
	}
	return image.Rect(
		int(math32.Floor(g.Position.X+g.Bounds.MinX)),
		int(math32.Floor(g.Position.Y+g.Bounds.MinY)),
		int(math32.Ceil(g.Position.X+g.Bounds.MaxX)),
		int(math32.Ceil(g.Position.Y+g.Bounds.MaxY)),
	), true
}

// origin is the whole-pixel dot the glyph's bitmap is placed at.
func (g Glyph) origin() image.Point {
	return image.Pt(int(math32.Round(g.Position.X)), int(math32.Round(g.Position.Y)))
}
