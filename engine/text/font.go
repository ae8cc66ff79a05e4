// Package text lays out paragraphs, packs their glyph bitmaps into a shared atlas texture
// and turns the result into textured quads.
package text

import (
	"image"
	"sync/atomic"
)

type (
	FontID  uint32
	GlyphID uint32
)

var lastFontID atomic.Uint32

// NewFontID hands out process-unique font ids.
func NewFontID() FontID { return FontID(lastFontID.Add(1)) }

// Metrics are the vertical metrics of a font at one size, in pixels.
// Descent is below the baseline and therefore <= 0.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineAdvance is the distance between two consecutive baselines.
func (m Metrics) LineAdvance() float32 { return m.Ascent - m.Descent + m.LineGap }

// Bounds is a glyph outline box relative to the caret, y down.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

type GlyphMetrics struct {
	ID      GlyphID
	Advance float32
	Bounds  Bounds
	Blank   bool // no ink, e.g. space
}

// Font is the font provider consumed by the layout and the atlas.
//
// Rasterize renders r with the dot at the origin. The returned mask's bounds are the
// glyph's pixel box relative to the dot; false means the glyph has no ink.
type Font interface {
	ID() FontID
	Metrics(size float32) Metrics
	Glyph(r rune, size float32) GlyphMetrics
	Kern(prev, cur rune, size float32) float32
	Rasterize(r rune, size float32) (*image.Alpha, bool)
}
