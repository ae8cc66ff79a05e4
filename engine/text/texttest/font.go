// Package texttest provides a deterministic text.Font for tests.
package texttest

import (
	"image"
	"unicode"

	"github.com/hubastard/trellis/engine/text"
)

// FixedFont is a monospace font whose every glyph is a solid size×size box:
// advance = size, ascent = 4/5 size, descent = -1/5 size, no line gap.
// Spaces are blank. Kerning comes from Kerning, in pixels at any size.
type FixedFont struct {
	id      text.FontID
	Kerning map[[2]rune]float32

	// Rasterized counts Rasterize calls per rune.
	Rasterized map[rune]int
}

func NewFixedFont() *FixedFont {
	return &FixedFont{
		id:         text.NewFontID(),
		Rasterized: make(map[rune]int),
	}
}

func (f *FixedFont) ID() text.FontID { return f.id }

func (f *FixedFont) Metrics(size float32) text.Metrics {
	return text.Metrics{Ascent: size * 4 / 5, Descent: -size / 5}
}

func (f *FixedFont) Glyph(r rune, size float32) text.GlyphMetrics {
	return text.GlyphMetrics{
		ID:      text.GlyphID(r),
		Advance: size,
		Bounds:  text.Bounds{MinX: 0, MinY: -size * 4 / 5, MaxX: size, MaxY: size / 5},
		Blank:   unicode.IsSpace(r),
	}
}

func (f *FixedFont) Kern(prev, cur rune, _ float32) float32 {
	return f.Kerning[[2]rune{prev, cur}]
}

func (f *FixedFont) Rasterize(r rune, size float32) (*image.Alpha, bool) {
	if unicode.IsSpace(r) {
		return nil, false
	}
	f.Rasterized[r]++
	s := int(size)
	m := image.NewAlpha(image.Rect(0, -s*4/5, s, s/5))
	for i := range m.Pix {
		m.Pix[i] = 0xff
	}
	return m, true
}
