package text

import (
	"unicode"

	"github.com/hubastard/trellis/engine/geom"
)

// LayoutParagraph positions the characters of s, starting at (0, ascent).
//
// '\r' and '\n' start a new line ("\r\n" counts once); other control characters are
// skipped. A glyph whose right pixel edge passes wrapWidth is moved to the start of the
// next line unless it already starts one. Kerning never applies across lines.
//
// The returned bounds have Width = sum of all advances and Height = lowest pixel edge.
func LayoutParagraph(f Font, size, wrapWidth float32, s string) ([]Glyph, geom.Rect) {
	m := f.Metrics(size)
	lineAdvance := m.LineAdvance()

	var (
		glyphs  []Glyph
		bounds  geom.Rect
		caret   = geom.V2(0, m.Ascent)
		prev    rune
		hasPrev bool
		afterCR bool
	)
	newline := func() {
		caret = geom.V2(0, caret.Y+lineAdvance)
		hasPrev = false
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			switch {
			case r == '\r':
				newline()
			case r == '\n' && !afterCR:
				newline()
			}
			afterCR = r == '\r'
			continue
		}
		afterCR = false

		gm := f.Glyph(r, size)
		if hasPrev {
			caret.X += f.Kern(prev, r, size)
		}
		g := Glyph{
			Character: r,
			ID:        gm.ID,
			Size:      size,
			Position:  caret,
			Advance:   gm.Advance,
			Bounds:    gm.Bounds,
			Blank:     gm.Blank,
		}

		if pb, ok := g.PixelBounds(); ok {
			if float32(pb.Max.X) > wrapWidth && caret.X > 0 {
				newline()
				g.Position = caret
				pb, _ = g.PixelBounds()
			}
			bounds.Height = max(bounds.Height, float32(pb.Max.Y))
		}

		caret.X += gm.Advance
		bounds.Width += gm.Advance
		prev, hasPrev = r, true
		glyphs = append(glyphs, g)
	}
	return glyphs, bounds
}
