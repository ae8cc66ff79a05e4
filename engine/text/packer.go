package text

import "image"

// shelfPacker places rectangles in rows, left to right, rows top to bottom.
// Rectangles are separated by padding pixels and never overlap.
type shelfPacker struct {
	width, height int
	padding       int

	x, y, rowH int
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{width: width, height: height, padding: padding}
}

// fits reports whether a w×h rectangle could ever be placed in an empty bin.
func (p *shelfPacker) fits(w, h int) bool {
	return w <= p.width && h <= p.height
}

func (p *shelfPacker) alloc(w, h int) (image.Rectangle, bool) {
	if !p.fits(w, h) {
		return image.Rectangle{}, false
	}
	if p.x+w > p.width {
		p.x = 0
		p.y += p.rowH + p.padding
		p.rowH = 0
	}
	if p.y+h > p.height {
		return image.Rectangle{}, false
	}
	r := image.Rect(p.x, p.y, p.x+w, p.y+h)
	p.x += w + p.padding
	p.rowH = max(p.rowH, h)
	return r, true
}

func (p *shelfPacker) reset() {
	p.x, p.y, p.rowH = 0, 0, 0
}
