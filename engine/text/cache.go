package text

import (
	"image"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
)

const glyphPadding = 1

type glyphKey struct {
	font FontID
	id   GlyphID
	size float32
}

type cacheEntry struct {
	rect   image.Rectangle // in the bin
	offset image.Point     // bitmap min relative to the dot
}

type queuedGlyph struct {
	font  Font
	glyph Glyph
}

// CacheStats counts cache activity since creation.
type CacheStats struct {
	Hits, Misses, Uploads, Repacks, Dropped int
}

// GlyphCache packs glyph bitmaps into a fixed-size bin.
//
// Glyphs are queued, then CacheQueued rasterizes and packs the misses. When the bin is
// full everything is forgotten and only the current queue is packed again; Generation
// counts these repacks. Rectangles handed out under an older generation are invalid.
type GlyphCache struct {
	width, height int
	packer        *shelfPacker
	entries       map[glyphKey]cacheEntry
	queue         []queuedGlyph
	generation    uint64
	stats         CacheStats
}

func NewGlyphCache(width, height int) *GlyphCache {
	return &GlyphCache{
		width:   width,
		height:  height,
		packer:  newShelfPacker(width, height, glyphPadding),
		entries: make(map[glyphKey]cacheEntry),
	}
}

func (c *GlyphCache) Size() (int, int)   { return c.width, c.height }
func (c *GlyphCache) Generation() uint64 { return c.generation }
func (c *GlyphCache) Stats() CacheStats  { return c.stats }
func (c *GlyphCache) Len() int           { return len(c.entries) }

// Queue marks g as needed by the next CacheQueued. Blank glyphs are ignored.
func (c *GlyphCache) Queue(f Font, g Glyph) {
	if g.Blank {
		return
	}
	c.queue = append(c.queue, queuedGlyph{font: f, glyph: g})
}

// Clear forgets every packed glyph and starts a new generation.
func (c *GlyphCache) Clear() {
	c.entries = make(map[glyphKey]cacheEntry)
	c.packer.reset()
	c.generation++
}

type pendingUpload struct {
	key  glyphKey
	rect image.Rectangle
	pix  []byte
}

// CacheQueued packs every queued glyph that is not cached yet and calls upload once per
// new rectangle with its tightly packed coverage bytes. The queue is emptied. When an
// upload fails, that glyph and every glyph not uploaded yet are forgotten so a later
// pass writes them again.
func (c *GlyphCache) CacheQueued(upload func(region image.Rectangle, pixels []byte) error) error {
	defer func() { c.queue = c.queue[:0] }()

	pending, ok := c.place(false)
	if !ok {
		core.Logger().Warn("glyph cache full, repacking",
			"queued", len(c.queue), "cached", len(c.entries), "generation", c.generation+1)
		c.Clear()
		c.stats.Repacks++
		pending, _ = c.place(true)
	}

	for i, p := range pending {
		if err := upload(p.rect, p.pix); err != nil {
			for _, q := range pending[i:] {
				delete(c.entries, q.key)
			}
			return err
		}
		c.stats.Uploads++
	}
	return nil
}

// place packs the queue. Without repacking it gives up on the first glyph that does not
// fit; when repacking such glyphs are dropped.
func (c *GlyphCache) place(repacking bool) ([]pendingUpload, bool) {
	var pending []pendingUpload
	for _, q := range c.queue {
		key := keyOf(q.font, q.glyph)
		if _, ok := c.entries[key]; ok {
			if !repacking {
				c.stats.Hits++
			}
			continue
		}
		if !repacking {
			c.stats.Misses++
		}

		mask, ok := q.font.Rasterize(q.glyph.Character, q.glyph.Size)
		if !ok {
			continue
		}
		b := mask.Bounds()
		if !c.packer.fits(b.Dx(), b.Dy()) {
			c.stats.Dropped++
			core.Logger().Warn("glyph larger than atlas, dropped",
				"char", string(q.glyph.Character), "w", b.Dx(), "h", b.Dy())
			continue
		}
		rect, ok := c.packer.alloc(b.Dx(), b.Dy())
		if !ok {
			if !repacking {
				return nil, false
			}
			c.stats.Dropped++
			core.Logger().Warn("glyph does not fit after repack, dropped", "char", string(q.glyph.Character))
			continue
		}
		c.entries[key] = cacheEntry{rect: rect, offset: b.Min}
		pending = append(pending, pendingUpload{key: key, rect: rect, pix: tightPixels(mask)})
	}
	return pending, true
}

// RectFor returns the texture coordinates of g in the bin and the pixel rectangle it
// covers on screen, relative to the paragraph origin.
func (c *GlyphCache) RectFor(f Font, g Glyph) (uv geom.Rect, screen image.Rectangle, ok bool) {
	if g.Blank {
		return geom.Rect{}, image.Rectangle{}, false
	}
	e, ok := c.entries[keyOf(f, g)]
	if !ok {
		return geom.Rect{}, image.Rectangle{}, false
	}
	w, h := float32(c.width), float32(c.height)
	uv = geom.Rect{
		X:      float32(e.rect.Min.X) / w,
		Y:      float32(e.rect.Min.Y) / h,
		Width:  float32(e.rect.Dx()) / w,
		Height: float32(e.rect.Dy()) / h,
	}
	tl := g.origin().Add(e.offset)
	screen = image.Rectangle{Min: tl, Max: tl.Add(e.rect.Size())}
	return uv, screen, true
}

func keyOf(f Font, g Glyph) glyphKey {
	return glyphKey{font: f.ID(), id: g.ID, size: g.Size}
}

func tightPixels(m *image.Alpha) []byte {
	b := m.Bounds()
	if m.Stride == b.Dx() {
		return m.Pix[:b.Dx()*b.Dy()]
	}
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		out = append(out, m.Pix[i:i+b.Dx()]...)
	}
	return out
}
