package text_test

import (
	"errors"
	"image"
	"testing"

	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/text"
	"github.com/hubastard/trellis/engine/text/texttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploads struct {
	regions []image.Rectangle
}

func (u *uploads) record(region image.Rectangle, pixels []byte) error {
	if len(pixels) != region.Dx()*region.Dy() {
		return errors.New("short pixel buffer")
	}
	u.regions = append(u.regions, region)
	return nil
}

func cacheString(t *testing.T, c *text.GlyphCache, f text.Font, size float32, s string, u *uploads) []text.Glyph {
	t.Helper()
	glyphs, _ := text.LayoutParagraph(f, size, 10000, s)
	for _, g := range glyphs {
		c.Queue(f, g)
	}
	require.NoError(t, c.CacheQueued(u.record))
	return glyphs
}

func TestGlyphCacheIdempotent(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(512, 512)
	u := &uploads{}

	glyphs := cacheString(t, c, f, 10, "hello", u)
	require.Len(t, u.regions, 4) // h e l o

	type rects struct {
		uv     geom.Rect
		screen image.Rectangle
	}
	first := make([]rects, len(glyphs))
	for i, g := range glyphs {
		uv, screen, ok := c.RectFor(f, g)
		require.True(t, ok)
		first[i] = rects{uv, screen}
	}

	cacheString(t, c, f, 10, "hello", u)
	assert.Len(t, u.regions, 4, "second pass must not write the texture")
	for i, g := range glyphs {
		uv, screen, ok := c.RectFor(f, g)
		require.True(t, ok)
		assert.Equal(t, first[i], rects{uv, screen})
	}

	st := c.Stats()
	assert.Equal(t, 4, st.Misses)
	assert.Equal(t, 6, st.Hits)
	assert.Equal(t, 4, st.Uploads)
	assert.Equal(t, 4, f.Rasterized['h']+f.Rasterized['e']+f.Rasterized['l']+f.Rasterized['o'])
}

func TestGlyphCacheRectanglesNeverOverlap(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(128, 128)
	u := &uploads{}

	cacheString(t, c, f, 10, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", u)
	require.Len(t, u.regions, 62)
	bin := image.Rect(0, 0, 128, 128)
	for i, a := range u.regions {
		assert.True(t, a.In(bin), "%v outside bin", a)
		for _, b := range u.regions[i+1:] {
			assert.False(t, a.Overlaps(b), "%v overlaps %v", a, b)
		}
	}
}

func TestGlyphCacheRepacksWhenFull(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(32, 32)
	u := &uploads{}

	first := cacheString(t, c, f, 10, "abcdefghi", u)
	assert.Len(t, u.regions, 9)
	assert.Zero(t, c.Stats().Repacks)
	assert.Zero(t, c.Generation())

	second := cacheString(t, c, f, 10, "jk", u)
	assert.Equal(t, 1, c.Stats().Repacks)
	assert.Equal(t, uint64(1), c.Generation())
	assert.Len(t, u.regions, 11)
	assert.Equal(t, 2, c.Len())

	_, _, ok := c.RectFor(f, first[0])
	assert.False(t, ok, "glyphs of the previous generation are gone")
	for _, g := range second {
		_, _, ok := c.RectFor(f, g)
		assert.True(t, ok)
	}
}

func TestGlyphCacheDropsOversizeGlyph(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(16, 16)
	u := &uploads{}

	glyphs := cacheString(t, c, f, 20, "a", u)
	assert.Empty(t, u.regions)
	assert.Equal(t, 1, c.Stats().Dropped)
	_, _, ok := c.RectFor(f, glyphs[0])
	assert.False(t, ok)
}

func TestGlyphCacheKeysBySize(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(512, 512)
	u := &uploads{}

	cacheString(t, c, f, 10, "a", u)
	cacheString(t, c, f, 20, "a", u)
	require.Len(t, u.regions, 2)
	assert.Equal(t, 10, u.regions[0].Dx())
	assert.Equal(t, 20, u.regions[1].Dx())
}

func TestGlyphCacheSkipsBlankAndPropagatesUploadError(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(512, 512)

	glyphs, _ := text.LayoutParagraph(f, 10, 1000, "a b")
	for _, g := range glyphs {
		c.Queue(f, g)
	}
	boom := errors.New("boom")
	var calls int
	err := c.CacheQueued(func(image.Rectangle, []byte) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	_, _, ok := c.RectFor(f, glyphs[1])
	assert.False(t, ok)
}

func TestGlyphCacheRetriesAfterFailedUpload(t *testing.T) {
	f := texttest.NewFixedFont()
	c := text.NewGlyphCache(512, 512)

	glyphs, _ := text.LayoutParagraph(f, 10, 1000, "ab")
	for _, g := range glyphs {
		c.Queue(f, g)
	}
	boom := errors.New("boom")
	require.ErrorIs(t, c.CacheQueued(func(image.Rectangle, []byte) error { return boom }), boom)
	for _, g := range glyphs {
		_, _, ok := c.RectFor(f, g)
		assert.False(t, ok, "%q kept without texels", g.Character)
	}
	assert.Zero(t, c.Len())

	u := &uploads{}
	cacheString(t, c, f, 10, "ab", u)
	assert.Len(t, u.regions, 2)
	for _, g := range glyphs {
		_, _, ok := c.RectFor(f, g)
		assert.True(t, ok)
	}
}
