package text

import (
	"fmt"
	"image"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
)

const (
	DefaultAtlasWidth  = 512
	DefaultAtlasHeight = 512
)

// Atlas is the single-channel texture every Text of a context draws from, plus the
// cache that decides where each glyph lives in it.
type Atlas struct {
	ctx   *gfx.Context
	tex   core.Texture
	cache *GlyphCache
}

// NewAtlas creates a width×height R8 texture on the context's renderer.
func NewAtlas(ctx *gfx.Context, width, height int) (*Atlas, error) {
	var (
		tex core.Texture
		err error
	)
	ctx.With(func(d gfx.Device) {
		tex, err = d.Renderer.CreateTexture(core.TextureDesc{
			Width:     width,
			Height:    height,
			Format:    core.TextureR8,
			MinFilter: "nearest",
			MagFilter: "nearest",
			WrapU:     "clamp",
			WrapV:     "clamp",
		})
	})
	if err != nil {
		return nil, fmt.Errorf("glyph atlas: %w", err)
	}
	return &Atlas{ctx: ctx, tex: tex, cache: NewGlyphCache(width, height)}, nil
}

func (a *Atlas) Texture() core.Texture   { return a.tex }
func (a *Atlas) GlyphCache() *GlyphCache { return a.cache }

// Cache makes sure every glyph is packed and uploaded. Texture writes are done when it
// returns. A repack invalidates the context so passes recorded before it are redrawn.
func (a *Atlas) Cache(f Font, glyphs []Glyph) error {
	for _, g := range glyphs {
		a.cache.Queue(f, g)
	}
	gen := a.cache.Generation()

	var err error
	a.ctx.With(func(d gfx.Device) {
		err = a.cache.CacheQueued(func(region image.Rectangle, pixels []byte) error {
			return d.Renderer.UpdateTexture(a.tex, region, pixels)
		})
	})
	if a.cache.Generation() != gen {
		a.ctx.Invalidate()
	}
	return err
}

func (a *Atlas) RectFor(f Font, g Glyph) (geom.Rect, image.Rectangle, bool) {
	return a.cache.RectFor(f, g)
}
