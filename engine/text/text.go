package text

import (
	"fmt"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
	"golang.org/x/text/unicode/norm"
)

// Text is a positioned paragraph drawn from a shared Atlas.
//
// Every setter lays the paragraph out again, uploads missing glyphs and rewrites the
// vertex buffer before returning. Draw re-derives the geometry only when the atlas was
// repacked since.
type Text struct {
	ctx   *gfx.Context
	atlas *Atlas
	font  Font
	mesh  core.Mesh

	content   string
	size      float32
	color     colors.Color
	wrapWidth float32
	position  geom.Vec2

	glyphs     []Glyph
	bounds     geom.Rect
	vertices   []gfx.Vertex
	scratch    []float32
	generation uint64
}

func NewText(ctx *gfx.Context, atlas *Atlas, font Font, s string, size float32) (*Text, error) {
	t := &Text{
		ctx:     ctx,
		atlas:   atlas,
		font:    font,
		content: norm.NFC.String(s),
		size:    size,
		color:   colors.White,
	}

	var err error
	ctx.With(func(d gfx.Device) {
		t.mesh, err = d.Renderer.CreateMesh(core.MeshDesc{Layout: gfx.VertexLayout})
	})
	if err != nil {
		return nil, fmt.Errorf("text mesh: %w", err)
	}
	t.sync()
	return t, nil
}

func (t *Text) String() string         { return t.content }
func (t *Text) CharacterSize() float32 { return t.size }
func (t *Text) Color() colors.Color    { return t.color }
func (t *Text) WrapWidth() float32     { return t.wrapWidth }
func (t *Text) Position() geom.Vec2    { return t.position }
func (t *Text) Glyphs() []Glyph        { return t.glyphs }
func (t *Text) Vertices() []gfx.Vertex { return t.vertices }
func (t *Text) Font() Font             { return t.font }

// Bounds is the measured paragraph box at the current position.
func (t *Text) Bounds() geom.Rect { return t.bounds }

// SetText replaces the content. The string is NFC-normalized first.
func (t *Text) SetText(s string) {
	t.content = norm.NFC.String(s)
	t.sync()
}

func (t *Text) SetCharacterSize(size float32) {
	t.size = size
	t.sync()
}

func (t *Text) SetColor(c colors.Color) {
	t.color = c
	t.sync()
}

// SetWrapWidth sets the line width in pixels; 0 wraps at the surface width.
func (t *Text) SetWrapWidth(w float32) {
	t.wrapWidth = w
	t.sync()
}

func (t *Text) SetPosition(p geom.Vec2) {
	t.position = p
	t.sync()
}

func (t *Text) Draw(p *gfx.Pass) {
	if t.generation != t.atlas.GlyphCache().Generation() {
		t.sync()
	}
	if len(t.vertices) == 0 {
		return
	}
	p.Draw(core.DrawCmd{
		Pipe:     t.ctx.TextPipeline(),
		Mesh:     t.mesh,
		Count:    len(t.vertices),
		Samplers: map[string]core.Texture{"uTex": t.atlas.Texture()},
	})
}

func (t *Text) sync() {
	sw, sh := t.ctx.Size()
	wrap := t.wrapWidth
	if wrap <= 0 {
		wrap = float32(sw)
	}

	t.glyphs, t.bounds = LayoutParagraph(t.font, t.size, wrap, t.content)
	t.bounds.X, t.bounds.Y = t.position.X, t.position.Y

	// Texture writes land before the vertex buffer referencing them is rewritten.
	if err := t.atlas.Cache(t.font, t.glyphs); err != nil {
		core.Logger().Warn("text: glyph upload failed", "err", err)
	}
	t.generation = t.atlas.GlyphCache().Generation()

	w, h := float32(sw), float32(sh)
	rgb := t.color.RGB()
	t.vertices = t.vertices[:0]
	for _, g := range t.glyphs {
		uv, screen, ok := t.atlas.RectFor(t.font, g)
		if !ok {
			continue
		}
		a := geom.PixelsToClip(t.position.Add(geom.V2(float32(screen.Min.X), float32(screen.Min.Y))), w, h)
		b := geom.PixelsToClip(t.position.Add(geom.V2(float32(screen.Max.X), float32(screen.Max.Y))), w, h)
		u0, v0 := uv.X, uv.Y
		u1, v1 := uv.X+uv.Width, uv.Y+uv.Height

		topLeft := gfx.Vertex{Position: [2]float32{a.X, a.Y}, Color: rgb, TexCoords: [2]float32{u0, v0}}
		bottomLeft := gfx.Vertex{Position: [2]float32{a.X, b.Y}, Color: rgb, TexCoords: [2]float32{u0, v1}}
		bottomRight := gfx.Vertex{Position: [2]float32{b.X, b.Y}, Color: rgb, TexCoords: [2]float32{u1, v1}}
		topRight := gfx.Vertex{Position: [2]float32{b.X, a.Y}, Color: rgb, TexCoords: [2]float32{u1, v0}}
		t.vertices = append(t.vertices,
			topLeft, bottomLeft, bottomRight,
			bottomRight, topRight, topLeft,
		)
	}

	t.ctx.With(func(d gfx.Device) {
		t.scratch = gfx.AppendVertices(t.scratch[:0], t.vertices)
		if err := d.Renderer.UpdateMesh(t.mesh, t.scratch, nil); err != nil {
			core.Logger().Warn("text: vertex upload failed", "err", err)
		}
	})
}
