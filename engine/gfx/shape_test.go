package gfx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/gfx"
	"github.com/hubastard/trellis/engine/gfx/gfxtest"
	"github.com/hubastard/trellis/engine/geom"
)

func newContext(t *testing.T) (*gfx.Context, *gfxtest.Renderer) {
	t.Helper()
	r := gfxtest.New()
	ctx, err := gfx.NewContext(r, 800, 600)
	require.NoError(t, err)
	return ctx, r
}

func TestNewContextRejectsNilRenderer(t *testing.T) {
	_, err := gfx.NewContext(nil, 1, 1)
	assert.ErrorIs(t, err, gfx.ErrNoRenderer)
}

func TestNewContextBuildsPipelines(t *testing.T) {
	ctx, r := newContext(t)
	assert.Len(t, r.Pipelines, 2)
	assert.NotEqual(t, ctx.ShapePipeline().ID(), ctx.TextPipeline().ID())
	assert.True(t, r.Pipelines[1].Blend, "text pipeline blends coverage")
}

func TestRectangleShapeVertices(t *testing.T) {
	ctx, r := newContext(t)
	s, err := gfx.NewRectangleShape(ctx, geom.V2(400, 300))
	require.NoError(t, err)

	s.SetPosition(geom.V2(400, 300))
	s.SetFillColor(colors.Green)

	v := s.Vertices()
	assert.Equal(t, [2]float32{0, 0}, v[0].Position, "top-left at surface center")
	assert.Equal(t, [2]float32{0, -1}, v[1].Position, "bottom-left")
	assert.Equal(t, [2]float32{1, -1}, v[2].Position, "bottom-right")
	assert.Equal(t, [2]float32{1, 0}, v[3].Position, "top-right")
	for _, vert := range v {
		assert.Equal(t, [3]float32{0, 1, 0}, vert.Color)
		assert.Equal(t, [2]float32{-1, -1}, vert.TexCoords)
	}

	mesh := r.Meshes[0]
	assert.Equal(t, gfx.AppendVertices(nil, v[:]), mesh.Vertices, "buffer mirrors vertices")
	assert.Equal(t, gfx.QuadIndices, mesh.Indices)
	assert.Equal(t, 3, mesh.Updates, "construction, position, color each resync once")
}

func TestRectangleShapeBoundsAndPoints(t *testing.T) {
	ctx, _ := newContext(t)
	s, err := gfx.NewRectangleShape(ctx, geom.V2(150, 20))
	require.NoError(t, err)
	s.SetPosition(geom.V2(10, 5))
	s.SetSize(geom.V2(100, 50))

	assert.Equal(t, geom.R(10, 5, 100, 50), s.Bounds())
	assert.Equal(t, 4, s.PointCount())
	assert.Equal(t, geom.V2(100, 50), s.Point(2))
	assert.Equal(t, geom.V2(0, 0), s.Point(7))
}

func TestRectangleShapeDrawIsIndexed(t *testing.T) {
	ctx, r := newContext(t)
	s, err := gfx.NewRectangleShape(ctx, geom.V2(10, 10))
	require.NoError(t, err)

	pass := ctx.BeginPass()
	s.Draw(pass)
	require.Len(t, pass.Commands(), 1)
	assert.Empty(t, r.Draws, "nothing reaches the renderer before submit")

	ctx.Submit(pass)
	require.Len(t, r.Draws, 1)
	cmd := r.Draws[0]
	assert.True(t, cmd.Indexed)
	assert.Equal(t, 6, cmd.Count)
	assert.Equal(t, ctx.ShapePipeline(), cmd.Pipe)
	assert.True(t, pass.Submitted())
}

func TestRectangleShapeSurvivesUploadFailure(t *testing.T) {
	ctx, r := newContext(t)
	s, err := gfx.NewRectangleShape(ctx, geom.V2(10, 10))
	require.NoError(t, err)

	r.FailUpdates = true
	s.SetPosition(geom.V2(1, 1))
	assert.Equal(t, geom.V2(1, 1), s.Position())
}

func TestPassStaleAfterInvalidate(t *testing.T) {
	ctx, _ := newContext(t)
	pass := ctx.BeginPass()
	assert.False(t, pass.Stale(ctx))
	ctx.Invalidate()
	assert.True(t, pass.Stale(ctx))
	assert.False(t, ctx.BeginPass().Stale(ctx))
}

func TestContextResize(t *testing.T) {
	ctx, r := newContext(t)
	ctx.Resize(1024, 768)
	w, h := ctx.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, 1024, r.Width)
}
