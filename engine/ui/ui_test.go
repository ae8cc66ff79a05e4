package ui_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
	"github.com/hubastard/trellis/engine/gfx/gfxtest"
	"github.com/hubastard/trellis/engine/text"
	"github.com/hubastard/trellis/engine/text/texttest"
	"github.com/hubastard/trellis/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	r     *gfxtest.Renderer
	ctx   *gfx.Context
	atlas *text.Atlas
	font  *texttest.FixedFont
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	r := gfxtest.New()
	ctx, err := gfx.NewContext(r, 800, 600)
	require.NoError(t, err)
	atlas, err := text.NewAtlas(ctx, text.DefaultAtlasWidth, text.DefaultAtlasHeight)
	require.NoError(t, err)
	return fixture{r: r, ctx: ctx, atlas: atlas, font: texttest.NewFixedFont()}
}

// probe is a fixed-size widget recording what the tree does to it.
type probe struct {
	pos    geom.Vec2
	size   geom.Vec2
	hidden bool
	queue  ui.EventQueue
	mesh   core.Mesh

	events    []core.Event
	updates   int
	positions int
	draws     int
	onDraw    func()
}

func newProbe(w, h float32) *probe { return &probe{size: geom.V2(w, h)} }

func (p *probe) Position() geom.Vec2         { return p.pos }
func (p *probe) Size() geom.Vec2             { return p.size }
func (p *probe) Update(float32)              { p.updates++ }
func (p *probe) Visible() bool               { return !p.hidden }
func (p *probe) SetVisibility(v bool)        { p.hidden = !v }
func (p *probe) Emitted(c ui.EventCode) bool { return p.queue.Emitted(c) }
func (p *probe) Events() []ui.EventCode      { return p.queue.Events() }
func (p *probe) ClearEvents()                { p.queue.Clear() }
func (p *probe) ProcessEvents(ev core.Event) { p.events = append(p.events, ev) }

func (p *probe) SetPosition(v geom.Vec2) {
	p.pos = v
	p.positions++
}

func (p *probe) Draw(pass *gfx.Pass) {
	p.draws++
	if p.onDraw != nil {
		p.onDraw()
	}
	if p.mesh != nil {
		pass.Draw(core.DrawCmd{Mesh: p.mesh, Count: 3})
	}
}

func TestUiRegistry(t *testing.T) {
	u := ui.New(newFixture(t).ctx)

	a, b := newProbe(1, 1), newProbe(1, 1)
	ida := u.Add(a)
	idb := u.Add(b)
	assert.Equal(t, ui.WidgetID(1), ida)
	assert.Equal(t, ui.WidgetID(2), idb)
	assert.Equal(t, 2, u.Len())

	got, ok := u.Get(idb)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, u.Remove(ida))
	assert.False(t, u.Remove(ida))
	_, ok = u.Get(ida)
	assert.False(t, ok)
	assert.Equal(t, ui.WidgetID(3), u.Add(newProbe(1, 1)))
}

func TestUiFansOutToVisibleWidgets(t *testing.T) {
	u := ui.New(newFixture(t).ctx)
	a, b, hidden := newProbe(1, 1), newProbe(1, 1), newProbe(1, 1)
	hidden.SetVisibility(false)
	u.Add(a)
	u.Add(hidden)
	u.Add(b)

	ev := core.EventMouseMove{X: 500, Y: 500}
	u.ProcessEvents(ev)
	assert.Equal(t, []core.Event{ev}, a.events)
	assert.Equal(t, []core.Event{ev}, b.events)
	assert.Empty(t, hidden.events)

	u.Draw(u.Context().BeginPass())
	assert.Equal(t, 1, a.draws)
	assert.Zero(t, hidden.draws)
}

func TestUiOverlappingButtonsBothReact(t *testing.T) {
	fx := newFixture(t)
	u := ui.New(fx.ctx)
	first, err := ui.NewButton(fx.ctx, fx.atlas, fx.font, "one")
	require.NoError(t, err)
	second, err := ui.NewButton(fx.ctx, fx.atlas, fx.font, "two")
	require.NoError(t, err)
	u.Add(first)
	u.Add(second)

	u.ProcessEvents(core.EventMouseMove{X: 5, Y: 5})
	u.ProcessEvents(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	assert.True(t, first.Emitted(ui.EventClick))
	assert.True(t, second.Emitted(ui.EventClick))
}

func TestUiUpdateClearsEvents(t *testing.T) {
	fx := newFixture(t)
	u := ui.New(fx.ctx)
	b, err := ui.NewButton(fx.ctx, fx.atlas, fx.font, "ok")
	require.NoError(t, err)
	p := newProbe(1, 1)
	u.Add(b)
	u.Add(p)

	u.ProcessEvents(core.EventMouseMove{X: 1, Y: 1})
	u.ProcessEvents(core.EventMouseButton{Button: core.MouseLeft, Down: true})

	// peeking does not consume
	assert.True(t, b.Emitted(ui.EventHover))
	assert.True(t, b.Emitted(ui.EventClick))
	assert.True(t, b.Emitted(ui.EventClick))

	u.Update(1.0 / 60)
	assert.Empty(t, b.Events())
	assert.Equal(t, 1, p.updates)
}

func TestUiRenderSubmitsAfterRecording(t *testing.T) {
	fx := newFixture(t)
	u := ui.New(fx.ctx)
	mesh, err := fx.r.CreateMesh(core.MeshDesc{})
	require.NoError(t, err)

	p := newProbe(1, 1)
	p.mesh = mesh
	p.onDraw = func() { assert.Empty(t, fx.r.Draws, "nothing reaches the renderer while recording") }
	u.Add(p)

	u.Render()
	assert.Len(t, fx.r.Draws, 1)
}

func TestUiRenderRedrawsStalePass(t *testing.T) {
	fx := newFixture(t)
	u := ui.New(fx.ctx)
	mesh, err := fx.r.CreateMesh(core.MeshDesc{})
	require.NoError(t, err)

	p := newProbe(1, 1)
	p.mesh = mesh
	repacked := false
	p.onDraw = func() {
		if !repacked {
			fx.ctx.Invalidate()
			repacked = true
		}
	}
	u.Add(p)

	u.Render()
	assert.Equal(t, 2, p.draws)
	assert.Len(t, fx.r.Draws, 1, "only the fresh pass is submitted")
}

func TestUiResize(t *testing.T) {
	fx := newFixture(t)
	u := ui.New(fx.ctx)
	p := newProbe(1, 1)
	u.Add(p)
	p.SetPosition(geom.V2(10, 10))

	u.Resize(400, 300)
	w, h := fx.ctx.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
	assert.Equal(t, 400, fx.r.Width)
	assert.Equal(t, 2, p.positions)
	assert.Equal(t, geom.V2(10, 10), p.Position())
}

func TestEventQueue(t *testing.T) {
	var q ui.EventQueue
	q.Push(ui.EventHover)
	q.Push(ui.EventClick)

	assert.True(t, q.Emitted(ui.EventClick))
	assert.True(t, q.Emitted(ui.EventHover))
	assert.False(t, q.Emitted(ui.EventClose))
	assert.Equal(t, []ui.EventCode{ui.EventHover, ui.EventClick}, q.Events())

	assert.True(t, q.Drain(ui.EventClick))
	assert.False(t, q.Drain(ui.EventHover), "drain empties the whole queue")

	for i := 0; i < ui.EventQueueCapacity; i++ {
		q.Push(ui.EventHover)
	}
	q.Push(ui.EventClick)
	assert.Equal(t, ui.EventQueueCapacity, q.Len())
	assert.True(t, q.Emitted(ui.EventClick))
	assert.Equal(t, "click", ui.EventClick.String())
}

func TestUiRenderWarnsWhenAtlasKeepsRepacking(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { core.SetLogger(nil) })

	fx := newFixture(t)
	u := ui.New(fx.ctx)
	mesh, err := fx.r.CreateMesh(core.MeshDesc{})
	require.NoError(t, err)

	p := newProbe(1, 1)
	p.mesh = mesh
	p.onDraw = fx.ctx.Invalidate
	u.Add(p)

	u.Render()
	assert.Equal(t, 2, p.draws)
	assert.Len(t, fx.r.Draws, 1)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "submitting stale pass")
}
