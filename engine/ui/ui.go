package ui

import (
	"slices"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/gfx"
)

// Ui is the flat registry of top-level widgets.
//
// It does no hit-testing: every input event goes to every visible widget in id order and
// each widget decides from its own bounds whether the event is its own. Overlapping
// widgets therefore all react.
//
// A frame is ProcessEvents for each input event, inspection of Emitted, then Update,
// which clears every queue, then Render.
type Ui struct {
	ctx     *gfx.Context
	ids     []WidgetID
	widgets map[WidgetID]Widget
	lastID  WidgetID
}

func New(ctx *gfx.Context) *Ui {
	return &Ui{ctx: ctx, widgets: make(map[WidgetID]Widget)}
}

func (u *Ui) Context() *gfx.Context { return u.ctx }
func (u *Ui) Len() int              { return len(u.ids) }

// Add registers w and returns its id. Ids increase monotonically.
func (u *Ui) Add(w Widget) WidgetID {
	u.lastID++
	if u.lastID == 0 {
		core.Logger().Warn("ui: widget id wrapped around")
		u.lastID++
	}
	id := u.lastID
	u.ids = append(u.ids, id)
	u.widgets[id] = w
	return id
}

func (u *Ui) Get(id WidgetID) (Widget, bool) {
	w, ok := u.widgets[id]
	return w, ok
}

func (u *Ui) Remove(id WidgetID) bool {
	if _, ok := u.widgets[id]; !ok {
		return false
	}
	delete(u.widgets, id)
	u.ids = slices.DeleteFunc(u.ids, func(x WidgetID) bool { return x == id })
	return true
}

func (u *Ui) ProcessEvents(ev core.Event) {
	for _, id := range u.ids {
		if w := u.widgets[id]; w.Visible() {
			w.ProcessEvents(ev)
		}
	}
}

// Update runs every widget's Update, then clears every event queue.
func (u *Ui) Update(dt float32) {
	for _, id := range u.ids {
		u.widgets[id].Update(dt)
	}
	for _, id := range u.ids {
		u.widgets[id].ClearEvents()
	}
}

func (u *Ui) Draw(p *gfx.Pass) {
	for _, id := range u.ids {
		if w := u.widgets[id]; w.Visible() {
			w.Draw(p)
		}
	}
}

// Render records one pass and submits it. When drawing repacked the glyph atlas, the
// pass is recorded once more so no command refers to stale texture coordinates. A second
// repack means the texts on screen do not fit the atlas together; that pass is submitted
// anyway and a warning is logged.
func (u *Ui) Render() {
	p := u.ctx.BeginPass()
	u.Draw(p)
	if p.Stale(u.ctx) {
		core.Logger().Debug("ui: atlas repacked while drawing, redrawing")
		p = u.ctx.BeginPass()
		u.Draw(p)
		if p.Stale(u.ctx) {
			core.Logger().Warn("ui: atlas repacked again while redrawing, submitting stale pass",
				"generation", u.ctx.Generation())
		}
	}
	u.ctx.Submit(p)
}

// Resize changes the surface size and re-derives every widget's geometry.
func (u *Ui) Resize(width, height int) {
	u.ctx.Resize(width, height)
	for _, id := range u.ids {
		w := u.widgets[id]
		w.SetPosition(w.Position())
	}
}
