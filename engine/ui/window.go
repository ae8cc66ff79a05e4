package ui

import (
	"fmt"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
	"github.com/hubastard/trellis/engine/text"
)

const (
	titlebarWidth      = 150
	titlebarHeight     = 20
	bodyHeight         = 150
	titleCharacterSize = 16
	titleInset         = 5
)

// Window is a titlebar over a body with a close button. Pressing the titlebar and
// moving the pointer drags the whole window.
type Window struct {
	base
	titlebar *gfx.RectangleShape
	body     *gfx.RectangleShape
	title    *text.Text
	close    *Button
	position geom.Vec2

	mouse    geom.Vec2
	grab     geom.Vec2 // pointer offset inside the titlebar when the drag started
	dragging bool
}

func NewWindow(ctx *gfx.Context, atlas *text.Atlas, font text.Font, title string) (*Window, error) {
	titlebar, err := gfx.NewRectangleShape(ctx, geom.V2(titlebarWidth, titlebarHeight))
	if err != nil {
		return nil, fmt.Errorf("window titlebar: %w", err)
	}
	titlebar.SetFillColor(colors.Blue)

	body, err := gfx.NewRectangleShape(ctx, geom.V2(titlebarWidth, bodyHeight))
	if err != nil {
		return nil, fmt.Errorf("window body: %w", err)
	}
	body.SetFillColor(colors.Red)

	t, err := text.NewText(ctx, atlas, font, title, titleCharacterSize)
	if err != nil {
		return nil, fmt.Errorf("window title: %w", err)
	}

	closeButton, err := NewButton(ctx, atlas, font, "x")
	if err != nil {
		return nil, fmt.Errorf("window close button: %w", err)
	}
	closeButton.SetCharacterSize(titleCharacterSize)

	w := &Window{titlebar: titlebar, body: body, title: t, close: closeButton}
	w.SetPosition(geom.Vec2{})
	return w, nil
}

func (w *Window) Position() geom.Vec2       { return w.position }
func (w *Window) Title() *text.Text         { return w.title }
func (w *Window) CloseButton() *Button      { return w.close }
func (w *Window) TitlebarBounds() geom.Rect { return w.titlebar.Bounds() }
func (w *Window) BodyBounds() geom.Rect     { return w.body.Bounds() }
func (w *Window) Dragging() bool            { return w.dragging }

func (w *Window) Size() geom.Vec2 {
	return geom.V2(titlebarWidth, titlebarHeight+bodyHeight)
}

func (w *Window) SetTitle(s string) {
	w.title.SetText(s)
	w.Update(0)
}

func (w *Window) SetPosition(p geom.Vec2) {
	w.position = p
	w.titlebar.SetPosition(p)
	w.body.SetPosition(p.Add(geom.V2(0, titlebarHeight)))
	w.attach(true)
}

// Update keeps the title and the close button attached to the titlebar.
func (w *Window) Update(dt float32) {
	w.attach(false)
	w.close.Update(dt)
}

func (w *Window) attach(force bool) {
	tb := w.titlebar.Bounds()

	at := geom.V2(tb.X+titleInset, tb.Y+(tb.Height-w.title.Bounds().Height)/2)
	if force || at != w.title.Position() {
		w.title.SetPosition(at)
	}

	cs := w.close.Size()
	at = geom.V2(tb.X+tb.Width-cs.X, tb.Y+(tb.Height-cs.Y)/2)
	if force || at != w.close.Position() {
		w.close.SetPosition(at)
	}
}

// SetVisibility also ends a drag and releases the close button when hiding, since a
// hidden window never sees the matching release.
func (w *Window) SetVisibility(visible bool) {
	if !visible {
		w.dragging = false
		w.close.release()
	}
	w.base.SetVisibility(visible)
}

// Close hides the window and reports EventClose.
func (w *Window) Close() {
	w.SetVisibility(false)
	w.queue.Push(EventClose)
}

func (w *Window) ProcessEvents(ev core.Event) {
	if w.hidden {
		return
	}

	w.close.ProcessEvents(ev)
	if w.close.Emitted(EventClick) {
		w.close.ClearEvents()
		w.Close()
		return
	}

	switch e := ev.(type) {
	case core.EventMouseMove:
		w.mouse = geom.V2(float32(e.X), float32(e.Y)).Round()
		if w.dragging {
			w.SetPosition(w.mouse.Sub(w.grab))
		}

	case core.EventMouseButton:
		if e.Button == core.MouseLeft && e.Down &&
			w.titlebar.Bounds().Contains(w.mouse) && !w.close.Bounds().Contains(w.mouse) {
			w.grab = w.mouse.Sub(w.position)
			w.dragging = true
			return
		}
		w.dragging = false
	}
}

func (w *Window) Draw(p *gfx.Pass) {
	if w.hidden {
		return
	}
	w.titlebar.Draw(p)
	w.body.Draw(p)
	w.title.Draw(p)
	w.close.Draw(p)
}

// ClearEvents also clears the close button's queue.
func (w *Window) ClearEvents() {
	w.queue.Clear()
	w.close.ClearEvents()
}
