package main

import (
	"fmt"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
	"github.com/hubastard/trellis/engine/text"
	"github.com/hubastard/trellis/engine/ui"
)

// LayerUI owns the widget tree: a column of buttons and a draggable window.
type LayerUI struct {
	ctx     *gfx.Context
	atlas   *text.Atlas
	ui      *ui.Ui
	buttons []*ui.Button
	window  *ui.Window
}

func NewLayerUI(r core.Renderer, font text.Font, cfg core.Config, width, height int) (*LayerUI, error) {
	ctx, err := gfx.NewContext(r, width, height)
	if err != nil {
		return nil, err
	}
	atlas, err := text.NewAtlas(ctx, cfg.AtlasWidth, cfg.AtlasHeight)
	if err != nil {
		return nil, err
	}

	l := &LayerUI{ctx: ctx, atlas: atlas, ui: ui.New(ctx)}

	column := ui.NewLayout(ui.Vertical)
	for i := 0; i < 4; i++ {
		b, err := ui.NewButton(ctx, atlas, font, fmt.Sprintf("Button %d", i+1))
		if err != nil {
			return nil, err
		}
		b.SetCharacterSize(cfg.FontSize)
		b.SetPaddings(geom.V4(10, 5, 5, 10))
		n := i + 1
		b.SetCallback(func() { core.Logger().Info("button clicked", "n", n) })
		column.AddWidget(b)
		l.buttons = append(l.buttons, b)
	}
	column.SetPosition(geom.V2(20, 20))
	l.ui.Add(column)

	l.window, err = ui.NewWindow(ctx, atlas, font, "trellis")
	if err != nil {
		return nil, err
	}
	l.window.SetPosition(geom.V2(400, 200))
	l.ui.Add(l.window)
	return l, nil
}

func (l *LayerUI) Atlas() *text.Atlas    { return l.atlas }
func (l *LayerUI) Context() *gfx.Context { return l.ctx }

func (l *LayerUI) OnAttach(e *core.Engine) {}
func (l *LayerUI) OnDetach(e *core.Engine) {}

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {
	// The first button toggles the window.
	if l.buttons[0].Emitted(ui.EventClick) {
		l.window.SetVisibility(!l.window.Visible())
	}
	if l.window.Emitted(ui.EventClose) {
		core.Logger().Info("window closed")
	}
	l.ui.Update(float32(dt))
}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	l.ui.Render()
}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool {
	if r, ok := ev.(core.EventResize); ok {
		if r.W > 0 && r.H > 0 {
			l.ui.Resize(r.W, r.H)
		}
		return false
	}
	l.ui.ProcessEvents(ev)
	return false
}
