package main

import (
	"fmt"
	"time"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/text"
)

const statsInterval = time.Second

// LayerStats shows frame timing and glyph cache counters in the bottom-left corner.
// Space toggles it.
type LayerStats struct {
	ui    *LayerUI
	font  text.Font
	label *text.Text

	frames int
	since  time.Time
	hidden bool
}

func (l *LayerStats) OnAttach(e *core.Engine) {
	var err error
	l.label, err = text.NewText(l.ui.Context(), l.ui.Atlas(), l.font, "", 14)
	if err != nil {
		core.Logger().Warn("stats label", "err", err)
		return
	}
	l.label.SetColor(colors.Yellow)
	l.since = time.Now()
}

func (l *LayerStats) OnDetach(e *core.Engine) {}

func (l *LayerStats) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerStats) OnRender(e *core.Engine, alpha float64) {
	if l.label == nil {
		return
	}
	l.frames++
	if elapsed := time.Since(l.since); elapsed >= statsInterval {
		st := l.ui.Atlas().GlyphCache().Stats()
		ms := float64(elapsed.Milliseconds()) / float64(l.frames)
		l.label.SetText(fmt.Sprintf("%.2f ms  glyphs %d  hits %d  misses %d  repacks %d  dropped %d",
			ms, l.ui.Atlas().GlyphCache().Len(), st.Hits, st.Misses, st.Repacks, st.Dropped))
		_, h := l.ui.Context().Size()
		l.label.SetPosition(geom.V2(8, float32(h)-l.label.Bounds().Height-8))
		l.frames = 0
		l.since = time.Now()
	}
	if l.hidden {
		return
	}

	ctx := l.ui.Context()
	pass := ctx.BeginPass()
	l.label.Draw(pass)
	ctx.Submit(pass)
}

func (l *LayerStats) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Key == core.KeySpace && k.Down {
		l.hidden = !l.hidden
		return true
	}
	return false
}
