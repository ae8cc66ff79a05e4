package core_test

import (
	"testing"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/gfx/gfxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// headlessWindow closes once a close is requested.
type headlessWindow struct {
	cb        func(core.Event)
	requested bool
	frames    int
	closed    bool
}

func (w *headlessWindow) PollEvents() {
	if w.frames == 0 {
		w.cb(core.EventKey{Key: core.KeyEscape, Down: true})
	}
}
func (w *headlessWindow) SwapBuffers()                         { w.frames++ }
func (w *headlessWindow) ShouldClose() bool                    { return w.requested }
func (w *headlessWindow) RequestClose()                        { w.requested = true }
func (w *headlessWindow) Close()                               { w.closed = true }
func (w *headlessWindow) FramebufferSize() (int, int)          { return 320, 240 }
func (w *headlessWindow) SetTitle(string)                      {}
func (w *headlessWindow) SetEventCallback(cb func(core.Event)) { w.cb = cb }

type quitOnEscape struct {
	started, shutdown bool
}

func (a *quitOnEscape) OnStart(*core.Engine)           { a.started = true }
func (a *quitOnEscape) OnUpdate(*core.Engine, float64) {}
func (a *quitOnEscape) OnRender(*core.Engine, float64) {}
func (a *quitOnEscape) OnShutdown(*core.Engine)        { a.shutdown = true }

func (a *quitOnEscape) OnEvent(e *core.Engine, ev core.Event) {
	if k, ok := ev.(core.EventKey); ok && k.Key == core.KeyEscape && k.Down {
		e.Window.RequestClose()
	}
}

func TestRunClosesWindowOnExit(t *testing.T) {
	win := &headlessWindow{}
	r := gfxtest.New()
	app := &quitOnEscape{}

	err := core.Run(app, core.DefaultConfig(),
		func(core.Config) (core.Window, error) { return win, nil },
		func(core.Window, core.Config) (core.Renderer, error) { return r, nil },
	)
	require.NoError(t, err)

	assert.True(t, app.started)
	assert.True(t, app.shutdown)
	assert.Equal(t, 1, win.frames)
	assert.True(t, win.closed)
	assert.Equal(t, 320, r.Width)
}
