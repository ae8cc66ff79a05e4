// Package gfx owns the rendering context shared by every widget, the vertex format,
// the Drawable/Transformable capabilities and the RectangleShape primitive.
package gfx

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/hubastard/trellis/engine/core"
)

var ErrNoRenderer = errors.New("gfx: nil renderer")

// Context is the device/queue/surface triple shared by reference across the widget tree.
//
// Access goes through With, which holds the context exclusively for one mutating call.
// Processing is single-threaded, so the lock is never contended; it exists because many
// widgets hold the same *Context at once. With must not be nested.
type Context struct {
	mu            sync.Mutex
	renderer      core.Renderer
	width, height int

	shapePipe core.Pipeline
	textPipe  core.Pipeline

	// bumped whenever a shared texture is repacked; passes recorded
	// under an older generation may reference stale texture coordinates
	generation atomic.Uint64
}

// Device is the view of the context handed to a With callback.
type Device struct {
	Renderer      core.Renderer
	Width, Height float32
}

// NewContext builds the shape and text pipelines on r for a width×height surface.
func NewContext(r core.Renderer, width, height int) (*Context, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	shapePipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   shapeVertexSource,
		FragmentSource: shapeFragmentSource,
	})
	if err != nil {
		return nil, err
	}
	textPipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   textVertexSource,
		FragmentSource: textFragmentSource,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}
	return &Context{
		renderer:  r,
		width:     width,
		height:    height,
		shapePipe: shapePipe,
		textPipe:  textPipe,
	}, nil
}

// With runs fn while holding the context.
func (c *Context) With(fn func(d Device)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(Device{Renderer: c.renderer, Width: float32(c.width), Height: float32(c.height)})
}

// Resize updates the surface size. Callers re-sync widget geometry afterwards.
func (c *Context) Resize(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.mu.Unlock()
	c.renderer.Resize(width, height)
}

func (c *Context) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Context) ShapePipeline() core.Pipeline { return c.shapePipe }
func (c *Context) TextPipeline() core.Pipeline  { return c.textPipe }

// Invalidate marks every shared texture coordinate handed out so far as stale.
func (c *Context) Invalidate()        { c.generation.Add(1) }
func (c *Context) Generation() uint64 { return c.generation.Load() }

// BeginPass starts recording draw commands.
func (c *Context) BeginPass() *Pass {
	return &Pass{generation: c.Generation()}
}

// Submit issues every command recorded in p, in order.
func (c *Context) Submit(p *Pass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cmd := range p.cmds {
		c.renderer.Draw(cmd)
	}
	p.submitted = true
}

// Pass collects the draw commands of one frame. Nothing reaches the renderer
// until the whole pass has been recorded and submitted.
type Pass struct {
	generation uint64
	cmds       []core.DrawCmd
	submitted  bool
}

func (p *Pass) Draw(cmd core.DrawCmd)    { p.cmds = append(p.cmds, cmd) }
func (p *Pass) Commands() []core.DrawCmd { return p.cmds }
func (p *Pass) Submitted() bool          { return p.submitted }

// Stale reports whether a texture was repacked after the pass began.
func (p *Pass) Stale(c *Context) bool { return c.Generation() != p.generation }
