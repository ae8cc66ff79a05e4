// Package ui implements the retained widget tree: a flat registry of top-level widgets,
// a linear Layout container, Button and a draggable Window.
package ui

import (
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
)

type WidgetID uint16

// EventCode is a semantic event a widget reports to its owner.
type EventCode int

const (
	EventClick EventCode = iota
	EventHover
	EventClose
)

func (c EventCode) String() string {
	switch c {
	case EventClick:
		return "click"
	case EventHover:
		return "hover"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Widget is an interactive, drawable, positionable element.
//
// ProcessEvents must leave the widget untouched for events it does not care about.
// Update re-derives geometry from content and is run once per frame and again after
// every position or padding change. Hidden widgets neither process events nor draw.
//
// Emitted peeks at the events pushed since the last ClearEvents; it does not consume.
type Widget interface {
	gfx.Drawable
	gfx.Transformable

	ProcessEvents(ev core.Event)
	Update(dt float32)
	Size() geom.Vec2

	Visible() bool
	SetVisibility(visible bool)

	Emitted(code EventCode) bool
	Events() []EventCode
	ClearEvents()
}

// base holds the visibility flag and the event queue every widget carries.
type base struct {
	hidden bool
	queue  EventQueue
}

func (b *base) Visible() bool               { return !b.hidden }
func (b *base) SetVisibility(visible bool)  { b.hidden = !visible }
func (b *base) Emitted(code EventCode) bool { return b.queue.Emitted(code) }
func (b *base) Events() []EventCode         { return b.queue.Events() }
func (b *base) ClearEvents()                { b.queue.Clear() }
