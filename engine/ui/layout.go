package ui

import (
	"slices"

	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
)

type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

const DefaultSpacing = 3

// Layout stacks its children in insertion order. Every child gets a cell the size of the
// largest child; cells are separated by the spacing, which also offsets the cross axis.
type Layout struct {
	base
	direction Direction
	spacing   float32
	position  geom.Vec2
	size      geom.Vec2

	ids      []WidgetID
	children map[WidgetID]Widget
	lastID   WidgetID
}

func NewLayout(direction Direction) *Layout {
	return &Layout{
		direction: direction,
		spacing:   DefaultSpacing,
		children:  make(map[WidgetID]Widget),
	}
}

func (l *Layout) Direction() Direction { return l.direction }
func (l *Layout) Spacing() float32     { return l.spacing }
func (l *Layout) Position() geom.Vec2  { return l.position }
func (l *Layout) Len() int             { return len(l.ids) }

// Size is the extent of all cells; zero when empty.
func (l *Layout) Size() geom.Vec2 { return l.size }

// AddWidget appends w and lays every child out again.
func (l *Layout) AddWidget(w Widget) WidgetID {
	l.lastID++
	id := l.lastID
	l.ids = append(l.ids, id)
	l.children[id] = w
	l.Update(0)
	return id
}

func (l *Layout) Widget(id WidgetID) (Widget, bool) {
	w, ok := l.children[id]
	return w, ok
}

func (l *Layout) RemoveWidget(id WidgetID) bool {
	if _, ok := l.children[id]; !ok {
		return false
	}
	delete(l.children, id)
	l.ids = slices.DeleteFunc(l.ids, func(x WidgetID) bool { return x == id })
	l.Update(0)
	return true
}

func (l *Layout) SetSpacing(spacing float32) {
	l.spacing = spacing
	l.Update(0)
}

func (l *Layout) SetDirection(d Direction) {
	l.direction = d
	l.Update(0)
}

func (l *Layout) SetPosition(p geom.Vec2) {
	l.position = p
	l.Update(0)
}

func (l *Layout) Update(dt float32) {
	if len(l.ids) == 0 {
		l.size = geom.Vec2{}
		return
	}

	var biggest geom.Vec2
	for _, id := range l.ids {
		biggest = biggest.Max(l.children[id].Size())
	}

	for i, id := range l.ids {
		var slot geom.Vec2
		switch l.direction {
		case Horizontal:
			slot = geom.V2(float32(i)*(biggest.X+l.spacing), l.spacing)
		default:
			slot = geom.V2(l.spacing, float32(i)*(biggest.Y+l.spacing))
		}
		l.children[id].SetPosition(l.position.Add(slot))
	}

	// Children may have been resized by their own content.
	for _, id := range l.ids {
		l.children[id].Update(dt)
	}

	n := float32(len(l.ids))
	switch l.direction {
	case Horizontal:
		l.size = geom.V2((n-1)*(biggest.X+l.spacing)+biggest.X, l.spacing+biggest.Y)
	default:
		l.size = geom.V2(l.spacing+biggest.X, (n-1)*(biggest.Y+l.spacing)+biggest.Y)
	}
}

func (l *Layout) ProcessEvents(ev core.Event) {
	if l.hidden {
		return
	}
	for _, id := range l.ids {
		if w := l.children[id]; w.Visible() {
			w.ProcessEvents(ev)
		}
	}
}

func (l *Layout) Draw(p *gfx.Pass) {
	if l.hidden {
		return
	}
	for _, id := range l.ids {
		if w := l.children[id]; w.Visible() {
			w.Draw(p)
		}
	}
}

// ClearEvents clears the layout's queue and every child's.
func (l *Layout) ClearEvents() {
	l.queue.Clear()
	for _, w := range l.children {
		w.ClearEvents()
	}
}
