package ui

import (
	"fmt"

	"github.com/hubastard/trellis/engine/colors"
	"github.com/hubastard/trellis/engine/core"
	"github.com/hubastard/trellis/engine/geom"
	"github.com/hubastard/trellis/engine/gfx"
	"github.com/hubastard/trellis/engine/text"
)

type ButtonState int

const (
	ButtonNone ButtonState = iota
	ButtonHover
	ButtonClick
)

func (s ButtonState) String() string {
	switch s {
	case ButtonHover:
		return "hover"
	case ButtonClick:
		return "click"
	default:
		return "none"
	}
}

const DefaultCharacterSize = 30

var (
	buttonRestColor  = colors.Red
	buttonHoverColor = colors.Green
	buttonPressColor = colors.Blue
)

// Button is a label on a colored background sized to the label plus paddings.
type Button struct {
	base
	rect     *gfx.RectangleShape
	label    *text.Text
	position geom.Vec2
	paddings geom.Vec4 // left, top, bottom, right
	state    ButtonState
	mouse    geom.Vec2
	callback func()
}

func NewButton(ctx *gfx.Context, atlas *text.Atlas, font text.Font, label string) (*Button, error) {
	l, err := text.NewText(ctx, atlas, font, label, DefaultCharacterSize)
	if err != nil {
		return nil, fmt.Errorf("button label: %w", err)
	}
	r, err := gfx.NewRectangleShape(ctx, l.Bounds().Size())
	if err != nil {
		return nil, fmt.Errorf("button background: %w", err)
	}
	r.SetFillColor(buttonRestColor)

	b := &Button{rect: r, label: l}
	b.Update(0)
	return b, nil
}

func (b *Button) Position() geom.Vec2     { return b.position }
func (b *Button) Size() geom.Vec2         { return b.rect.Size() }
func (b *Button) Bounds() geom.Rect       { return b.rect.Bounds() }
func (b *Button) State() ButtonState      { return b.state }
func (b *Button) Paddings() geom.Vec4     { return b.paddings }
func (b *Button) FillColor() colors.Color { return b.rect.FillColor() }
func (b *Button) Label() *text.Text       { return b.label }
func (b *Button) SetCallback(fn func())   { b.callback = fn }

func (b *Button) SetPosition(p geom.Vec2) {
	b.position = p
	b.rect.SetPosition(p)
	b.fit(true)
}

func (b *Button) SetPaddings(p geom.Vec4) {
	b.paddings = p
	b.Update(0)
}

func (b *Button) SetCharacterSize(size float32) {
	b.label.SetCharacterSize(size)
	b.Update(0)
}

func (b *Button) SetText(s string) {
	b.label.SetText(s)
	b.Update(0)
}

// Update sizes the background around the label and centers the label in it.
func (b *Button) Update(float32) { b.fit(false) }

// fit resizes the background and centers the label; force re-places the label even
// when it did not move, so it follows a surface resize.
func (b *Button) fit(force bool) {
	lb := b.label.Bounds()
	size := geom.V2(
		lb.Width+b.paddings.X+b.paddings.W,
		lb.Height+b.paddings.Y+b.paddings.Z,
	)
	if size != b.rect.Size() {
		b.rect.SetSize(size)
	}
	at := b.position.Add(size.Sub(lb.Size()).Mul(0.5))
	if force || at != b.label.Position() {
		b.label.SetPosition(at)
	}
}

func (b *Button) ProcessEvents(ev core.Event) {
	if b.hidden {
		return
	}
	switch e := ev.(type) {
	case core.EventMouseMove:
		b.mouse = geom.V2(float32(e.X), float32(e.Y)).Round()
		if b.Bounds().Contains(b.mouse) {
			if b.state == ButtonNone {
				b.queue.Push(EventHover)
			}
			b.setState(ButtonHover, buttonHoverColor)
		} else {
			b.setState(ButtonNone, buttonRestColor)
		}

	case core.EventMouseButton:
		if e.Button != core.MouseLeft || !b.Bounds().Contains(b.mouse) {
			return
		}
		if e.Down {
			b.setState(ButtonClick, buttonPressColor)
			b.queue.Push(EventClick)
			if b.callback != nil {
				b.callback()
			}
		} else {
			b.setState(ButtonHover, buttonHoverColor)
		}
	}
}

// SetVisibility drops the hover and press state when hiding.
func (b *Button) SetVisibility(visible bool) {
	if !visible {
		b.release()
	}
	b.base.SetVisibility(visible)
}

func (b *Button) release() { b.setState(ButtonNone, buttonRestColor) }

func (b *Button) setState(s ButtonState, c colors.Color) {
	b.state = s
	if b.rect.FillColor() != c {
		b.rect.SetFillColor(c)
	}
}

func (b *Button) Draw(p *gfx.Pass) {
	if b.hidden {
		return
	}
	b.rect.Draw(p)
	b.label.Draw(p)
}
