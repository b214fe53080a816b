package ui

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StateActive
	StateDisabled
	numStates
)

// Button is a clickable toolbar element.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and keeps one rendering per state.
// Moving the button or changing the theme drops the cache.
type CacheButton struct {
	Button
	theme *theme.Theme
	cache [numStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	if th != cb.theme {
		cb.theme = th
		cb.cache = [numStates]*image.RGBA{}
	}
	r := cb.Button.Rect()
	if cb.cache[state] == nil {
		img := image.NewRGBA(r)
		cb.Button.Draw(img, th, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, r, cb.cache[state], r.Min, draw.Over)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [numStates]*image.RGBA{}
	}
}

// labelButton is a rectangle with a centred text label.
type labelButton struct {
	label    string
	rect     image.Rectangle
	activate func()
}

func (b *labelButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StateActive:
		bg, fg = th.ButtonBackgroundActive, th.ButtonTextActive
	case StateDisabled:
		fg = th.ButtonTextDisabled
	}
	fillRect(dst, b.rect, bg)
	if state == StateActive {
		strokeRect(dst, b.rect, fg)
	}
	drawLabel(dst, b.rect, b.label, fg)
}

func (b *labelButton) Rect() image.Rectangle     { return b.rect }
func (b *labelButton) SetRect(r image.Rectangle) { b.rect = r }
func (b *labelButton) Activate() {
	if b.activate != nil {
		b.activate()
	}
}

func newToolButton(t tool.Tool, onSelect func(tool.Tool)) *CacheButton {
	return &CacheButton{Button: &labelButton{label: t.Label(), activate: func() { onSelect(t) }}}
}

func newActionButton(a action, run func(action)) *CacheButton {
	return &CacheButton{Button: &labelButton{label: actionLabels[a], activate: func() { run(a) }}}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// strokeRect outlines r with a one pixel border inside r.
func strokeRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), u, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), u, image.Point{}, draw.Over)
}

func drawLabel(dst *image.RGBA, r image.Rectangle, s string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	w := d.MeasureString(s).Ceil()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2 + m.Ascent.Ceil()
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

// drawSwatch paints one palette entry, ringed when selected.
func drawSwatch(dst *image.RGBA, th *theme.Theme, r image.Rectangle, c color.RGBA, selected, hover bool) {
	fillRect(dst, r, c)
	border := th.SwatchBorder
	if hover {
		border = th.ButtonTextActive
	}
	strokeRect(dst, r, border)
	if selected {
		strokeRect(dst, r.Inset(-3), th.SwatchSelected)
	}
}

// drawSlider paints the width slider: the numeric value on the left, the
// track and a round knob whose size follows the width.
func drawSlider(dst *image.RGBA, th *theme.Theme, l Layout, width int, ink color.RGBA) {
	r := l.Slider
	label := image.Rect(r.Min.X, r.Min.Y, r.Min.X+22, r.Max.Y)
	drawLabel(dst, label, strconv.Itoa(width), th.Foreground)

	x0, x1 := l.sliderTrack()
	cy := r.Min.Y + r.Dy()/2
	fillRect(dst, image.Rect(x0, cy-1, x1, cy+1), th.SliderTrack)

	kx := l.knobX(width)
	rad := 3 + width/4
	for y := -rad; y <= rad; y++ {
		for x := -rad; x <= rad; x++ {
			if x*x+y*y <= rad*rad {
				dst.SetRGBA(kx+x, cy+y, th.SliderKnob)
			}
		}
	}
	inner := max(1, rad-2)
	for y := -inner; y <= inner; y++ {
		for x := -inner; x <= inner; x++ {
			if x*x+y*y <= inner*inner {
				dst.SetRGBA(kx+x, cy+y, ink)
			}
		}
	}
}
