package ui

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/example/sketchpad/internal/tool"
)

const (
	toolbarHeight = 44
	buttonHeight  = 28
	buttonPad     = 10
	groupGap      = 14
	swatchSize    = 20
	swatchGap     = 4
	sliderWidth   = 120
	canvasMargin  = 24
)

// action identifies a toolbar command button.
type action int

const (
	actionUndo action = iota
	actionRedo
	actionClear
	actionExport
	actionCopy
)

var actionLabels = map[action]string{
	actionUndo:   "Undo",
	actionRedo:   "Redo",
	actionClear:  "Clear",
	actionExport: "Export",
	actionCopy:   "Copy",
}

var actionOrder = []action{actionUndo, actionRedo, actionClear, actionExport, actionCopy}

// Layout holds the window regions for one window size. Everything is in
// window coordinates.
type Layout struct {
	Size     image.Point
	Toolbar  image.Rectangle
	Tools    []image.Rectangle // indexed like tool.Tools()
	Swatches []image.Rectangle // indexed like tool.Palette()
	Slider   image.Rectangle
	Actions  []image.Rectangle // indexed like actionOrder
	Canvas   image.Rectangle
}

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil() + 2*buttonPad
}

// MinWidth is the narrowest window that fits the whole toolbar.
func MinWidth() int {
	return NewLayout(image.Pt(0, 0)).Actions[len(actionOrder)-1].Max.X + groupGap
}

// NewLayout arranges the toolbar left to right and gives the rest of the
// window, less a margin, to the canvas.
func NewLayout(size image.Point) Layout {
	l := Layout{Size: size, Toolbar: image.Rect(0, 0, size.X, toolbarHeight)}
	top := (toolbarHeight - buttonHeight) / 2
	x := groupGap

	for _, t := range tool.Tools() {
		w := labelWidth(t.Label())
		l.Tools = append(l.Tools, image.Rect(x, top, x+w, top+buttonHeight))
		x += w + 2
	}
	x += groupGap

	sy := (toolbarHeight - swatchSize) / 2
	for range tool.Palette() {
		l.Swatches = append(l.Swatches, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
		x += swatchSize + swatchGap
	}
	x += groupGap

	l.Slider = image.Rect(x, top, x+sliderWidth, top+buttonHeight)
	x += sliderWidth + groupGap

	for _, a := range actionOrder {
		w := labelWidth(actionLabels[a])
		l.Actions = append(l.Actions, image.Rect(x, top, x+w, top+buttonHeight))
		x += w + 2
	}

	canvas := image.Rect(canvasMargin, toolbarHeight+canvasMargin, size.X-canvasMargin, size.Y-canvasMargin)
	if canvas.Dx() < 1 || canvas.Dy() < 1 {
		canvas = image.Rectangle{Min: canvas.Min, Max: canvas.Min}
	}
	l.Canvas = canvas
	return l
}

// hit describes what lies under a window point.
type hit struct {
	kind  hitKind
	index int
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTool
	hitSwatch
	hitSlider
	hitAction
	hitCanvas
)

func indexOf(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// hitTest reports the element under p.
func (l Layout) hitTest(p image.Point) hit {
	if p.In(l.Toolbar) {
		if i := indexOf(l.Tools, p); i >= 0 {
			return hit{hitTool, i}
		}
		if i := indexOf(l.Swatches, p); i >= 0 {
			return hit{hitSwatch, i}
		}
		if p.In(l.Slider) {
			return hit{kind: hitSlider}
		}
		if i := indexOf(l.Actions, p); i >= 0 {
			return hit{hitAction, i}
		}
		return hit{index: -1}
	}
	if p.In(l.Canvas) {
		return hit{kind: hitCanvas}
	}
	return hit{index: -1}
}

// sliderTrack is the horizontal span the width knob travels along.
func (l Layout) sliderTrack() (x0, x1 int) {
	return l.Slider.Min.X + 24, l.Slider.Max.X - 8
}

// widthAt maps a window x coordinate on the slider to a stroke width.
func (l Layout) widthAt(x int) int {
	x0, x1 := l.sliderTrack()
	if x1 <= x0 {
		return tool.MinWidth
	}
	span := tool.MaxWidth - tool.MinWidth
	w := tool.MinWidth + ((x-x0)*span+(x1-x0)/2)/(x1-x0)
	return tool.ClampWidth(w)
}

// knobX is the inverse of widthAt.
func (l Layout) knobX(width int) int {
	x0, x1 := l.sliderTrack()
	span := tool.MaxWidth - tool.MinWidth
	return x0 + (tool.ClampWidth(width)-tool.MinWidth)*(x1-x0)/span
}
