package board

import (
	"image"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/tool"
)

// session is the transient state of one drag gesture.
type session struct {
	drawing bool
	tool    tool.Tool
	brush   raster.Brush
	start   image.Point
	last    image.Point
	// restore is a scratch copy of the pre-drag canvas used to redraw shape
	// previews. It never enters the history.
	restore *image.RGBA
}

// Drawing reports whether a gesture is in progress.
func (b *Board) Drawing() bool { return b.session.drawing }

// PointerDown starts a gesture at the viewport point p using cfg. The
// configuration is read once here and holds for the whole gesture.
func (b *Board) PointerDown(p image.Point, cfg *tool.Config) {
	if !b.Ready() {
		return
	}
	if cfg == nil {
		def := tool.DefaultConfig()
		cfg = &def
	}
	pos := b.surface.Map(p)
	switch {
	case cfg.Tool.Freehand():
		b.beginStroke(pos, cfg)
	case cfg.Tool.Shape():
		b.beginShape(pos, cfg)
	default:
		// select paints nothing but is still a gesture: its end commits.
		b.session = session{drawing: true, tool: cfg.Tool, start: pos, last: pos}
	}
}

// PointerMove continues the current gesture at viewport point p.
func (b *Board) PointerMove(p image.Point) {
	if !b.Ready() || !b.session.drawing {
		return
	}
	pos := b.surface.Map(p)
	switch {
	case b.session.tool.Freehand():
		b.extendStroke(pos)
	case b.session.tool.Shape():
		b.previewShape(pos)
	}
}

// PointerUp ends the current gesture and commits the canvas.
func (b *Board) PointerUp() {
	if !b.Ready() || !b.session.drawing {
		return
	}
	b.session = session{}
	b.commit()
}

// PointerLeave is treated exactly like PointerUp: the gesture commits.
func (b *Board) PointerLeave() { b.PointerUp() }

// TouchStart starts a gesture from the first active touch point.
func (b *Board) TouchStart(touches []image.Point, cfg *tool.Config) {
	if len(touches) == 0 {
		return
	}
	b.PointerDown(touches[0], cfg)
}

// TouchMove continues the gesture from the first active touch point.
func (b *Board) TouchMove(touches []image.Point) {
	if len(touches) == 0 {
		return
	}
	b.PointerMove(touches[0])
}

// TouchEnd ends the gesture.
func (b *Board) TouchEnd() { b.PointerUp() }
