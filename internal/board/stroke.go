package board

import (
	"image"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/tool"
)

// beginStroke opens a freehand path at pos. Nothing is painted until the
// pointer moves.
func (b *Board) beginStroke(pos image.Point, cfg *tool.Config) {
	b.session = session{
		drawing: true,
		tool:    cfg.Tool,
		brush:   b.brushFor(cfg),
		start:   pos,
		last:    pos,
	}
}

// extendStroke paints the segment from the previous point to pos straight
// away.
func (b *Board) extendStroke(pos image.Point) {
	raster.Line(b.surface.Image(), b.session.last, pos, b.session.brush)
	b.session.last = pos
}
