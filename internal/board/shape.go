package board

import (
	"image"

	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/tool"
)

// beginShape remembers the canvas as it was before the drag so every move
// can start the preview from a clean slate.
func (b *Board) beginShape(pos image.Point, cfg *tool.Config) {
	b.session = session{
		drawing: true,
		tool:    cfg.Tool,
		brush:   b.brushFor(cfg),
		start:   pos,
		last:    pos,
		restore: b.surface.Pixels(),
	}
}

// previewShape restores the pre-drag canvas and outlines the shape from the
// drag start to pos.
func (b *Board) previewShape(pos image.Point) {
	img := b.surface.Image()
	if b.session.restore != nil {
		b.surface.Restore(b.session.restore)
	}
	switch b.session.tool {
	case tool.Rectangle:
		raster.Rect(img, raster.NormalizeRect(b.session.start, pos), b.session.brush)
	case tool.Circle:
		raster.Circle(img, b.session.start, raster.Radius(b.session.start, pos), b.session.brush)
	}
	b.session.last = pos
}
