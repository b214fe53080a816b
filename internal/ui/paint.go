package ui

import (
	"image"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

const gridSpacing = 20

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// painter renders frames for one window. It caches the backdrop and the
// page shadow between frames.
type painter struct {
	theme    *theme.Theme
	shadow   render.Cache
	backdrop *image.RGBA
}

func newPainter(th *theme.Theme) *painter {
	if th == nil {
		th = theme.Default()
	}
	return &painter{theme: th}
}

// drawBackdrop fills dst with the backdrop colour and a dot grid, reusing
// the last rendering while the size is unchanged.
func (p *painter) drawBackdrop(dst *image.RGBA) {
	b := dst.Bounds()
	if p.backdrop == nil || p.backdrop.Bounds() != b {
		bg := image.NewRGBA(b)
		draw.Draw(bg, b, image.NewUniform(p.theme.Background), image.Point{}, draw.Src)
		for y := b.Min.Y + gridSpacing/2; y < b.Max.Y; y += gridSpacing {
			for x := b.Min.X + gridSpacing/2; x < b.Max.X; x += gridSpacing {
				bg.SetRGBA(x, y, p.theme.Grid)
			}
		}
		p.backdrop = bg
	}
	draw.Draw(dst, b, p.backdrop, b.Min, draw.Src)
}

// paint renders the whole window for the controller's current state.
func (p *painter) paint(dst *image.RGBA, c *Controller) {
	th := p.theme
	p.drawBackdrop(dst)

	// The page shows the board background so eraser strokes blend in.
	if page := c.surface.ScreenRect(); !page.Empty() {
		p.shadow.Draw(dst, page, render.DefaultShadow(th.PageShadow))
		fillRect(dst, page, c.board.Background())
		if img := c.surface.Image(); img != nil {
			draw.Draw(dst, page, img, img.Bounds().Min, draw.Over)
		}
	}

	p.drawToolbar(dst, c)

	if msg, isErr, ok := c.Message(); ok {
		p.drawMessage(dst, msg, isErr)
	}
}

func (p *painter) drawToolbar(dst *image.RGBA, c *Controller) {
	th := p.theme
	l := c.layout
	fillRect(dst, l.Toolbar, th.ToolbarBackground)
	fillRect(dst, image.Rect(l.Toolbar.Min.X, l.Toolbar.Max.Y-1, l.Toolbar.Max.X, l.Toolbar.Max.Y), th.ToolbarBorder)

	for i, b := range c.tools {
		state := StateDefault
		if tool.Tools()[i] == c.cfg.Tool {
			state = StateActive
		} else if c.hover == (hit{hitTool, i}) {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}

	ink, err := tool.ParseColor(c.cfg.Color)
	if err != nil {
		ink = tool.MustParseColor(tool.DefaultColor)
	}
	for i, pc := range tool.Palette() {
		drawSwatch(dst, th, l.Swatches[i], pc.Color, pc.Color == ink, c.hover == (hit{hitSwatch, i}))
	}
	drawSlider(dst, th, l, c.cfg.Width, ink)

	for i, b := range c.actions {
		state := StateDefault
		if !c.enabled(actionOrder[i]) {
			state = StateDisabled
		} else if c.hover == (hit{hitAction, i}) {
			state = StateHover
		}
		b.Draw(dst, th, state)
	}
}

// drawMessage shows msg in a box centred near the bottom of the window.
func (p *painter) drawMessage(dst *image.RGBA, msg string, isErr bool) {
	th := p.theme
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ToastText), Face: messageFace}
	w := d.MeasureString(msg).Ceil()
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	b := dst.Bounds()
	px := b.Min.X + (b.Dx()-w)/2
	py := b.Max.Y - canvasMargin - 16 - descent
	box := image.Rect(px-12, py-ascent-8, px+w+12, py+descent+8)
	bg := th.ToastBackground
	if isErr {
		bg = th.ToastError
	}
	fillRect(dst, box, bg)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
