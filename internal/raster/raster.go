// Package raster paints the brush strokes and shape outlines used by the
// drawing tools directly into an RGBA pixel buffer.
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Brush describes the ink used for a stroke.
type Brush struct {
	Color color.RGBA
	// Width is the stroke diameter in pixels. Values below 1 paint as 1.
	Width int
}

func (b Brush) width() int {
	if b.Width < 1 {
		return 1
	}
	return b.Width
}

// Fill replaces every pixel of img with col.
func Fill(img *image.RGBA, col color.Color) {
	if img == nil {
		return
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// wideBrush is the width above which a line is rasterised as one capsule
// around the segment instead of a dab per step.
const wideBrush = 16

// painter writes one primitive into img, limited to clip. Opaque ink is
// stored directly. Translucent ink is collected in a coverage mask and
// composited over the canvas once, so overlapping dabs of the same
// primitive do not darken each other.
type painter struct {
	img  *image.RGBA
	col  color.RGBA
	clip image.Rectangle
	mask *image.Alpha
}

func newPainter(img *image.RGBA, col color.RGBA, area image.Rectangle) *painter {
	p := &painter{img: img, col: col, clip: area.Intersect(img.Bounds())}
	if col.A != 0xff && !p.clip.Empty() {
		p.mask = image.NewAlpha(p.clip)
	}
	return p
}

// span paints the pixels x0..x1 inclusive on row y, clipped.
func (p *painter) span(y, x0, x1 int) {
	if y < p.clip.Min.Y || y >= p.clip.Max.Y {
		return
	}
	x0 = max(x0, p.clip.Min.X)
	x1 = min(x1, p.clip.Max.X-1)
	for x := x0; x <= x1; x++ {
		if p.mask != nil {
			p.mask.SetAlpha(x, y, color.Alpha{A: 0xff})
		} else {
			p.img.SetRGBA(x, y, p.col)
		}
	}
}

func (p *painter) done() {
	if p.mask == nil {
		return
	}
	draw.DrawMask(p.img, p.clip, image.NewUniform(p.col), image.Point{}, p.mask, p.clip.Min, draw.Over)
}

func dabBounds(c image.Point, r int) image.Rectangle {
	return image.Rect(c.X-r, c.Y-r, c.X+r+1, c.Y+r+1)
}

// dab paints a round dab of width w centred at c: every pixel with
// 4*(dx*dx+dy*dy) <= w*w.
func (p *painter) dab(c image.Point, w int) {
	r := w / 2
	rows := dabBounds(c, r).Intersect(p.clip)
	lim := w * w
	for y := rows.Min.Y; y < rows.Max.Y; y++ {
		dy := y - c.Y
		rest := lim - 4*dy*dy
		if rest < 0 {
			continue
		}
		s := int(math.Sqrt(float64(rest) / 4))
		for 4*(s+1)*(s+1) <= rest {
			s++
		}
		for s > 0 && 4*s*s > rest {
			s--
		}
		p.span(y, c.X-s, c.X+s)
	}
}

// Stamp paints a round dab of the brush centred at p. Repeated stamps along
// a path give the stroke round caps and joins.
func Stamp(img *image.RGBA, p image.Point, b Brush) {
	if img == nil {
		return
	}
	w := b.width()
	pt := newPainter(img, b.Color, dabBounds(p, w/2))
	pt.dab(p, w)
	pt.done()
}

// Line paints a stroke from p0 to p1 inclusive.
func Line(img *image.RGBA, p0, p1 image.Point, b Brush) {
	if img == nil {
		return
	}
	w := b.width()
	r := w / 2
	area := image.Rectangle{Min: p0, Max: p1}.Canon()
	area.Max = area.Max.Add(image.Pt(1, 1))
	pt := newPainter(img, b.Color, area.Inset(-r))
	pt.line(p0, p1, w)
	pt.done()
}

func (p *painter) line(p0, p1 image.Point, w int) {
	if p.clip.Empty() {
		return
	}
	if w > wideBrush {
		p.capsule(p0, p1, w)
		return
	}
	// Steps outside the canvas by more than the brush radius paint
	// nothing, so the walk starts and ends at the edge of that margin.
	p0, p1, ok := clipSegment(p0, p1, p.img.Bounds().Inset(-(w/2 + 2)))
	if !ok {
		return
	}
	x0, y0 := p0.X, p0.Y
	dx := absInt(p1.X - x0)
	dy := absInt(p1.Y - y0)
	sx := -1
	if x0 < p1.X {
		sx = 1
	}
	sy := -1
	if y0 < p1.Y {
		sy = 1
	}
	err := dx - dy
	for {
		p.dab(image.Pt(x0, y0), w)
		if x0 == p1.X && y0 == p1.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// capsule paints every pixel within w/2 of the segment p0-p1.
func (p *painter) capsule(p0, p1 image.Point, w int) {
	ax, ay := float64(p0.X), float64(p0.Y)
	dx, dy := float64(p1.X-p0.X), float64(p1.Y-p0.Y)
	l2 := dx*dx + dy*dy
	lim := float64(w) * float64(w)
	for y := p.clip.Min.Y; y < p.clip.Max.Y; y++ {
		run := -1
		for x := p.clip.Min.X; x < p.clip.Max.X; x++ {
			qx, qy := float64(x)-ax, float64(y)-ay
			t := 0.0
			if l2 > 0 {
				t = math.Max(0, math.Min(1, (qx*dx+qy*dy)/l2))
			}
			ex, ey := qx-t*dx, qy-t*dy
			if 4*(ex*ex+ey*ey) <= lim {
				if run < 0 {
					run = x
				}
				continue
			}
			if run >= 0 {
				p.span(y, run, x-1)
				run = -1
			}
		}
		if run >= 0 {
			p.span(y, run, p.clip.Max.X-1)
		}
	}
}

// clipSegment trims the segment a-b to r (Liang-Barsky). ok is false when
// the segment misses r entirely.
func clipSegment(a, b image.Point, r image.Rectangle) (image.Point, image.Point, bool) {
	if a.In(r) && b.In(r) {
		return a, b, true
	}
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - x0},
		{-dy, y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - y0},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return a, b, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, t)
		}
	}
	na := image.Pt(int(math.Round(x0+t0*dx)), int(math.Round(y0+t0*dy)))
	nb := image.Pt(int(math.Round(x0+t1*dx)), int(math.Round(y0+t1*dy)))
	return na, nb, true
}

// NormalizeRect returns the rectangle spanned by a drag from start to end.
// Dragging up or left of the start point yields the same rectangle as the
// reverse drag.
func NormalizeRect(start, end image.Point) image.Rectangle {
	return image.Rect(start.X, start.Y, end.X, end.Y)
}

// Rect outlines r. The edges run through Min and Max, so a rectangle
// anchored at (10,10) with size 40x40 has its far corner at (50,50).
func Rect(img *image.RGBA, r image.Rectangle, b Brush) {
	if img == nil {
		return
	}
	r = r.Canon()
	w := b.width()
	tl := r.Min
	tr := image.Pt(r.Max.X, r.Min.Y)
	br := r.Max
	bl := image.Pt(r.Min.X, r.Max.Y)
	pt := newPainter(img, b.Color, image.Rectangle{Min: tl, Max: br.Add(image.Pt(1, 1))}.Inset(-(w / 2)))
	pt.line(tl, tr, w)
	pt.line(tr, br, w)
	pt.line(br, bl, w)
	pt.line(bl, tl, w)
	pt.done()
}

// Radius returns the Euclidean distance between start and end.
func Radius(start, end image.Point) float64 {
	return math.Hypot(float64(end.X-start.X), float64(end.Y-start.Y))
}

// Circle outlines the circle centred at c with radius r. Pixels whose
// centre lies within half the brush width of the circumference are painted.
func Circle(img *image.RGBA, c image.Point, r float64, b Brush) {
	if img == nil || r < 0 {
		return
	}
	half := float64(b.width()) / 2
	outer := r + half
	ext := int(math.Ceil(outer))
	pt := newPainter(img, b.Color, dabBounds(c, ext))
	for y := pt.clip.Min.Y; y < pt.clip.Max.Y; y++ {
		dy := float64(y - c.Y)
		if math.Abs(dy) > outer {
			continue
		}
		// Candidate columns lie between the inner and outer edge of the
		// ring on this row, widened by one pixel and tested exactly.
		hi := int(math.Sqrt(outer*outer-dy*dy)) + 1
		lo := 0
		if in := r - half; in > 0 && in*in > dy*dy {
			lo = max(0, int(math.Sqrt(in*in-dy*dy))-1)
		}
		pt.ring(c, y, c.X-hi, c.X-lo, r, half)
		pt.ring(c, y, c.X+lo, c.X+hi, r, half)
	}
	pt.done()
}

// ring paints the pixels of row y between x0 and x1 that lie on the ring.
func (p *painter) ring(c image.Point, y, x0, x1 int, r, half float64) {
	x0 = max(x0, p.clip.Min.X)
	x1 = min(x1, p.clip.Max.X-1)
	dy := float64(y - c.Y)
	for x := x0; x <= x1; x++ {
		d := math.Hypot(float64(x-c.X), dy)
		if math.Abs(d-r) <= half {
			p.span(y, x, x)
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
