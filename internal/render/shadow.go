// Package render holds window-side effects drawn around the page, such as
// the soft shadow that lifts the canvas off the backdrop.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Shadow describes a blurred drop shadow cast by a rectangle.
type Shadow struct {
	Radius int
	Offset image.Point
	Color  color.RGBA
}

// DefaultShadow returns the page shadow used by the window in colour c.
func DefaultShadow(c color.RGBA) Shadow {
	return Shadow{Radius: 12, Offset: image.Pt(0, 6), Color: c}
}

func (s Shadow) radius() int {
	if s.Radius < 0 {
		return 0
	}
	return s.Radius
}

// Bounds returns the area the shadow of page may touch.
func (s Shadow) Bounds(page image.Rectangle) image.Rectangle {
	if page.Empty() || s.Color.A == 0 {
		return image.Rectangle{}
	}
	return page.Inset(-s.radius()).Add(s.Offset)
}

// Mask builds the blurred coverage for a page of the given size. The mask
// is zero based and padded by Radius on every side.
func (s Shadow) Mask(size image.Point) *image.Alpha {
	r := s.radius()
	mask := image.NewAlpha(image.Rect(0, 0, size.X+2*r, size.Y+2*r))
	inner := image.Rect(r, r, r+size.X, r+size.Y)
	draw.Draw(mask, inner, image.Opaque, image.Point{}, draw.Src)
	return boxBlur(mask, r)
}

// Draw paints the shadow of page onto dst. The page itself is not drawn;
// callers paint it afterwards so it sits on top.
func (s Shadow) Draw(dst draw.Image, page image.Rectangle) {
	(&Cache{}).Draw(dst, page, s)
}

// Cache keeps the last blurred mask so repeated paints at the same page
// size skip the blur.
type Cache struct {
	shadow Shadow
	size   image.Point
	mask   *image.Alpha
}

// Draw paints the shadow of page onto dst, reusing the cached mask when
// neither the shadow nor the page size changed.
func (c *Cache) Draw(dst draw.Image, page image.Rectangle, s Shadow) {
	area := s.Bounds(page)
	if area.Empty() {
		return
	}
	if c.mask == nil || c.shadow != s || c.size != page.Size() {
		c.shadow = s
		c.size = page.Size()
		c.mask = s.Mask(page.Size())
	}
	draw.DrawMask(dst, area, image.NewUniform(s.Color), image.Point{}, c.mask, image.Point{}, draw.Over)
}

// boxBlur runs a horizontal then vertical box filter of the given radius
// using running prefix sums.
func boxBlur(src *image.Alpha, radius int) *image.Alpha {
	b := src.Bounds()
	out := image.NewAlpha(b)
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := b.Dx(), b.Dy()
	tmp := image.NewAlpha(b)
	line := make([]int, max(w, h)+1)

	blur := func(n int, get func(int) uint8, set func(int, uint8)) {
		for i := 0; i < n; i++ {
			line[i+1] = line[i] + int(get(i))
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			set(i, uint8((line[hi+1]-line[lo])/(hi-lo+1)))
		}
	}
	for y := 0; y < h; y++ {
		row := y * src.Stride
		blur(w,
			func(x int) uint8 { return src.Pix[row+x] },
			func(x int, v uint8) { tmp.Pix[y*tmp.Stride+x] = v })
	}
	for x := 0; x < w; x++ {
		blur(h,
			func(y int) uint8 { return tmp.Pix[y*tmp.Stride+x] },
			func(y int, v uint8) { out.Pix[y*out.Stride+x] = v })
	}
	return out
}
