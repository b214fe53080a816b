// Package surface models the on-screen drawing canvas: an exclusively owned
// RGBA pixel buffer and the position of its top-left corner in viewport
// coordinates.
package surface

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Surface is a single mutable pixel buffer placed somewhere in the viewport.
// It is not safe for concurrent use.
type Surface struct {
	img    *image.RGBA
	origin image.Point
}

// New creates a transparent surface of the given size whose top-left corner
// sits at origin in viewport coordinates.
func New(size image.Point, origin image.Point) *Surface {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	return &Surface{
		img:    image.NewRGBA(image.Rectangle{Max: size}),
		origin: origin,
	}
}

// Image returns the live pixel buffer. Callers drawing into it become
// mutators of the canvas.
func (s *Surface) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.img
}

// Bounds reports the canvas-local bounds, always anchored at (0,0).
func (s *Surface) Bounds() image.Rectangle {
	if s == nil || s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// Origin reports where the canvas's top-left corner is on screen.
func (s *Surface) Origin() image.Point {
	if s == nil {
		return image.Point{}
	}
	return s.origin
}

// SetOrigin records a new on-screen position, e.g. after a layout change.
func (s *Surface) SetOrigin(p image.Point) {
	if s == nil {
		return
	}
	s.origin = p
}

// ScreenRect returns the canvas bounds in viewport coordinates.
func (s *Surface) ScreenRect() image.Rectangle {
	return s.Bounds().Add(s.Origin())
}

// Map converts a viewport point to canvas-local coordinates by subtracting
// the canvas's on-screen offset. An unbound surface maps everything to
// (0,0).
func (s *Surface) Map(viewport image.Point) image.Point {
	if s == nil || s.img == nil {
		return image.Point{}
	}
	return viewport.Sub(s.origin)
}

// Pixels returns an independent copy of the full pixel buffer.
func (s *Surface) Pixels() *image.RGBA {
	if s == nil || s.img == nil {
		return nil
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Restore overwrites the canvas with img, pixel for pixel. Where the sizes
// differ only the overlapping region is written.
func (s *Surface) Restore(img *image.RGBA) {
	if s == nil || s.img == nil || img == nil {
		return
	}
	if img.Bounds() == s.img.Bounds() && img.Stride == s.img.Stride {
		copy(s.img.Pix, img.Pix)
		return
	}
	xdraw.Copy(s.img, image.Point{}, img, img.Bounds(), xdraw.Src, nil)
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	if s == nil || s.img == nil {
		return
	}
	clear(s.img.Pix)
}

// Resize swaps the buffer for one of the new size and copies the old pixels
// across anchored at (0,0). This is a raw pixel copy: content that no
// longer fits is lost and new area is transparent.
func (s *Surface) Resize(size image.Point) {
	if s == nil || s.img == nil {
		return
	}
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	if size == s.img.Bounds().Size() {
		return
	}
	next := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.Copy(next, image.Point{}, s.img, s.img.Bounds(), xdraw.Src, nil)
	s.img = next
}

// At returns the colour of the canvas-local pixel at p.
func (s *Surface) At(p image.Point) color.RGBA {
	if s == nil || s.img == nil {
		return color.RGBA{}
	}
	return s.img.RGBAAt(p.X, p.Y)
}
