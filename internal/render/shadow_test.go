package render

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestMaskShape(t *testing.T) {
	s := Shadow{Radius: 4, Color: color.RGBA{A: 0x80}}
	m := s.Mask(image.Pt(20, 10))
	if want := image.Rect(0, 0, 28, 18); m.Bounds() != want {
		t.Fatalf("mask bounds %v, want %v", m.Bounds(), want)
	}
	if a := m.AlphaAt(14, 9).A; a != 0xff {
		t.Errorf("centre alpha %d, want 255", a)
	}
	edge := m.AlphaAt(4, 9).A
	if edge == 0 || edge == 0xff {
		t.Errorf("edge alpha %d should be partial", edge)
	}
	if corner := m.AlphaAt(0, 0).A; corner >= edge {
		t.Errorf("corner alpha %d should fade below edge %d", corner, edge)
	}
}

func TestMaskNoRadius(t *testing.T) {
	m := Shadow{Color: color.RGBA{A: 0xff}}.Mask(image.Pt(3, 3))
	for _, v := range m.Pix {
		if v != 0xff {
			t.Fatalf("unblurred mask should be solid, got %v", m.Pix)
		}
	}
}

func TestDrawOffsetsShadow(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	page := image.Rect(10, 10, 40, 40)
	s := Shadow{Radius: 2, Offset: image.Pt(0, 6), Color: color.RGBA{A: 0xff}}
	s.Draw(dst, page)

	if got := dst.RGBAAt(25, 44); got.R >= 0xff {
		t.Errorf("expected shadow below page, got %v", got)
	}
	if got := dst.RGBAAt(25, 5); got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("expected nothing above page, got %v", got)
	}
}

func TestTransparentShadowDrawsNothing(t *testing.T) {
	s := Shadow{Radius: 8, Color: color.RGBA{}}
	if !s.Bounds(image.Rect(0, 0, 5, 5)).Empty() {
		t.Fatal("transparent shadow should have empty bounds")
	}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Draw(dst, image.Rect(0, 0, 5, 5))
	for _, v := range dst.Pix {
		if v != 0 {
			t.Fatal("transparent shadow painted pixels")
		}
	}
}

func TestCacheReuse(t *testing.T) {
	var c Cache
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	s := DefaultShadow(color.RGBA{A: 0x40})
	c.Draw(dst, image.Rect(5, 5, 20, 20), s)
	first := c.mask
	c.Draw(dst, image.Rect(10, 10, 25, 25), s)
	if c.mask != first {
		t.Error("same size should reuse the mask")
	}
	c.Draw(dst, image.Rect(10, 10, 30, 25), s)
	if c.mask == first {
		t.Error("new size should rebuild the mask")
	}
}
