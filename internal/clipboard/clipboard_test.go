package clipboard

import (
	"errors"
	"image"
	"runtime"
	"sync"
	"testing"
)

func TestWriteImageEmpty(t *testing.T) {
	if err := WriteImage(nil); !errors.Is(err, errEmpty) {
		t.Fatalf("WriteImage(nil) = %v", err)
	}
	if err := WriteImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, errEmpty) {
		t.Fatalf("WriteImage(empty) = %v", err)
	}
	if err := WritePNG(nil); !errors.Is(err, errEmpty) {
		t.Fatalf("WritePNG(nil) = %v", err)
	}
}

func TestEnsureInitWithoutDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("display check only applies to X11/Wayland platforms")
	}
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil
	t.Cleanup(func() { initOnce = sync.Once{}; initErr = nil })

	err := WriteImage(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if !errors.Is(err, errNoDisplay) {
		t.Fatalf("expected errNoDisplay, got %v", err)
	}
}
