// Package clipboard publishes finished drawings to the system clipboard as
// PNG images.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"runtime"
)

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard image operations are not supported in this build")
	errEmpty       = errors.New("nothing to copy")
)

// WriteImage encodes img as PNG and places it on the clipboard.
func WriteImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return errEmpty
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return WritePNG(buf.Bytes())
}

// WritePNG places already encoded PNG data on the clipboard.
func WritePNG(data []byte) error {
	if len(data) == 0 {
		return errEmpty
	}
	if err := ensureInit(); err != nil {
		return err
	}
	return writePNG(data)
}

// needsDisplay reports whether the platform backend talks to an X11 or
// Wayland server.
func needsDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin", "android", "ios":
		return false
	}
	return true
}
