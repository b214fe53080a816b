package board

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/example/sketchpad/internal/raster"
)

// ExportFilename returns "<app>-<unix millis>.png" for t.
func ExportFilename(app string, t time.Time) string {
	if app == "" {
		app = DefaultAppName
	}
	return fmt.Sprintf("%s-%d.png", app, t.UnixMilli())
}

// Flatten returns a new opaque image: the export background with the
// canvas composited on top. The live canvas and history are not touched.
func (b *Board) Flatten() *image.RGBA {
	if !b.Ready() {
		return nil
	}
	src := b.surface.Image()
	out := image.NewRGBA(src.Bounds())
	raster.Fill(out, b.exportBackground)
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Over)
	return out
}

// EncodePNG writes the flattened canvas to w as PNG. Nothing is written
// when no surface is bound.
func (b *Board) EncodePNG(w io.Writer) error {
	img := b.Flatten()
	if img == nil {
		return nil
	}
	return png.Encode(w, img)
}

// Export writes the flattened canvas into dir under a timestamped name and
// returns the written path. Failures are logged, reported to the notifier
// and returned; the canvas and history are unaffected either way. With no
// surface bound it does nothing and returns an empty path.
func (b *Board) Export(dir string) (string, error) {
	if !b.Ready() {
		return "", nil
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportFilename(b.appName, b.now()))
	if err := b.writePNG(path); err != nil {
		err = fmt.Errorf("export %s: %w", path, err)
		log.Printf("export: %v", err)
		if b.notifier != nil {
			b.notifier.ExportFailed(err)
		}
		return "", err
	}
	if b.notifier != nil {
		b.notifier.Exported(path)
	}
	return path, nil
}

func (b *Board) writePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				log.Printf("export: remove partial %s: %v", path, rerr)
			}
		}
	}()
	return b.EncodePNG(f)
}
