// Package board is the drawing engine behind the canvas: it turns pointer
// gestures into pixels, keeps the undo/redo history of full-canvas
// snapshots and produces flattened exports.
//
// A Board is driven from a single goroutine. Every operation invoked before
// Init, or after the teardown returned by Init has run, is a silent no-op.
package board

import (
	"image"
	"image/color"
	"log"
	"time"

	"github.com/example/sketchpad/internal/history"
	"github.com/example/sketchpad/internal/raster"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tool"
)

const (
	// DefaultAppName prefixes exported file names.
	DefaultAppName = "sketchpad"
	// DefaultBackground is the canvas colour the eraser paints with.
	DefaultBackground = "#f8f9fa"
	// DefaultExportBackground is the opaque fill placed behind exports.
	DefaultExportBackground = "#ffffff"
)

// Notifier receives user facing outcomes of board operations.
type Notifier interface {
	Exported(path string)
	ExportFailed(err error)
	Cleared()
}

// Board owns the drawing session and history for one bound surface.
type Board struct {
	surface *surface.Surface
	history *history.History
	session session

	background       color.RGBA
	exportBackground color.RGBA
	appName          string
	now              func() time.Time
	notifier         Notifier
	onChange         func(canUndo, canRedo bool)

	canUndo bool
	canRedo bool
}

// Option configures a Board during creation.
type Option func(*Board)

// WithBackground sets the canvas background colour used by the eraser.
func WithBackground(c color.RGBA) Option { return func(b *Board) { b.background = c } }

// WithExportBackground sets the opaque colour exports are flattened onto.
func WithExportBackground(c color.RGBA) Option {
	return func(b *Board) { b.exportBackground = c }
}

// WithAppName sets the prefix of exported file names.
func WithAppName(name string) Option {
	return func(b *Board) {
		if name != "" {
			b.appName = name
		}
	}
}

// WithNotifier routes export and clear outcomes to n.
func WithNotifier(n Notifier) Option { return func(b *Board) { b.notifier = n } }

// WithClock replaces the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// WithChangeListener registers fn to observe CanUndo and CanRedo. It is
// called every time the flags are recomputed.
func WithChangeListener(fn func(canUndo, canRedo bool)) Option {
	return func(b *Board) { b.onChange = fn }
}

// New creates a board with no surface bound.
func New(opts ...Option) *Board {
	b := &Board{
		history:          history.New(),
		background:       tool.MustParseColor(DefaultBackground),
		exportBackground: tool.MustParseColor(DefaultExportBackground),
		appName:          DefaultAppName,
		now:              time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Init binds s as the drawing surface, discards any previous history and
// records the current pixels as the baseline snapshot. The returned
// function unbinds the surface again.
func (b *Board) Init(s *surface.Surface) (teardown func()) {
	if s == nil || s.Image() == nil {
		return func() {}
	}
	b.surface = s
	b.session = session{}
	b.history.Reset()
	b.commit()
	return func() {
		if b.surface != s {
			return
		}
		b.surface = nil
		b.session = session{}
	}
}

// Ready reports whether a surface is bound.
func (b *Board) Ready() bool { return b.surface != nil && b.surface.Image() != nil }

// Surface returns the bound surface, or nil.
func (b *Board) Surface() *surface.Surface { return b.surface }

// Background returns the canvas background colour.
func (b *Board) Background() color.RGBA { return b.background }

// CanUndo reports whether Undo would change the canvas.
func (b *Board) CanUndo() bool { return b.canUndo }

// CanRedo reports whether Redo would change the canvas.
func (b *Board) CanRedo() bool { return b.canRedo }

// Cursor returns the history position, -1 when nothing was committed.
func (b *Board) Cursor() int { return b.history.Cursor() }

// HistoryLen returns the number of stored snapshots.
func (b *Board) HistoryLen() int { return b.history.Len() }

// Pixels returns a copy of the current canvas, nil when unbound.
func (b *Board) Pixels() *image.RGBA {
	if !b.Ready() {
		return nil
	}
	return b.surface.Pixels()
}

// Undo repaints the canvas with the previous snapshot.
func (b *Board) Undo() {
	if !b.Ready() {
		return
	}
	s, ok := b.history.Undo()
	if !ok {
		return
	}
	b.surface.Restore(s.Image())
	b.updateFlags()
}

// Redo repaints the canvas with the next snapshot.
func (b *Board) Redo() {
	if !b.Ready() {
		return
	}
	s, ok := b.history.Redo()
	if !ok {
		return
	}
	b.surface.Restore(s.Image())
	b.updateFlags()
}

// Clear blanks the canvas and records the blank state so it can be undone.
func (b *Board) Clear() {
	if !b.Ready() {
		return
	}
	b.session = session{}
	b.surface.Clear()
	b.commit()
	if b.notifier != nil {
		b.notifier.Cleared()
	}
}

// Resize changes the canvas size by copying raw pixels. Strokes are not
// re-rendered and history is left untouched.
func (b *Board) Resize(size image.Point) {
	if !b.Ready() {
		return
	}
	b.surface.Resize(size)
}

// commit captures the canvas into history.
func (b *Board) commit() {
	b.history.Commit(history.Capture(b.surface.Image()))
	b.updateFlags()
}

func (b *Board) updateFlags() {
	b.canUndo = b.history.CanUndo()
	b.canRedo = b.history.CanRedo()
	if b.onChange != nil {
		b.onChange(b.canUndo, b.canRedo)
	}
}

// brushFor resolves the ink for a gesture. Unparseable colours fall back to
// the default ink so a bad swatch never aborts a stroke.
func (b *Board) brushFor(cfg *tool.Config) raster.Brush {
	width := cfg.StrokeWidth()
	if cfg.Tool == tool.Eraser {
		return raster.Brush{Color: b.background, Width: width}
	}
	col, err := tool.ParseColor(cfg.Color)
	if err != nil {
		log.Printf("stroke color: %v", err)
		col = tool.MustParseColor(tool.DefaultColor)
	}
	return raster.Brush{Color: col, Width: width}
}
