// Package ui is the desktop front end: a shiny window with a toolbar of
// tools, colour swatches, a width slider and history commands above the
// drawing page.
package ui

import (
	"image"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/theme"
)

// DefaultSize is the initial window size.
var DefaultSize = image.Pt(1200, 800)

// Window holds the configuration of the desktop window.
type Window struct {
	Title     string
	Size      image.Point
	Theme     *theme.Theme
	BoardOpts []board.Option
	Opts      []ControllerOption

	onClose func()
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithTitle sets the window title.
func WithTitle(t string) Option { return func(w *Window) { w.Title = t } }

// WithSize sets the initial window size. It never shrinks below the
// toolbar width.
func WithSize(sz image.Point) Option { return func(w *Window) { w.Size = sz } }

// WithTheme sets the colours of the window chrome.
func WithTheme(th *theme.Theme) Option { return func(w *Window) { w.Theme = th } }

// WithBoard passes options to the drawing engine.
func WithBoard(opts ...board.Option) Option {
	return func(w *Window) { w.BoardOpts = append(w.BoardOpts, opts...) }
}

// WithController passes options to the event controller.
func WithController(opts ...ControllerOption) Option {
	return func(w *Window) { w.Opts = append(w.Opts, opts...) }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(w *Window) { w.onClose = fn } }

// New creates a Window with the provided options.
func New(opts ...Option) *Window {
	w := &Window{Title: "Sketchpad", Size: DefaultSize, Theme: theme.Default()}
	for _, o := range opts {
		o(w)
	}
	if mw := MinWidth(); w.Size.X < mw {
		w.Size.X = mw
	}
	if w.Size.Y < toolbarHeight+4*canvasMargin {
		w.Size.Y = toolbarHeight + 4*canvasMargin
	}
	return w
}

// controller creates the window's controller. The theme's page colour is
// the default canvas background; board options given to the window win.
func (w *Window) controller() *Controller {
	var opts []board.Option
	if w.Theme != nil {
		opts = append(opts, board.WithBackground(w.Theme.Page))
	}
	return NewController(w.Size, append(opts, w.BoardOpts...), w.Opts...)
}

// Run executes the UI loop using shiny's driver. It returns when the window
// is closed.
func (w *Window) Run() { driver.Main(w.Main) }

// Main runs the event loop on s.
func (w *Window) Main(s screen.Screen) {
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.Size.X, Height: w.Size.Y, Title: w.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()
	if w.onClose != nil {
		defer w.onClose()
	}

	c := w.controller()
	p := newPainter(w.Theme)
	var buf screen.Buffer
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()
	winSize := w.Size
	var shownUntil time.Time

	for {
		e := win.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				c.Blur()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				c.Blur()
				win.Send(paint.Event{})
			}
		case size.Event:
			winSize = e.Size()
			if winSize.X <= 0 || winSize.Y <= 0 {
				continue
			}
			c.SetSize(winSize)
			win.Send(paint.Event{})
		case paint.Event:
			if e.External && buf != nil && buf.Size() == winSize {
				win.Upload(image.Point{}, buf, buf.Bounds())
				win.Publish()
				continue
			}
			if buf == nil || buf.Size() != winSize {
				if buf != nil {
					buf.Release()
				}
				buf, err = s.NewBuffer(winSize)
				if err != nil {
					log.Printf("new buffer: %v", err)
					buf = nil
					continue
				}
			}
			p.paint(buf.RGBA(), c)
			win.Upload(image.Point{}, buf, buf.Bounds())
			win.Publish()
		case mouse.Event:
			if c.HandleMouse(e) {
				win.Send(paint.Event{})
			}
		case key.Event:
			if c.HandleKey(e) {
				if c.Quit() {
					c.Blur()
					return
				}
				win.Send(paint.Event{})
			}
		case error:
			log.Print(e)
		}
		// Repaint once more when a new message expires.
		if until := c.messageUntil; !until.IsZero() && !until.Equal(shownUntil) {
			shownUntil = until
			time.AfterFunc(time.Until(until)+10*time.Millisecond, func() { win.Send(paint.Event{}) })
		}
	}
}
