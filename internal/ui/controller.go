package ui

import (
	"fmt"
	"image"
	"log"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/surface"
	"github.com/example/sketchpad/internal/tool"
)

const messageDuration = 3 * time.Second

// Notifier is the desktop side of user feedback. *notify.Notifier
// satisfies it.
type Notifier interface {
	board.Notifier
	Copied(detail string)
}

// Controller turns window events into board operations and keeps the
// toolbar state. It never touches a screen, so it can be driven directly.
type Controller struct {
	board   *board.Board
	surface *surface.Surface
	cfg     tool.Config
	layout  Layout

	tools   []*CacheButton
	actions []*CacheButton

	actionsByName  map[string]func()
	keyboardAction map[KeyShortcut]string

	hover   hit
	sliding bool

	exportDir string
	copyImage func(image.Image) error
	notifier  Notifier
	onConfig  func(tool.Config)
	now       func() time.Time

	message      string
	messageErr   bool
	messageUntil time.Time
	quit         bool
}

// ControllerOption configures a Controller during creation.
type ControllerOption func(*Controller)

// WithToolConfig sets the tool, colour and width the window starts with.
func WithToolConfig(cfg tool.Config) ControllerOption {
	return func(c *Controller) { c.cfg = cfg }
}

// WithExportDir sets where exports are written.
func WithExportDir(dir string) ControllerOption { return func(c *Controller) { c.exportDir = dir } }

// WithClipboard sets the function used by the copy command.
func WithClipboard(fn func(image.Image) error) ControllerOption {
	return func(c *Controller) { c.copyImage = fn }
}

// WithNotifier forwards export, clear and copy outcomes to n in addition
// to the in-window message.
func WithNotifier(n Notifier) ControllerOption { return func(c *Controller) { c.notifier = n } }

// WithConfigListener registers fn to observe tool, colour and width changes.
func WithConfigListener(fn func(tool.Config)) ControllerOption {
	return func(c *Controller) { c.onConfig = fn }
}

// WithClock replaces the time source used for message expiry.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller for a window of the given size. The
// board options are applied before the controller installs its own
// notifier.
func NewController(size image.Point, boardOpts []board.Option, opts ...ControllerOption) *Controller {
	c := &Controller{
		cfg:   tool.DefaultConfig(),
		now:   time.Now,
		hover: hit{index: -1},
	}
	for _, o := range opts {
		o(c)
	}
	c.cfg.Width = tool.ClampWidth(c.cfg.Width)
	bopts := append([]board.Option{}, boardOpts...)
	c.board = board.New(append(bopts, board.WithNotifier(toaster{c}))...)

	for _, t := range tool.Tools() {
		c.tools = append(c.tools, newToolButton(t, c.selectTool))
	}
	for _, a := range actionOrder {
		c.actions = append(c.actions, newActionButton(a, c.runAction))
	}
	c.registerShortcuts()
	c.SetSize(size)
	return c
}

func (c *Controller) registerShortcuts() {
	c.actionsByName = map[string]func(){}
	c.keyboardAction = map[KeyShortcut]string{}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		c.actionsByName[name] = fn
		for _, sc := range keys.KeyboardShortcuts() {
			c.keyboardAction[sc] = name
		}
	}

	toolKeys := map[tool.Tool]key.Code{
		tool.Select:    key.CodeV,
		tool.Pencil:    key.CodeP,
		tool.Rectangle: key.CodeR,
		tool.Circle:    key.CodeC,
		tool.Eraser:    key.CodeE,
	}
	for _, t := range tool.Tools() {
		t := t
		register("tool-"+t.String(), shortcutList{plain(toolKeys[t])}, func() { c.selectTool(t) })
	}
	for i, pc := range tool.Palette() {
		pc := pc
		register("color-"+pc.Name, shortcutList{plain(paletteKeys[i])}, func() { c.setColor(pc.Value) })
	}
	register("undo", shortcutList{ctrl(key.CodeZ)}, func() { c.runAction(actionUndo) })
	register("redo", shortcutList{ctrlShift(key.CodeZ), ctrl(key.CodeY)}, func() { c.runAction(actionRedo) })
	register("clear", shortcutList{ctrl(key.CodeDeleteBackspace), ctrl(key.CodeDeleteForward)}, func() { c.runAction(actionClear) })
	register("export", shortcutList{ctrl(key.CodeS)}, func() { c.runAction(actionExport) })
	register("copy", shortcutList{ctrl(key.CodeC)}, func() { c.runAction(actionCopy) })
	register("thinner", shortcutList{plain(key.CodeLeftSquareBracket)}, func() { c.setWidth(c.cfg.Width - 1) })
	register("thicker", shortcutList{plain(key.CodeRightSquareBracket)}, func() { c.setWidth(c.cfg.Width + 1) })
	register("quit", shortcutList{ctrl(key.CodeQ), ctrl(key.CodeW)}, func() { c.quit = true })
}

// Board returns the drawing engine behind the window.
func (c *Controller) Board() *board.Board { return c.board }

// Config returns the current tool settings.
func (c *Controller) Config() tool.Config { return c.cfg }

// Layout returns the current window layout.
func (c *Controller) Layout() Layout { return c.layout }

// Quit reports whether a quit shortcut was pressed.
func (c *Controller) Quit() bool { return c.quit }

// SetSize lays the window out for size. The first call binds a fresh
// surface; later calls move it and resize it by raw pixel copy.
func (c *Controller) SetSize(size image.Point) {
	c.layout = NewLayout(size)
	for i, b := range c.tools {
		b.SetRect(c.layout.Tools[i])
	}
	for i, b := range c.actions {
		b.SetRect(c.layout.Actions[i])
	}
	if c.surface == nil {
		c.surface = surface.New(c.layout.Canvas.Size(), c.layout.Canvas.Min)
		c.board.Init(c.surface)
		return
	}
	c.surface.SetOrigin(c.layout.Canvas.Min)
	c.board.Resize(c.layout.Canvas.Size())
}

// HandleMouse routes a mouse event and reports whether a repaint is needed.
func (c *Controller) HandleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	switch {
	case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelUp:
		c.setWidth(c.cfg.Width + 1)
		return true
	case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelDown:
		c.setWidth(c.cfg.Width - 1)
		return true
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		c.messageUntil = time.Time{}
		return c.press(p)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		c.sliding = false
		if c.board.Drawing() {
			c.board.PointerUp()
		}
		return true
	case e.Direction == mouse.DirNone:
		return c.move(p)
	}
	return false
}

func (c *Controller) press(p image.Point) bool {
	h := c.layout.hitTest(p)
	switch h.kind {
	case hitTool:
		c.tools[h.index].Activate()
	case hitSwatch:
		c.setColor(tool.Palette()[h.index].Value)
	case hitSlider:
		c.sliding = true
		c.setWidth(c.layout.widthAt(p.X))
	case hitAction:
		if c.enabled(actionOrder[h.index]) {
			c.actions[h.index].Activate()
		}
	case hitCanvas:
		c.board.PointerDown(p, &c.cfg)
	default:
		return false
	}
	return true
}

func (c *Controller) move(p image.Point) bool {
	repaint := false
	if c.sliding {
		c.setWidth(c.layout.widthAt(p.X))
		repaint = true
	}
	if c.board.Drawing() {
		if p.In(c.surface.ScreenRect()) {
			c.board.PointerMove(p)
		} else {
			c.board.PointerLeave()
		}
		repaint = true
	}
	if h := c.layout.hitTest(p); h != c.hover {
		c.hover = h
		repaint = true
	}
	return repaint
}

// HandleKey runs the command bound to a key press and reports whether a
// repaint is needed.
func (c *Controller) HandleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	name, ok := c.keyboardAction[shortcutOf(e)]
	if !ok {
		return false
	}
	c.actionsByName[name]()
	return true
}

// Blur ends any gesture in progress, as leaving the canvas does.
func (c *Controller) Blur() {
	c.board.PointerLeave()
	c.sliding = false
}

func (c *Controller) selectTool(t tool.Tool) {
	c.cfg.Tool = t
	c.configChanged()
}

func (c *Controller) setColor(v string) {
	c.cfg.Color = v
	c.configChanged()
}

func (c *Controller) setWidth(w int) {
	w = tool.ClampWidth(w)
	if w == c.cfg.Width {
		return
	}
	c.cfg.Width = w
	c.configChanged()
}

func (c *Controller) configChanged() {
	if c.onConfig != nil {
		c.onConfig(c.cfg)
	}
}

func (c *Controller) enabled(a action) bool {
	switch a {
	case actionUndo:
		return c.board.CanUndo()
	case actionRedo:
		return c.board.CanRedo()
	}
	return c.board.Ready()
}

func (c *Controller) runAction(a action) {
	switch a {
	case actionUndo:
		c.board.Undo()
	case actionRedo:
		c.board.Redo()
	case actionClear:
		c.board.Clear()
	case actionExport:
		if path, err := c.board.Export(c.exportDir); err == nil && path != "" {
			log.Printf("exported %s", path)
		}
	case actionCopy:
		c.copy()
	}
}

func (c *Controller) copy() {
	img := c.board.Flatten()
	if img == nil || c.copyImage == nil {
		return
	}
	if err := c.copyImage(img); err != nil {
		log.Printf("copy: %v", err)
		c.toast(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	c.toast("Copied to clipboard", false)
	if c.notifier != nil {
		c.notifier.Copied("drawing")
	}
}

func (c *Controller) toast(msg string, isErr bool) {
	c.message = msg
	c.messageErr = isErr
	c.messageUntil = c.now().Add(messageDuration)
}

// Message returns the in-window message while it is visible.
func (c *Controller) Message() (msg string, isErr bool, ok bool) {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return "", false, false
	}
	return c.message, c.messageErr, true
}

// toaster shows board outcomes in the window and passes them on to the
// desktop notifier.
type toaster struct{ c *Controller }

func (t toaster) Exported(path string) {
	t.c.toast("Drawing exported successfully", false)
	if t.c.notifier != nil {
		t.c.notifier.Exported(path)
	}
}

func (t toaster) ExportFailed(err error) {
	t.c.toast("Failed to export drawing", true)
	if t.c.notifier != nil {
		t.c.notifier.ExportFailed(err)
	}
}

func (t toaster) Cleared() {
	t.c.toast("Canvas cleared", false)
	if t.c.notifier != nil {
		t.c.notifier.Cleared()
	}
}
