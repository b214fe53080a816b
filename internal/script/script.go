// Package script drives a board from a small line oriented command
// language. It backs the headless draw command and the interactive prompt.
//
//	tool rectangle
//	color #e03131
//	width 4
//	rect 10 10 120 80
//	stroke 10 100 40 120 80 110
//	undo
//	export /tmp
package script

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/tool"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// Runner executes commands against one board. Tool settings persist
// between commands and are handed to the board on every gesture start.
type Runner struct {
	board     *board.Board
	cfg       tool.Config
	out       io.Writer
	exportDir string
	exports   []string
}

// Option configures a Runner during creation.
type Option func(*Runner)

// WithOutput sets where state and export reports are printed.
func WithOutput(w io.Writer) Option { return func(r *Runner) { r.out = w } }

// WithToolConfig sets the starting tool settings.
func WithToolConfig(cfg tool.Config) Option { return func(r *Runner) { r.cfg = cfg } }

// WithExportDir sets the directory used by export without an argument.
func WithExportDir(dir string) Option { return func(r *Runner) { r.exportDir = dir } }

// New creates a Runner for b.
func New(b *board.Board, opts ...Option) *Runner {
	r := &Runner{board: b, cfg: tool.DefaultConfig(), out: io.Discard}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Config returns the current tool settings.
func (r *Runner) Config() tool.Config { return r.cfg }

// Exports lists the files written by export commands so far.
func (r *Runner) Exports() []string { return append([]string(nil), r.exports...) }

// Run executes every line of src. It stops at the first failing line and
// reports its line number. A quit command ends the script without error.
func (r *Runner) Run(src io.Reader) error {
	sc := bufio.NewScanner(src)
	n := 0
	for sc.Scan() {
		n++
		err := r.Exec(sc.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}

// Exec runs a single command line. Blank lines and lines starting with #
// are ignored.
func (r *Runner) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	name := strings.ToLower(fields[0])
	c, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]
	if err := c.arity.check(name, len(args)); err != nil {
		return err
	}
	return c.run(r, args)
}

type arity struct {
	min, max int // max < 0 means unbounded
	pairs    bool
}

func (a arity) check(name string, n int) error {
	switch {
	case n < a.min:
		return fmt.Errorf("%s: want at least %d arguments, got %d", name, a.min, n)
	case a.max >= 0 && n > a.max:
		return fmt.Errorf("%s: want at most %d arguments, got %d", name, a.max, n)
	case a.pairs && n%2 != 0:
		return fmt.Errorf("%s: coordinates must come in x y pairs", name)
	}
	return nil
}

type command struct {
	arity arity
	usage string
	help  string
	run   func(r *Runner, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"tool":      {arity{1, 1, false}, "tool <name>", "select the active tool", (*Runner).cmdTool},
		"color":     {arity{1, 1, false}, "color <value>", "set the ink colour", (*Runner).cmdColor},
		"width":     {arity{1, 1, false}, "width <n>", "set the stroke width (1-20)", (*Runner).cmdWidth},
		"down":      {arity{2, 2, true}, "down x y", "press the pointer", (*Runner).cmdDown},
		"move":      {arity{2, 2, true}, "move x y", "move the pointer", (*Runner).cmdMove},
		"up":        {arity{0, 0, false}, "up", "release the pointer", (*Runner).cmdUp},
		"leave":     {arity{0, 0, false}, "leave", "move the pointer off the canvas", (*Runner).cmdLeave},
		"touch":     {arity{2, -1, true}, "touch x y [x y...]", "start a touch with one or more points", (*Runner).cmdTouch},
		"touchmove": {arity{2, -1, true}, "touchmove x y [x y...]", "move the active touches", (*Runner).cmdTouchMove},
		"touchend":  {arity{0, 0, false}, "touchend", "lift every touch", (*Runner).cmdTouchEnd},
		"stroke":    {arity{2, -1, true}, "stroke x y [x y...]", "press, move through the points, release", (*Runner).cmdStroke},
		"rect":      {arity{4, 4, true}, "rect x0 y0 x1 y1", "drag a rectangle", (*Runner).cmdRect},
		"circle":    {arity{4, 4, true}, "circle cx cy x y", "drag a circle from its centre", (*Runner).cmdCircle},
		"undo":      {arity{0, 0, false}, "undo", "step back in history", (*Runner).cmdUndo},
		"redo":      {arity{0, 0, false}, "redo", "step forward in history", (*Runner).cmdRedo},
		"clear":     {arity{0, 0, false}, "clear", "blank the canvas", (*Runner).cmdClear},
		"resize":    {arity{2, 2, true}, "resize w h", "resize the canvas", (*Runner).cmdResize},
		"export":    {arity{0, 1, false}, "export [dir]", "write a PNG", (*Runner).cmdExport},
		"state":     {arity{0, 0, false}, "state", "print history state", (*Runner).cmdState},
		"help":      {arity{0, 0, false}, "help", "list commands", (*Runner).cmdHelp},
		"quit":      {arity{0, 0, false}, "quit", "stop", func(*Runner, []string) error { return ErrQuit }},
	}
}

// Commands returns the usage line and description of every command,
// sorted by name.
func Commands() [][2]string {
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([][2]string, 0, len(names))
	for _, n := range names {
		out = append(out, [2]string{commands[n].usage, commands[n].help})
	}
	return out
}

func parsePoints(args []string) ([]image.Point, error) {
	pts := make([]image.Point, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		x, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i])
		}
		y, err := strconv.Atoi(args[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", args[i+1])
		}
		pts = append(pts, image.Pt(x, y))
	}
	return pts, nil
}

func (r *Runner) cmdTool(args []string) error {
	t, err := tool.ParseTool(args[0])
	if err != nil {
		return err
	}
	r.cfg.Tool = t
	return nil
}

func (r *Runner) cmdColor(args []string) error {
	if _, err := tool.ParseColor(args[0]); err != nil {
		return err
	}
	r.cfg.Color = args[0]
	return nil
}

func (r *Runner) cmdWidth(args []string) error {
	w, err := strconv.Atoi(args[0])
	if err != nil || w < tool.MinWidth || w > tool.MaxWidth {
		return fmt.Errorf("width must be between %d and %d", tool.MinWidth, tool.MaxWidth)
	}
	r.cfg.Width = w
	return nil
}

func (r *Runner) cmdDown(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	cfg := r.cfg
	r.board.PointerDown(pts[0], &cfg)
	return nil
}

func (r *Runner) cmdMove(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	r.board.PointerMove(pts[0])
	return nil
}

func (r *Runner) cmdUp([]string) error {
	r.board.PointerUp()
	return nil
}

func (r *Runner) cmdLeave([]string) error {
	r.board.PointerLeave()
	return nil
}

func (r *Runner) cmdTouch(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	cfg := r.cfg
	r.board.TouchStart(pts, &cfg)
	return nil
}

func (r *Runner) cmdTouchMove(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	r.board.TouchMove(pts)
	return nil
}

func (r *Runner) cmdTouchEnd([]string) error {
	r.board.TouchEnd()
	return nil
}

// drag performs a full gesture through pts with the tool forced to t.
func (r *Runner) drag(t tool.Tool, pts []image.Point) {
	cfg := r.cfg
	cfg.Tool = t
	r.board.PointerDown(pts[0], &cfg)
	for _, p := range pts[1:] {
		r.board.PointerMove(p)
	}
	r.board.PointerUp()
}

func (r *Runner) cmdStroke(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	t := r.cfg.Tool
	if !t.Freehand() {
		t = tool.Pencil
	}
	r.drag(t, pts)
	return nil
}

func (r *Runner) cmdRect(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	r.drag(tool.Rectangle, pts)
	return nil
}

func (r *Runner) cmdCircle(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	r.drag(tool.Circle, pts)
	return nil
}

func (r *Runner) cmdUndo([]string) error {
	r.board.Undo()
	return nil
}

func (r *Runner) cmdRedo([]string) error {
	r.board.Redo()
	return nil
}

func (r *Runner) cmdClear([]string) error {
	r.board.Clear()
	return nil
}

func (r *Runner) cmdResize(args []string) error {
	pts, err := parsePoints(args)
	if err != nil {
		return err
	}
	if pts[0].X < 1 || pts[0].Y < 1 {
		return fmt.Errorf("resize: size must be positive")
	}
	r.board.Resize(pts[0])
	return nil
}

func (r *Runner) cmdExport(args []string) error {
	dir := r.exportDir
	if len(args) == 1 {
		dir = args[0]
	}
	path, err := r.board.Export(dir)
	if err != nil {
		return err
	}
	if path != "" {
		r.exports = append(r.exports, path)
		fmt.Fprintf(r.out, "exported %s\n", path)
	}
	return nil
}

func (r *Runner) cmdState([]string) error {
	fmt.Fprintf(r.out, "cursor=%d snapshots=%d undo=%t redo=%t tool=%s color=%s width=%d\n",
		r.board.Cursor(), r.board.HistoryLen(), r.board.CanUndo(), r.board.CanRedo(),
		r.cfg.Tool, r.cfg.Color, r.cfg.Width)
	return nil
}

func (r *Runner) cmdHelp([]string) error {
	for _, c := range Commands() {
		fmt.Fprintf(r.out, "  %-24s %s\n", c[0], c[1])
	}
	return nil
}
