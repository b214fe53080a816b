package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/script"
	"github.com/example/sketchpad/internal/surface"
)

var writeClipboardFn = clipboard.WriteImage

// drawCmd replays drawing commands on a fresh canvas without a window.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	scriptPath  string
	output      string
	stdoutPNG   bool
	toClipboard bool
	width       int
	height      int
	commands    []string
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	r = r.subcommand("draw")
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.scriptPath, "script", "", "file of drawing commands, one per line (- for stdin)")
	fs.StringVar(&d.output, "output", "", "write the PNG to this file")
	fs.BoolVar(&d.stdoutPNG, "stdout", false, "write the PNG to stdout")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.IntVar(&d.width, "width", 800, "canvas width in pixels")
	fs.IntVar(&d.height, "height", 600, "canvas height in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.width <= 0 || d.height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", d.width, d.height)
	}
	if d.output != "" && d.stdoutPNG {
		return nil, fmt.Errorf("-output and -stdout cannot be used together")
	}
	d.commands = fs.Args()
	if len(d.commands) == 0 && d.scriptPath == "" {
		return nil, &UsageError{of: d}
	}
	return d, nil
}

func (d *drawCmd) source() (io.Reader, func() error, error) {
	inline := strings.NewReader(strings.Join(d.commands, "\n") + "\n")
	switch d.scriptPath {
	case "":
		return inline, func() error { return nil }, nil
	case "-":
		return io.MultiReader(d.stdin, strings.NewReader("\n"), inline), func() error { return nil }, nil
	}
	f, err := os.Open(d.scriptPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open script: %w", err)
	}
	return io.MultiReader(f, strings.NewReader("\n"), inline), f.Close, nil
}

func (d *drawCmd) Run() error {
	b := board.New(d.boardOptions()...)
	teardown := b.Init(surface.New(image.Pt(d.width, d.height), image.Point{}))
	defer teardown()

	runner := script.New(b,
		script.WithOutput(d.stderr),
		script.WithToolConfig(d.toolConfig()),
		script.WithExportDir(d.exportDir),
	)
	src, closeSrc, err := d.source()
	if err != nil {
		return err
	}
	runErr := runner.Run(src)
	if err := closeSrc(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}

	if d.toClipboard {
		if err := writeClipboardFn(b.Flatten()); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		d.notifier.Copied("")
		fmt.Fprintln(d.stderr, "copied drawing to clipboard")
	}

	switch {
	case d.stdoutPNG:
		return b.EncodePNG(d.stdout)
	case d.output != "":
		return d.writeOutput(b)
	case d.toClipboard || len(runner.Exports()) > 0:
		return nil
	}
	path, err := b.Export(d.exportDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.stdout, path)
	return nil
}

func (d *drawCmd) writeOutput(b *board.Board) error {
	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(d.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", d.output, err)
	}
	fmt.Fprintf(d.stderr, "saved %s\n", d.output)
	return nil
}
