package main

import (
	"flag"
	"image"

	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/ui"
)

// openCmd shows the drawing window.
type openCmd struct {
	*root
	fs     *flag.FlagSet
	width  int
	height int
	title  string
}

func (o *openCmd) FlagSet() *flag.FlagSet {
	return o.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	r = r.subcommand("open")
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	o := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(o)
	fs.IntVar(&o.width, "width", ui.DefaultSize.X, "window width in pixels")
	fs.IntVar(&o.height, "height", ui.DefaultSize.Y, "window height in pixels")
	fs.StringVar(&o.title, "title", "", "window title (defaults to the app name)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: o}
	}
	return o, nil
}

func (o *openCmd) window() *ui.Window {
	title := o.title
	if title == "" {
		title = o.config.AppName
	}
	opts := []ui.Option{}
	if title != "" {
		opts = append(opts, ui.WithTitle(title))
	}
	return ui.New(append(opts,
		ui.WithSize(image.Pt(o.width, o.height)),
		ui.WithTheme(o.activeTheme),
		ui.WithBoard(o.boardOptions()...),
		ui.WithController(
			ui.WithToolConfig(o.toolConfig()),
			ui.WithExportDir(o.exportDir),
			ui.WithClipboard(clipboard.WriteImage),
			ui.WithNotifier(o.notifier),
		),
	)...)
}

func (o *openCmd) Run() error {
	o.window().Run()
	return nil
}
