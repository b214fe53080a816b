package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/config"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	exportAlert bool
	clearAlert  bool
	copyAlert   bool
	themeName   string
	exportDir   string
	activeTheme *theme.Theme

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	cfg.ApplyEnv(os.Getenv)
	return newRootWith(cfg, notify.New(notify.LoadPreferences()), os.Stdin, os.Stdout, os.Stderr)
}

func newRootWith(cfg *config.Config, n *notify.Notifier, stdin io.Reader, stdout, stderr io.Writer) *root {
	r := &root{
		fs:       flag.NewFlagSet("sketchpad", flag.ContinueOnError),
		program:  "sketchpad",
		notifier: n,
		config:   cfg,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
	r.fs.SetOutput(stderr)
	r.fs.BoolVar(&r.exportAlert, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a drawing")
	r.fs.BoolVar(&r.clearAlert, "notify-clear", cfg.Notify.Clear, "show a desktop notification after clearing the canvas")
	r.fs.BoolVar(&r.copyAlert, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: flag > environment > config file > default. The
	// environment was already folded into cfg by ApplyEnv.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme for the window ("+strings.Join(theme.Embedded(), ", ")+" or a file)")
	r.fs.StringVar(&r.exportDir, "export-dir", "", "directory exports are written to")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventExport, r.exportAlert)
	r.notifier.Enable(notify.EventClear, r.clearAlert)
	r.notifier.Enable(notify.EventCopy, r.copyAlert)

	if r.exportDir == "" {
		r.exportDir = r.config.ExportDir
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	loader.Custom = r.config.Themes
	t, err := loader.Load(name)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load theme %q: %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

// subcommand returns a copy of r whose program name includes name.
func (r *root) subcommand(name string) *root {
	c := *r
	c.program = strings.TrimSpace(r.program + " " + name)
	return &c
}

// toolConfig returns the starting tool settings from configuration.
func (r *root) toolConfig() tool.Config {
	return r.config.ToolConfig()
}

// boardOptions translates configuration into drawing engine options.
func (r *root) boardOptions() []board.Option {
	opts := []board.Option{
		board.WithAppName(r.config.AppName),
		board.WithNotifier(r.notifier),
	}
	if c, ok := r.colorSetting("background", r.config.Background); ok {
		opts = append(opts, board.WithBackground(c))
	}
	if c, ok := r.colorSetting("export_background", r.config.ExportBackground); ok {
		opts = append(opts, board.WithExportBackground(c))
	}
	return opts
}

func (r *root) colorSetting(key, value string) (color.RGBA, bool) {
	if value == "" {
		return color.RGBA{}, false
	}
	c, err := tool.ParseColor(value)
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: %s: %v\n", key, err)
		return color.RGBA{}, false
	}
	return c, true
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
