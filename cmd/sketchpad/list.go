package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/sketchpad/internal/tool"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	r = r.subcommand("colors")
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	palette := tool.Palette()
	current := c.toolConfig().Color
	fmt.Fprintln(c.stdout, "available palette colors (* marks the configured color):")
	for idx, entry := range palette {
		marker := " "
		if strings.EqualFold(entry.Value, current) {
			marker = "*"
		}
		rgb := entry.Color
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", rgb.R, rgb.G, rgb.B)
		fmt.Fprintf(c.stdout, "%s %d: %-8s %s %s\n", marker, idx+1, entry.Name, entry.Value, block)
	}
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	r = r.subcommand("tools")
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	cmd := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (t *toolsCmd) Run() error {
	current := t.toolConfig()
	fmt.Fprintln(t.stdout, "available tools (* marks the configured tool):")
	for _, tl := range tool.Tools() {
		marker := " "
		if tl == current.Tool {
			marker = "*"
		}
		fmt.Fprintf(t.stdout, "%s %-10s %s\n", marker, tl, tl.Label())
	}
	fmt.Fprintf(t.stdout, "stroke width: %dpx (%d-%d)\n", current.Width, tool.MinWidth, tool.MaxWidth)
	return nil
}

func (t *toolsCmd) FlagSet() *flag.FlagSet {
	return t.fs
}
