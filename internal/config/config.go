// Package config reads and writes the sketchpad RC file: root keys for
// drawing defaults, a [notify] section and optional [theme.<name>]
// sections.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Notify holds notification settings. Export failures are always reported
// and have no switch.
type Notify struct {
	Export bool
	Clear  bool
	Copy   bool
}

// Config holds the application configuration. Empty strings and a zero
// Width mean "use the built-in default".
type Config struct {
	Theme            string
	AppName          string
	ExportDir        string
	Background       string
	ExportBackground string
	Tool             string
	Color            string
	Width            int
	Notify           Notify
	Themes           map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Notify: Notify{Export: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides fields from SKETCHPAD_THEME and SKETCHPAD_EXPORT_DIR.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("SKETCHPAD_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(getenv("SKETCHPAD_EXPORT_DIR")); v != "" {
		c.ExportDir = v
	}
}

// ToolConfig returns the starting tool settings, falling back to the
// defaults for anything unset.
func (c *Config) ToolConfig() tool.Config {
	cfg := tool.DefaultConfig()
	if t, err := tool.ParseTool(c.Tool); err == nil {
		cfg.Tool = t
	}
	if c.Color != "" {
		cfg.Color = c.Color
	}
	if c.Width > 0 {
		cfg.Width = tool.ClampWidth(c.Width)
	}
	return cfg
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ key, value string }{
		{"theme", c.Theme},
		{"app_name", c.AppName},
		{"export_dir", c.ExportDir},
		{"background", c.Background},
		{"export_background", c.ExportBackground},
		{"tool", c.Tool},
		{"color", c.Color},
	}
	for _, kv := range root {
		if kv.value != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.key, quote(kv.value))
		}
	}
	if c.Width > 0 {
		fmt.Fprintf(&sb, "width = %d\n", c.Width)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "clear = %v\n", c.Notify.Clear)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
	}
	return sb.String()
}

func quote(v string) string {
	if strings.ContainsAny(v, " \t\"") {
		return strconv.Quote(v)
	}
	return v
}

// WriteTo writes the RC form of c to w.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

// Save writes c to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
