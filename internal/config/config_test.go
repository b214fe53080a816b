package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/tool"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = "/tmp/my drawings"
app_name = excalidraw
background = #f8f9fa
tool = rect
color = Red
width = 42

[notify]
export = false
clear = true
copy = true

[theme.my_custom_theme]
Background = #111111
Page: #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.ExportDir != "/tmp/my drawings" {
		t.Errorf("Expected export_dir '/tmp/my drawings', got '%s'", cfg.ExportDir)
	}
	if cfg.AppName != "excalidraw" {
		t.Errorf("Expected app_name 'excalidraw', got '%s'", cfg.AppName)
	}
	if cfg.Width != tool.MaxWidth {
		t.Errorf("Expected width clamped to %d, got %d", tool.MaxWidth, cfg.Width)
	}
	if cfg.Notify.Export || !cfg.Notify.Clear || !cfg.Notify.Copy {
		t.Errorf("Unexpected notify settings: %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}

	tc := cfg.ToolConfig()
	if tc.Tool != tool.Rectangle || tc.Color != "Red" || tc.Width != tool.MaxWidth {
		t.Errorf("Unexpected tool config: %+v", tc)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"tool = lasso\n",
		"color = notacolor\n",
		"width = wide\n",
		"[notify]\nexport = maybe\n",
		"[theme.x]\nPage = #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", input)
		}
	}
}

func TestDefaults(t *testing.T) {
	cfg := New()
	if !cfg.Notify.Export {
		t.Error("export notifications should default on")
	}
	if got := cfg.ToolConfig(); got != tool.DefaultConfig() {
		t.Errorf("ToolConfig() = %+v, want defaults", got)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := New()
	cfg.Theme = "light"
	env := map[string]string{"SKETCHPAD_THEME": "dark", "SKETCHPAD_EXPORT_DIR": "/srv/out"}
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.Theme != "dark" || cfg.ExportDir != "/srv/out" {
		t.Errorf("ApplyEnv: %+v", cfg)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/drawings
color = #ff922b
width = 5

[notify]
export = true
clear = true
copy = false

[theme.custom]
Name = custom
Background = #000000
ToastBackground = #00000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("ExportDir mismatch: %q vs %q", cfg.ExportDir, cfg2.ExportDir)
	}
	if cfg.Color != cfg2.Color || cfg.Width != cfg2.Width {
		t.Errorf("Tool mismatch: %q/%d vs %q/%d", cfg.Color, cfg.Width, cfg2.Color, cfg2.Width)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")
	cfg := New()
	cfg.Theme = "dark"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	l := NewLoader("v1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath() = %q, want %q", got, path)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "dark" {
		t.Errorf("loaded theme %q", loaded.Theme)
	}
}

func TestLoaderMissingOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("v1.0.0", filepath.Join(t.TempDir(), "nope.rc"))
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("GetConfigPath() = %q, want empty", got)
	}
	cfg, err := l.Load()
	if err != nil || cfg == nil {
		t.Fatalf("Load() = %v, %v", cfg, err)
	}
}

func TestLoaderDevRC(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".sketchpadrc"), []byte("theme = dev\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := NewLoader("v1", "").GetConfigPath(); got != "" {
		t.Errorf("release build picked %q", got)
	}
	cfg, err := NewLoader("dev", "").Load()
	if err != nil || cfg.Theme != "dev" {
		t.Fatalf("dev Load() = %+v, %v", cfg, err)
	}
}
