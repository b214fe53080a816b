package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/theme"
	"github.com/example/sketchpad/internal/tool"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = theme.Set(current, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			where := "root section"
			if section != "" {
				where = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d: error in %s: %w", lineNo, where, err)
		}
	}

	return cfg, scanner.Err()
}

// splitKeyValue accepts both "key = value" and "Key: value".
func splitKeyValue(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		if uq, err := strconv.Unquote(value); err == nil {
			value = uq
		} else {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "app_name":
		cfg.AppName = value
	case "export_dir":
		cfg.ExportDir = value
	case "background":
		if _, err := tool.ParseColor(value); err != nil {
			return err
		}
		cfg.Background = value
	case "export_background":
		if _, err := tool.ParseColor(value); err != nil {
			return err
		}
		cfg.ExportBackground = value
	case "tool":
		if _, err := tool.ParseTool(value); err != nil {
			return err
		}
		cfg.Tool = value
	case "color":
		if _, err := tool.ParseColor(value); err != nil {
			return err
		}
		cfg.Color = value
	case "width":
		w, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid width %q", value)
		}
		cfg.Width = tool.ClampWidth(w)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "export":
		n.Export = b
	case "clear":
		n.Clear = b
	case "copy":
		n.Copy = b
	}
	return nil
}
