package theme

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/example/sketchpad/internal/tool"
)

// Parse reads a theme definition from r. Each line is "Key: colour";
// blank lines and lines starting with # or // are skipped. Keys not
// present in the file keep their Default value.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || (strings.HasPrefix(line, "#") && !strings.Contains(line, ":")) {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if err := Set(t, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return t, scanner.Err()
}

// Set assigns a single key of t. Key matching is case-insensitive and
// unknown keys are ignored so newer theme files still load.
func Set(t *Theme, key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !strings.EqualFold(f.Name, key) || f.Type != rgbaType {
			continue
		}
		col, err := tool.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		val.Field(i).Set(reflect.ValueOf(col))
		return nil
	}
	return nil
}

// Write renders t in the format Parse reads.
func Write(w io.Writer, t *Theme) error {
	if _, err := fmt.Fprintf(w, "Name: %s\n", t.Name); err != nil {
		return err
	}
	for _, f := range Fields(t) {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Key, tool.Hex(f.Color)); err != nil {
			return err
		}
	}
	return nil
}
