// Package tool describes the drawing configuration chosen by the user: the
// active tool, the ink colour and the stroke width.
package tool

import (
	"fmt"
	"strings"
)

// Tool identifies one of the drawing tools.
type Tool int

const (
	Select Tool = iota
	Pencil
	Rectangle
	Circle
	Eraser
)

var toolNames = [...]string{
	Select:    "select",
	Pencil:    "pencil",
	Rectangle: "rectangle",
	Circle:    "circle",
	Eraser:    "eraser",
}

var toolLabels = [...]string{
	Select:    "Select & Move",
	Pencil:    "Pencil",
	Rectangle: "Rectangle",
	Circle:    "Circle",
	Eraser:    "Eraser",
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{Select, Pencil, Rectangle, Circle, Eraser}
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("tool(%d)", int(t))
	}
	return toolNames[t]
}

// Label is the human readable toolbar label.
func (t Tool) Label() string {
	if t < 0 || int(t) >= len(toolLabels) {
		return t.String()
	}
	return toolLabels[t]
}

// Freehand reports whether the tool paints along the pointer path.
func (t Tool) Freehand() bool { return t == Pencil || t == Eraser }

// Shape reports whether the tool drags out a previewed outline.
func (t Tool) Shape() bool { return t == Rectangle || t == Circle }

// ParseTool maps a tool name to a Tool. A few short aliases are accepted.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "select", "move", "hand":
		return Select, nil
	case "pencil", "pen", "draw":
		return Pencil, nil
	case "rectangle", "rect":
		return Rectangle, nil
	case "circle":
		return Circle, nil
	case "eraser", "erase":
		return Eraser, nil
	}
	return Select, fmt.Errorf("unknown tool %q", s)
}

const (
	// MinWidth and MaxWidth bound the width slider. The engine itself
	// accepts any positive width.
	MinWidth = 1
	MaxWidth = 20

	DefaultTool  = Pencil
	DefaultColor = "#1e1e1e"
	DefaultWidth = 2
)

// Config is the per-gesture drawing configuration. It is owned by the
// caller; the drawing engine only reads it.
type Config struct {
	Tool  Tool
	Color string
	Width int
}

// DefaultConfig returns the configuration a fresh session starts with.
func DefaultConfig() Config {
	return Config{Tool: DefaultTool, Color: DefaultColor, Width: DefaultWidth}
}

// StrokeWidth returns Width, treating anything below 1 as 1.
func (c *Config) StrokeWidth() int {
	if c == nil || c.Width < 1 {
		return 1
	}
	return c.Width
}

// ClampWidth limits w to the slider range.
func ClampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}
