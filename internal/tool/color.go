package tool

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// PaletteColor is a named swatch.
type PaletteColor struct {
	Name  string
	Value string
	Color color.RGBA
}

var palette = []PaletteColor{
	{Name: "Black", Value: "#1e1e1e", Color: color.RGBA{0x1e, 0x1e, 0x1e, 0xff}},
	{Name: "Gray", Value: "#8f8f8f", Color: color.RGBA{0x8f, 0x8f, 0x8f, 0xff}},
	{Name: "Red", Value: "#e03131", Color: color.RGBA{0xe0, 0x31, 0x31, 0xff}},
	{Name: "Orange", Value: "#ff922b", Color: color.RGBA{0xff, 0x92, 0x2b, 0xff}},
	{Name: "Yellow", Value: "#ffd43b", Color: color.RGBA{0xff, 0xd4, 0x3b, 0xff}},
	{Name: "Green", Value: "#40c057", Color: color.RGBA{0x40, 0xc0, 0x57, 0xff}},
	{Name: "Blue", Value: "#4dabf7", Color: color.RGBA{0x4d, 0xab, 0xf7, 0xff}},
	{Name: "Purple", Value: "#ae3ec9", Color: color.RGBA{0xae, 0x3e, 0xc9, 0xff}},
}

// Palette returns a copy of the swatches offered by the colour picker.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// ParseColor understands #rgb, #rrggbb and #rrggbbaa hex values, the
// palette names and the SVG colour keywords.
func ParseColor(s string) (color.RGBA, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	if value == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if strings.HasPrefix(value, "#") {
		return parseHex(value)
	}
	for _, entry := range palette {
		if strings.EqualFold(entry.Name, value) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[value]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(value string) (color.RGBA, error) {
	alpha := uint8(0xff)
	hex := value
	if len(value) == 9 {
		var a uint8
		if _, err := fmt.Sscanf(value[7:], "%02x", &a); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", value)
		}
		alpha = a
		hex = value[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
	}
	r, g, b := c.RGB255()
	// Premultiply so the value is a valid color.RGBA.
	if alpha != 0xff {
		r = premul(r, alpha)
		g = premul(g, alpha)
		b = premul(b, alpha)
	}
	return color.RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func premul(v, a uint8) uint8 {
	return uint8((uint32(v)*uint32(a) + 0x7f) / 0xff)
}

func unpremul(v, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	return uint8((uint32(v)*0xff + uint32(a)/2) / uint32(a))
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque. The
// result parses back to c with ParseColor.
func Hex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", unpremul(c.R, c.A), unpremul(c.G, c.A), unpremul(c.B, c.A), c.A)
}
