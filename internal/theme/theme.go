// Package theme holds the colours used to paint the sketchpad window
// chrome: toolbar, buttons, palette swatches and the backdrop around the
// drawing page.
package theme

import (
	"image/color"
	"reflect"
)

// Theme defines the colour palette for the application UI.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // backdrop behind the page
	Grid       color.RGBA // dot grid drawn on the backdrop
	Foreground color.RGBA // status and label text

	// Toolbar
	ToolbarBackground color.RGBA
	ToolbarBorder     color.RGBA

	// Buttons
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // selected tool
	ButtonText             color.RGBA
	ButtonTextActive       color.RGBA
	ButtonTextDisabled     color.RGBA

	// Palette and width slider
	SwatchBorder   color.RGBA
	SwatchSelected color.RGBA
	SliderTrack    color.RGBA
	SliderKnob     color.RGBA

	// Page
	Page       color.RGBA // paper under the transparent canvas
	PageShadow color.RGBA

	// Messages
	ToastBackground color.RGBA
	ToastText       color.RGBA
	ToastError      color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{0xe9, 0xec, 0xef, 0xff},
		Grid:                   color.RGBA{0xce, 0xd4, 0xda, 0xff},
		Foreground:             color.RGBA{0x1e, 0x1e, 0x1e, 0xff},
		ToolbarBackground:      color.RGBA{0xff, 0xff, 0xff, 0xff},
		ToolbarBorder:          color.RGBA{0xde, 0xe2, 0xe6, 0xff},
		ButtonBackground:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		ButtonBackgroundHover:  color.RGBA{0xf1, 0xf3, 0xf5, 0xff},
		ButtonBackgroundActive: color.RGBA{0xe7, 0xf5, 0xff, 0xff},
		ButtonText:             color.RGBA{0x34, 0x3a, 0x40, 0xff},
		ButtonTextActive:       color.RGBA{0x19, 0x71, 0xc2, 0xff},
		ButtonTextDisabled:     color.RGBA{0xad, 0xb5, 0xbd, 0xff},
		SwatchBorder:           color.RGBA{0xde, 0xe2, 0xe6, 0xff},
		SwatchSelected:         color.RGBA{0x1e, 0x1e, 0x1e, 0xff},
		SliderTrack:            color.RGBA{0xde, 0xe2, 0xe6, 0xff},
		SliderKnob:             color.RGBA{0x19, 0x71, 0xc2, 0xff},
		Page:                   color.RGBA{0xf8, 0xf9, 0xfa, 0xff},
		PageShadow:             color.RGBA{0, 0, 0, 0x40},
		ToastBackground:        color.RGBA{0x1e, 0x1e, 0x1e, 0xe6},
		ToastText:              color.RGBA{0xff, 0xff, 0xff, 0xff},
		ToastError:             color.RGBA{0xe0, 0x31, 0x31, 0xf0},
	}
}

// Field is one named colour of a theme.
type Field struct {
	Key   string
	Color color.RGBA
}

var rgbaType = reflect.TypeOf(color.RGBA{})

// Fields lists the colours of t in declaration order.
func Fields(t *Theme) []Field {
	if t == nil {
		return nil
	}
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	out := make([]Field, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		out = append(out, Field{Key: typ.Field(i).Name, Color: val.Field(i).Interface().(color.RGBA)})
	}
	return out
}
