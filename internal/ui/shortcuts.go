package ui

import (
	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers a command.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with a command.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

const modMask = key.ModControl | key.ModShift

func shortcutOf(e key.Event) KeyShortcut {
	return KeyShortcut{Code: e.Code, Modifiers: e.Modifiers & modMask}
}

func plain(c key.Code) KeyShortcut { return KeyShortcut{Code: c} }

func ctrl(c key.Code) KeyShortcut { return KeyShortcut{Code: c, Modifiers: key.ModControl} }

func ctrlShift(c key.Code) KeyShortcut {
	return KeyShortcut{Code: c, Modifiers: key.ModControl | key.ModShift}
}

var paletteKeys = []key.Code{key.Code1, key.Code2, key.Code3, key.Code4, key.Code5, key.Code6, key.Code7, key.Code8}
