// Package notify turns drawing outcomes such as exports and clears into
// desktop notifications.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchpad/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventExport fires after a drawing was written to disk.
	EventExport Event = "export"
	// EventExportFailed fires when writing an export failed. It cannot be
	// disabled.
	EventExportFailed Event = "export-failed"
	// EventClear fires when the canvas was cleared.
	EventClear Event = "clear"
	// EventCopy fires when the drawing was copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every known event in display order.
func Events() []Event {
	return []Event{EventExport, EventExportFailed, EventClear, EventCopy}
}

// EventPreference describes formatting for a notification event. A
// template containing %s receives the event detail.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Sketchpad",
		Events: map[Event]EventPreference{
			EventExport:       {Template: "Drawing exported successfully: %s"},
			EventExportFailed: {Template: "Failed to export drawing: %s"},
			EventClear:        {Template: "Canvas cleared"},
			EventCopy:         {Template: "Copied %s to clipboard"},
		},
	}
}

var envTemplates = map[string]Event{
	"SKETCHPAD_NOTIFY_EXPORT_TEXT":        EventExport,
	"SKETCHPAD_NOTIFY_EXPORT_FAILED_TEXT": EventExportFailed,
	"SKETCHPAD_NOTIFY_CLEAR_TEXT":         EventClear,
	"SKETCHPAD_NOTIFY_COPY_TEXT":          EventCopy,
}

// LoadPreferences returns the defaults with SKETCHPAD_NOTIFY_* overrides
// from the environment applied.
func LoadPreferences() Preferences {
	return preferencesFrom(os.Getenv)
}

func preferencesFrom(getenv func(string) string) Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(getenv("SKETCHPAD_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range envTemplates {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

// Notifier sends OS-level notifications based on the configured preferences.
// A nil Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    func(title, body string, opts platform.Options) error
}

// New creates a Notifier using prefs. Only export failures are enabled
// until Enable is called.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{
		prefs:   cloned,
		enabled: map[Event]bool{EventExportFailed: true},
		send:    platform.Notify,
	}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil || event == EventExportFailed {
		return
	}
	n.enabled[event] = enabled
}

// Exported reports a written export, using the absolute path when it can be
// resolved. The file itself doubles as the notification icon.
func (n *Notifier) Exported(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: n.prefs.Title}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// ExportFailed reports a failed export.
func (n *Notifier) ExportFailed(err error) {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	n.dispatch(EventExportFailed, detail, platform.Options{Urgency: platform.UrgencyCritical})
}

// Cleared reports that the canvas was wiped.
func (n *Notifier) Cleared() {
	n.dispatch(EventClear, "", platform.Options{Urgency: platform.UrgencyLow})
}

// Copied reports a clipboard copy.
func (n *Notifier) Copied(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	body := Format(n.prefs.Events[event].Template, detail)
	if body == "" {
		return
	}
	if opts.AppName == "" {
		opts.AppName = n.prefs.Title
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// Format renders template with detail. Templates without a %s verb are
// used verbatim.
func Format(template, detail string) string {
	template = strings.TrimSpace(template)
	if template == "" {
		return ""
	}
	if !strings.Contains(template, "%s") {
		return template
	}
	return strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
}
