// Package notify posts desktop notifications after exports.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/framer/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a picture is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a picture is placed on the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and per-event message templates. Each
// template receives one %s.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in messages.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Profile picture",
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to the clipboard",
		},
	}
}

// LoadPreferences applies FRAMER_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("FRAMER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, ev := range map[string]Event{
		"FRAMER_NOTIFY_SAVE_TEXT": EventSave,
		"FRAMER_NOTIFY_COPY_TEXT": EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// send is swapped out by tests.
var send = platform.Notify

// Notifier sends notifications for the events that are enabled. A nil
// Notifier is silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	tpl := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		tpl[k] = v
	}
	return &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: tpl},
		enabled: make(map[Event]bool),
	}
}

// Enable turns an event on or off.
func (n *Notifier) Enable(ev Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[ev] = on
}

// Enabled reports whether ev will produce a notification.
func (n *Notifier) Enabled(ev Event) bool {
	return n != nil && n.enabled[ev]
}

// Save announces a written file, showing it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "picture"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) dispatch(ev Event, detail string, opts platform.Options) {
	tpl := strings.TrimSpace(n.prefs.Templates[ev])
	if tpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", ev, err)
	}
}
