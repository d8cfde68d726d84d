package ui

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Either Rune or Code identifies the key.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// relevantMods are the modifiers compared when matching. Shift is left out
// so that shifted runes such as '+' match on any layout.
const relevantMods = key.ModControl | key.ModAlt | key.ModMeta

// keymap binds shortcuts to named actions.
type keymap struct {
	byRune  map[KeyShortcut]string
	byCode  map[KeyShortcut]string
	actions map[string]func()
}

func newKeymap() *keymap {
	return &keymap{
		byRune:  map[KeyShortcut]string{},
		byCode:  map[KeyShortcut]string{},
		actions: map[string]func(){},
	}
}

func (k *keymap) register(name string, keys KeyboardShortcuts, fn func()) {
	k.actions[name] = fn
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		mods := sc.Modifiers & relevantMods
		if sc.Rune != 0 {
			k.byRune[KeyShortcut{Rune: unicode.ToLower(sc.Rune), Modifiers: mods}] = name
		}
		if sc.Code != key.CodeUnknown {
			k.byCode[KeyShortcut{Code: sc.Code, Modifiers: mods}] = name
		}
	}
}

// lookup returns the action bound to e. Runes are tried before key codes;
// with Control held many drivers report a control character instead of the
// letter, so codes are the fallback.
func (k *keymap) lookup(e key.Event) (string, bool) {
	mods := e.Modifiers & relevantMods
	if e.Rune > 0 {
		if name, ok := k.byRune[KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}]; ok {
			return name, true
		}
	}
	name, ok := k.byCode[KeyShortcut{Code: e.Code, Modifiers: mods}]
	return name, ok
}

// trigger runs the named action.
func (k *keymap) trigger(name string) bool {
	fn, ok := k.actions[name]
	if ok && fn != nil {
		fn()
	}
	return ok
}

// helpLines is the text of the H help panel.
var helpLines = []string{
	"Drag:pan", "Wheel:zoom", "P/O/Tab:layer", "0-9:overlay", "+/-:zoom",
	"Arrows:nudge", "R:reset", "V:preview", "T:theme", "^S:save", "^C:copy", "^V:paste", "Q:quit",
}
