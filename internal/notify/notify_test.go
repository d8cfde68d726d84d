package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/framer/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return err
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Save("x.png")
	n.Copy("")
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := capture(t, nil)
	p := filepath.Join(t.TempDir(), "profile-picture.png")
	if err := os.WriteFile(p, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(p)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Saved "+p || s.opts.IconPath != p || s.title != "Profile picture" {
		t.Fatalf("notification = %+v", s)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	got := capture(t, errors.New("no bus"))
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied picture to the clipboard" {
		t.Fatalf("sent %v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("FRAMER_NOTIFY_TITLE", "Framer")
	t.Setenv("FRAMER_NOTIFY_SAVE_TEXT", "Wrote %s")
	p := LoadPreferences()
	if p.Title != "Framer" || p.Templates[EventSave] != "Wrote %s" {
		t.Fatalf("prefs = %+v", p)
	}
	if p.Templates[EventCopy] != DefaultPreferences().Templates[EventCopy] {
		t.Fatal("copy template should keep its default")
	}
}
