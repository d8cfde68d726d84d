package theme

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/framer/internal/platform"
)

// Mode is the persisted appearance preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// PrefKey is the key the preference is stored under.
const PrefKey = "theme"

// ParseMode validates a preference value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLight, ModeDark, ModeSystem:
		return m, nil
	}
	return "", fmt.Errorf("theme must be light, dark or system, got %q", s)
}

// Next cycles light → dark → system → light.
func (m Mode) Next() Mode {
	switch m {
	case ModeLight:
		return ModeDark
	case ModeDark:
		return ModeSystem
	default:
		return ModeLight
	}
}

// PrefsPath returns $XDG_CONFIG_HOME/framer/prefs.
func PrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "framer", "prefs"), nil
}

// ReadPreference returns the stored mode. A missing file or key yields
// ModeSystem with no error.
func ReadPreference(path string) (Mode, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ModeSystem, nil
	}
	if err != nil {
		return ModeSystem, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		k, v, ok := strings.Cut(sc.Text(), "=")
		if !ok || strings.TrimSpace(k) != PrefKey {
			continue
		}
		return ParseMode(v)
	}
	if err := sc.Err(); err != nil {
		return ModeSystem, err
	}
	return ModeSystem, nil
}

// WritePreference stores m, keeping any other keys in the file.
func WritePreference(path string, m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	var lines []string
	if data, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
			if k, _, ok := strings.Cut(line, "="); ok && strings.TrimSpace(k) == PrefKey {
				continue
			}
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	lines = append(lines, PrefKey+"="+string(m))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// systemScheme is swapped out by tests.
var systemScheme = platform.PreferredColorScheme

// Effective maps ModeSystem onto light or dark by asking the desktop.
// Failures fall back to light.
func Effective(ctx context.Context, m Mode) Mode {
	if m != ModeSystem {
		return m
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	scheme, err := systemScheme(ctx)
	if err != nil {
		log.Printf("theme: system colour scheme: %v", err)
		return ModeLight
	}
	if scheme == platform.SchemeDark {
		return ModeDark
	}
	return ModeLight
}
