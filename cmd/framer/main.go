package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/framer/internal/config"
	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/export"
	"github.com/example/framer/internal/notify"
	"github.com/example/framer/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs         *flag.FlagSet
	program    string
	notifier   *notify.Notifier
	config     *config.Config
	saveAlerts bool
	copyAlerts bool
	themeName  string
	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("framer", flag.ExitOnError),
		program:  "framer",
		notifier: notify.New(prefs),
		config:   cfg,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a picture")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default. Env is already folded into
	// the config by the loader.
	r.fs.StringVar(&r.themeName, "theme", "", "colour theme for the editor window (light, dark, contrast or a .theme file)")
	r.fs.StringVar(&r.configPath, "config", "", "read configuration from this file")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.configPath != "" {
		cfg, err := config.NewLoader(version, r.configPath).Load()
		if err != nil {
			return fmt.Errorf("load config %s: %w", r.configPath, err)
		}
		r.config = cfg
		r.configPath = ""
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "compose":
		cmd, err = parseComposeCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "templates":
		cmd, err = parseTemplatesCmd(subArgs, r)
	case "theme":
		cmd, err = parseThemeCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *root) errOut() io.Writer {
	if r == nil || r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

// canvasSize returns flag, then config, then the default.
func (r *root) canvasSize(flagVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	if n := r.cfg().CanvasSize; n > 0 {
		return n
	}
	return editor.DefaultCanvasSize
}

// background parses a colour flag, falling back to the config value.
func (r *root) background(flagVal string) (color.Color, error) {
	c := *r.cfg()
	if strings.TrimSpace(flagVal) != "" {
		c.Background = flagVal
	}
	return c.BackgroundColor()
}

// exporter targets output, or the configured save directory and name when
// output is empty.
func (r *root) exporter(output string) *export.Exporter {
	e := &export.Exporter{Dir: r.cfg().SaveDir, Name: r.cfg().ExportName}
	if output != "" {
		e.Dir = filepath.Dir(output)
		e.Name = filepath.Base(output)
	}
	if r != nil {
		e.Notifier = r.notifier
	}
	return e
}

// themeLoader includes the themes defined in the config file.
func (r *root) themeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Custom = r.cfg().Themes
	return l
}

// resolvedThemeName applies flag > env > config precedence.
func (r *root) resolvedThemeName() string {
	if r != nil && r.themeName != "" {
		return r.themeName
	}
	return r.cfg().Theme
}

func (r *root) warnf(format string, args ...any) {
	fmt.Fprintf(r.errOut(), "warning: "+format+"\n", args...)
}
