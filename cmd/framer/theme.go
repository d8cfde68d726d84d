package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/framer/internal/theme"
)

type themeCmd struct {
	list      bool
	show      string
	prefsPath string
	*root
	fs *flag.FlagSet
}

func parseThemeCmd(args []string, r *root) (*themeCmd, error) {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	cmd := &themeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.list, "list", false, "list the available themes")
	fs.StringVar(&cmd.show, "show", "", "print the colours of a theme")
	fs.StringVar(&cmd.prefsPath, "prefs", "", "preference file (default $XDG_CONFIG_HOME/framer/prefs)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, &UsageError{of: cmd}
	}
	if fs.NArg() == 1 {
		if _, err := theme.ParseMode(fs.Arg(0)); err != nil {
			return nil, usageErrorf(cmd, "%v", err)
		}
	}
	return cmd, nil
}

func (c *themeCmd) path() (string, error) {
	if c.prefsPath != "" {
		return c.prefsPath, nil
	}
	return theme.PrefsPath()
}

func (c *themeCmd) Run() error {
	out := c.root.out()
	switch {
	case c.list:
		for _, name := range c.root.themeLoader().Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	case c.show != "":
		th, err := c.root.themeLoader().Load(c.show)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Name: %s\n", th.Name)
		for _, f := range theme.Fields(th) {
			fmt.Fprintf(out, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		return nil
	}

	path, err := c.path()
	if err != nil {
		return fmt.Errorf("preferences: %w", err)
	}
	if c.fs.NArg() == 1 {
		m, _ := theme.ParseMode(c.fs.Arg(0))
		if err := theme.WritePreference(path, m); err != nil {
			return fmt.Errorf("save theme preference: %w", err)
		}
		fmt.Fprintf(c.root.errOut(), "theme preference set to %s\n", m)
		return nil
	}
	m, err := theme.ReadPreference(path)
	if err != nil {
		return fmt.Errorf("read theme preference: %w", err)
	}
	if m == theme.ModeSystem {
		fmt.Fprintf(out, "%s (%s)\n", m, theme.Effective(context.Background(), m))
		return nil
	}
	fmt.Fprintln(out, m)
	return nil
}

func (c *themeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
