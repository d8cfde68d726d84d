package main

import (
	"flag"
	"fmt"

	"github.com/example/framer/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "write to this file instead of the default location (save)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	case "path":
		return c.runPath()
	default:
		return usageErrorf(c, "unknown config command: %s", args[0])
	}
}

func (c *configCmd) runPrint() error {
	fmt.Fprint(c.root.out(), c.root.cfg().String())
	return nil
}

// target is where save writes: -output, then the file that was read, then
// the default location.
func (c *configCmd) target() string {
	if c.output != "" {
		return c.output
	}
	if p := config.NewLoader(version, configPathOverride).GetConfigPath(); p != "" {
		return p
	}
	return config.DefaultPath()
}

func (c *configCmd) runSave() error {
	path := c.target()
	if path == "" {
		return fmt.Errorf("no configuration directory available")
	}
	if err := config.Save(c.root.cfg(), path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	fmt.Fprintf(c.root.errOut(), "Configuration saved to %s\n", path)
	return nil
}

func (c *configCmd) runPath() error {
	path := config.NewLoader(version, configPathOverride).GetConfigPath()
	if path == "" {
		fmt.Fprintf(c.root.out(), "%s (not present)\n", config.DefaultPath())
		return nil
	}
	fmt.Fprintln(c.root.out(), path)
	return nil
}
