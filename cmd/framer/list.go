package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/example/framer/internal/catalog"
	"github.com/example/framer/internal/render"
)

type templatesCmd struct {
	catalog string
	modes   bool
	*root
	fs *flag.FlagSet
}

func parseTemplatesCmd(args []string, r *root) (*templatesCmd, error) {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	cmd := &templatesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.catalog, "catalog", "", "template catalog file or URL (default: built-in templates)")
	fs.BoolVar(&cmd.modes, "modes", false, "list overlay placement modes instead")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *templatesCmd) Run() error {
	out := c.root.out()
	if c.modes {
		for _, m := range render.Modes() {
			fmt.Fprintln(out, m)
		}
		return nil
	}
	loc := c.catalog
	if loc == "" {
		loc = c.root.cfg().Catalog
	}
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	cat, err := loadCatalogFn(ctx, loc)
	if err != nil {
		c.root.warnf("%v", err)
		cat = &catalog.Catalog{Location: loc}
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tMODE\tSOURCE")
	fmt.Fprintf(tw, "0\t%s\t-\t-\n", catalog.NoneName)
	for i, t := range cat.Templates {
		mode := t.Mode
		if t.Badge() {
			mode = fmt.Sprintf("%s (%.2f)", t.Mode, t.BadgeScale)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, t.Name, mode, t.Source)
	}
	return tw.Flush()
}

func (c *templatesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
