package main

import (
	"flag"
	"fmt"

	"github.com/example/framer/internal/theme"
	"github.com/example/framer/internal/ui"
)

type editCmd struct {
	photo      string
	catalog    string
	size       int
	background string
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.photo, "photo", "", "photo to open: a path, http(s) URL or data: URL")
	fs.StringVar(&e.catalog, "catalog", "", "template catalog file or URL (default: built-in templates)")
	fs.IntVar(&e.size, "size", 0, "side of the exported picture in pixels")
	fs.StringVar(&e.background, "background", "", "canvas background colour (default transparent)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case fs.NArg() == 1 && e.photo == "":
		e.photo = fs.Arg(0)
	case fs.NArg() > 0:
		return nil, usageErrorf(e, "unexpected arguments: %v", fs.Args())
	}
	if e.size < 0 {
		return nil, usageErrorf(e, "-size must be positive")
	}
	return e, nil
}

func (e *editCmd) Run() error {
	bg, err := e.root.background(e.background)
	if err != nil {
		return err
	}
	catalogLoc := e.catalog
	if catalogLoc == "" {
		catalogLoc = e.root.cfg().Catalog
	}
	mode := theme.ModeSystem
	prefsPath, err := theme.PrefsPath()
	if err != nil {
		fmt.Fprintf(e.root.errOut(), "warning: preferences: %v\n", err)
	} else if m, err := theme.ReadPreference(prefsPath); err != nil {
		fmt.Fprintf(e.root.errOut(), "warning: preferences: %v\n", err)
	} else {
		mode = m
	}

	app := ui.New(
		ui.WithPhoto(e.photo),
		ui.WithCatalog(catalogLoc),
		ui.WithCanvasSize(e.root.canvasSize(e.size)),
		ui.WithBackground(bg),
		ui.WithExporter(e.root.exporter("")),
		ui.WithTheme(e.root.themeLoader(), e.root.resolvedThemeName()),
		ui.WithThemeMode(mode, prefsPath),
		ui.WithOnClose(func() { fmt.Fprintln(e.root.errOut(), "editor closed") }),
	)
	app.Run()
	return nil
}
