// Package ui is the interactive editor window.
package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/framer/internal/catalog"
	"github.com/example/framer/internal/clipboard"
	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/export"
	"github.com/example/framer/internal/geom"
	"github.com/example/framer/internal/gesture"
	"github.com/example/framer/internal/imageio"
	"github.com/example/framer/internal/render"
	"github.com/example/framer/internal/theme"
)

// nudgeStep is how far one arrow key moves the active layer, in canvas pixels.
const nudgeStep = 10

// messageDuration is how long the snackbar stays up.
const messageDuration = 2500 * time.Millisecond

var _ gesture.Target = (*editor.Session)(nil)

// App holds the editor configuration.
type App struct {
	PhotoPath  string
	Catalog    string
	CanvasSize int
	Background color.Color
	Exporter   *export.Exporter

	Themes    *theme.Loader
	ThemeName string
	ThemeMode theme.Mode
	PrefsPath string

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithPhoto opens the editor with the photo at path, URL or data URL src.
func WithPhoto(src string) Option { return func(a *App) { a.PhotoPath = src } }

// WithCatalog sets the template catalog location. Empty uses the built-in one.
func WithCatalog(loc string) Option { return func(a *App) { a.Catalog = loc } }

// WithCanvasSize sets the side of the exported picture.
func WithCanvasSize(n int) Option { return func(a *App) { a.CanvasSize = n } }

// WithBackground fills the canvas with c instead of leaving it transparent.
func WithBackground(c color.Color) Option { return func(a *App) { a.Background = c } }

// WithExporter sets where Ctrl+S saves and how Ctrl+C copies.
func WithExporter(e *export.Exporter) Option { return func(a *App) { a.Exporter = e } }

// WithTheme selects a named theme from l. An empty name follows mode.
func WithTheme(l *theme.Loader, name string) Option {
	return func(a *App) {
		a.Themes = l
		a.ThemeName = name
	}
}

// WithThemeMode sets the light/dark/system preference and where T persists
// changes to it.
func WithThemeMode(m theme.Mode, prefsPath string) Option {
	return func(a *App) {
		a.ThemeMode = m
		a.PrefsPath = prefsPath
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{
		CanvasSize: editor.DefaultCanvasSize,
		ThemeMode:  theme.ModeSystem,
		updateCh:   make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Exporter == nil {
		a.Exporter = &export.Exporter{Name: export.DefaultName}
	}
	if a.Themes == nil {
		a.Themes = &theme.Loader{}
	}
	return a
}

// requestPaint asks the event loop for a repaint.
func (a *App) requestPaint() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// renderOptions are used for the live canvas.
func (a *App) renderOptions() render.Options {
	return render.Options{Background: a.Background, Quality: render.Fast, Shadow: render.BadgeShadowOptions()}
}

// exportOptions are used for Ctrl+S and Ctrl+C.
func (a *App) exportOptions() render.Options {
	o := render.DefaultOptions()
	o.Background = a.Background
	return o
}

// resolveTheme picks the theme to show. A configured name wins; otherwise
// the mode decides between the light and dark themes.
func resolveTheme(ctx context.Context, l *theme.Loader, name string, m theme.Mode) *theme.Theme {
	if name == "" {
		name = string(theme.Effective(ctx, m))
	}
	th, err := l.Load(name)
	if err != nil {
		log.Printf("theme: %v", err)
		return theme.Default()
	}
	return th
}

// Events posted back to the loop by background work.
type (
	photoLoaded struct {
		name string
		img  image.Image
		err  error
	}
	overlayLoaded struct {
		ticket editor.Ticket
		tpl    catalog.Template
		img    image.Image
		err    error
	}
	catalogLoaded struct{ cat *catalog.Catalog }
	themeResolved struct {
		mode     theme.Mode
		th       *theme.Theme
		announce bool
	}
	exportDone struct {
		copied bool
		path   string
		err    error
	}
)

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) Main(s screen.Screen) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	side := 640
	width := side + 2*margin
	height := side + 2*margin + barHeight + stripHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Framer"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	var version uint64
	sess := editor.New(
		editor.WithCanvasSize(a.CanvasSize),
		editor.WithOnChange(func() {
			version++
			a.requestPaint()
		}),
	)
	defer sess.Close()
	input := gesture.NewInput(gesture.New(sess))

	var (
		cat          *catalog.Catalog
		th           = theme.Default()
		mode         = a.ThemeMode
		lay          layout
		items        []stripItem
		hover        = -1
		showPreview  bool
		showHelp     bool
		message      string
		messageUntil time.Time
	)

	relayout := func() {
		lay = computeLayout(width, height, sess.Canvas())
		input.Mapper = lay.mapper(sess.Canvas())
		items = layoutStrip(cat.Names(), lay.strip)
		if hover >= len(items) {
			hover = -1
		}
	}
	relayout()

	say := func(format string, args ...any) {
		message = fmt.Sprintf(format, args...)
		log.Print(message)
		messageUntil = time.Now().Add(messageDuration)
		time.AfterFunc(messageDuration, a.requestPaint)
		a.requestPaint()
	}

	loadPhoto := func(src string) {
		go func() {
			img, err := imageio.Load(ctx, src)
			w.Send(photoLoaded{name: src, img: img, err: err})
		}()
	}
	selectTemplate := func(i int) {
		if i == 0 {
			sess.ClearOverlay()
			a.requestPaint()
			return
		}
		tpl, ok := cat.At(i)
		if !ok {
			return
		}
		t := sess.RequestOverlay(tpl)
		a.requestPaint()
		go func() {
			img, err := imageio.Load(ctx, tpl.Source)
			w.Send(overlayLoaded{ticket: t, tpl: tpl, img: img, err: err})
		}()
	}
	exportScene := func(copyOnly bool) {
		sc := sess.Scene()
		opts := a.exportOptions()
		go func() {
			img, _ := sc.Compose(opts)
			if copyOnly {
				w.Send(exportDone{copied: true, err: a.Exporter.Copy(img)})
				return
			}
			path, err := a.Exporter.Save(img)
			w.Send(exportDone{path: path, err: err})
		}()
	}

	go func() { w.Send(catalogLoaded{catalog.LoadOrEmpty(ctx, a.Catalog)}) }()
	startMode := mode
	go func() {
		w.Send(themeResolved{mode: startMode, th: resolveTheme(ctx, a.Themes, a.ThemeName, startMode)})
	}()
	if a.PhotoPath != "" {
		loadPhoto(a.PhotoPath)
	}

	quit := false
	keys := newKeymap()
	keys.register("photo", shortcutList{{Rune: 'p'}}, func() { sess.SetActive(editor.LayerPhoto) })
	keys.register("overlay", shortcutList{{Rune: 'o'}}, func() { sess.SetActive(editor.LayerOverlay) })
	keys.register("layer", shortcutList{{Code: key.CodeTab}}, sess.ToggleLayer)
	for i := 0; i <= 9; i++ {
		keys.register(fmt.Sprintf("template%d", i), shortcutList{{Rune: rune('0' + i)}}, func() { selectTemplate(i) })
	}
	keys.register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}, {Code: key.CodeKeypadPlusSign}}, func() {
		sess.Zoom(geom.ZoomStep)
	})
	keys.register("zoomout", shortcutList{{Rune: '-'}, {Code: key.CodeKeypadHyphenMinus}}, func() {
		sess.Zoom(1 / geom.ZoomStep)
	})
	keys.register("left", shortcutList{{Code: key.CodeLeftArrow}}, func() { sess.Nudge(sess.Active(), -nudgeStep, 0) })
	keys.register("right", shortcutList{{Code: key.CodeRightArrow}}, func() { sess.Nudge(sess.Active(), nudgeStep, 0) })
	keys.register("up", shortcutList{{Code: key.CodeUpArrow}}, func() { sess.Nudge(sess.Active(), 0, -nudgeStep) })
	keys.register("down", shortcutList{{Code: key.CodeDownArrow}}, func() { sess.Nudge(sess.Active(), 0, nudgeStep) })
	keys.register("reset", shortcutList{{Rune: 'r'}}, func() { sess.Reset(sess.Active()) })
	keys.register("save", shortcutList{{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}}, func() { exportScene(false) })
	keys.register("copy", shortcutList{{Rune: 'c', Code: key.CodeC, Modifiers: key.ModControl}}, func() { exportScene(true) })
	keys.register("paste", shortcutList{{Rune: 'v', Code: key.CodeV, Modifiers: key.ModControl}}, func() {
		go func() {
			img, err := clipboard.ReadImage()
			w.Send(photoLoaded{name: "clipboard", img: img, err: err})
		}()
	})
	keys.register("preview", shortcutList{{Rune: 'v'}}, func() { showPreview = !showPreview })
	keys.register("help", shortcutList{{Rune: 'h'}, {Rune: '?'}}, func() { showHelp = !showHelp })
	keys.register("theme", shortcutList{{Rune: 't'}}, func() {
		mode = mode.Next()
		if a.PrefsPath != "" {
			if err := theme.WritePreference(a.PrefsPath, mode); err != nil {
				log.Printf("theme: %v", err)
			}
		}
		next := mode
		go func() { w.Send(themeResolved{mode: next, th: resolveTheme(ctx, a.Themes, "", next), announce: true}) }()
	})
	keys.register("quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() { quit = true })

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		comp := &compositor{}
		for st := range paintCh {
			pctx, pcancel := context.WithCancel(ctx)
			paintMu.Lock()
			paintCancel = pcancel
			paintMu.Unlock()
			drawFrame(pctx, s, w, st, comp)
			paintMu.Lock()
			paintCancel = nil
			if pctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			pcancel()
		}
	}()
	defer close(paintCh)

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				input.Leave()
			}
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			st := paintState{
				width:        width,
				height:       height,
				theme:        th,
				scene:        sess.Scene(),
				version:      version,
				opts:         a.renderOptions(),
				active:       sess.Active(),
				status:       statusText(sess.Active(), sess.Transform(sess.Active()), sess.Template(), sess.HasPhoto()),
				items:        items,
				selected:     selectedItem(items, cat.Names(), sess.Template()),
				hover:        hover,
				showPreview:  showPreview,
				showHelp:     showHelp,
				message:      message,
				messageUntil: messageUntil,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if p.In(lay.strip) {
				i := hitStrip(items, p)
				if i != hover {
					hover = i
					w.Send(paint.Event{})
				}
				if i >= 0 && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
					selectTemplate(items[i].index)
				}
				if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease {
					input.Mouse(e)
				}
				continue
			}
			if hover != -1 {
				hover = -1
				w.Send(paint.Event{})
			}
			input.Mouse(e)
		case touch.Event:
			if i, ok := touchStrip(items, lay.strip, e); ok {
				if i >= 0 {
					selectTemplate(items[i].index)
				}
				continue
			}
			input.Touch(e)
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if name, ok := keys.lookup(e); ok {
				keys.trigger(name)
				w.Send(paint.Event{})
			}
		case photoLoaded:
			if e.err != nil {
				say("photo: %v", e.err)
				continue
			}
			if err := sess.LoadPhoto(e.img, e.name); err != nil {
				say("photo: %v", err)
			}
		case overlayLoaded:
			ok, err := sess.ResolveOverlay(e.ticket, e.tpl, e.img, e.err)
			if !ok {
				continue
			}
			if err != nil {
				say("%v", err)
			}
		case catalogLoaded:
			cat = e.cat
			relayout()
			w.Send(paint.Event{})
		case themeResolved:
			if e.mode != mode {
				continue
			}
			th = e.th
			if e.announce {
				say("theme: %s (%s)", th.Name, mode)
			}
			w.Send(paint.Event{})
		case exportDone:
			switch {
			case e.err != nil && e.copied:
				say("copy: %v", e.err)
			case e.err != nil:
				say("save: %v", e.err)
			case e.copied:
				say("image copied to clipboard")
			default:
				say("saved %s", e.path)
			}
		case error:
			log.Print(e)
		}
	}
}

// selectedItem returns the strip position of the selected template, or -1.
func selectedItem(items []stripItem, names []string, selected string) int {
	for i, it := range items {
		if it.index < len(names) && names[it.index] == selected {
			return i
		}
	}
	return -1
}
