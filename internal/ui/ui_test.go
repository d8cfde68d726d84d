package ui

import (
	"context"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/touch"

	"github.com/example/framer/internal/editor"
	"github.com/example/framer/internal/render"
	"github.com/example/framer/internal/theme"
)

func TestComputeLayoutCentresSquareCanvas(t *testing.T) {
	l := computeLayout(800, 600, image.Pt(1024, 1024))
	if l.canvas.Dx() != l.canvas.Dy() {
		t.Fatalf("canvas not square: %v", l.canvas)
	}
	if !l.canvas.In(l.area) {
		t.Fatalf("canvas %v outside area %v", l.canvas, l.area)
	}
	want := 600 - barHeight - stripHeight - 2*margin
	if l.canvas.Dy() != want {
		t.Fatalf("canvas height = %d, want %d", l.canvas.Dy(), want)
	}
	left := l.canvas.Min.X - l.area.Min.X
	right := l.area.Max.X - l.canvas.Max.X
	if d := left - right; d < -1 || d > 1 {
		t.Fatalf("canvas not centred: left=%d right=%d", left, right)
	}
}

func TestComputeLayoutTinyWindow(t *testing.T) {
	l := computeLayout(100, 50, image.Pt(1024, 1024))
	if !l.canvas.Empty() {
		t.Fatalf("expected no canvas, got %v", l.canvas)
	}
}

func TestMapperFollowsLayout(t *testing.T) {
	l := computeLayout(512+2*margin, 512+2*margin+barHeight+stripHeight, image.Pt(1024, 1024))
	m := l.mapper(image.Pt(1024, 1024))
	p := m.ToSurface(float64(l.canvas.Min.X+256), float64(l.canvas.Min.Y+128))
	if p.X != 512 || p.Y != 256 {
		t.Fatalf("ToSurface = %+v", p)
	}
}

func TestPreviewRectClampsToArea(t *testing.T) {
	l := computeLayout(400, 400, image.Pt(1024, 1024))
	r := l.previewRect(render.PreviewSize)
	if r.Dx() != r.Dy() || r.Dx() > l.area.Dx()/3 {
		t.Fatalf("preview rect = %v in area %v", r, l.area)
	}
	if !r.In(l.area) {
		t.Fatalf("preview rect %v outside area %v", r, l.area)
	}
}

func TestLayoutStripAndHit(t *testing.T) {
	strip := image.Rect(0, 500, 800, 500+stripHeight)
	items := layoutStrip([]string{"None", "Circle", "Border"}, strip)
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].label != "0 None" || items[2].label != "2 Border" || items[2].index != 2 {
		t.Fatalf("items = %+v", items)
	}
	for i := 1; i < len(items); i++ {
		if items[i].rect.Min.X <= items[i-1].rect.Max.X {
			t.Fatalf("items overlap: %v %v", items[i-1].rect, items[i].rect)
		}
	}
	mid := items[1].rect.Min.Add(items[1].rect.Size().Div(2))
	if got := hitStrip(items, mid); got != 1 {
		t.Fatalf("hitStrip = %d", got)
	}
	if got := hitStrip(items, image.Pt(799, 501)); got != -1 {
		t.Fatalf("hitStrip outside = %d", got)
	}
}

func TestTouchStrip(t *testing.T) {
	strip := image.Rect(0, 500, 800, 500+stripHeight)
	items := layoutStrip([]string{"None", "Circle", "Border"}, strip)
	mid := items[2].rect.Min.Add(items[2].rect.Size().Div(2))

	i, ok := touchStrip(items, strip, touch.Event{X: float32(mid.X), Y: float32(mid.Y), Type: touch.TypeBegin})
	if !ok || i != 2 {
		t.Fatalf("tap on item = %d, %v", i, ok)
	}
	i, ok = touchStrip(items, strip, touch.Event{X: 799, Y: 501, Type: touch.TypeBegin})
	if !ok || i != -1 {
		t.Fatalf("tap on empty strip = %d, %v", i, ok)
	}
	if _, ok := touchStrip(items, strip, touch.Event{X: 100, Y: 100, Type: touch.TypeBegin}); ok {
		t.Fatal("tap above the strip should reach the canvas")
	}
	if _, ok := touchStrip(items, strip, touch.Event{X: float32(mid.X), Y: float32(mid.Y), Type: touch.TypeMove}); ok {
		t.Fatal("only touch begins select templates")
	}
}

func TestLayoutStripDropsOverflow(t *testing.T) {
	names := []string{"None"}
	for i := 0; i < 40; i++ {
		names = append(names, "A long template name")
	}
	items := layoutStrip(names, image.Rect(0, 0, 400, stripHeight))
	if len(items) == 0 || len(items) >= len(names) {
		t.Fatalf("got %d items", len(items))
	}
	for _, it := range items {
		if it.rect.Max.X > 400-margin {
			t.Fatalf("item %v overflows", it.rect)
		}
	}
}

func TestSelectedItem(t *testing.T) {
	names := []string{"None", "Circle", "Border"}
	items := layoutStrip(names, image.Rect(0, 0, 800, stripHeight))
	if got := selectedItem(items, names, "Border"); got != 2 {
		t.Fatalf("selected = %d", got)
	}
	if got := selectedItem(items, names, "Gone"); got != -1 {
		t.Fatalf("selected = %d", got)
	}
}

func TestKeymapLookup(t *testing.T) {
	k := newKeymap()
	var fired []string
	reg := func(name string, keys shortcutList) {
		k.register(name, keys, func() { fired = append(fired, name) })
	}
	reg("save", shortcutList{{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}})
	reg("zoomin", shortcutList{{Rune: '+'}})
	reg("paste", shortcutList{{Rune: 'v', Code: key.CodeV, Modifiers: key.ModControl}})
	reg("preview", shortcutList{{Rune: 'v'}})
	reg("layer", shortcutList{{Code: key.CodeTab}})

	cases := []struct {
		ev   key.Event
		want string
	}{
		{key.Event{Rune: 's', Code: key.CodeS, Modifiers: key.ModControl}, "save"},
		{key.Event{Rune: 0x13, Code: key.CodeS, Modifiers: key.ModControl}, "save"},
		{key.Event{Rune: '+', Code: key.CodeEqualSign, Modifiers: key.ModShift}, "zoomin"},
		{key.Event{Rune: 'V', Code: key.CodeV, Modifiers: key.ModControl | key.ModShift}, "paste"},
		{key.Event{Rune: 'v', Code: key.CodeV}, "preview"},
		{key.Event{Rune: -1, Code: key.CodeTab}, "layer"},
	}
	for _, c := range cases {
		got, ok := k.lookup(c.ev)
		if !ok || got != c.want {
			t.Errorf("lookup(%+v) = %q, %v; want %q", c.ev, got, ok, c.want)
		}
	}
	if _, ok := k.lookup(key.Event{Rune: 's', Code: key.CodeS}); ok {
		t.Error("plain s should not trigger save")
	}
	if !k.trigger("save") || len(fired) != 1 || fired[0] != "save" {
		t.Fatalf("trigger: %v", fired)
	}
	if k.trigger("missing") {
		t.Fatal("unknown action triggered")
	}
}

func TestStatusText(t *testing.T) {
	if s := statusText(editor.LayerPhoto, editor.Transform{Scale: 1}, "None", false); !strings.Contains(s, "No photo") {
		t.Fatalf("status without photo = %q", s)
	}
	s := statusText(editor.LayerOverlay, editor.Transform{Scale: 1.5, X: 10, Y: -4}, "Circle", true)
	for _, want := range []string{"overlay", "150%", "+10,-4", "Circle"} {
		if !strings.Contains(s, want) {
			t.Errorf("status %q missing %q", s, want)
		}
	}
}

func TestCheckerCache(t *testing.T) {
	var c checker
	light := color.RGBA{255, 255, 255, 255}
	dark := color.RGBA{0, 0, 0, 255}
	a := c.get(image.Pt(48, 48), light, dark)
	if a.RGBAAt(0, 0) != light || a.RGBAAt(checkerSize, 0) != dark || a.RGBAAt(checkerSize, checkerSize) != light {
		t.Fatal("unexpected pattern")
	}
	if b := c.get(image.Pt(48, 48), light, dark); b != a {
		t.Fatal("cache miss for identical request")
	}
	if b := c.get(image.Pt(48, 48), dark, light); b == a {
		t.Fatal("colour change should rebuild")
	}
}

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}

func TestCompositorRendersOncePerVersion(t *testing.T) {
	sess := editor.New(editor.WithCanvasSize(64))
	if err := sess.LoadPhoto(solid(32, 16), "p"); err != nil {
		t.Fatal(err)
	}
	st := paintState{scene: sess.Scene(), version: 1, opts: render.Options{Quality: render.Fast}}
	c := &compositor{}
	img, stats := c.render(st)
	if !stats.PhotoDrawn || img.Bounds().Dx() != 64 {
		t.Fatalf("stats = %+v, bounds = %v", stats, img.Bounds())
	}
	img.Pix[0] = 1
	again, _ := c.render(st)
	if again.Pix[0] != 1 {
		t.Fatal("same version re-rendered")
	}
	st.version = 2
	again, _ = c.render(st)
	if again.Pix[0] == 1 {
		t.Fatal("new version not re-rendered")
	}

	pv := c.thumbnail()
	if pv == nil || pv.Bounds().Dx() != render.PreviewSize {
		t.Fatalf("thumbnail = %v", pv)
	}
	if c.thumbnail() != pv {
		t.Fatal("thumbnail recomputed without a change")
	}
	st.version = 3
	c.render(st)
	if c.thumbnail() == pv {
		t.Fatal("thumbnail not refreshed after a change")
	}
}

func TestResolveTheme(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	l := &theme.Loader{Custom: map[string]*theme.Theme{"mine": {Name: "mine"}}}
	if th := resolveTheme(ctx, l, "mine", theme.ModeLight); th.Name != "mine" {
		t.Fatalf("named theme = %q", th.Name)
	}
	if th := resolveTheme(ctx, l, "", theme.ModeDark); th.Name != "dark" {
		t.Fatalf("dark mode = %q", th.Name)
	}
	if th := resolveTheme(ctx, l, "nope", theme.ModeDark); th.Name != theme.Default().Name {
		t.Fatalf("fallback = %q", th.Name)
	}
}

func TestNewDefaults(t *testing.T) {
	a := New(WithPhoto("p.png"), WithCanvasSize(512))
	if a.PhotoPath != "p.png" || a.CanvasSize != 512 || a.Exporter == nil || a.Themes == nil {
		t.Fatalf("app = %+v", a)
	}
	if a.ThemeMode != theme.ModeSystem {
		t.Fatalf("mode = %v", a.ThemeMode)
	}
	closed := 0
	a = New(WithOnClose(func() { closed++ }))
	a.notifyClose()
	a.notifyClose()
	if closed != 1 {
		t.Fatalf("onClose called %d times", closed)
	}
}
