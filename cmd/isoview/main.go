// Command isoview opens the sandbox park in a window.
//
// Arrow keys scroll, R rotates, + and - zoom, G toggles gridlines, U toggles
// the underground view, W cycles weather gloom, F flies over to the coaster
// and a left click reports what is under the cursor.
package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/sandbox"
	"github.com/gogpu/isoview/paint"
)

const (
	scrollSpeed = 8
	flyDuration = 2.5
)

var errQuit = errors.New("quit")

type flight struct {
	x, y *gween.Tween
	z    int32
}

type game struct {
	s     *sandbox.Sandbox
	frame *ebiten.Image
	fly   *flight

	underground bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}
	g.handleKeys()
	g.handleMouse()
	g.updateFlight()
	g.s.Frame()
	return nil
}

func (g *game) handleKeys() {
	win := g.s.Main
	vp := win.Viewport
	step := vp.Zoom.Apply(scrollSpeed)

	var d geom.ScreenXY
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Y += step
	}
	if d != (geom.ScreenXY{}) {
		g.fly = nil
		win.Flags &^= isoview.WindowScrollingToLocation
		win.SavedViewPos = win.SavedViewPos.Add(d)
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.s.Manager.RotateAll(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.zoom(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.zoom(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.toggleGridlines()
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		g.underground = !g.underground
		mode := isoview.VisibilityUndergroundOff
		if g.underground {
			mode = isoview.VisibilityUndergroundOn
		}
		g.s.Manager.Overlay().SetVisibility(mode)
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.s.Climate.SetGloom((g.s.Climate.Gloom() + 1) % (sandbox.MaxGloom + 1))
		g.s.Windows.Invalidate(win)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.startFlight()
	}
}

// zoom keeps the middle of the main view in place.
func (g *game) zoom(delta geom.Zoom) {
	win := g.s.Main
	vp := win.Viewport
	z := (vp.Zoom + delta).Clamp()
	if z == vp.Zoom {
		return
	}
	mid := vp.Centre()
	vp.SetZoom(z)
	vp.ViewPos = mid.Sub(geom.ScreenXY{X: vp.ViewWidth / 2, Y: vp.ViewHeight / 2})
	win.SavedViewPos = vp.ViewPos
	g.s.Windows.Invalidate(win)
	isoview.Logger().Debug("isoview: zoom", "level", z)
}

func (g *game) toggleGridlines() {
	o := g.s.Manager.Overlay()
	if n, _, _ := o.Counts(); n > 0 {
		o.HideGridlines()
		return
	}
	o.ShowGridlines()
}

func (g *game) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	p := geom.ScreenXY{X: int32(mx), Y: int32(my)}

	info := g.s.Manager.Pick(p, paint.InteractionAll)
	if !info.Found() {
		slog.Info("pick: nothing", "x", mx, "y", my)
		return
	}
	attrs := []any{"x", mx, "y", my, "item", info.Item, "tile", info.Loc}
	if info.Entity != nil {
		attrs = append(attrs, "entity", info.Entity.ID, "kind", info.Entity.Kind)
	}
	slog.Info("pick", attrs...)
}

// startFlight tweens the main view from its current map position to the
// coaster's overview point.
func (g *game) startFlight() {
	r, ok := g.s.Park.Ride(sandbox.CoasterRide)
	if !ok {
		return
	}
	from, _, ok := g.s.Manager.ScreenGetMapXY(g.screenCentre())
	if !ok {
		from = g.s.Park.Centre().XY()
	}
	to := r.OverallView
	g.fly = &flight{
		x: gween.New(float32(from.X), float32(to.X), flyDuration, ease.InOutQuad),
		y: gween.New(float32(from.Y), float32(to.Y), flyDuration, ease.InOutQuad),
		z: g.s.Park.TileElementHeight(to),
	}
	g.s.Main.Flags &^= isoview.WindowScrollingToLocation
	slog.Info("fly-over", "from", from, "to", to)
}

func (g *game) updateFlight() {
	if g.fly == nil {
		return
	}
	dt := float32(1) / float32(ebiten.TPS())
	x, doneX := g.fly.x.Update(dt)
	y, doneY := g.fly.y.Update(dt)
	loc := geom.CoordsXYZ{X: int32(x), Y: int32(y), Z: g.fly.z}
	if p, ok := g.s.Manager.Centre2D(loc, g.s.Main.Viewport); ok {
		g.s.Main.SavedViewPos = p
	}
	if doneX && doneY {
		g.fly = nil
	}
}

func (g *game) screenCentre() geom.ScreenXY {
	vp := g.s.Main.Viewport
	return geom.ScreenXY{X: vp.Pos.X + vp.Width/2, Y: vp.Pos.Y + vp.Height/2}
}

func (g *game) Draw(screen *ebiten.Image) {
	g.frame.WritePixels(g.s.Screen.Framebuffer().ToImage().Pix)
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(int, int) (int, int) {
	b := g.frame.Bounds()
	return b.Dx(), b.Dy()
}

func main() {
	var (
		width   = flag.Int("width", 640, "screen width")
		height  = flag.Int("height", 480, "screen height")
		scale   = flag.Int("scale", 2, "window scale")
		mapSize = flag.Int("map", 64, "park size in tiles")
		seed    = flag.Uint64("seed", 1, "terrain seed")
		guests  = flag.Int("guests", 12, "number of guests")
		threads = flag.Bool("mt", true, "paint columns in parallel")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	isoview.SetLogger(logger)

	s, err := sandbox.New(sandbox.Config{
		Width:   *width,
		Height:  *height,
		MapSize: int32(*mapSize),
		Seed:    *seed,
		Guests:  *guests,
	}, isoview.WithMultiThreading(*threads))
	if err != nil {
		log.Fatalf("sandbox: %v", err)
	}
	defer s.Close()

	g := &game{s: s, frame: ebiten.NewImage(*width, *height)}

	ebiten.SetWindowTitle("isoview")
	ebiten.SetWindowSize(*width**scale, *height**scale)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
