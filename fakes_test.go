package isoview

import (
	"sync/atomic"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
	"github.com/gogpu/isoview/world"
)

// flatWorld is a square map with constant terrain height.
type flatWorld struct {
	tiles    int32
	height   int32
	entities map[world.EntityID]*world.Entity
	rides    map[world.RideID]*world.Ride
	cars     map[world.EntityID][]world.EntityID
}

func newFlatWorld(tiles int32) *flatWorld {
	return &flatWorld{
		tiles:    tiles,
		entities: make(map[world.EntityID]*world.Entity),
		rides:    make(map[world.RideID]*world.Ride),
		cars:     make(map[world.EntityID][]world.EntityID),
	}
}

func (w *flatWorld) add(e *world.Entity) *world.Entity {
	w.entities[e.ID] = e
	return e
}

func (w *flatWorld) TileElementHeight(geom.CoordsXY) int32 { return w.height }

func (w *flatWorld) MapSizeMinus2() geom.CoordsXY {
	edge := w.tiles*geom.TileSize - 2
	return geom.CoordsXY{X: edge, Y: edge}
}

func (w *flatWorld) IsLocationValid(p geom.CoordsXY) bool {
	edge := w.tiles * geom.TileSize
	return p.X >= 0 && p.Y >= 0 && p.X < edge && p.Y < edge
}

func (w *flatWorld) Entity(id world.EntityID) (*world.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

func (w *flatWorld) Ride(id world.RideID) (*world.Ride, bool) {
	r, ok := w.rides[id]
	return r, ok
}

func (w *flatWorld) Car(train world.EntityID, index uint8) (*world.Entity, bool) {
	cars := w.cars[train]
	if int(index) >= len(cars) {
		return nil, false
	}
	return w.Entity(cars[index])
}

// fakeWindows is a window stack that records repaint requests.
type fakeWindows struct {
	stack []*Window

	// visible is the answer IsVisible gives for non-main windows.
	visible      bool
	visibleCalls int

	invalidated []*Window
	drawn       []geom.ScreenRect
}

func (f *fakeWindows) push(w *Window) *Window {
	f.stack = append(f.stack, w)
	return w
}

func (f *fakeWindows) Windows() []*Window { return f.stack }

func (f *fakeWindows) FindFromPoint(p geom.ScreenXY) *Window {
	for i := len(f.stack) - 1; i >= 0; i-- {
		if f.stack[i].Rect().Contains(p) {
			return f.stack[i]
		}
	}
	return nil
}

func (f *fakeWindows) Main() *Window {
	for _, w := range f.stack {
		if w.IsMain() {
			return w
		}
	}
	return nil
}

func (f *fakeWindows) Owner(vp *Viewport) *Window {
	for _, w := range f.stack {
		if w.Viewport == vp {
			return w
		}
	}
	return nil
}

func (f *fakeWindows) IsVisible(w *Window) bool {
	f.visibleCalls++
	if w.Viewport != nil {
		if f.visible {
			w.Viewport.Visibility = VisibilityVisible
		} else {
			w.Viewport.Visibility = VisibilityCovered
		}
	}
	return f.visible
}

func (f *fakeWindows) Invalidate(w *Window) { f.invalidated = append(f.invalidated, w) }

func (f *fakeWindows) DrawAll(r geom.ScreenRect) { f.drawn = append(f.drawn, r) }

type copyCall struct {
	r      geom.ScreenRect
	dx, dy int32
}

// fakeScreen records dirty rectangles and pixel copies.
type fakeScreen struct {
	w, h     int32
	dirtyOpt bool
	parallel bool

	dirty  []geom.ScreenRect
	copies []copyCall
}

func (s *fakeScreen) Size() (int32, int32)             { return s.w, s.h }
func (s *fakeScreen) HasDirtyOptimisations() bool      { return s.dirtyOpt }
func (s *fakeScreen) ParallelDrawing() bool            { return s.parallel }
func (s *fakeScreen) SetDirtyBlocks(r geom.ScreenRect) { s.dirty = append(s.dirty, r) }
func (s *fakeScreen) CopyRect(r geom.ScreenRect, dx, dy int32) {
	s.copies = append(s.copies, copyCall{r, dx, dy})
}

// sceneFunc adapts a function to SceneGenerator and counts calls.
type sceneFunc struct {
	fn    func(s *paint.Session)
	calls atomic.Int32
}

func (g *sceneFunc) Generate(s *paint.Session) {
	g.calls.Add(1)
	if g.fn != nil {
		g.fn(s)
	}
}

type fixedClimate struct{ gloom sprite.PaletteMap }

func (c fixedClimate) WeatherGloom() (sprite.PaletteMap, bool) { return c.gloom, c.gloom != nil }

type fixedGame struct{ trackDesign, titleDemo bool }

func (g fixedGame) TrackDesignSaveMode() bool { return g.trackDesign }
func (g fixedGame) TitleDemo() bool           { return g.titleDemo }

// solidSquare adds an opaque w×h image of one palette index to a.
func solidSquare(a *sprite.Atlas, w, h int, index uint8) sprite.ImageID {
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = index
	}
	return sprite.NewImageID(a.Add(sprite.NewBitmapElement(w, h, pix, 0, 0)))
}

type harness struct {
	world   *flatWorld
	windows *fakeWindows
	screen  *fakeScreen
	scene   *sceneFunc
	atlas   *sprite.Atlas
	m       *Manager
}

func newHarness(opts ...Option) *harness {
	h := &harness{
		world:   newFlatWorld(64),
		windows: &fakeWindows{visible: true},
		screen:  &fakeScreen{w: 640, h: 480, dirtyOpt: true},
		scene:   &sceneFunc{},
		atlas:   sprite.NewAtlas(),
	}
	h.m = NewManager(h.world, h.windows, h.screen, h.scene, h.atlas, opts...)
	return h
}

// mainWindow adds a full-screen main window with a viewport centred on c.
func (h *harness) mainWindow(c geom.CoordsXYZ) *Window {
	w := h.windows.push(NewWindow(WindowClassMain, geom.ScreenXY{}, h.screen.w, h.screen.h))
	if _, err := h.m.Create(w, w.Pos, w.Width, w.Height, CoordinateFocus(c)); err != nil {
		panic(err)
	}
	return w
}

// window adds a secondary window with a viewport centred on c.
func (h *harness) window(pos geom.ScreenXY, width, height int32, c geom.CoordsXYZ) *Window {
	w := h.windows.push(NewWindow(WindowClassOther, pos, width, height))
	if _, err := h.m.Create(w, pos, width, height, CoordinateFocus(c)); err != nil {
		panic(err)
	}
	return w
}
