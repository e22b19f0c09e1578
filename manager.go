package isoview

import (
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/parallel"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
	"github.com/gogpu/isoview/world"
)

// Manager owns the viewport registry and implements every viewport
// operation against its collaborators.
type Manager struct {
	world   world.World
	windows WindowManager
	screen  Screen
	scene   SceneGenerator
	store   sprite.Store
	climate Climate
	game    GameFlags

	cfg          Config
	maxViewports int
	locale       language.Tag

	mu        sync.Mutex
	viewports []*Viewport

	poolMu   sync.Mutex
	pool     *parallel.WorkerPool
	workers  int
	sessions *paint.SessionPool

	overlay Overlay
}

// NewManager creates a manager with an empty registry.
func NewManager(w world.World, windows WindowManager, screen Screen, scene SceneGenerator, store sprite.Store, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.game == nil {
		o.game = noGameFlags{}
	}

	m := &Manager{
		world:        w,
		windows:      windows,
		screen:       screen,
		scene:        scene,
		store:        store,
		climate:      o.climate,
		game:         o.game,
		maxViewports: o.maxViewports,
		locale:       o.locale,
		workers:      o.workers,
		sessions:     paint.NewSessionPool(),
	}
	m.overlay.m = m
	m.cfg.SetMultiThreading(o.multiThreading)
	m.cfg.SetAlwaysShowGridlines(o.gridlines)
	m.cfg.SetWeatherGloom(o.weatherGloom)
	return m
}

// Config returns the runtime settings.
func (m *Manager) Config() *Config { return &m.cfg }

// Close releases the worker pool. The manager stays usable; painting runs
// inline until multithreading recreates the pool.
func (m *Manager) Close() {
	m.poolMu.Lock()
	defer m.poolMu.Unlock()
	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}

// Create attaches a new viewport to win at the screen position pos.
//
// The viewport takes the zoom of focus and the current main rotation, and
// is centred on the focus position. When the focus cannot be resolved the
// viewport is still created but neither its view position nor
// win.SavedViewPos is touched. A full registry leaves win.Viewport unset and
// returns ErrTooManyViewports.
func (m *Manager) Create(win *Window, pos geom.ScreenXY, width, height int32, focus Focus) (*Viewport, error) {
	rotation := m.CurrentRotation()

	m.mu.Lock()
	if len(m.viewports) >= m.maxViewports {
		m.mu.Unlock()
		Logger().Error("isoview: no more viewport slots left to allocate", "max", m.maxViewports)
		return nil, ErrTooManyViewports
	}
	vp := &Viewport{
		Pos:      pos,
		Zoom:     focus.Zoom,
		Rotation: rotation,
	}
	vp.SetSize(width, height)
	m.viewports = append(m.viewports, vp)
	m.mu.Unlock()

	if m.cfg.AlwaysShowGridlines() {
		vp.Flags |= paint.FlagGridlines
	}
	win.Viewport = vp

	win.TargetEntity = world.NullEntity
	if id, ok := focus.Entity(); ok {
		win.TargetEntity = id
	}

	centre, err := focus.Position(m.world)
	if err != nil {
		Logger().Error("isoview: cannot resolve viewport focus", "focus", focus, "err", err)
		return vp, nil
	}
	loc, ok := m.Centre2D(centre, vp)
	if !ok {
		Logger().Error("isoview: invalid location for viewport", "focus", focus)
		return vp, nil
	}
	win.SavedViewPos = loc
	vp.ViewPos = loc

	Logger().Debug("isoview: viewport created",
		"pos", pos, "size", geom.ScreenXY{X: width, Y: height}, "zoom", vp.Zoom, "focus", focus)
	return vp, nil
}

// Remove unregisters vp. Removing an unknown viewport logs a warning and
// returns ErrViewportNotFound.
func (m *Manager) Remove(vp *Viewport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.Index(m.viewports, vp)
	if i < 0 {
		Logger().Warn("isoview: unable to remove viewport", "viewport", vp)
		return ErrViewportNotFound
	}
	m.viewports = slices.Delete(m.viewports, i, i+1)
	return nil
}

// Viewports returns a snapshot of the registry in creation order.
func (m *Manager) Viewports() []*Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.viewports)
}

// Len returns the number of live viewports.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.viewports)
}

// MainViewport returns the main window's viewport, or nil.
func (m *Manager) MainViewport() *Viewport {
	w := m.windows.Main()
	if w == nil {
		return nil
	}
	return w.Viewport
}

// Centre2D returns the view position that puts loc in the middle of vp. It
// reports false for the null location.
func (m *Manager) Centre2D(loc geom.CoordsXYZ, vp *Viewport) (geom.ScreenXY, bool) {
	if loc.IsNull() {
		return geom.ScreenXY{}, false
	}
	p := geom.Translate3DTo2D(vp.Rotation, loc)
	p.X -= vp.ViewWidth / 2
	p.Y -= vp.ViewHeight / 2
	return p, true
}

// CurrentRotation returns the main viewport's rotation, or 0 without one.
func (m *Manager) CurrentRotation() uint8 {
	vp := m.MainViewport()
	if vp == nil {
		return 0
	}
	return vp.Rotation & 3
}

// SavedView is the main view state stored with a saved game.
type SavedView struct {
	Pos      geom.ScreenXY
	Zoom     geom.Zoom
	Rotation uint8
}

// SavedView captures the main viewport's centre, zoom and rotation.
func (m *Manager) SavedView() (SavedView, bool) {
	vp := m.MainViewport()
	if vp == nil {
		return SavedView{}, false
	}
	return SavedView{Pos: vp.Centre(), Zoom: vp.Zoom, Rotation: vp.Rotation}, true
}
