package sandbox

import (
	"fmt"

	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/world"
)

// Entity sprites fit within spriteRadius sideways and below their location
// and spriteHeight above it. Money labels are wider.
const (
	spriteRadius = 16
	spriteHeight = 32
	labelRadius  = 64
)

// Config sizes a sandbox.
type Config struct {
	Width, Height int
	MapSize       int32
	Seed          uint64
	Guests        int
}

// DefaultConfig is a 640×480 screen over a 64×64 park.
func DefaultConfig() Config {
	return Config{
		Width:   640,
		Height:  480,
		MapSize: 64,
		Seed:    1,
		Guests:  12,
	}
}

// Sandbox wires a park, its collaborators and a Manager together, with a
// full-screen main window centred on the park.
type Sandbox struct {
	Park    *Park
	Sprites *Sprites
	Screen  *Screen
	Windows *Windows
	Scene   *Scene
	Climate *Climate
	Modes   *Modes
	Manager *isoview.Manager
	Main    *isoview.Window
}

// New builds a sandbox. opts are passed to the Manager after the sandbox's
// own climate and game flags, so they may override them.
func New(cfg Config, opts ...isoview.Option) (*Sandbox, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("sandbox: invalid screen size %dx%d", cfg.Width, cfg.Height)
	}

	s := &Sandbox{
		Park:    NewPark(cfg.MapSize, cfg.Seed, cfg.Guests),
		Sprites: NewSprites(),
		Screen:  NewScreen(cfg.Width, cfg.Height),
		Climate: NewClimate(),
		Modes:   &Modes{},
	}
	s.Windows = NewWindows(s.Screen)
	s.Scene = NewScene(s.Park, s.Sprites)

	opts = append([]isoview.Option{
		isoview.WithClimate(s.Climate),
		isoview.WithGameFlags(s.Modes),
	}, opts...)
	s.Manager = isoview.NewManager(s.Park, s.Windows, s.Screen, s.Scene, s.Sprites.Atlas, opts...)
	s.Windows.SetManager(s.Manager)

	main, err := s.Windows.Open(isoview.WindowClassMain, geom.ScreenXY{},
		int32(cfg.Width), int32(cfg.Height), isoview.CoordinateFocus(s.Park.Centre()))
	if err != nil {
		s.Manager.Close()
		return nil, fmt.Errorf("sandbox: open main window: %w", err)
	}
	s.Main = main
	return s, nil
}

// Frame advances the park one tick, moves every viewport and repaints the
// dirty part of the screen. It returns the rectangles repainted.
func (s *Sandbox) Frame() []geom.ScreenRect {
	s.invalidateSprites()
	s.Park.Tick()
	s.invalidateSprites()

	s.Manager.UpdateAll()
	return s.Windows.Flush()
}

// invalidateSprites marks the screen area of every entity and money label.
func (s *Sandbox) invalidateSprites() {
	s.Park.eachEntity(func(e *world.Entity) {
		s.Manager.InvalidateBox(e.Loc, spriteRadius, spriteHeight, spriteRadius, geom.ZoomMax)
	})
	for _, m := range s.Park.money {
		s.Manager.InvalidateBox(m.loc, labelRadius, spriteHeight, spriteRadius, geom.ZoomMax)
	}
}

// Close releases the manager's worker pool.
func (s *Sandbox) Close() {
	s.Manager.Close()
}
