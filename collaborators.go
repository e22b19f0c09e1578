package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
)

// WindowManager is the window stack the viewports live in.
type WindowManager interface {
	// Windows returns the stack from bottom to top.
	Windows() []*Window
	// FindFromPoint returns the topmost window containing p, or nil.
	FindFromPoint(p geom.ScreenXY) *Window
	// Main returns the main world window, or nil.
	Main() *Window
	// Owner returns the window showing vp, or nil.
	Owner(vp *Viewport) *Window
	// IsVisible reports whether any part of w is uncovered. It records the
	// answer in w.Viewport.Visibility.
	IsVisible(w *Window) bool
	// Invalidate marks the whole of w for repaint.
	Invalidate(w *Window)
	// DrawAll repaints every window intersecting r, bottom to top.
	DrawAll(r geom.ScreenRect)
}

// Screen is the drawing engine behind the windows.
type Screen interface {
	// Size returns the screen dimensions in pixels.
	Size() (width, height int32)
	// HasDirtyOptimisations reports whether partial repaints and pixel
	// shifting are supported. Without them every change repaints fully.
	HasDirtyOptimisations() bool
	// ParallelDrawing reports whether columns may be rasterized
	// concurrently.
	ParallelDrawing() bool
	// CopyRect moves the pixels of r by (dx, dy), clipped to r.
	CopyRect(r geom.ScreenRect, dx, dy int32)
	// SetDirtyBlocks marks r for repaint.
	SetDirtyBlocks(r geom.ScreenRect)
}

// SceneGenerator fills a paint session with the structs visible in its
// target.
type SceneGenerator interface {
	Generate(s *paint.Session)
}

// Climate supplies the weather tint.
type Climate interface {
	// WeatherGloom returns the palette filter for the current weather, or
	// false when the weather is clear.
	WeatherGloom() (sprite.PaletteMap, bool)
}

// GameFlags exposes global game modes that change rendering.
type GameFlags interface {
	TrackDesignSaveMode() bool
	TitleDemo() bool
}

type noGameFlags struct{}

func (noGameFlags) TrackDesignSaveMode() bool { return false }
func (noGameFlags) TitleDemo() bool           { return false }
