package sandbox

import (
	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/parallel"
)

// Screen is a software framebuffer with dirty-block tracking. It implements
// isoview.Screen.
type Screen struct {
	fb       *isoview.Framebuffer
	dirty    *parallel.DirtyRegion
	dirtyOpt bool
	parallel bool
}

// NewScreen returns a width×height screen with dirty optimisations and
// parallel drawing enabled. The whole screen starts dirty.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		fb:       isoview.NewFramebuffer(width, height),
		dirty:    parallel.NewDirtyRegion(width, height),
		dirtyOpt: true,
		parallel: true,
	}
	s.dirty.MarkAll()
	return s
}

// Framebuffer returns the pixels behind the screen.
func (s *Screen) Framebuffer() *isoview.Framebuffer { return s.fb }

// SetDirtyOptimisations switches partial repaints and pixel shifting.
func (s *Screen) SetDirtyOptimisations(v bool) { s.dirtyOpt = v }

// SetParallelDrawing allows or forbids concurrent column drawing.
func (s *Screen) SetParallelDrawing(v bool) { s.parallel = v }

// Size implements isoview.Screen.
func (s *Screen) Size() (int32, int32) {
	return int32(s.fb.Width()), int32(s.fb.Height())
}

// HasDirtyOptimisations implements isoview.Screen.
func (s *Screen) HasDirtyOptimisations() bool { return s.dirtyOpt }

// ParallelDrawing implements isoview.Screen.
func (s *Screen) ParallelDrawing() bool { return s.parallel }

// CopyRect implements isoview.Screen.
func (s *Screen) CopyRect(r geom.ScreenRect, dx, dy int32) {
	s.fb.CopyRect(r, dx, dy)
}

// SetDirtyBlocks implements isoview.Screen.
func (s *Screen) SetDirtyBlocks(r geom.ScreenRect) {
	s.dirty.MarkRect(r)
}

// IsDirty reports whether any block is waiting for repaint.
func (s *Screen) IsDirty() bool { return !s.dirty.IsEmpty() }

// drain returns the dirty area as block-aligned rectangles and clears it.
// Without dirty optimisations the whole screen is repainted every time.
func (s *Screen) drain() []geom.ScreenRect {
	if !s.dirtyOpt {
		s.dirty.Drain()
		w, h := s.Size()
		return []geom.ScreenRect{geom.RectWH(0, 0, w, h)}
	}
	return s.dirty.Drain()
}
