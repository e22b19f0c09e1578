package isoview

import (
	"slices"

	"github.com/gogpu/isoview/geom"
)

// Move scrolls vp, owned by w, to the view position to.
//
// The screen is updated by shifting the pixels that stay visible and
// repainting the exposed border. A WindowNoComposite window on a screen
// with dirty optimisations repaints its whole visible area instead. Nothing
// is drawn when the shift rounds to zero pixels.
func (m *Manager) Move(w *Window, vp *Viewport, to geom.ScreenXY) {
	d := geom.ScreenXY{
		X: vp.Zoom.ApplyInversed(vp.ViewPos.X) - vp.Zoom.ApplyInversed(to.X),
		Y: vp.Zoom.ApplyInversed(vp.ViewPos.Y) - vp.Zoom.ApplyInversed(to.Y),
	}
	vp.ViewPos = to
	if d == (geom.ScreenXY{}) {
		return
	}

	sw, sh := m.screen.Size()
	if w.Flags&WindowNoComposite != 0 {
		visible := vp.ScreenRect().Intersect(geom.Rect(0, 0, sw, sh))
		if visible.Empty() {
			return
		}
		if m.screen.HasDirtyOptimisations() {
			m.windows.DrawAll(visible)
			return
		}
	}

	// Work on a copy clipped to the screen; vp itself keeps its full size.
	clipped, ok := clipToScreen(*vp, sw, sh)
	if !ok {
		return
	}
	if m.screen.HasDirtyOptimisations() {
		m.shiftPixels(w, vp, clipped, d)
	}
}

// clipToScreen trims vp to the screen, keeping the view rectangle aligned.
// It reports false when nothing is left.
func clipToScreen(vp Viewport, sw, sh int32) (Viewport, bool) {
	z := vp.Zoom
	if vp.Pos.X < 0 {
		vp.Width += vp.Pos.X
		vp.ViewWidth += z.Apply(vp.Pos.X)
		vp.ViewPos.X -= z.Apply(vp.Pos.X)
		vp.Pos.X = 0
	}
	if over := vp.Pos.X + vp.Width - sw; over > 0 {
		vp.Width -= over
		vp.ViewWidth -= z.Apply(over)
	}
	if vp.Width <= 0 {
		return vp, false
	}

	if vp.Pos.Y < 0 {
		vp.Height += vp.Pos.Y
		vp.ViewHeight += z.Apply(vp.Pos.Y)
		vp.ViewPos.Y -= z.Apply(vp.Pos.Y)
		vp.Pos.Y = 0
	}
	if over := vp.Pos.Y + vp.Height - sh; over > 0 {
		vp.Height -= over
		vp.ViewHeight -= z.Apply(over)
	}
	if vp.Height <= 0 {
		return vp, false
	}
	return vp, true
}

// shiftPixels repaints transparent windows over the viewport, which must
// never be blitted, then shifts the rest.
func (m *Manager) shiftPixels(w *Window, self *Viewport, vp Viewport, d geom.ScreenXY) {
	chain := m.windowsFrom(w)
	area := vp.ScreenRect()
	for _, other := range chain {
		if other.Flags&WindowTransparent == 0 || other.Viewport == self {
			continue
		}
		if r := other.Rect().Intersect(area); !r.Empty() {
			m.windows.DrawAll(r)
		}
	}
	m.redrawAfterShift(self, chain, vp, d)
}

// windowsFrom returns w and every window stacked above it.
func (m *Manager) windowsFrom(w *Window) []*Window {
	stack := m.windows.Windows()
	i := slices.Index(stack, w)
	if i < 0 {
		return nil
	}
	return stack[i:]
}

// redrawAfterShift carves vp around each window in chain that covers part
// of it, then shifts what remains by d and repaints the exposed strips.
// Covered slices are left for the covering window to draw.
func (m *Manager) redrawAfterShift(self *Viewport, chain []*Window, vp Viewport, d geom.ScreenXY) {
	if len(chain) > 0 {
		w := chain[0]
		wr := w.Rect()
		if w.Viewport == self || !vp.ScreenRect().Overlaps(wr) {
			m.redrawAfterShift(self, chain[1:], vp, d)
			return
		}

		switch {
		case vp.Pos.X < wr.Min.X:
			m.splitX(self, chain, vp, wr.Min.X-vp.Pos.X, d)
		case vp.Pos.X+vp.Width > wr.Max.X:
			m.splitX(self, chain, vp, wr.Max.X-vp.Pos.X, d)
		case vp.Pos.Y < wr.Min.Y:
			m.splitY(self, chain, vp, wr.Min.Y-vp.Pos.Y, d)
		case vp.Pos.Y+vp.Height > wr.Max.Y:
			m.splitY(self, chain, vp, wr.Max.Y-vp.Pos.Y, d)
		}
		return
	}

	r := vp.ScreenRect()
	if abs32(d.X) >= vp.Width || abs32(d.Y) >= vp.Height {
		m.windows.DrawAll(r)
		return
	}

	m.screen.CopyRect(r, d.X, d.Y)
	switch {
	case d.X > 0:
		m.windows.DrawAll(geom.Rect(r.Min.X, r.Min.Y, vp.Pos.X+d.X, r.Max.Y))
		r.Min.X += d.X
	case d.X < 0:
		m.windows.DrawAll(geom.Rect(vp.Pos.X+vp.Width+d.X, r.Min.Y, r.Max.X, r.Max.Y))
		r.Max.X += d.X
	}
	switch {
	case d.Y > 0:
		m.windows.DrawAll(geom.Rect(r.Min.X, r.Min.Y, r.Max.X, vp.Pos.Y+d.Y))
	case d.Y < 0:
		m.windows.DrawAll(geom.Rect(r.Min.X, vp.Pos.Y+vp.Height+d.Y, r.Max.X, r.Max.Y))
	}
}

func (m *Manager) splitX(self *Viewport, chain []*Window, vp Viewport, width int32, d geom.ScreenXY) {
	left := vp
	left.setWidth(width)
	m.redrawAfterShift(self, chain, left, d)

	right := vp
	right.Pos.X += width
	right.ViewPos.X += vp.Zoom.Apply(width)
	right.setWidth(vp.Width - width)
	m.redrawAfterShift(self, chain, right, d)
}

func (m *Manager) splitY(self *Viewport, chain []*Window, vp Viewport, height int32, d geom.ScreenXY) {
	top := vp
	top.setHeight(height)
	m.redrawAfterShift(self, chain, top, d)

	bottom := vp
	bottom.Pos.Y += height
	bottom.ViewPos.Y += vp.Zoom.Apply(height)
	bottom.setHeight(vp.Height - height)
	m.redrawAfterShift(self, chain, bottom, d)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
