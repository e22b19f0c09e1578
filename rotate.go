package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
)

// RotateSingle turns w's viewport by direction quarter turns, keeping the
// map point at its centre in place.
func (m *Manager) RotateSingle(w *Window, direction uint8) {
	vp := w.Viewport
	if vp == nil {
		return
	}

	centre := geom.ScreenXY{X: vp.Width >> 1, Y: vp.Height >> 1}.Add(vp.Pos)
	var loc geom.CoordsXYZ
	if pos, other, ok := m.ScreenGetMapXY(centre); ok && other == vp {
		loc = pos.WithZ(m.world.TileElementHeight(pos))
	} else {
		// The centre is covered by another window or shows no terrain.
		view := geom.ScreenXY{X: vp.ViewWidth >> 1, Y: vp.ViewHeight >> 1}.Add(vp.ViewPos)
		loc = geom.AdjustForMapHeight(view, vp.Rotation, m.world.TileElementHeight, m.world.MapSizeMinus2())
	}

	vp.Rotation = (vp.Rotation + direction) & 3

	if p, ok := m.Centre2D(loc, vp); ok {
		w.SavedViewPos = p
		vp.ViewPos = p
	}
	m.windows.Invalidate(w)
	Logger().Debug("isoview: viewport rotated", "window", w.Number, "rotation", vp.Rotation)
}

// RotateAll turns every viewport without FlagIndependentRotation.
func (m *Manager) RotateAll(direction uint8) {
	for _, w := range m.windows.Windows() {
		if w.Viewport == nil || w.Viewport.Flags.Has(paint.FlagIndependentRotation) {
			continue
		}
		m.RotateSingle(w, direction)
	}
}
