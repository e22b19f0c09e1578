package isoview

import "github.com/gogpu/isoview/geom"

// InvalidateViewport marks the part of the view-space rectangle r that vp
// shows as dirty on screen.
//
// A viewport whose visibility is unknown asks the window manager once; an
// invisible non-main window and a covered viewport are skipped.
func (m *Manager) InvalidateViewport(vp *Viewport, r geom.ScreenRect) {
	if vp.Visibility == VisibilityUnknown {
		if owner := m.windows.Owner(vp); owner != nil && !owner.IsMain() {
			// IsVisible records the answer in vp.Visibility.
			if !m.windows.IsVisible(owner) {
				return
			}
		}
	}
	if vp.Visibility == VisibilityCovered {
		return
	}

	r = r.Intersect(vp.ViewRect())
	if r.Empty() {
		return
	}
	toScreen := func(p geom.ScreenXY) geom.ScreenXY {
		p = p.Sub(vp.ViewPos)
		return geom.ScreenXY{
			X: vp.Zoom.ApplyInversed(p.X),
			Y: vp.Zoom.ApplyInversed(p.Y),
		}.Add(vp.Pos)
	}
	m.screen.SetDirtyBlocks(geom.ScreenRect{Min: toScreen(r.Min), Max: toScreen(r.Max)})
}

// InvalidateView marks the whole of vp dirty.
func (m *Manager) InvalidateView(vp *Viewport) {
	m.InvalidateViewport(vp, vp.ViewRect())
}

// eachViewport calls fn for every viewport zoomed in at least as far as
// maxZoom. Pass geom.ZoomMax to include all of them.
func (m *Manager) eachViewport(maxZoom geom.Zoom, fn func(vp *Viewport)) {
	for _, vp := range m.Viewports() {
		if vp.Zoom <= maxZoom {
			fn(vp)
		}
	}
}

// InvalidateTile invalidates the tile whose corner is (x, y), between
// heights z0 and z1, in every viewport up to maxZoom.
func (m *Manager) InvalidateTile(x, y, z0, z1 int32, maxZoom geom.Zoom) {
	centre := geom.CoordsXYZ{X: x + geom.TileSize/2, Y: y + geom.TileSize/2}
	m.eachViewport(maxZoom, func(vp *Viewport) {
		p := geom.Translate3DTo2D(vp.Rotation, centre)
		m.InvalidateViewport(vp, geom.Rect(
			p.X-geom.TileSize, p.Y-geom.TileSize-z1,
			p.X+geom.TileSize, p.Y+geom.TileSize-z0,
		))
	})
}

// InvalidateBox invalidates the area around the world position pos,
// extending width units sideways, minHeight units above and maxHeight units
// below the projected point, in every viewport up to maxZoom.
func (m *Manager) InvalidateBox(pos geom.CoordsXYZ, width, minHeight, maxHeight int32, maxZoom geom.Zoom) {
	m.eachViewport(maxZoom, func(vp *Viewport) {
		p := geom.Translate3DTo2D(vp.Rotation, pos)
		m.InvalidateViewport(vp, geom.ScreenRect{
			Min: p.Sub(geom.ScreenXY{X: width, Y: minHeight}),
			Max: p.Add(geom.ScreenXY{X: width, Y: maxHeight}),
		})
	})
}

// InvalidateScreenRect invalidates the view-space rectangle r in every
// viewport up to maxZoom.
func (m *Manager) InvalidateScreenRect(r geom.ScreenRect, maxZoom geom.Zoom) {
	m.eachViewport(maxZoom, func(vp *Viewport) {
		m.InvalidateViewport(vp, r)
	})
}
