package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
)

// cursorIterations is the number of height refinements ScreenGetMapXY makes
// within the picked tile.
const cursorIterations = 5

// ViewportFromPoint returns the viewport under the screen point p, or nil.
func (m *Manager) ViewportFromPoint(p geom.ScreenXY) *Viewport {
	w := m.windows.FindFromPoint(p)
	if w == nil || w.Viewport == nil || !w.Viewport.ContainsScreen(p) {
		return nil
	}
	return w.Viewport
}

// ScreenGetMapXY returns the map position of the terrain under the screen
// point p and the viewport it was found in.
//
// The terrain tile is found by picking; the position within the tile is then
// refined against the terrain height.
func (m *Manager) ScreenGetMapXY(p geom.ScreenXY) (geom.CoordsXY, *Viewport, bool) {
	w := m.windows.FindFromPoint(p)
	if w == nil || w.Viewport == nil {
		return geom.CoordsXY{}, nil, false
	}
	vp := w.Viewport

	info := m.PickInWindow(w, p, paint.InteractionTerrain.Mask())
	if !info.Found() {
		return geom.CoordsXY{}, nil, false
	}

	start := vp.ScreenToViewportCoord(p)
	cursor := info.Loc.ToTileCentre()
	for range cursorIterations {
		z := m.world.TileElementHeight(cursor)
		cursor = geom.ViewportPosToMapPos(start, z, vp.Rotation)
		cursor.X = min(max(cursor.X, info.Loc.X), info.Loc.X+geom.TileSize-1)
		cursor.Y = min(max(cursor.Y, info.Loc.Y), info.Loc.Y+geom.TileSize-1)
	}
	return cursor, vp, true
}

// ScreenGetMapXYWithZ returns the map position under p assuming it lies at
// height z. Positions off the map are rejected.
func (m *Manager) ScreenGetMapXYWithZ(p geom.ScreenXY, z int32) (geom.CoordsXY, bool) {
	vp := m.ViewportFromPoint(p)
	if vp == nil {
		return geom.CoordsXY{}, false
	}
	pos := geom.ViewportPosToMapPos(vp.ScreenToViewportCoord(p), z, vp.Rotation)
	if !m.world.IsLocationValid(pos) {
		return geom.CoordsXY{}, false
	}
	return pos, true
}

// ScreenGetMapXYQuadrant returns the tile under p and the quadrant of the
// tile the point falls in.
func (m *Manager) ScreenGetMapXYQuadrant(p geom.ScreenXY) (geom.CoordsXY, uint8, bool) {
	pos, _, ok := m.ScreenGetMapXY(p)
	if !ok {
		return geom.CoordsXY{}, 0, false
	}
	return pos.ToTileStart(), geom.TileQuadrant(pos), true
}

// ScreenGetMapXYQuadrantWithZ is ScreenGetMapXYQuadrant at a fixed height.
func (m *Manager) ScreenGetMapXYQuadrantWithZ(p geom.ScreenXY, z int32) (geom.CoordsXY, uint8, bool) {
	pos, ok := m.ScreenGetMapXYWithZ(p, z)
	if !ok {
		return geom.CoordsXY{}, 0, false
	}
	return pos.ToTileStart(), geom.TileQuadrant(pos), true
}

// ScreenGetMapXYSide returns the tile under p and the tile edge the point is
// closest to.
func (m *Manager) ScreenGetMapXYSide(p geom.ScreenXY) (geom.CoordsXY, uint8, bool) {
	pos, _, ok := m.ScreenGetMapXY(p)
	if !ok {
		return geom.CoordsXY{}, 0, false
	}
	return pos.ToTileStart(), geom.TileSide(pos), true
}

// ScreenGetMapXYSideWithZ is ScreenGetMapXYSide at a fixed height.
func (m *Manager) ScreenGetMapXYSideWithZ(p geom.ScreenXY, z int32) (geom.CoordsXY, uint8, bool) {
	pos, ok := m.ScreenGetMapXYWithZ(p, z)
	if !ok {
		return geom.CoordsXY{}, 0, false
	}
	return pos.ToTileStart(), geom.TileSide(pos), true
}

// ScreenPosToMapPos returns the tile under p and a direction: 0-3 for the
// edge the point is nearest, geom.DirectionCentre near the middle.
func (m *Manager) ScreenPosToMapPos(p geom.ScreenXY) (geom.CoordsXY, uint8, bool) {
	pos, _, ok := m.ScreenGetMapXY(p)
	if !ok {
		return geom.CoordsXY{}, 0, false
	}
	return pos.ToTileStart(), geom.TileDirection(pos), true
}
