package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
	"github.com/gogpu/isoview/world"
)

// InteractionInfo is the result of a pick. Item is InteractionNone when
// nothing pickable lies under the point.
type InteractionInfo struct {
	Item    paint.InteractionItem
	Loc     geom.CoordsXY
	Element *world.TileElement
	Entity  *world.Entity
}

// Found reports whether the pick hit anything.
func (i InteractionInfo) Found() bool { return i.Item != paint.InteractionNone }

func interactionFrom(ps *paint.PaintStruct) InteractionInfo {
	return InteractionInfo{
		Item:    ps.Interaction,
		Loc:     ps.MapPos,
		Element: ps.Element,
		Entity:  ps.Entity,
	}
}

// Pick returns the frontmost visible item under the screen point p that
// passes filter, looking through whichever window is on top at p.
func (m *Manager) Pick(p geom.ScreenXY, filter paint.InteractionMask) InteractionInfo {
	return m.PickInWindow(m.windows.FindFromPoint(p), p, filter)
}

// PickInWindow is Pick against a given window's viewport.
//
// The scene under p is regenerated into a one-pixel session and walked in
// draw order; the last struct with an opaque pixel at p wins.
func (m *Manager) PickInWindow(w *Window, p geom.ScreenXY, filter paint.InteractionMask) InteractionInfo {
	if w == nil || w.Viewport == nil {
		return InteractionInfo{}
	}
	vp := w.Viewport
	if !vp.ContainsScreen(p) {
		return InteractionInfo{}
	}

	loc := vp.ScreenToViewportCoord(p)
	if vp.Zoom > 0 {
		mask := vp.Zoom.Mask()
		loc.X &= mask
		loc.Y &= mask
	}

	s := m.sessions.Get(paint.Target{
		X:      loc.X,
		Y:      loc.Y,
		Width:  1,
		Height: 1,
		Zoom:   vp.Zoom,
	}, vp.Flags, vp.Rotation, m.store)
	defer m.sessions.Put(s)

	m.scene.Generate(s)
	paint.Arrange(s)
	return m.scanSession(s, filter)
}

// scanSession walks an arranged one-pixel session.
func (m *Manager) scanSession(s *paint.Session, filter paint.InteractionMask) InteractionInfo {
	var info InteractionInfo
	point := geom.ScreenXY{X: s.Target.X, Y: s.Target.Y}
	zoom := s.Target.Zoom

	accept := func(ps *paint.PaintStruct) bool {
		return filter.Accepts(ps.Interaction) &&
			PaintStructVisibility(ps, s.ViewFlags, m.world) == Visible
	}

	for head := s.Head; head != nil; head = head.NextQuadrantEntry {
		last := head
		for ps := head; ps != nil; ps = ps.Children {
			last = ps
			if sprite.InteractedWith(s.Store, ps.Image, ps.ScreenPos, point, zoom) && accept(ps) {
				info = interactionFrom(ps)
			}
		}

		// Attached images belong to the last struct of the chain.
		for a := last.Attached; a != nil; a = a.Next {
			origin := last.ScreenPos.Add(a.RelativePos)
			if sprite.InteractedWith(s.Store, a.Image, origin, point, zoom) && accept(last) {
				info = interactionFrom(last)
			}
		}
	}
	return info
}
