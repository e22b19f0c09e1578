package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

const (
	// undergroundMargin is how far below the terrain surface a followed
	// entity must be before the view switches to underground.
	undergroundMargin = 16
	// overallViewLift raises the ride overview focus above the terrain.
	overallViewLift = 4 * geom.ZStep
	// scrollDivisor sets the easing speed of a scroll to a location: each
	// update covers 1/scrollDivisor of the remaining distance, rounded up.
	scrollDivisor = 8
)

// UpdateAll runs UpdatePosition for every window with a viewport.
func (m *Manager) UpdateAll() {
	for _, w := range m.windows.Windows() {
		if w.Viewport != nil {
			m.UpdatePosition(w)
		}
	}
}

// UpdatePosition advances w's viewport by one tick.
//
// A smart-followed entity is first resolved into a focus and target. A
// window with a target entity then centres on it. Otherwise the saved view
// position is clamped to the map and the viewport moves to it, easing in
// while WindowScrollingToLocation is set.
func (m *Manager) UpdatePosition(w *Window) {
	vp := w.Viewport
	if vp == nil {
		return
	}

	if !w.SmartFollowEntity.IsNull() {
		m.updateSmartFollow(w)
	}

	if !w.TargetEntity.IsNull() {
		m.updateFollow(w)
		return
	}

	m.setUnderground(w, false)

	mid := w.SavedViewPos.Add(geom.ScreenXY{X: vp.ViewWidth / 2, Y: vp.ViewHeight / 2})
	loc := geom.ViewportPosToMapPos(mid, 0, vp.Rotation)

	limit := m.world.MapSizeMinus2()
	clamped := geom.CoordsXY{
		X: min(max(loc.X, geom.MapMinimumXY), limit.X),
		Y: min(max(loc.Y, geom.MapMinimumXY), limit.Y),
	}
	if clamped != loc {
		if p, ok := m.Centre2D(clamped.WithZ(0), vp); ok {
			w.SavedViewPos = p
		}
	}

	to := w.SavedViewPos
	if w.Flags&WindowScrollingToLocation != 0 {
		step := geom.ScreenXY{
			X: scrollStep(w.SavedViewPos.X - vp.ViewPos.X),
			Y: scrollStep(w.SavedViewPos.Y - vp.ViewPos.Y),
		}
		if step == (geom.ScreenXY{}) {
			w.Flags &^= WindowScrollingToLocation
		}
		to = vp.ViewPos.Add(step)
	}
	m.Move(w, vp, to)
}

// scrollStep returns ceil(|d|/scrollDivisor) with the sign of d.
func scrollStep(d int32) int32 {
	if d < 0 {
		return -((-d + scrollDivisor - 1) / scrollDivisor)
	}
	return (d + scrollDivisor - 1) / scrollDivisor
}

// ScrollTo starts easing w's viewport towards the view position that centres
// loc.
func (m *Manager) ScrollTo(w *Window, loc geom.CoordsXYZ) bool {
	if w.Viewport == nil {
		return false
	}
	p, ok := m.Centre2D(loc, w.Viewport)
	if !ok {
		return false
	}
	w.SavedViewPos = p
	w.Flags |= WindowScrollingToLocation
	return true
}

// updateFollow centres w on its target entity.
func (m *Manager) updateFollow(w *Window) {
	e, ok := m.world.Entity(w.TargetEntity)
	if !ok {
		Logger().Warn("isoview: followed entity not found", "entity", w.TargetEntity)
		return
	}

	if !m.game.TitleDemo() {
		height := m.world.TileElementHeight(e.Loc.XY()) - undergroundMargin
		m.setUnderground(w, e.Loc.Z < height)
	}

	if p, ok := m.Centre2D(e.Loc, w.Viewport); ok {
		w.SavedViewPos = p
		m.Move(w, w.Viewport, p)
	}
}

// setUnderground switches the underground view of w. Only secondary windows
// and a main window in smart-follow mode switch, and w is repainted only
// when the flag actually changes.
func (m *Manager) setUnderground(w *Window, underground bool) {
	if w.IsMain() && w.SmartFollowEntity.IsNull() {
		return
	}
	vp := w.Viewport
	was := vp.Flags.Has(paint.FlagUndergroundInside)
	if underground {
		vp.Flags |= paint.FlagUndergroundInside
	} else {
		vp.Flags &^= paint.FlagUndergroundInside
	}
	if was != underground {
		m.windows.Invalidate(w)
	}
}

// clearFollow drops every followed entity and the focus.
func clearFollow(w *Window) {
	w.SmartFollowEntity = world.NullEntity
	w.TargetEntity = world.NullEntity
	w.Focus = Focus{}
}

// updateSmartFollow resolves the smart-followed entity of w into a focus and
// target entity.
func (m *Manager) updateSmartFollow(w *Window) {
	e, ok := m.world.Entity(w.SmartFollowEntity)
	if !ok || e.Kind == world.EntityNull {
		w.SmartFollowEntity = world.NullEntity
		w.TargetEntity = world.NullEntity
		return
	}

	switch e.Kind {
	case world.EntityGuest:
		m.smartFollowGuest(w, e)
	case world.EntityStaff:
		if e.State == world.PeepPicked {
			clearFollow(w)
			return
		}
		w.Focus = EntityFocus(w.SmartFollowEntity)
		w.TargetEntity = w.SmartFollowEntity
	default:
		w.Focus = EntityFocus(w.SmartFollowEntity)
		w.TargetEntity = w.SmartFollowEntity
	}
}

// smartFollowGuest follows a guest, switching to the car they ride in and to
// the ride's overview while they are off the map.
func (m *Manager) smartFollowGuest(w *Window, g *world.Entity) {
	if g.State == world.PeepPicked {
		clearFollow(w)
		return
	}

	focus := EntityFocus(g.ID)
	w.TargetEntity = g.ID

	overall := true
	riding := g.State == world.PeepOnRide || g.State == world.PeepEnteringRide ||
		(g.State == world.PeepLeavingRide && g.Loc.IsNull())
	if riding {
		if car, ok := m.guestCar(g); ok {
			focus = EntityFocus(car.ID)
			w.TargetEntity = car.ID
			overall = false
		}
	}

	if g.Loc.IsNull() && overall {
		if r, ok := m.world.Ride(g.CurrentRide); ok {
			xy := r.OverallView.ToTileCentre()
			focus = CoordinateFocus(xy.WithZ(m.world.TileElementHeight(xy) + overallViewLift))
			w.TargetEntity = world.NullEntity
		}
	}
	w.Focus = focus
}

// guestCar returns the car a riding guest sits in.
func (m *Manager) guestCar(g *world.Entity) (*world.Entity, bool) {
	r, ok := m.world.Ride(g.CurrentRide)
	if !ok || !r.OnTrack || int(g.CurrentTrain) >= len(r.Vehicles) {
		return nil, false
	}
	train := r.Vehicles[g.CurrentTrain]
	if _, ok := m.world.Entity(train); !ok {
		return nil, false
	}
	return m.world.Car(train, g.CurrentCar)
}
