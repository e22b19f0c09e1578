package isoview

import (
	"testing"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

func TestScrollStep(t *testing.T) {
	tests := []struct {
		d, want int32
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{-1, -1},
		{-9, -2},
		{320, 40},
	}
	for _, tt := range tests {
		if got := scrollStep(tt.d); got != tt.want {
			t.Errorf("scrollStep(%d) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestUpdatePosition_ScrollConverges(t *testing.T) {
	h := newHarness()
	w := h.mainWindow(geom.CoordsXYZ{})
	if !h.m.ScrollTo(w, geom.CoordsXYZ{X: 320, Y: 320}) {
		t.Fatal("ScrollTo failed")
	}
	target := w.SavedViewPos

	const maxTicks = 64
	ticks := 0
	for w.Flags&WindowScrollingToLocation != 0 {
		if ticks == maxTicks {
			t.Fatalf("still scrolling after %d ticks, at %v heading to %v", ticks, w.Viewport.ViewPos, target)
		}
		h.m.UpdatePosition(w)
		ticks++
	}
	if w.Viewport.ViewPos != target {
		t.Errorf("ViewPos = %v, want %v", w.Viewport.ViewPos, target)
	}
	t.Logf("converged in %d ticks", ticks)
}

func TestUpdatePosition_ClampsToMap(t *testing.T) {
	h := newHarness()
	w := h.mainWindow(geom.CoordsXYZ{})
	vp := w.Viewport
	w.SavedViewPos, _ = h.m.Centre2D(geom.CoordsXYZ{X: -5000, Y: -5000}, vp)

	h.m.UpdatePosition(w)

	want, _ := h.m.Centre2D(geom.CoordsXYZ{X: geom.MapMinimumXY, Y: geom.MapMinimumXY}, vp)
	if w.SavedViewPos != want || vp.ViewPos != want {
		t.Errorf("saved %v view %v, want both %v", w.SavedViewPos, vp.ViewPos, want)
	}
}

func TestUpdatePosition_FollowsTarget(t *testing.T) {
	h := newHarness()
	duck := h.world.add(&world.Entity{ID: 5, Kind: world.EntityDuck, Loc: geom.CoordsXYZ{X: 640, Y: 640, Z: -40}})
	w := h.window(geom.ScreenXY{X: 10, Y: 10}, 200, 150, geom.CoordsXYZ{})
	w.TargetEntity = duck.ID

	h.m.UpdatePosition(w)

	want, _ := h.m.Centre2D(duck.Loc, w.Viewport)
	if w.SavedViewPos != want || w.Viewport.ViewPos != want {
		t.Errorf("saved %v view %v, want %v", w.SavedViewPos, w.Viewport.ViewPos, want)
	}
	if !w.Viewport.Flags.Has(paint.FlagUndergroundInside) {
		t.Error("entity below ground should switch to underground view")
	}
	if len(h.windows.invalidated) != 1 {
		t.Errorf("invalidated %d times, want 1", len(h.windows.invalidated))
	}

	h.m.UpdatePosition(w)
	if len(h.windows.invalidated) != 1 {
		t.Errorf("no transition should not repaint, got %d", len(h.windows.invalidated))
	}

	duck.Loc.Z = 0
	h.m.UpdatePosition(w)
	if w.Viewport.Flags.Has(paint.FlagUndergroundInside) {
		t.Error("entity above ground should leave underground view")
	}
	if len(h.windows.invalidated) != 2 {
		t.Errorf("invalidated %d times, want 2", len(h.windows.invalidated))
	}
}

func TestUpdatePosition_MainWindowKeepsUnderground(t *testing.T) {
	h := newHarness()
	h.world.add(&world.Entity{ID: 5, Kind: world.EntityDuck, Loc: geom.CoordsXYZ{X: 64, Y: 64, Z: -100}})
	w := h.mainWindow(geom.CoordsXYZ{})
	w.TargetEntity = 5

	h.m.UpdatePosition(w)

	if w.Viewport.Flags.Has(paint.FlagUndergroundInside) {
		t.Error("main window without smart follow must not toggle underground")
	}
}

func TestUpdatePosition_TitleDemoKeepsUnderground(t *testing.T) {
	h := newHarness(WithGameFlags(fixedGame{titleDemo: true}))
	h.world.add(&world.Entity{ID: 5, Kind: world.EntityDuck, Loc: geom.CoordsXYZ{X: 64, Y: 64, Z: -100}})
	w := h.window(geom.ScreenXY{}, 100, 100, geom.CoordsXYZ{})
	w.TargetEntity = 5

	h.m.UpdatePosition(w)

	if w.Viewport.Flags.Has(paint.FlagUndergroundInside) {
		t.Error("title demo must not toggle underground")
	}
}

func TestUpdatePosition_SmartFollow(t *testing.T) {
	const (
		guestID world.EntityID = 20
		trainID world.EntityID = 10
		carID   world.EntityID = 11
		staffID world.EntityID = 30
		vehicle world.EntityID = 40
	)
	overview := geom.CoordsXY{X: 96, Y: 130}

	setup := func(guest world.Entity, onTrack bool) *harness {
		h := newHarness()
		h.world.height = 8
		h.world.rides[1] = &world.Ride{
			ID: 1, OnTrack: onTrack, HasTrack: true,
			Vehicles: []world.EntityID{trainID}, OverallView: overview,
		}
		h.world.add(&world.Entity{ID: trainID, Kind: world.EntityVehicle, Ride: 1, Loc: geom.CoordsXYZ{X: 100, Y: 100}})
		h.world.add(&world.Entity{ID: carID, Kind: world.EntityVehicle, Ride: 1, Loc: geom.CoordsXYZ{X: 120, Y: 100}})
		h.world.cars[trainID] = []world.EntityID{trainID, carID}
		h.world.add(&world.Entity{ID: staffID, Kind: world.EntityStaff, State: world.PeepPicked})
		h.world.add(&world.Entity{ID: vehicle, Kind: world.EntityVehicle, Loc: geom.CoordsXYZ{X: 32, Y: 32}})
		guest.ID = guestID
		guest.Kind = world.EntityGuest
		guest.CurrentRide = 1
		guest.CurrentCar = 1
		h.world.add(&guest)
		return h
	}

	tests := []struct {
		name       string
		guest      world.Entity
		onTrack    bool
		follow     world.EntityID
		wantSmart  world.EntityID
		wantTarget world.EntityID
		wantFocus  Focus
	}{
		{
			name:       "walking guest",
			guest:      world.Entity{State: world.PeepWalking, Loc: geom.CoordsXYZ{X: 64, Y: 64}},
			follow:     guestID,
			wantSmart:  guestID,
			wantTarget: guestID,
			wantFocus:  EntityFocus(guestID),
		},
		{
			name:       "picked guest",
			guest:      world.Entity{State: world.PeepPicked},
			follow:     guestID,
			wantSmart:  world.NullEntity,
			wantTarget: world.NullEntity,
			wantFocus:  Focus{},
		},
		{
			name:       "guest on ride",
			guest:      world.Entity{State: world.PeepOnRide, Loc: geom.NullCoords},
			onTrack:    true,
			follow:     guestID,
			wantSmart:  guestID,
			wantTarget: carID,
			wantFocus:  EntityFocus(carID),
		},
		{
			name:       "guest in ride off track",
			guest:      world.Entity{State: world.PeepLeavingRide, Loc: geom.NullCoords},
			follow:     guestID,
			wantSmart:  guestID,
			wantTarget: world.NullEntity,
			wantFocus:  CoordinateFocus(geom.CoordsXYZ{X: 112, Y: 144, Z: 8 + 32}),
		},
		{
			name:       "picked staff",
			guest:      world.Entity{State: world.PeepWalking},
			follow:     staffID,
			wantSmart:  world.NullEntity,
			wantTarget: world.NullEntity,
			wantFocus:  Focus{},
		},
		{
			name:       "vehicle",
			guest:      world.Entity{State: world.PeepWalking},
			follow:     vehicle,
			wantSmart:  vehicle,
			wantTarget: vehicle,
			wantFocus:  EntityFocus(vehicle),
		},
		{
			name:       "vanished",
			guest:      world.Entity{State: world.PeepWalking},
			follow:     99,
			wantSmart:  world.NullEntity,
			wantTarget: world.NullEntity,
			wantFocus:  CoordinateFocus(geom.CoordsXYZ{X: 1}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := setup(tt.guest, tt.onTrack)
			w := h.window(geom.ScreenXY{}, 200, 200, geom.CoordsXYZ{})
			w.Focus = CoordinateFocus(geom.CoordsXYZ{X: 1})
			w.SmartFollowEntity = tt.follow

			h.m.UpdatePosition(w)

			if w.SmartFollowEntity != tt.wantSmart {
				t.Errorf("SmartFollowEntity = %d, want %d", w.SmartFollowEntity, tt.wantSmart)
			}
			if w.TargetEntity != tt.wantTarget {
				t.Errorf("TargetEntity = %d, want %d", w.TargetEntity, tt.wantTarget)
			}
			if w.Focus != tt.wantFocus {
				t.Errorf("Focus = %v, want %v", w.Focus, tt.wantFocus)
			}
		})
	}
}

func TestUpdateAll(t *testing.T) {
	h := newHarness()
	a := h.window(geom.ScreenXY{}, 100, 100, geom.CoordsXYZ{})
	b := h.window(geom.ScreenXY{X: 200}, 100, 100, geom.CoordsXYZ{})
	h.windows.push(NewWindow(WindowClassOther, geom.ScreenXY{X: 400}, 50, 50))

	for _, w := range []*Window{a, b} {
		h.m.ScrollTo(w, geom.CoordsXYZ{X: 64, Y: 64})
	}
	h.m.UpdateAll()

	for i, w := range []*Window{a, b} {
		if w.Viewport.ViewPos == (geom.ScreenXY{X: -50, Y: -50}) {
			t.Errorf("window %d did not move", i)
		}
	}
}
