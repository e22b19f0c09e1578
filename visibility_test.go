package isoview

import (
	"testing"

	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

func TestPaintStructVisibility(t *testing.T) {
	w := newFlatWorld(8)
	w.rides[1] = &world.Ride{ID: 1, HasTrack: true}
	w.rides[2] = &world.Ride{ID: 2, HasTrack: false}

	tracked := &world.Entity{Kind: world.EntityVehicle, Ride: 1}
	trackless := &world.Entity{Kind: world.EntityVehicle, Ride: 2}
	guest := &world.Entity{Kind: world.EntityGuest}
	staff := &world.Entity{Kind: world.EntityStaff}
	tree := &world.TileElement{Type: world.ElementSmallScenery, Scenery: &world.SceneryEntry{IsTree: true}}
	bench := &world.TileElement{Type: world.ElementSmallScenery, Scenery: &world.SceneryEntry{}}
	fence := &world.TileElement{Type: world.ElementWall, Scenery: &world.SceneryEntry{Tool: world.CursorFenceDown}}
	hedge := &world.TileElement{Type: world.ElementWall, Scenery: &world.SceneryEntry{Tool: world.CursorFlowerDown}}

	tests := []struct {
		name    string
		item    paint.InteractionItem
		entity  *world.Entity
		element *world.TileElement
		flags   paint.ViewFlags
		want    Visibility
	}{
		{"plain terrain", paint.InteractionTerrain, nil, nil, ^paint.ViewFlags(0), Visible},
		{"vehicle shown", paint.InteractionEntity, tracked, nil, 0, Visible},
		{"vehicle hidden", paint.InteractionEntity, tracked, nil, paint.FlagHideVehicles, Partial},
		{"vehicle invisible", paint.InteractionEntity, tracked, nil, paint.FlagHideVehicles | paint.FlagInvisibleVehicles, Hidden},
		{"tracked vehicle with rides hidden", paint.InteractionEntity, tracked, nil, paint.FlagHideRides, Visible},
		{"trackless vehicle with rides hidden", paint.InteractionEntity, trackless, nil, paint.FlagHideRides, Partial},
		{"trackless vehicle invisible", paint.InteractionEntity, trackless, nil, paint.FlagHideRides | paint.FlagInvisibleRides, Hidden},
		{"guest hidden", paint.InteractionEntity, guest, nil, paint.FlagHideGuests, Hidden},
		{"guest with staff hidden", paint.InteractionEntity, guest, nil, paint.FlagHideStaff, Visible},
		{"staff hidden", paint.InteractionEntity, staff, nil, paint.FlagHideStaff, Hidden},
		{"entity without data", paint.InteractionEntity, nil, nil, paint.FlagHideGuests, Visible},
		{"ride hidden", paint.InteractionRide, nil, nil, paint.FlagHideRides, Partial},
		{"ride invisible", paint.InteractionRide, nil, nil, paint.FlagHideRides | paint.FlagInvisibleRides, Hidden},
		{"path hidden", paint.InteractionFootpath, nil, nil, paint.FlagHidePaths, Partial},
		{"banner invisible", paint.InteractionBanner, nil, nil, paint.FlagHidePaths | paint.FlagInvisiblePaths, Hidden},
		{"path addition shown", paint.InteractionPathAddition, nil, nil, paint.FlagInvisiblePaths, Visible},
		{"tree with scenery hidden", paint.InteractionScenery, nil, tree, paint.FlagHideScenery, Visible},
		{"tree hidden", paint.InteractionScenery, nil, tree, paint.FlagHideVegetation, Partial},
		{"tree invisible", paint.InteractionScenery, nil, tree, paint.FlagHideVegetation | paint.FlagInvisibleVegetation, Hidden},
		{"bench hidden", paint.InteractionScenery, nil, bench, paint.FlagHideScenery, Partial},
		{"bench invisible", paint.InteractionLargeScenery, nil, bench, paint.FlagHideScenery | paint.FlagInvisibleScenery, Hidden},
		{"hedge counts as vegetation", paint.InteractionWall, nil, hedge, paint.FlagHideVegetation, Partial},
		{"wall underground", paint.InteractionWall, nil, nil, paint.FlagUndergroundInside, Partial},
		{"invisible wall underground", paint.InteractionWall, nil, fence, paint.FlagUndergroundInside | paint.FlagHideScenery | paint.FlagInvisibleScenery, Hidden},
		{"hidden wall underground", paint.InteractionWall, nil, fence, paint.FlagUndergroundInside | paint.FlagHideScenery, Partial},
		{"shown wall underground", paint.InteractionWall, nil, fence, paint.FlagUndergroundInside, Partial},
		{"scenery without element", paint.InteractionScenery, nil, nil, paint.FlagHideScenery, Visible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &paint.PaintStruct{Interaction: tt.item, Entity: tt.entity, Element: tt.element}
			if got := PaintStructVisibility(ps, tt.flags, w); got != tt.want {
				t.Errorf("PaintStructVisibility() = %v, want %v", got, tt.want)
			}
		})
	}
}
