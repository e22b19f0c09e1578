package isoview

import (
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

// Visibility is how a paint struct is shown under a set of view flags.
type Visibility uint8

const (
	Visible Visibility = iota
	// Partial structs are drawn see-through and cannot be picked.
	Partial
	Hidden
)

func (v Visibility) String() string {
	switch v {
	case Partial:
		return "partial"
	case Hidden:
		return "hidden"
	default:
		return "visible"
	}
}

// hiddenAs picks between Hidden and Partial for a hidden category.
func hiddenAs(flags, invisible paint.ViewFlags) Visibility {
	if flags.Has(invisible) {
		return Hidden
	}
	return Partial
}

// PaintStructVisibility classifies ps under flags. w resolves the ride of a
// vehicle; rides without track hide with the other rides.
func PaintStructVisibility(ps *paint.PaintStruct, flags paint.ViewFlags, w world.World) Visibility {
	switch ps.Interaction {
	case paint.InteractionEntity:
		if ps.Entity == nil {
			break
		}
		switch ps.Entity.Kind {
		case world.EntityVehicle:
			if flags.Has(paint.FlagHideVehicles) {
				return hiddenAs(flags, paint.FlagInvisibleVehicles)
			}
			if flags.Has(paint.FlagHideRides) {
				if r, ok := w.Ride(ps.Entity.Ride); ok && !r.HasTrack {
					return hiddenAs(flags, paint.FlagInvisibleRides)
				}
			}
		case world.EntityGuest:
			if flags.Has(paint.FlagHideGuests) {
				return Hidden
			}
		case world.EntityStaff:
			if flags.Has(paint.FlagHideStaff) {
				return Hidden
			}
		}

	case paint.InteractionRide:
		if flags.Has(paint.FlagHideRides) {
			return hiddenAs(flags, paint.FlagInvisibleRides)
		}

	case paint.InteractionFootpath, paint.InteractionPathAddition, paint.InteractionBanner:
		if flags.Has(paint.FlagHidePaths) {
			return hiddenAs(flags, paint.FlagInvisiblePaths)
		}

	case paint.InteractionScenery, paint.InteractionLargeScenery, paint.InteractionWall:
		if ps.Element != nil {
			if ps.Element.IsVegetation() {
				if flags.Has(paint.FlagHideVegetation) {
					return hiddenAs(flags, paint.FlagInvisibleVegetation)
				}
			} else if flags.Has(paint.FlagHideScenery) {
				return hiddenAs(flags, paint.FlagInvisibleScenery)
			}
		}
		if ps.Interaction == paint.InteractionWall && flags.Has(paint.FlagUndergroundInside) {
			return Partial
		}
	}
	return Visible
}
