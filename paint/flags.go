package paint

// ViewFlags are the per-viewport display switches consulted while painting
// and picking.
type ViewFlags uint32

const (
	FlagUndergroundInside ViewFlags = 1 << iota
	FlagHideBase
	FlagHideVertical
	FlagSoundOn
	FlagLandOwnership
	FlagConstructionRights
	FlagHideEntities
	FlagClipView
	FlagHighlightPathIssues
	FlagTransparentBackground
	FlagLandHeights
	FlagTrackHeights
	FlagPathHeights
	FlagGridlines
	FlagIndependentRotation
	FlagRenderingInhibited
	FlagHideRides
	FlagHideVehicles
	FlagHideVegetation
	FlagHideScenery
	FlagHidePaths
	FlagHideSupports
	FlagHideGuests
	FlagHideStaff
	FlagInvisibleRides
	FlagInvisibleVehicles
	FlagInvisibleVegetation
	FlagInvisibleScenery
	FlagInvisiblePaths
	FlagInvisibleSupports
)

// Has reports whether any of mask is set.
func (f ViewFlags) Has(mask ViewFlags) bool { return f&mask != 0 }

// needsClear lists the flags that expose the void behind the world.
const needsClear = FlagHideVertical | FlagHideBase | FlagUndergroundInside | FlagClipView
