package paint

// InteractionItem classifies what a paint struct represents for picking.
type InteractionItem uint8

const (
	InteractionNone InteractionItem = iota
	InteractionTerrain
	InteractionEntity
	InteractionRide
	InteractionWater
	InteractionScenery
	InteractionFootpath
	InteractionPathAddition
	InteractionParkEntrance
	InteractionWall
	InteractionLargeScenery
	InteractionLabel
	InteractionBanner
)

var interactionNames = [...]string{
	"none", "terrain", "entity", "ride", "water", "scenery", "footpath",
	"path-addition", "park-entrance", "wall", "large-scenery", "label", "banner",
}

func (i InteractionItem) String() string {
	if int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return "unknown"
}

// Mask returns the filter bit for i.
func (i InteractionItem) Mask() InteractionMask { return 1 << i }

// InteractionMask is a set of InteractionItems used to filter picking.
type InteractionMask uint16

// InteractionAll accepts every pickable item.
const InteractionAll InteractionMask = 0xFFFF

// Accepts reports whether item may be returned by a pick under this filter.
// None and Label are never pickable, nor is anything past Banner.
func (m InteractionMask) Accepts(item InteractionItem) bool {
	if item == InteractionNone || item == InteractionLabel || item > InteractionBanner {
		return false
	}
	return m&item.Mask() != 0
}
