package world

import "github.com/gogpu/isoview/geom"

// ElementType is the kind of a tile element.
type ElementType uint8

const (
	ElementSurface ElementType = iota
	ElementPath
	ElementTrack
	ElementSmallScenery
	ElementEntrance
	ElementWall
	ElementLargeScenery
	ElementBanner
)

var elementTypeNames = [...]string{
	"surface", "path", "track", "small-scenery", "entrance", "wall", "large-scenery", "banner",
}

func (t ElementType) String() string {
	if int(t) < len(elementTypeNames) {
		return elementTypeNames[t]
	}
	return "unknown"
}

// Cursor is the tool cursor a scenery object shows when placed.
type Cursor uint8

const (
	CursorArrow Cursor = iota
	CursorTreeDown
	CursorFlowerDown
	CursorStatueDown
	CursorFenceDown
)

// IsVegetation reports whether c is one of the planting cursors.
func (c Cursor) IsVegetation() bool {
	return c == CursorTreeDown || c == CursorFlowerDown
}

// SceneryEntry is the object definition behind a scenery element.
type SceneryEntry struct {
	Name   string
	IsTree bool
	Tool   Cursor
}

// TileElement is a single element stacked on a map tile.
type TileElement struct {
	Type ElementType
	Loc  geom.CoordsXYZ
	// Scenery is set for small scenery, large scenery and walls.
	Scenery *SceneryEntry
}

// IsVegetation reports whether the element is a tree, shrub or flower bed.
// Small scenery also counts when flagged as a tree.
func (e *TileElement) IsVegetation() bool {
	if e == nil || e.Scenery == nil {
		return false
	}
	switch e.Type {
	case ElementSmallScenery:
		return e.Scenery.IsTree || e.Scenery.Tool.IsVegetation()
	case ElementLargeScenery, ElementWall:
		return e.Scenery.Tool.IsVegetation()
	default:
		return false
	}
}
