package geom

import "fmt"

// World space constants.
const (
	// TileSize is the edge length of one map tile in world units.
	TileSize = 32
	// ZStep is the world height of one land step.
	ZStep = 8
	// LocationNull marks an off-map location (e.g. a guest inside a ride).
	LocationNull = -32768
	// MaximumMapSizeTechnical is the largest map edge in tiles.
	MaximumMapSizeTechnical = 1001
	// MapMinimumXY is the smallest world coordinate a viewport may centre on.
	MapMinimumXY = -MaximumMapSizeTechnical
)

// CoordsXY is a world position on the ground plane.
type CoordsXY struct {
	X, Y int32
}

// CoordsXYZ is a world position with height.
type CoordsXYZ struct {
	X, Y, Z int32
}

// NullCoords is the sentinel off-map location.
var NullCoords = CoordsXYZ{X: LocationNull}

// XY drops the height.
func (c CoordsXYZ) XY() CoordsXY { return CoordsXY{c.X, c.Y} }

// IsNull reports whether c is the off-map sentinel.
func (c CoordsXYZ) IsNull() bool { return c.X == LocationNull }

// WithZ lifts a ground position to the given height.
func (c CoordsXY) WithZ(z int32) CoordsXYZ { return CoordsXYZ{c.X, c.Y, z} }

// Add returns c+o.
func (c CoordsXY) Add(o CoordsXY) CoordsXY { return CoordsXY{c.X + o.X, c.Y + o.Y} }

// Rotate rotates c by 90° per direction step around the world origin.
func (c CoordsXY) Rotate(direction uint8) CoordsXY {
	switch direction & 3 {
	case 1:
		return CoordsXY{c.Y, -c.X}
	case 2:
		return CoordsXY{-c.X, -c.Y}
	case 3:
		return CoordsXY{-c.Y, c.X}
	default:
		return c
	}
}

// Rotate rotates the ground component of c, keeping its height.
func (c CoordsXYZ) Rotate(direction uint8) CoordsXYZ {
	return c.XY().Rotate(direction).WithZ(c.Z)
}

// ToTileStart floors c to the origin corner of its tile.
func (c CoordsXY) ToTileStart() CoordsXY {
	return CoordsXY{Floor2(c.X, TileSize), Floor2(c.Y, TileSize)}
}

// ToTileCentre returns the centre of the tile containing c.
func (c CoordsXY) ToTileCentre() CoordsXY {
	return c.ToTileStart().Add(CoordsXY{TileSize / 2, TileSize / 2})
}

func (c CoordsXY) String() string  { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }
func (c CoordsXYZ) String() string { return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z) }

// FlipXAxis returns the rotation that undoes direction.
func FlipXAxis(direction uint8) uint8 {
	return (direction * 3) & 3
}

// Floor2 rounds v down to a multiple of the power-of-two n.
func Floor2(v, n int32) int32 {
	return v &^ (n - 1)
}
