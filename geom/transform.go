package geom

// heightIterations is the number of fixed-point rounds used to resolve a
// screen point against terrain.
const heightIterations = 6

// Translate3DTo2D projects a world position onto the isometric view plane for
// the given rotation.
func Translate3DTo2D(rotation uint8, pos CoordsXYZ) ScreenXY {
	r := pos.XY().Rotate(rotation)
	// Arithmetic shift keeps negative sums flooring consistently.
	return ScreenXY{r.Y - r.X, ((r.X + r.Y) >> 1) - pos.Z}
}

// ViewportPosToMapPos inverts Translate3DTo2D for a view position assumed to
// lie at world height z.
func ViewportPosToMapPos(p ScreenXY, z int32, rotation uint8) CoordsXY {
	ret := CoordsXY{p.Y - p.X/2 + z, p.Y + p.X/2 + z}
	return ret.Rotate(FlipXAxis(rotation))
}

// HeightFunc reports the terrain height at a world position.
type HeightFunc func(CoordsXY) int32

// edgeCorrection nudges positions back onto the map when a tall column
// projects past the far corner, one vector per rotation.
var edgeCorrection = [4]CoordsXY{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

// AdjustForMapHeight resolves a view position to the terrain point under it.
// Height depends on position and position on height, so the inverse
// transform is iterated a fixed number of times instead of solved.
//
// mapSizeMinus2 is the largest valid world coordinate on each axis.
func AdjustForMapHeight(p ScreenXY, rotation uint8, height HeightFunc, mapSizeMinus2 CoordsXY) CoordsXYZ {
	var (
		z   int32
		pos CoordsXY
	)
	for range heightIterations {
		pos = ViewportPosToMapPos(p, z, rotation)
		z = height(pos)

		if pos.X > mapSizeMinus2.X && pos.Y > mapSizeMinus2.Y {
			c := edgeCorrection[rotation&3]
			pos.X += c.X * z
			pos.Y += c.Y * z
		}
	}
	return pos.WithZ(z)
}

// TileQuadrant returns which quarter (0-3) of its tile c falls in.
func TileQuadrant(c CoordsXY) uint8 {
	subX := c.X & (TileSize - 1)
	subY := c.Y & (TileSize - 1)
	if subX < 16 {
		if subY < 16 {
			return 1
		}
		return 0
	}
	if subY < 16 {
		return 2
	}
	return 3
}

// TileSide returns which edge (0-3) of its tile c is closest to.
func TileSide(c CoordsXY) uint8 {
	subX := c.X & (TileSize - 1)
	subY := c.Y & (TileSize - 1)
	if subX < subY {
		if subX+subY < TileSize {
			return 0
		}
		return 1
	}
	if subX+subY < TileSize {
		return 3
	}
	return 2
}

// DirectionCentre is returned by TileDirection for points near the middle of
// a tile.
const DirectionCentre = 4

// TileDirection classifies c as the tile centre or one of four edges.
func TileDirection(c CoordsXY) uint8 {
	dx := abs32(c.X % TileSize)
	dy := abs32(c.Y % TileSize)
	if dx > 8 && dx < 24 && dy > 8 && dy < 24 {
		return DirectionCentre
	}

	modX := c.X & (TileSize - 1)
	modY := c.Y & (TileSize - 1)
	switch {
	case modX <= 16 && modY < 16:
		return 2
	case modX <= 16:
		return 3
	case modY < 16:
		return 1
	default:
		return 0
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
