package sandbox

import "github.com/gogpu/isoview/sprite"

// Block geometry: a 64×32 diamond top over two side faces blockDepth deep.
const (
	tileWidth  = 64
	tileHeight = 32
	blockDepth = 48
)

// Remap slots used by the procedural sprites.
const (
	remapTop   = sprite.RemapStart + 8
	remapTop2  = sprite.RemapStart + 7
	remapLeft  = sprite.RemapStart + 3
	remapRight = sprite.RemapStart + 5
)

// FilterSeeThrough is the filter that partially hidden items are drawn
// through.
const FilterSeeThrough uint8 = 1

// Sprites is a procedurally drawn image set registered in one atlas.
type Sprites struct {
	Atlas *sprite.Atlas

	Block     sprite.ImageID
	Grid      sprite.ImageID
	Ownership sprite.ImageID
	Path      sprite.ImageID
	Track     sprite.ImageID
	Tree      sprite.ImageID
	Flowers   sprite.ImageID
	Bench     sprite.ImageID
	Peep      sprite.ImageID
	Car       sprite.ImageID
}

// Colours registered as remap ramps.
var remapColours = []sprite.Colour{
	sprite.ColourDarkGreen,
	sprite.ColourMossGreen,
	sprite.ColourLightBrown,
	sprite.ColourBrightRed,
	sprite.ColourLightBlue,
	sprite.ColourYellow,
	sprite.ColourBrightPink,
	sprite.ColourDarkPurple,
	sprite.ColourGrey,
}

// NewSprites draws every image into a fresh atlas.
func NewSprites() *Sprites {
	a := sprite.NewAtlas()
	for _, c := range remapColours {
		a.SetColourRamp(uint8(c), c.Ramp())
	}
	a.SetFilter(FilterSeeThrough, sprite.DarkenFilter(3))

	s := &Sprites{Atlas: a}
	s.Block = s.add(sprite.NewRLEElement(tileWidth, tileHeight+blockDepth, blockPixels(), -tileWidth/2, -tileHeight/2))
	s.Grid = s.add(sprite.NewBitmapElement(tileWidth, tileHeight, outlinePixels(sprite.ColourBlack.Shade(4)), -tileWidth/2, -tileHeight/2))
	s.Ownership = s.add(sprite.NewBitmapElement(tileWidth, tileHeight, outlinePixels(sprite.ColourYellow.Shade(9)), -tileWidth/2, -tileHeight/2))
	s.Path = s.add(sprite.NewRLEElement(tileWidth, tileHeight, insetPixels(6, sprite.ColourGrey.Shade(7), sprite.ColourGrey.Shade(5)), -tileWidth/2, -tileHeight/2))
	s.Track = s.add(sprite.NewRLEElement(tileWidth, tileHeight, insetPixels(12, sprite.ColourDarkBrown.Shade(4), 0), -tileWidth/2, -tileHeight/2))
	s.Flowers = s.add(sprite.NewRLEElement(tileWidth, tileHeight, insetPixels(10, sprite.ColourBrightPink.Shade(8), sprite.ColourDarkGreen.Shade(5)), -tileWidth/2, -tileHeight/2))
	s.Bench = s.add(sprite.NewRLEElement(16, 8, boxPixels(16, 8, sprite.ColourDarkBrown.Shade(6)), -8, -8))

	// Trees carry a half-size variant for zoomed out hit testing.
	s.add(sprite.NewRLEElement(12, 24, treePixels(12, 24), -6, -22))
	tree := sprite.NewRLEElement(24, 48, treePixels(24, 48), -12, -44)
	tree.Flags |= sprite.FlagHasZoomSprite
	tree.ZoomedOffset = 1
	s.Tree = s.add(tree)

	s.Peep = s.add(sprite.NewRLEElement(6, 14, peepPixels(), -3, -14))
	s.Car = s.add(sprite.NewBitmapElement(20, 12, boxPixels(20, 12, remapRight), -10, -10))
	return s
}

func (s *Sprites) add(e sprite.Element) sprite.ImageID {
	return sprite.NewImageID(s.Atlas.Add(e))
}

// diamond reports whether pixel (x, y) lies in the tileWidth×tileHeight
// diamond shrunk by inset pixels on every side.
func diamond(x, y, inset int) bool {
	dx := abs(2*x - (tileWidth - 1))
	dy := abs(2*y - (tileHeight - 1))
	return dx+2*dy <= tileWidth+1-4*inset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// blockPixels draws a chequered remappable top with shaded side faces.
func blockPixels() []uint8 {
	h := tileHeight + blockDepth
	pix := make([]uint8, tileWidth*h)
	for x := range tileWidth {
		bottom := -1
		for y := range tileHeight {
			if !diamond(x, y, 0) {
				continue
			}
			bottom = y
			top := uint8(remapTop)
			if (x/8+y/4)%2 == 0 {
				top = remapTop2
			}
			pix[y*tileWidth+x] = top
		}
		if bottom < 0 {
			continue
		}
		face := uint8(remapLeft)
		if x >= tileWidth/2 {
			face = remapRight
		}
		for y := bottom + 1; y <= bottom+blockDepth && y < h; y++ {
			pix[y*tileWidth+x] = face
		}
	}
	return pix
}

// outlinePixels draws the border of the tile diamond.
func outlinePixels(index uint8) []uint8 {
	pix := make([]uint8, tileWidth*tileHeight)
	for y := range tileHeight {
		for x := range tileWidth {
			if diamond(x, y, 0) && !diamond(x, y, 1) {
				pix[y*tileWidth+x] = index
			}
		}
	}
	return pix
}

// insetPixels fills a shrunken diamond with fill and edges it with edge.
// A zero fill leaves only the edge ring.
func insetPixels(inset int, edge, fill uint8) []uint8 {
	pix := make([]uint8, tileWidth*tileHeight)
	for y := range tileHeight {
		for x := range tileWidth {
			switch {
			case !diamond(x, y, inset):
			case !diamond(x, y, inset+1):
				pix[y*tileWidth+x] = edge
			default:
				pix[y*tileWidth+x] = fill
			}
		}
	}
	return pix
}

func boxPixels(w, h int, index uint8) []uint8 {
	pix := make([]uint8, w*h)
	for i := range pix {
		pix[i] = index
	}
	return pix
}

// treePixels draws a round canopy on a trunk.
func treePixels(w, h int) []uint8 {
	pix := make([]uint8, w*h)
	trunk := sprite.ColourDarkBrown.Shade(5)
	r := w / 2
	for y := range h {
		for x := range w {
			dx, dy := 2*x-(w-1), 2*y-(2*r-1)
			switch {
			case dx*dx+dy*dy <= 4*r*r:
				shade := 8 - (dx+dy)/(r+1)
				pix[y*w+x] = sprite.ColourBrightGreen.Shade(shade)
			case y >= 2*r && abs(dx) <= w/6:
				pix[y*w+x] = trunk
			}
		}
	}
	return pix
}

// peepPixels draws a head over a remappable shirt and dark trousers.
func peepPixels() []uint8 {
	const w, h = 6, 14
	pix := make([]uint8, w*h)
	skin := sprite.ColourLightBrown.Shade(9)
	legs := sprite.ColourGrey.Shade(3)
	for y := range h {
		for x := range w {
			var c uint8
			switch {
			case y < 4 && x >= 1 && x <= 4:
				c = skin
			case y >= 4 && y < 9:
				c = remapTop
			case y >= 9 && x != 2 && x != 3:
				c = legs
			}
			pix[y*w+x] = c
		}
	}
	return pix
}
