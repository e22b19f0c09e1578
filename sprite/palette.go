package sprite

// Remap range: palette indices replaced by a colour ramp when an image is
// drawn with a primary colour.
const (
	RemapStart  = 202
	RemapShades = 12
)

// PaletteMap translates palette indices. A zero entry makes the source
// index transparent.
type PaletteMap []uint8

// IdentityPalette returns a map that leaves every index unchanged.
func IdentityPalette() PaletteMap {
	m := make(PaletteMap, 256)
	for i := range m {
		m[i] = uint8(i)
	}
	return m
}

// Store resolves image indices and colour remaps.
type Store interface {
	// Element returns the image header for index, or nil.
	Element(index uint32) *Element
	// PaletteMap returns the remap table for a colour.
	PaletteMap(colour uint8) (PaletteMap, bool)
	// Filter returns a whole-palette filter for see-through images.
	Filter(id uint8) (PaletteMap, bool)
}
