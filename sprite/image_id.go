package sprite

import "fmt"

type imageFlags uint8

const (
	imagePrimary imageFlags = 1 << iota
	imageSecondary
	imageRemap
	imageTransparent
)

// ImageID references an image in a Store together with its colour remaps.
type ImageID struct {
	index     uint32
	primary   uint8
	secondary uint8
	flags     imageFlags
}

// NewImageID returns an unremapped reference to image index.
func NewImageID(index uint32) ImageID {
	return ImageID{index: index}
}

// Index returns the image index.
func (id ImageID) Index() uint32 { return id.index }

// WithIndex returns id pointing at a different image with the same remaps.
func (id ImageID) WithIndex(index uint32) ImageID {
	id.index = index
	return id
}

// WithPrimary sets the primary colour remap.
func (id ImageID) WithPrimary(colour uint8) ImageID {
	id.primary = colour
	id.flags |= imagePrimary
	return id
}

// WithSecondary sets the secondary colour remap.
func (id ImageID) WithSecondary(colour uint8) ImageID {
	id.secondary = colour
	id.flags |= imageSecondary
	return id
}

// WithRemap applies a single palette remap. It shares storage with the
// primary colour.
func (id ImageID) WithRemap(colour uint8) ImageID {
	id.primary = colour
	id.flags |= imageRemap
	return id
}

// WithTransparency draws id as a see-through shape: each opaque source pixel
// passes the pixel beneath it through the store's filter instead of being
// copied. It replaces any colour remap.
func (id ImageID) WithTransparency(filter uint8) ImageID {
	id.primary = filter
	id.flags = imageTransparent
	return id
}

// IsTransparent reports whether id is drawn through a filter.
func (id ImageID) IsTransparent() bool { return id.flags&imageTransparent != 0 }

// Transparency returns the filter of a see-through image.
func (id ImageID) Transparency() uint8 { return id.primary }

func (id ImageID) HasPrimary() bool   { return id.flags&imagePrimary != 0 }
func (id ImageID) HasSecondary() bool { return id.flags&imageSecondary != 0 }
func (id ImageID) IsRemap() bool      { return id.flags&imageRemap != 0 }
func (id ImageID) Primary() uint8     { return id.primary }
func (id ImageID) Secondary() uint8   { return id.secondary }
func (id ImageID) Remap() uint8       { return id.primary }

// RemapColour returns the colour whose palette map should be applied when
// drawing or hit-testing id, and whether any remap applies.
func (id ImageID) RemapColour() (uint8, bool) {
	if id.IsTransparent() || (!id.HasPrimary() && !id.IsRemap()) {
		return 0, false
	}
	if id.HasSecondary() {
		return id.Primary(), true
	}
	return id.Remap(), true
}

func (id ImageID) String() string {
	return fmt.Sprintf("image#%d", id.index)
}
