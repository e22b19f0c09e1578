package sprite

import "encoding/binary"

// ElementFlags describes the storage format of an Element.
type ElementFlags uint16

const (
	// FlagHasTransparency marks bitmap data where index 0 is see-through.
	FlagHasTransparency ElementFlags = 1 << iota
	// FlagFormatUnsupported marks legacy data that cannot be hit-tested.
	FlagFormatUnsupported
	// FlagRLE marks run-length encoded data.
	FlagRLE
	// FlagPalette marks palette definitions rather than pixels.
	FlagPalette
	// FlagHasZoomSprite marks images with a pre-scaled variant for zoomed
	// out views, located ZoomedOffset indices earlier.
	FlagHasZoomSprite
	// FlagNoZoomDraw marks images that are skipped when zoomed out.
	FlagNoZoomDraw
)

// Element is the header and pixel data of one image.
type Element struct {
	Data         []byte
	Width        int16
	Height       int16
	XOffset      int16
	YOffset      int16
	Flags        ElementFlags
	ZoomedOffset uint32
}

// Has reports whether all of f are set.
func (e *Element) Has(f ElementFlags) bool { return e.Flags&f == f }

// DecodeRow expands row y into dst, which must hold Width bytes.
// Transparent pixels decode as 0.
func (e *Element) DecodeRow(y int, dst []uint8) []uint8 {
	w := int(e.Width)
	dst = dst[:w]
	if !e.Has(FlagRLE) {
		copy(dst, e.Data[y*w:(y+1)*w])
		return dst
	}

	clear(dst)
	p := int(binary.LittleEndian.Uint16(e.Data[2*y:]))
	for {
		count := int(e.Data[p])
		start := int(e.Data[p+1])
		p += 2
		n := count & 0x7F
		copy(dst[start:start+n], e.Data[p:p+n])
		p += n
		if count&0x80 != 0 {
			return dst
		}
	}
}

// NewBitmapElement wraps raw indexed pixels.
func NewBitmapElement(w, h int, pix []uint8, xOffset, yOffset int16) Element {
	return Element{
		Data:    pix,
		Width:   int16(w),
		Height:  int16(h),
		XOffset: xOffset,
		YOffset: yOffset,
		Flags:   FlagHasTransparency,
	}
}

// NewRLEElement encodes raw indexed pixels.
func NewRLEElement(w, h int, pix []uint8, xOffset, yOffset int16) Element {
	return Element{
		Data:    EncodeRLE(w, h, pix),
		Width:   int16(w),
		Height:  int16(h),
		XOffset: xOffset,
		YOffset: yOffset,
		Flags:   FlagRLE,
	}
}
