package sprite

import "github.com/gogpu/isoview/geom"

type imageType uint8

const (
	imageTypeDefault imageType = iota
	imageTypeRemap
	imageTypeTransparent
)

// InteractedWith reports whether the image drawn at origin covers point with
// an opaque pixel. Both positions are in view units; zoom is the zoom level
// of the session that produced them.
//
// Zoomed out views test the pre-scaled variant of the image when one exists,
// halving both positions per level.
func InteractedWith(store Store, id ImageID, origin, point geom.ScreenXY, zoom geom.Zoom) bool {
	palette := IdentityPalette()
	kind := imageTypeDefault
	if colour, ok := id.RemapColour(); ok {
		kind = imageTypeRemap
		if pm, ok := store.PaletteMap(colour); ok {
			palette = pm
		}
	} else if id.IsTransparent() {
		kind = imageTypeTransparent
	}

	el := store.Element(id.Index())
	if el == nil {
		return false
	}

	if zoom > 0 {
		if el.Has(FlagNoZoomDraw) {
			return false
		}
		for el.Has(FlagHasZoomSprite) && zoom > 0 {
			id = id.WithIndex(id.Index() - el.ZoomedOffset)
			el = store.Element(id.Index())
			if el == nil || el.Has(FlagNoZoomDraw) {
				return false
			}
			zoom--
			point.X >>= 1
			point.Y >>= 1
			origin.X >>= 1
			origin.Y >>= 1
		}
	}

	origin.X += int32(el.XOffset)
	origin.Y += int32(el.YOffset)
	p := point.Sub(origin)
	if p.X < 0 || p.Y < 0 || p.X >= int32(el.Width) || p.Y >= int32(el.Height) {
		return false
	}

	if el.Has(FlagRLE) {
		return rlePixelPresent(el.Data, int(p.X), int(p.Y))
	}
	if !el.Has(FlagFormatUnsupported) {
		return bitmapPixelPresent(el, int(p.X), int(p.Y), kind, palette)
	}
	panic(&FormatError{Index: id.Index(), Flags: el.Flags})
}

func bitmapPixelPresent(el *Element, x, y int, kind imageType, palette PaletteMap) bool {
	if !el.Has(FlagHasTransparency) {
		return false
	}
	index := el.Data[y*int(el.Width)+x]
	switch kind {
	case imageTypeRemap:
		return palette[index] != 0
	case imageTypeTransparent:
		return false
	}
	return index != 0
}
