package geom

// Zoom is a viewport zoom level.
//
// Positive levels zoom out: one screen pixel covers 2^z view units.
// Negative levels magnify: one view unit covers 2^-z screen pixels.
type Zoom int8

// Zoom bounds supported by the renderer.
const (
	ZoomMin Zoom = -2
	ZoomMax Zoom = 5
)

// Apply converts a screen-space length to view space.
func (z Zoom) Apply(v int32) int32 {
	if z < 0 {
		return v >> uint(-z)
	}
	return v << uint(z)
}

// ApplyInversed converts a view-space length to screen space.
func (z Zoom) ApplyInversed(v int32) int32 {
	if z < 0 {
		return v << uint(-z)
	}
	return v >> uint(z)
}

// Mask returns the bit mask that aligns a view coordinate to the zoom grid.
// Non-positive levels keep every bit.
func (z Zoom) Mask() int32 {
	if z <= 0 {
		return -1
	}
	return -1 << uint(z)
}

// Clamp limits z to [ZoomMin, ZoomMax].
func (z Zoom) Clamp() Zoom {
	return max(ZoomMin, min(z, ZoomMax))
}
