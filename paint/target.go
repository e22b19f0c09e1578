package paint

import (
	"image"
	"image/color"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/internal/parallel"
	"github.com/gogpu/isoview/sprite"
)

// Target describes where a paint pass writes: a window into a
// palette-indexed pixel buffer, addressed in view units.
//
// X, Y, Width and Height are in view units. Pixel (0,0) of the target is
// Pix[Offset]; rows are Stride pixels apart. One screen pixel covers
// Zoom.Apply(1) view units.
//
// Target implements draw.Image over its screen pixels so that generic
// drawing code (text rendering in particular) can write into it. Colours
// are quantised to Palette.
type Target struct {
	Pix    []uint8
	Offset int
	Stride int

	X, Y          int32
	Width, Height int32
	Zoom          geom.Zoom

	Palette color.Palette
}

// ScreenWidth returns the target width in pixels.
func (t *Target) ScreenWidth() int { return int(t.Zoom.ApplyInversed(t.Width)) }

// ScreenHeight returns the target height in pixels.
func (t *Target) ScreenHeight() int { return int(t.Zoom.ApplyInversed(t.Height)) }

// Pitch returns the number of buffer pixels skipped at the end of each row.
func (t *Target) Pitch() int { return t.Stride - t.ScreenWidth() }

// ViewRect returns the covered view-space rectangle.
func (t *Target) ViewRect() geom.ScreenRect {
	return geom.RectWH(t.X, t.Y, t.Width, t.Height)
}

// Column returns the part of t covering c. The column must lie within t;
// the returned target shares t's pixel buffer.
func (t *Target) Column(c parallel.Column) Target {
	col := *t
	if left := c.X - t.X; left > 0 {
		col.Offset += int(t.Zoom.ApplyInversed(left))
	}
	col.X = c.X
	col.Width = c.Width
	return col
}

// Row returns the pixels of screen row y.
func (t *Target) Row(y int) []uint8 {
	start := t.Offset + y*t.Stride
	return t.Pix[start : start+t.ScreenWidth()]
}

// Clear fills the target with one palette index.
func (t *Target) Clear(index uint8) {
	for y := range t.ScreenHeight() {
		row := t.Row(y)
		for i := range row {
			row[i] = index
		}
	}
}

// FilterRect remaps every pixel of the view-space rectangle r through m.
func (t *Target) FilterRect(r geom.ScreenRect, m sprite.PaletteMap) {
	r = r.Intersect(t.ViewRect())
	if r.Empty() {
		return
	}
	x0 := int(t.Zoom.ApplyInversed(r.Min.X - t.X))
	x1 := min(int(t.Zoom.ApplyInversed(r.Max.X-t.X)), t.ScreenWidth())
	y0 := int(t.Zoom.ApplyInversed(r.Min.Y - t.Y))
	y1 := min(int(t.Zoom.ApplyInversed(r.Max.Y-t.Y)), t.ScreenHeight())
	for y := y0; y < y1; y++ {
		row := t.Row(y)
		for x := x0; x < x1; x++ {
			row[x] = m[row[x]]
		}
	}
}

func (t *Target) palette() color.Palette {
	if t.Palette == nil {
		return sprite.StandardPalette()
	}
	return t.Palette
}

// ColorModel implements image.Image.
func (t *Target) ColorModel() color.Model { return t.palette() }

// Bounds implements image.Image.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.ScreenWidth(), t.ScreenHeight())
}

// At implements image.Image.
func (t *Target) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(t.Bounds())) {
		return color.RGBA{}
	}
	return t.palette()[t.Pix[t.Offset+y*t.Stride+x]]
}

// Set implements draw.Image.
func (t *Target) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(t.Bounds())) {
		return
	}
	t.Pix[t.Offset+y*t.Stride+x] = uint8(t.palette().Index(c))
}

// SetIndex writes a palette index directly.
func (t *Target) SetIndex(x, y int, index uint8) {
	if !(image.Point{x, y}.In(t.Bounds())) {
		return
	}
	t.Pix[t.Offset+y*t.Stride+x] = index
}

// IndexAt returns the palette index at screen pixel (x, y).
func (t *Target) IndexAt(x, y int) uint8 {
	return t.Pix[t.Offset+y*t.Stride+x]
}
