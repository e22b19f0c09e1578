package isoview

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
)

// Framebuffer is a palette-indexed screen buffer, one byte per pixel.
type Framebuffer struct {
	width   int
	height  int
	pix     []uint8
	palette color.Palette
}

// NewFramebuffer creates a framebuffer using the standard palette.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:   width,
		height:  height,
		pix:     make([]uint8, width*height),
		palette: sprite.StandardPalette(),
	}
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Pix returns the raw palette indices, row-major.
func (f *Framebuffer) Pix() []uint8 {
	return f.pix
}

// Palette returns the palette used to convert indices to colours.
func (f *Framebuffer) Palette() color.Palette {
	return f.palette
}

// SetPalette replaces the palette. A nil palette restores the standard one.
func (f *Framebuffer) SetPalette(p color.Palette) {
	if p == nil {
		p = sprite.StandardPalette()
	}
	f.palette = p
}

// Target returns a paint target covering the whole framebuffer at screen
// position (0, 0).
func (f *Framebuffer) Target() paint.Target {
	return paint.Target{
		Pix:     f.pix,
		Stride:  f.width,
		Width:   int32(f.width),
		Height:  int32(f.height),
		Palette: f.palette,
	}
}

// Clear fills the framebuffer with one palette index.
func (f *Framebuffer) Clear(index uint8) {
	for i := range f.pix {
		f.pix[i] = index
	}
}

// IndexAt returns the palette index at (x, y), or 0 outside the buffer.
func (f *Framebuffer) IndexAt(x, y int) uint8 {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return 0
	}
	return f.pix[y*f.width+x]
}

// CopyRect moves the pixels inside r by (dx, dy). Pixels shifted out of r
// are dropped; the strip left behind keeps its old contents.
func (f *Framebuffer) CopyRect(r geom.ScreenRect, dx, dy int32) {
	r = r.Intersect(geom.Rect(0, 0, int32(f.width), int32(f.height)))
	if r.Empty() {
		return
	}
	x0, x1 := max(r.Min.X, r.Min.X+dx), min(r.Max.X, r.Max.X+dx)
	y0, y1 := max(r.Min.Y, r.Min.Y+dy), min(r.Max.Y, r.Max.Y+dy)
	if x0 >= x1 || y0 >= y1 {
		return
	}

	row := func(y int32) {
		dst := int(y)*f.width + int(x0)
		src := int(y-dy)*f.width + int(x0-dx)
		copy(f.pix[dst:dst+int(x1-x0)], f.pix[src:src+int(x1-x0)])
	}
	// Walk away from the direction of travel so no source row is
	// overwritten before it is read.
	if dy > 0 {
		for y := y1 - 1; y >= y0; y-- {
			row(y)
		}
		return
	}
	for y := y0; y < y1; y++ {
		row(y)
	}
}

// ToImage converts the framebuffer to an image.RGBA.
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	lut := make([]color.RGBA, len(f.palette))
	for i, c := range f.palette {
		lut[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	for i, idx := range f.pix {
		var c color.RGBA
		if int(idx) < len(lut) {
			c = lut[idx]
		}
		img.Pix[i*4+0] = c.R
		img.Pix[i*4+1] = c.G
		img.Pix[i*4+2] = c.B
		img.Pix[i*4+3] = c.A
	}
	return img
}

// ScaledRGBA returns the framebuffer enlarged by an integer factor with
// nearest-neighbour sampling. Factors below 2 return ToImage.
func (f *Framebuffer) ScaledRGBA(scale int) *image.RGBA {
	src := f.ToImage()
	if scale < 2 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, f.width*scale, f.height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WritePNG encodes the framebuffer as PNG.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, f.ToImage())
}

// SavePNG saves the framebuffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return f.WritePNG(file)
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return color.RGBA{}
	}
	idx := f.pix[y*f.width+x]
	if int(idx) >= len(f.palette) {
		return color.RGBA{}
	}
	return f.palette[idx]
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return f.palette
}
