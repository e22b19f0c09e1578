package sprite

import (
	"image/color"
	"math"
	"sync"
)

// Palette layout: index 0 is transparent, followed by 16 colour ramps of
// RemapShades shades each, then the remap range and a grey ramp.
const (
	rampBase  = 10
	rampCount = 16
)

// Colour is a ramp number in the standard palette.
type Colour uint8

// Named ramps.
const (
	ColourBlack Colour = iota
	ColourGrey
	ColourWhite
	ColourDarkPurple
	ColourLightBlue
	ColourAquamarine
	ColourDarkGreen
	ColourMossGreen
	ColourBrightGreen
	ColourYellow
	ColourDarkBrown
	ColourLightBrown
	ColourBrightRed
	ColourDarkRed
	ColourBrightPink
	ColourSaturatedBrown
)

var rampHues = [rampCount]float64{0, 0, 0, 270, 205, 165, 130, 95, 110, 55, 30, 35, 0, 355, 330, 20}

// Shade returns the palette index of shade s (0 darkest) of colour c.
func (c Colour) Shade(s int) uint8 {
	s = min(max(s, 0), RemapShades-1)
	return uint8(rampBase + int(c)*RemapShades + s)
}

// Mid returns the middle shade, the one used for flat fills.
func (c Colour) Mid() uint8 { return c.Shade(RemapShades / 2) }

// Ramp returns all shades of c, suitable for Atlas.SetColourRamp.
func (c Colour) Ramp() [RemapShades]uint8 {
	var r [RemapShades]uint8
	for i := range r {
		r[i] = c.Shade(i)
	}
	return r
}

var (
	standardOnce    sync.Once
	standardPalette color.Palette
)

// StandardPalette returns the shared 256-entry palette that maps pixel
// indices to RGBA. The returned slice must not be modified.
func StandardPalette() color.Palette {
	standardOnce.Do(func() {
		p := make(color.Palette, 256)
		p[0] = color.RGBA{}
		for i := 1; i < rampBase; i++ {
			v := uint8(i * 255 / rampBase)
			p[i] = color.RGBA{v, v, v, 0xff}
		}
		for c := range rampCount {
			for s := range RemapShades {
				l := 0.12 + 0.76*float64(s)/float64(RemapShades-1)
				sat := 0.65
				switch Colour(c) {
				case ColourBlack:
					sat, l = 0, l*0.4
				case ColourGrey:
					sat = 0
				case ColourWhite:
					sat, l = 0, 0.5+l/2
				}
				p[rampBase+c*RemapShades+s] = hsl(rampHues[c], sat, l)
			}
		}
		for s := range RemapShades {
			p[RemapStart+s] = hsl(300, 0.8, 0.15+0.7*float64(s)/float64(RemapShades-1))
		}
		for i := RemapStart + RemapShades; i < 256; i++ {
			v := uint8((i - RemapStart - RemapShades) * 255 / (255 - RemapStart - RemapShades))
			p[i] = color.RGBA{v, v, v, 0xff}
		}
		standardPalette = p
	})
	return standardPalette
}

func hsl(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := l - c/2
	to8 := func(v float64) uint8 { return uint8(math.Round(min(max(v+m, 0), 1) * 255)) }
	return color.RGBA{to8(r), to8(g), to8(b), 0xff}
}

// DarkenFilter returns a palette map that moves every ramp shade down by
// steps, used for weather gloom. Index 0 stays transparent.
func DarkenFilter(steps int) PaletteMap {
	m := IdentityPalette()
	for c := range rampCount {
		for s := range RemapShades {
			m[rampBase+c*RemapShades+s] = Colour(c).Shade(s - steps)
		}
	}
	return m
}
