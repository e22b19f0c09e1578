package sprite

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/isoview/geom"
)

// mask builds a w×h image from rows of '.' (transparent) and digits.
func mask(rows ...string) (int, int, []uint8) {
	w, h := len(rows[0]), len(rows)
	pix := make([]uint8, 0, w*h)
	for _, r := range rows {
		for _, c := range []byte(r) {
			if c == '.' {
				pix = append(pix, 0)
			} else {
				pix = append(pix, c-'0')
			}
		}
	}
	return w, h, pix
}

func TestEncodeRLE_RoundTrip(t *testing.T) {
	w, h, pix := mask(
		"........",
		"..12....",
		"1.....23",
		"11111111",
	)
	el := NewRLEElement(w, h, pix, 0, 0)

	row := make([]uint8, w)
	for y := range h {
		got := el.DecodeRow(y, row)
		if !bytes.Equal(got, pix[y*w:(y+1)*w]) {
			t.Errorf("row %d = %v, want %v", y, got, pix[y*w:(y+1)*w])
		}
	}
}

func TestEncodeRLE_LongRun(t *testing.T) {
	w := 200
	pix := bytes.Repeat([]uint8{5}, w)
	el := NewRLEElement(w, 1, pix, 0, 0)

	row := el.DecodeRow(0, make([]uint8, w))
	if !bytes.Equal(row, pix) {
		t.Error("run longer than 127 pixels did not survive encoding")
	}
	for _, x := range []int{0, 126, 127, 199} {
		if !rlePixelPresent(el.Data, x, 0) {
			t.Errorf("pixel %d reported transparent", x)
		}
	}
}

func TestRLEPixelPresent(t *testing.T) {
	w, h, pix := mask(
		"..11..11",
		"........",
		"1.......",
	)
	el := NewRLEElement(w, h, pix, 0, 0)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, false},
		{2, 0, true},
		{3, 0, true},
		{4, 0, false},
		{7, 0, true},
		{3, 1, false},
		{0, 2, true},
		{1, 2, false},
	}
	for _, tt := range tests {
		if got := rlePixelPresent(el.Data, tt.x, tt.y); got != tt.want {
			t.Errorf("rlePixelPresent(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func newTestAtlas() (*Atlas, uint32, uint32) {
	a := NewAtlas()
	w, h, pix := mask(
		"1111",
		"1..1",
		"1111",
	)
	rle := a.Add(NewRLEElement(w, h, pix, -2, -1))

	// 4×2 bitmap: a remap-range pixel at (1,1) and an ordinary one at (2,1).
	raw := make([]uint8, 8)
	raw[5] = RemapStart
	raw[6] = 9
	bm := a.Add(NewBitmapElement(4, 2, raw, 0, 0))

	var ramp [RemapShades]uint8
	a.SetColourRamp(3, ramp)
	return a, rle, bm
}

func TestInteractedWith_RLE(t *testing.T) {
	a, rle, _ := newTestAtlas()
	id := NewImageID(rle)
	origin := geom.ScreenXY{X: 10, Y: 10}

	tests := []struct {
		name  string
		point geom.ScreenXY
		want  bool
	}{
		{"top left corner", geom.ScreenXY{X: 8, Y: 9}, true},
		{"hole", geom.ScreenXY{X: 9, Y: 10}, false},
		{"right edge", geom.ScreenXY{X: 11, Y: 10}, true},
		{"left of image", geom.ScreenXY{X: 7, Y: 9}, false},
		{"below image", geom.ScreenXY{X: 8, Y: 12}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InteractedWith(a, id, origin, tt.point, 0); got != tt.want {
				t.Errorf("InteractedWith(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestInteractedWith_BitmapRemap(t *testing.T) {
	a, _, bm := newTestAtlas()
	origin := geom.ScreenXY{}

	// Unremapped, any non-zero index is opaque.
	if !InteractedWith(a, NewImageID(bm), origin, geom.ScreenXY{X: 1, Y: 1}, 0) {
		t.Error("remap-range pixel should be opaque without a remap")
	}
	// The colour 3 ramp is all zeros, so remap-range pixels vanish while
	// ordinary indices stay.
	remapped := NewImageID(bm).WithPrimary(3)
	if InteractedWith(a, remapped, origin, geom.ScreenXY{X: 1, Y: 1}, 0) {
		t.Error("remapped pixel mapping to 0 should be transparent")
	}
	if !InteractedWith(a, remapped, origin, geom.ScreenXY{X: 2, Y: 1}, 0) {
		t.Error("non-remap pixel should stay opaque")
	}
	if InteractedWith(a, remapped, origin, geom.ScreenXY{X: 0, Y: 0}, 0) {
		t.Error("index 0 should be transparent")
	}
}

func TestInteractedWith_SeeThrough(t *testing.T) {
	a, rle, bm := newTestAtlas()
	origin := geom.ScreenXY{}

	if InteractedWith(a, NewImageID(bm).WithTransparency(1), origin, geom.ScreenXY{X: 2, Y: 1}, 0) {
		t.Error("see-through bitmap should never report a hit")
	}
	// Run-length images are tested by shape alone.
	if !InteractedWith(a, NewImageID(rle).WithTransparency(1), geom.ScreenXY{X: 10, Y: 10}, geom.ScreenXY{X: 8, Y: 9}, 0) {
		t.Error("see-through RLE image should still report its shape")
	}
}

func TestInteractedWith_NoTransparency(t *testing.T) {
	a := NewAtlas()
	el := NewBitmapElement(1, 1, []uint8{7}, 0, 0)
	el.Flags = 0
	idx := a.Add(el)
	if InteractedWith(a, NewImageID(idx), geom.ScreenXY{}, geom.ScreenXY{}, 0) {
		t.Error("bitmap without transparency flag should never report a hit")
	}
}

func TestInteractedWith_ZoomVariant(t *testing.T) {
	a := NewAtlas()
	// Half-size variant: a single opaque pixel at (1,0).
	small := a.Add(NewRLEElement(2, 1, []uint8{0, 4}, 0, 0))
	full := NewRLEElement(4, 2, []uint8{4, 4, 4, 4, 4, 4, 4, 4}, 0, 0)
	full.Flags |= FlagHasZoomSprite
	full.ZoomedOffset = 1
	big := a.Add(full)
	if big != small+1 {
		t.Fatalf("unexpected atlas layout")
	}

	id := NewImageID(big)
	if !InteractedWith(a, id, geom.ScreenXY{}, geom.ScreenXY{X: 2, Y: 0}, 1) {
		t.Error("zoomed pick should hit the variant's opaque pixel")
	}
	if InteractedWith(a, id, geom.ScreenXY{}, geom.ScreenXY{X: 0, Y: 0}, 1) {
		t.Error("zoomed pick should miss the variant's transparent pixel")
	}
	if !InteractedWith(a, id, geom.ScreenXY{}, geom.ScreenXY{X: 0, Y: 0}, 0) {
		t.Error("unzoomed pick should use the full image")
	}
}

func TestInteractedWith_NoZoomDraw(t *testing.T) {
	a := NewAtlas()
	el := NewRLEElement(1, 1, []uint8{1}, 0, 0)
	el.Flags |= FlagNoZoomDraw
	idx := a.Add(el)
	if InteractedWith(a, NewImageID(idx), geom.ScreenXY{}, geom.ScreenXY{}, 2) {
		t.Error("no-zoom-draw image should not be pickable when zoomed out")
	}
	if !InteractedWith(a, NewImageID(idx), geom.ScreenXY{}, geom.ScreenXY{}, 0) {
		t.Error("no-zoom-draw image should be pickable at zoom 0")
	}
}

func TestInteractedWith_UnsupportedFormatPanics(t *testing.T) {
	a := NewAtlas()
	el := NewBitmapElement(1, 1, []uint8{1}, 0, 0)
	el.Flags = FlagFormatUnsupported
	idx := a.Add(el)

	defer func() {
		r := recover()
		err, ok := r.(error)
		var fe *FormatError
		if !ok || !errors.As(err, &fe) {
			t.Fatalf("recover() = %v, want *FormatError", r)
		}
		if fe.Index != idx {
			t.Errorf("FormatError.Index = %d, want %d", fe.Index, idx)
		}
	}()
	InteractedWith(a, NewImageID(idx), geom.ScreenXY{}, geom.ScreenXY{}, 0)
}

func TestInteractedWith_MissingImage(t *testing.T) {
	if InteractedWith(NewAtlas(), NewImageID(99), geom.ScreenXY{}, geom.ScreenXY{}, 0) {
		t.Error("missing image should not report a hit")
	}
}

func TestAtlas_PaletteMapCached(t *testing.T) {
	a := NewAtlas()
	if _, ok := a.PaletteMap(1); ok {
		t.Fatal("PaletteMap for unknown colour returned ok")
	}
	var ramp [RemapShades]uint8
	for i := range ramp {
		ramp[i] = uint8(100 + i)
	}
	a.SetColourRamp(1, ramp)

	pm, ok := a.PaletteMap(1)
	if !ok {
		t.Fatal("PaletteMap(1) not found")
	}
	if pm[RemapStart] != 100 || pm[RemapStart+RemapShades-1] != 111 {
		t.Errorf("remap range = %v", pm[RemapStart:RemapStart+RemapShades])
	}
	if pm[5] != 5 {
		t.Errorf("pm[5] = %d, want identity", pm[5])
	}
	a.PaletteMap(1)
	if s := a.palettes.Stats(); s.Hits != 1 || s.Misses != 1 {
		t.Errorf("palette cache stats = %+v, want 1 hit 1 miss", s)
	}
}

func TestImageID_RemapColour(t *testing.T) {
	if _, ok := NewImageID(1).RemapColour(); ok {
		t.Error("plain image reported a remap")
	}
	if c, ok := NewImageID(1).WithRemap(7).RemapColour(); !ok || c != 7 {
		t.Errorf("WithRemap(7).RemapColour() = %d, %v", c, ok)
	}
	if c, ok := NewImageID(1).WithPrimary(2).WithSecondary(9).RemapColour(); !ok || c != 2 {
		t.Errorf("primary+secondary RemapColour() = %d, %v; want primary", c, ok)
	}

	glass := NewImageID(1).WithRemap(7).WithTransparency(4)
	if _, ok := glass.RemapColour(); ok {
		t.Error("see-through image reported a remap")
	}
	if !glass.IsTransparent() || glass.Transparency() != 4 {
		t.Errorf("WithTransparency(4) = %v, filter %d", glass.IsTransparent(), glass.Transparency())
	}
}
