package geom

import "fmt"

// ScreenXY is a point in screen or view space.
type ScreenXY struct {
	X, Y int32
}

// Add returns p+o.
func (p ScreenXY) Add(o ScreenXY) ScreenXY { return ScreenXY{p.X + o.X, p.Y + o.Y} }

// Sub returns p-o.
func (p ScreenXY) Sub(o ScreenXY) ScreenXY { return ScreenXY{p.X - o.X, p.Y - o.Y} }

func (p ScreenXY) String() string { return fmt.Sprintf("{%d,%d}", p.X, p.Y) }

// ScreenRect is a half-open rectangle [Min, Max).
type ScreenRect struct {
	Min, Max ScreenXY
}

// Rect builds a ScreenRect from its edges.
func Rect(left, top, right, bottom int32) ScreenRect {
	return ScreenRect{ScreenXY{left, top}, ScreenXY{right, bottom}}
}

// RectWH builds a ScreenRect from an origin and size.
func RectWH(x, y, w, h int32) ScreenRect {
	return Rect(x, y, x+w, y+h)
}

// Width returns the horizontal extent.
func (r ScreenRect) Width() int32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r ScreenRect) Height() int32 { return r.Max.Y - r.Min.Y }

// Empty reports whether r covers no pixels.
func (r ScreenRect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Contains reports whether p lies inside r.
func (r ScreenRect) Contains(p ScreenXY) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Overlaps reports whether r and o share at least one pixel.
func (r ScreenRect) Overlaps(o ScreenRect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r ScreenRect) Intersect(o ScreenRect) ScreenRect {
	return ScreenRect{
		Min: ScreenXY{max(r.Min.X, o.Min.X), max(r.Min.Y, o.Min.Y)},
		Max: ScreenXY{min(r.Max.X, o.Max.X), min(r.Max.Y, o.Max.Y)},
	}
}

// Translate moves r by d.
func (r ScreenRect) Translate(d ScreenXY) ScreenRect {
	return ScreenRect{r.Min.Add(d), r.Max.Add(d)}
}

func (r ScreenRect) String() string { return fmt.Sprintf("%v-%v", r.Min, r.Max) }
