package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
)

// VisibilityCache is the cached result of asking the window manager whether
// a viewport's window can be seen.
type VisibilityCache uint8

const (
	VisibilityUnknown VisibilityCache = iota
	VisibilityVisible
	VisibilityCovered
)

func (v VisibilityCache) String() string {
	switch v {
	case VisibilityVisible:
		return "visible"
	case VisibilityCovered:
		return "covered"
	default:
		return "unknown"
	}
}

// Viewport is a screen rectangle showing the world.
//
// Pos, Width and Height are in screen pixels. ViewPos, ViewWidth and
// ViewHeight describe the same rectangle in view units. ViewWidth is always
// Zoom.Apply(Width) and ViewHeight is Zoom.Apply(Height); use SetSize and
// SetZoom to keep them in step.
type Viewport struct {
	Pos           geom.ScreenXY
	Width, Height int32

	ViewPos               geom.ScreenXY
	ViewWidth, ViewHeight int32

	Zoom     geom.Zoom
	Rotation uint8
	Flags    paint.ViewFlags

	Visibility VisibilityCache
}

// SetSize changes the screen size and recomputes the view size.
func (vp *Viewport) SetSize(width, height int32) {
	vp.Width = width
	vp.Height = height
	vp.ViewWidth = vp.Zoom.Apply(width)
	vp.ViewHeight = vp.Zoom.Apply(height)
}

// SetZoom changes the zoom level and recomputes the view size. The view
// origin is left alone; callers recentre as needed.
func (vp *Viewport) SetZoom(z geom.Zoom) {
	vp.Zoom = z.Clamp()
	vp.ViewWidth = vp.Zoom.Apply(vp.Width)
	vp.ViewHeight = vp.Zoom.Apply(vp.Height)
}

func (vp *Viewport) setWidth(width int32) {
	vp.Width = width
	vp.ViewWidth = vp.Zoom.Apply(width)
}

func (vp *Viewport) setHeight(height int32) {
	vp.Height = height
	vp.ViewHeight = vp.Zoom.Apply(height)
}

// ScreenRect returns the viewport's screen rectangle.
func (vp *Viewport) ScreenRect() geom.ScreenRect {
	return geom.RectWH(vp.Pos.X, vp.Pos.Y, vp.Width, vp.Height)
}

// ViewRect returns the visible view-space rectangle.
func (vp *Viewport) ViewRect() geom.ScreenRect {
	return geom.RectWH(vp.ViewPos.X, vp.ViewPos.Y, vp.ViewWidth, vp.ViewHeight)
}

// ContainsScreen reports whether the screen point p is inside the viewport.
func (vp *Viewport) ContainsScreen(p geom.ScreenXY) bool {
	return vp.ScreenRect().Contains(p)
}

// ScreenToViewportCoord converts a screen point to view units.
func (vp *Viewport) ScreenToViewportCoord(p geom.ScreenXY) geom.ScreenXY {
	return geom.ScreenXY{
		X: vp.Zoom.Apply(p.X-vp.Pos.X) + vp.ViewPos.X,
		Y: vp.Zoom.Apply(p.Y-vp.Pos.Y) + vp.ViewPos.Y,
	}
}

// Centre returns the view position at the middle of the viewport.
func (vp *Viewport) Centre() geom.ScreenXY {
	return geom.ScreenXY{X: vp.ViewPos.X + vp.ViewWidth/2, Y: vp.ViewPos.Y + vp.ViewHeight/2}
}
