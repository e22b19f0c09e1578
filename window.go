package isoview

import (
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/world"
)

// WindowClass distinguishes the main world window from the rest.
type WindowClass uint8

const (
	WindowClassOther WindowClass = iota
	WindowClassMain
)

// WindowFlags are the window attributes the viewport core reads.
type WindowFlags uint16

const (
	// WindowTransparent windows are always repainted, never blitted.
	WindowTransparent WindowFlags = 1 << iota
	// WindowNoComposite windows repaint their whole area on scroll when the
	// screen supports dirty rectangles, instead of shifting pixels.
	WindowNoComposite
	// WindowScrollingToLocation is set while the viewport eases towards
	// SavedViewPos.
	WindowScrollingToLocation
)

// Window is a rectangle in the window stack that may own one viewport.
type Window struct {
	Class         WindowClass
	Number        uint32
	Pos           geom.ScreenXY
	Width, Height int32
	Flags         WindowFlags

	Viewport *Viewport

	// SavedViewPos is the view position the viewport is heading to.
	SavedViewPos geom.ScreenXY
	// Focus is what the window is looking at. The zero value is no focus.
	Focus Focus
	// TargetEntity is centred every update while set.
	TargetEntity world.EntityID
	// SmartFollowEntity is resolved every update into a focus and target,
	// following guests onto rides.
	SmartFollowEntity world.EntityID
}

// NewWindow returns a window with no viewport and no followed entities.
func NewWindow(class WindowClass, pos geom.ScreenXY, width, height int32) *Window {
	return &Window{
		Class:             class,
		Pos:               pos,
		Width:             width,
		Height:            height,
		TargetEntity:      world.NullEntity,
		SmartFollowEntity: world.NullEntity,
	}
}

// Rect returns the window's screen rectangle.
func (w *Window) Rect() geom.ScreenRect {
	return geom.RectWH(w.Pos.X, w.Pos.Y, w.Width, w.Height)
}

// IsMain reports whether w is the main world window.
func (w *Window) IsMain() bool { return w.Class == WindowClassMain }
