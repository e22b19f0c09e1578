package sandbox

import (
	"slices"

	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/sprite"
)

// Windows is a z-ordered window stack painting into a Screen. It implements
// isoview.WindowManager.
type Windows struct {
	screen *Screen
	m      *isoview.Manager
	stack  []*isoview.Window
	next   uint32
}

// NewWindows returns an empty stack over screen. SetManager must be called
// before windows with viewports are drawn.
func NewWindows(screen *Screen) *Windows {
	return &Windows{screen: screen}
}

// SetManager connects the manager that renders viewports.
func (w *Windows) SetManager(m *isoview.Manager) { w.m = m }

// Open pushes a new window on top of the stack and gives it a viewport
// covering its whole area.
func (w *Windows) Open(class isoview.WindowClass, pos geom.ScreenXY, width, height int32, focus isoview.Focus) (*isoview.Window, error) {
	win := isoview.NewWindow(class, pos, width, height)
	w.next++
	win.Number = w.next
	if _, err := w.m.Create(win, pos, width, height, focus); err != nil {
		return nil, err
	}
	w.stack = append(w.stack, win)
	w.Invalidate(win)
	return win, nil
}

// Close removes win and its viewport and marks the uncovered area dirty.
func (w *Windows) Close(win *isoview.Window) error {
	i := slices.Index(w.stack, win)
	if i < 0 {
		return isoview.ErrViewportNotFound
	}
	w.stack = slices.Delete(w.stack, i, i+1)
	w.Invalidate(win)
	if win.Viewport == nil {
		return nil
	}
	err := w.m.Remove(win.Viewport)
	win.Viewport = nil
	return err
}

// BringToFront moves win to the top of the stack.
func (w *Windows) BringToFront(win *isoview.Window) {
	i := slices.Index(w.stack, win)
	if i < 0 || i == len(w.stack)-1 {
		return
	}
	w.stack = append(slices.Delete(w.stack, i, i+1), win)
	w.Invalidate(win)
}

// Windows implements isoview.WindowManager.
func (w *Windows) Windows() []*isoview.Window { return w.stack }

// FindFromPoint implements isoview.WindowManager.
func (w *Windows) FindFromPoint(p geom.ScreenXY) *isoview.Window {
	for i := len(w.stack) - 1; i >= 0; i-- {
		if w.stack[i].Rect().Contains(p) {
			return w.stack[i]
		}
	}
	return nil
}

// Main implements isoview.WindowManager.
func (w *Windows) Main() *isoview.Window {
	for _, win := range w.stack {
		if win.IsMain() {
			return win
		}
	}
	return nil
}

// Owner implements isoview.WindowManager.
func (w *Windows) Owner(vp *isoview.Viewport) *isoview.Window {
	for _, win := range w.stack {
		if win.Viewport == vp {
			return win
		}
	}
	return nil
}

// IsVisible implements isoview.WindowManager. A window is visible while any
// on-screen part of it is not covered by windows above it.
func (w *Windows) IsVisible(win *isoview.Window) bool {
	sw, sh := w.screen.Size()
	uncovered := []geom.ScreenRect{win.Rect().Intersect(geom.RectWH(0, 0, sw, sh))}
	if uncovered[0].Empty() {
		uncovered = nil
	}
	if i := slices.Index(w.stack, win); i >= 0 {
		for _, above := range w.stack[i+1:] {
			uncovered = subtractAll(uncovered, above.Rect())
		}
	}

	visible := len(uncovered) > 0
	if win.Viewport != nil {
		win.Viewport.Visibility = isoview.VisibilityCovered
		if visible {
			win.Viewport.Visibility = isoview.VisibilityVisible
		}
	}
	return visible
}

// Invalidate implements isoview.WindowManager.
func (w *Windows) Invalidate(win *isoview.Window) {
	w.screen.SetDirtyBlocks(win.Rect())
}

// DrawAll implements isoview.WindowManager. Each window intersecting r is
// filled with its frame colour and then has its viewport rendered over it.
func (w *Windows) DrawAll(r geom.ScreenRect) {
	fb := w.screen.fb
	r = r.Intersect(geom.RectWH(0, 0, int32(fb.Width()), int32(fb.Height())))
	if r.Empty() {
		return
	}
	dst := fb.Target()
	for _, win := range w.stack {
		clip := r.Intersect(win.Rect())
		if clip.Empty() {
			continue
		}
		if win.Viewport == nil || win.Viewport.ScreenRect().Intersect(clip) != clip {
			fill(fb, clip, sprite.ColourGrey.Shade(6))
		}
		if win.Viewport != nil && w.m != nil {
			w.m.Render(&dst, win.Viewport, clip)
		}
	}
}

// Flush repaints every dirty block and returns the rectangles drawn.
func (w *Windows) Flush() []geom.ScreenRect {
	rects := w.screen.drain()
	for _, r := range rects {
		w.DrawAll(r)
	}
	return rects
}

func fill(fb *isoview.Framebuffer, r geom.ScreenRect, index uint8) {
	pix, stride := fb.Pix(), fb.Width()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := pix[int(y)*stride+int(r.Min.X) : int(y)*stride+int(r.Max.X)]
		for i := range row {
			row[i] = index
		}
	}
}

// subtractAll removes o from every rectangle in rs.
func subtractAll(rs []geom.ScreenRect, o geom.ScreenRect) []geom.ScreenRect {
	out := rs[:0:0]
	for _, r := range rs {
		out = append(out, subtract(r, o)...)
	}
	return out
}

// subtract returns up to four rectangles covering r minus o.
func subtract(r, o geom.ScreenRect) []geom.ScreenRect {
	in := r.Intersect(o)
	if in.Empty() {
		return []geom.ScreenRect{r}
	}
	var out []geom.ScreenRect
	add := func(c geom.ScreenRect) {
		if !c.Empty() {
			out = append(out, c)
		}
	}
	add(geom.Rect(r.Min.X, r.Min.Y, r.Max.X, in.Min.Y))
	add(geom.Rect(r.Min.X, in.Max.Y, r.Max.X, r.Max.Y))
	add(geom.Rect(r.Min.X, in.Min.Y, in.Min.X, in.Max.Y))
	add(geom.Rect(in.Max.X, in.Min.Y, r.Max.X, in.Max.Y))
	return out
}
