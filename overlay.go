package isoview

import (
	"sync"

	"github.com/gogpu/isoview/paint"
)

// Overlay holds the reference counts behind the main view's gridlines, land
// rights and construction rights displays. Tools call Show when they open
// and Hide when they close; the display stays on while any tool holds it.
type Overlay struct {
	m *Manager

	mu                 sync.Mutex
	gridlines          int
	landRights         int
	constructionRights int
}

// Overlay returns the manager's display overlay.
func (m *Manager) Overlay() *Overlay { return &m.overlay }

// mainViewport returns the main window and its viewport, if both exist.
func (o *Overlay) mainViewport() (*Window, *Viewport) {
	w := o.m.windows.Main()
	if w == nil || w.Viewport == nil {
		return nil, nil
	}
	return w, w.Viewport
}

func (o *Overlay) show(count *int, flag paint.ViewFlags) {
	if *count == 0 {
		if w, vp := o.mainViewport(); vp != nil && !vp.Flags.Has(flag) {
			vp.Flags |= flag
			o.m.windows.Invalidate(w)
		}
	}
	*count++
}

// ShowGridlines turns gridlines on for the main view.
func (o *Overlay) ShowGridlines() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.show(&o.gridlines, paint.FlagGridlines)
}

// HideGridlines releases one ShowGridlines. The last release turns them off
// unless gridlines are configured to always show.
func (o *Overlay) HideGridlines() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gridlines > 0 {
		o.gridlines--
	}
	if o.gridlines != 0 {
		return
	}
	if w, vp := o.mainViewport(); vp != nil && !o.m.cfg.AlwaysShowGridlines() {
		vp.Flags &^= paint.FlagGridlines
		o.m.windows.Invalidate(w)
	}
}

// ShowLandRights turns the land ownership display on.
func (o *Overlay) ShowLandRights() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.show(&o.landRights, paint.FlagLandOwnership)
}

// HideLandRights releases one ShowLandRights.
func (o *Overlay) HideLandRights() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hide(&o.landRights, paint.FlagLandOwnership)
}

// ShowConstructionRights turns the construction rights display on.
func (o *Overlay) ShowConstructionRights() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.show(&o.constructionRights, paint.FlagConstructionRights)
}

// HideConstructionRights releases one ShowConstructionRights.
func (o *Overlay) HideConstructionRights() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hide(&o.constructionRights, paint.FlagConstructionRights)
}

func (o *Overlay) hide(count *int, flag paint.ViewFlags) {
	if *count > 0 {
		*count--
	}
	if *count != 0 {
		return
	}
	if w, vp := o.mainViewport(); vp != nil && vp.Flags.Has(flag) {
		vp.Flags &^= flag
		o.m.windows.Invalidate(w)
	}
}

// Counts returns the current gridlines, land rights and construction rights
// reference counts.
func (o *Overlay) Counts() (gridlines, landRights, constructionRights int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gridlines, o.landRights, o.constructionRights
}

// VisibilityMode is a preset for SetVisibility.
type VisibilityMode uint8

const (
	VisibilityDefault VisibilityMode = iota
	VisibilityUndergroundOn
	VisibilityUndergroundOff
	VisibilityGhostOn
	VisibilityGhostOff
	VisibilityTrackHeights
)

// defaultHidden is everything VisibilityDefault switches off.
const defaultHidden = paint.FlagUndergroundInside | paint.FlagHideRides | paint.FlagHideScenery |
	paint.FlagHidePaths | paint.FlagLandHeights | paint.FlagTrackHeights | paint.FlagPathHeights |
	paint.FlagHideGuests | paint.FlagHideStaff | paint.FlagHideBase | paint.FlagHideVertical |
	paint.FlagHideVehicles | paint.FlagHideSupports | paint.FlagHideVegetation

// SetVisibility applies mode to the main view, repainting it if any flag
// changed.
func (o *Overlay) SetVisibility(mode VisibilityMode) {
	w, vp := o.mainViewport()
	if vp == nil {
		return
	}

	before := vp.Flags
	switch mode {
	case VisibilityDefault:
		vp.Flags &^= defaultHidden
	case VisibilityUndergroundOn, VisibilityGhostOn:
		vp.Flags |= paint.FlagUndergroundInside
	case VisibilityUndergroundOff, VisibilityGhostOff:
		vp.Flags &^= paint.FlagUndergroundInside
	case VisibilityTrackHeights:
		vp.Flags |= paint.FlagTrackHeights
	}
	if vp.Flags != before {
		o.m.windows.Invalidate(w)
	}
}
