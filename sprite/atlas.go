package sprite

import (
	"sync"

	"github.com/gogpu/isoview/internal/lru"
)

// Atlas is an in-memory Store. Images are appended once at load time and
// read concurrently afterwards; palette maps are built lazily and cached.
type Atlas struct {
	mu       sync.RWMutex
	elements []Element
	ramps    map[uint8][RemapShades]uint8
	filters  map[uint8]PaletteMap

	palettes *lru.Cache[uint32, PaletteMap]
}

// NewAtlas returns an empty atlas.
func NewAtlas() *Atlas {
	return &Atlas{
		ramps:    make(map[uint8][RemapShades]uint8),
		filters:  make(map[uint8]PaletteMap),
		palettes: lru.New[uint32, PaletteMap](16, lru.Uint32Hasher),
	}
}

// Add appends an image and returns its index.
func (a *Atlas) Add(e Element) uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.elements = append(a.elements, e)
	return uint32(len(a.elements) - 1)
}

// Len returns the number of images.
func (a *Atlas) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.elements)
}

// Element implements Store.
func (a *Atlas) Element(index uint32) *Element {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if int(index) >= len(a.elements) {
		return nil
	}
	return &a.elements[index]
}

// SetColourRamp registers the shades substituted into the remap range when
// an image is drawn with colour.
func (a *Atlas) SetColourRamp(colour uint8, shades [RemapShades]uint8) {
	a.mu.Lock()
	a.ramps[colour] = shades
	a.mu.Unlock()
	a.palettes.Clear()
}

// PaletteMap implements Store.
func (a *Atlas) PaletteMap(colour uint8) (PaletteMap, bool) {
	a.mu.RLock()
	ramp, ok := a.ramps[colour]
	a.mu.RUnlock()
	if !ok {
		return nil, false
	}
	pm := a.palettes.GetOrCreate(uint32(colour), func() PaletteMap {
		m := IdentityPalette()
		copy(m[RemapStart:RemapStart+RemapShades], ramp[:])
		return m
	})
	return pm, true
}

// SetFilter registers a whole-palette filter for see-through images.
func (a *Atlas) SetFilter(id uint8, m PaletteMap) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filters[id] = m
}

// Filter returns a filter registered with SetFilter.
func (a *Atlas) Filter(id uint8) (PaletteMap, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.filters[id]
	return m, ok
}
