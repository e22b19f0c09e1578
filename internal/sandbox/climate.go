package sandbox

import (
	"sync/atomic"

	"github.com/gogpu/isoview/sprite"
)

// MaxGloom is the darkest weather level.
const MaxGloom = 3

// Climate is a weather level from clear (0) to MaxGloom. It implements
// isoview.Climate.
type Climate struct {
	level   atomic.Int32
	filters [MaxGloom + 1]sprite.PaletteMap
}

// NewClimate returns clear weather.
func NewClimate() *Climate {
	c := &Climate{}
	for i := 1; i <= MaxGloom; i++ {
		c.filters[i] = sprite.DarkenFilter(i)
	}
	return c
}

// SetGloom sets the weather level, clamped to [0, MaxGloom].
func (c *Climate) SetGloom(level int) {
	c.level.Store(int32(min(max(level, 0), MaxGloom)))
}

// Gloom returns the weather level.
func (c *Climate) Gloom() int { return int(c.level.Load()) }

// WeatherGloom implements isoview.Climate.
func (c *Climate) WeatherGloom() (sprite.PaletteMap, bool) {
	level := c.level.Load()
	if level == 0 {
		return nil, false
	}
	return c.filters[level], true
}

// Modes holds the global game modes. It implements isoview.GameFlags.
type Modes struct {
	trackDesign atomic.Bool
	titleDemo   atomic.Bool
}

// SetTrackDesignSaveMode toggles track design saving, which suppresses
// weather gloom.
func (m *Modes) SetTrackDesignSaveMode(v bool) { m.trackDesign.Store(v) }

// SetTitleDemo toggles the title screen demo, during which followed
// entities never switch the view underground.
func (m *Modes) SetTitleDemo(v bool) { m.titleDemo.Store(v) }

// TrackDesignSaveMode implements isoview.GameFlags.
func (m *Modes) TrackDesignSaveMode() bool { return m.trackDesign.Load() }

// TitleDemo implements isoview.GameFlags.
func (m *Modes) TitleDemo() bool { return m.titleDemo.Load() }
