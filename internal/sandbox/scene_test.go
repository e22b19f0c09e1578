package sandbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/world"
)

type sceneCounts struct {
	items    map[paint.InteractionItem]int
	kinds    map[world.EntityKind]int
	attached int
	children int
	// seeThrough counts structs and children drawn through a filter.
	seeThrough int
}

// generateAll paints the whole park into one session and tallies it.
func generateAll(t *testing.T, p *Park, flags paint.ViewFlags) sceneCounts {
	t.Helper()
	sprites := NewSprites()
	pool := paint.NewSessionPool()
	s := pool.Get(paint.Target{X: -4096, Y: -2048, Width: 8192, Height: 4096}, flags, 0, sprites.Atlas)
	defer pool.Put(s)

	NewScene(p, sprites).Generate(s)
	paint.Arrange(s)

	c := sceneCounts{
		items: make(map[paint.InteractionItem]int),
		kinds: make(map[world.EntityKind]int),
	}
	for ps := s.Head; ps != nil; ps = ps.NextQuadrantEntry {
		c.items[ps.Interaction]++
		if ps.Image.IsTransparent() {
			c.seeThrough++
		}
		if ps.Entity != nil {
			c.kinds[ps.Entity.Kind]++
		}
		for a := ps.Attached; a != nil; a = a.Next {
			c.attached++
		}
		for child := ps.Children; child != nil; child = child.Children {
			c.children++
			c.items[child.Interaction]++
			if child.Image.IsTransparent() {
				c.seeThrough++
			}
		}
	}
	return c
}

func TestScene_GenerateWholePark(t *testing.T) {
	p := NewPark(16, 1, 6)
	c := generateAll(t, p, 0)

	assert.Equal(t, 16*16, c.items[paint.InteractionTerrain])
	assert.Equal(t, 16, c.items[paint.InteractionFootpath])
	assert.Equal(t, 16, c.children, "paths hang off their surface")
	assert.Equal(t, 16, c.items[paint.InteractionRide], "track loop tiles")
	assert.Equal(t, TrainCars, c.kinds[world.EntityVehicle])
	assert.Equal(t, 5, c.kinds[world.EntityGuest], "the rider is drawn in its car")
	assert.Equal(t, 1, c.kinds[world.EntityStaff])
	assert.Equal(t, 1, c.attached, "one rider")
	assert.Zero(t, c.seeThrough)
}

func TestScene_Flags(t *testing.T) {
	p := NewPark(16, 1, 6)
	base := generateAll(t, p, 0)
	require.NotZero(t, base.items[paint.InteractionScenery])

	t.Run("gridlines", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagGridlines)
		assert.Equal(t, 16*16+1, c.attached)
	})
	t.Run("underground", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagUndergroundInside)
		assert.Zero(t, c.items[paint.InteractionTerrain])
		assert.Zero(t, c.items[paint.InteractionFootpath])
		assert.Equal(t, 16, c.items[paint.InteractionRide])
	})
	t.Run("hidden guests", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHideGuests)
		assert.Zero(t, c.kinds[world.EntityGuest])
		assert.Equal(t, 1, c.kinds[world.EntityStaff])
	})
	t.Run("partial paths still drawn", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHidePaths)
		assert.Equal(t, 16, c.items[paint.InteractionFootpath])
		assert.Equal(t, 16, c.seeThrough)
	})
	t.Run("partial rides see-through", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHideRides)
		assert.Equal(t, 16, c.items[paint.InteractionRide])
		assert.Equal(t, 16, c.seeThrough, "coaster cars run on track and stay solid")
	})
	t.Run("invisible rides", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHideRides|paint.FlagInvisibleRides)
		assert.Zero(t, c.items[paint.InteractionRide])
		assert.Equal(t, TrainCars, c.kinds[world.EntityVehicle])
	})
	t.Run("partial vehicles see-through", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHideVehicles)
		assert.Equal(t, TrainCars, c.kinds[world.EntityVehicle])
		assert.Equal(t, TrainCars, c.seeThrough)
	})
	t.Run("invisible paths", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHidePaths|paint.FlagInvisiblePaths)
		assert.Zero(t, c.items[paint.InteractionFootpath])
	})
	t.Run("invisible scenery", func(t *testing.T) {
		c := generateAll(t, p, paint.FlagHideVegetation|paint.FlagInvisibleVegetation|
			paint.FlagHideScenery|paint.FlagInvisibleScenery)
		assert.Zero(t, c.items[paint.InteractionScenery])
	})
}

func TestScene_Culling(t *testing.T) {
	p := NewPark(16, 1, 0)
	sprites := NewSprites()
	pool := paint.NewSessionPool()
	s := pool.Get(paint.Target{X: 100000, Y: 100000, Width: 32, Height: 32}, 0, 0, sprites.Atlas)
	defer pool.Put(s)

	NewScene(p, sprites).Generate(s)
	assert.Zero(t, s.Len())
}
