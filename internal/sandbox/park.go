// Package sandbox is a small deterministic park that implements every
// collaborator the viewport core needs: world state, a window stack, a
// software screen, a scene generator, a sprite atlas and a climate.
//
// It backs the end-to-end tests and the isoview and isoserve commands.
// Nothing in it is safe for concurrent mutation: Tick, window changes and
// Manager calls must come from one goroutine, while scene generation may
// run on many.
package sandbox

import (
	"math/rand/v2"
	"slices"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/world"
)

// Park layout constants.
const (
	// MinParkSize is the smallest map edge NewPark accepts, in tiles.
	MinParkSize = 16
	// MinimumLandHeight is the height of the lowest land and of everything
	// off the map.
	MinimumLandHeight = 2 * geom.ZStep

	landStep   = 2 * geom.ZStep
	landLevels = 3

	walkSpeed  = 2
	trainSpeed = 4
	carSpacing = 24
	moneyTicks = 40
)

// Well-known ids in every park.
const (
	CoasterRide  world.RideID   = 0
	CarouselRide world.RideID   = 1
	TrainID      world.EntityID = 1000
	StaffID      world.EntityID = 900
)

// TrainCars is the length of the coaster train.
const TrainCars = 3

// Track loop, in tiles.
var trackMin, trackMax = geom.CoordsXY{X: 4, Y: 4}, geom.CoordsXY{X: 9, Y: 7}

var (
	oak         = &world.SceneryEntry{Name: "oak", IsTree: true, Tool: world.CursorTreeDown}
	flowerBed   = &world.SceneryEntry{Name: "flower bed", Tool: world.CursorFlowerDown}
	parkBench   = &world.SceneryEntry{Name: "bench", Tool: world.CursorArrow}
	sceneryKind = []*world.SceneryEntry{oak, oak, oak, flowerBed, parkBench}
)

type moneyEffect struct {
	loc    geom.CoordsXYZ
	amount int64
	ttl    int
}

// Park is a square map with stepped terrain, one footpath row, a roller
// coaster loop and a crowd of guests. The same size, seed and guest count
// always build the same park.
type Park struct {
	size     int32
	pathRow  int32
	tick     uint32
	progress int32

	surfaces []world.TileElement
	scenery  []*world.TileElement
	paths    []*world.TileElement
	track    []*world.TileElement

	entities map[world.EntityID]*world.Entity
	guests   []world.EntityID
	rides    map[world.RideID]*world.Ride
	cars     map[world.EntityID][]world.EntityID
	money    []moneyEffect
}

// NewPark builds a park of size×size tiles. Sizes below MinParkSize are
// raised to it.
func NewPark(size int32, seed uint64, guests int) *Park {
	size = max(size, MinParkSize)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	p := &Park{
		size:     size,
		pathRow:  size / 2,
		surfaces: make([]world.TileElement, size*size),
		scenery:  make([]*world.TileElement, size*size),
		paths:    make([]*world.TileElement, size*size),
		track:    make([]*world.TileElement, size*size),
		entities: make(map[world.EntityID]*world.Entity),
		rides:    make(map[world.RideID]*world.Ride),
		cars:     make(map[world.EntityID][]world.EntityID),
	}
	p.buildTerrain(rng)
	p.buildPath()
	p.buildCoaster()
	p.buildScenery(rng)
	p.buildCrowd(rng, guests)
	return p
}

func (p *Park) index(tx, ty int32) int { return int(ty*p.size + tx) }

func (p *Park) inside(tx, ty int32) bool {
	return tx >= 0 && ty >= 0 && tx < p.size && ty < p.size
}

func (p *Park) buildTerrain(rng *rand.Rand) {
	raw := make([]int32, len(p.surfaces))
	for i := range raw {
		raw[i] = rng.Int32N(landLevels + 1)
	}
	for ty := range p.size {
		for tx := range p.size {
			var sum, n int32
			for dy := int32(-1); dy <= 1; dy++ {
				for dx := int32(-1); dx <= 1; dx++ {
					if p.inside(tx+dx, ty+dy) {
						sum += raw[p.index(tx+dx, ty+dy)]
						n++
					}
				}
			}
			level := min((sum+n/2)/n, landLevels-1)
			p.surfaces[p.index(tx, ty)] = world.TileElement{
				Type: world.ElementSurface,
				Loc:  geom.CoordsXYZ{X: tx * geom.TileSize, Y: ty * geom.TileSize, Z: MinimumLandHeight + level*landStep},
			}
		}
	}
}

// flatten levels every tile in [lo, hi] to the height of lo.
func (p *Park) flatten(lo, hi geom.CoordsXY) {
	z := p.surfaces[p.index(lo.X, lo.Y)].Loc.Z
	for ty := lo.Y; ty <= hi.Y; ty++ {
		for tx := lo.X; tx <= hi.X; tx++ {
			p.surfaces[p.index(tx, ty)].Loc.Z = z
		}
	}
}

func (p *Park) buildPath() {
	p.flatten(geom.CoordsXY{X: 0, Y: p.pathRow}, geom.CoordsXY{X: p.size - 1, Y: p.pathRow})
	for tx := range p.size {
		surface := p.surfaces[p.index(tx, p.pathRow)]
		p.paths[p.index(tx, p.pathRow)] = &world.TileElement{Type: world.ElementPath, Loc: surface.Loc}
	}
}

func (p *Park) buildCoaster() {
	p.flatten(trackMin, trackMax)
	for ty := trackMin.Y; ty <= trackMax.Y; ty++ {
		for tx := trackMin.X; tx <= trackMax.X; tx++ {
			if tx != trackMin.X && tx != trackMax.X && ty != trackMin.Y && ty != trackMax.Y {
				continue
			}
			surface := p.surfaces[p.index(tx, ty)]
			p.track[p.index(tx, ty)] = &world.TileElement{Type: world.ElementTrack, Loc: surface.Loc}
		}
	}

	train := make([]world.EntityID, TrainCars)
	for i := range train {
		id := TrainID + world.EntityID(i)
		train[i] = id
		p.entities[id] = &world.Entity{ID: id, Kind: world.EntityVehicle, Ride: CoasterRide}
	}
	p.cars[TrainID] = train
	p.rides[CoasterRide] = &world.Ride{
		ID:       CoasterRide,
		OnTrack:  true,
		HasTrack: true,
		Vehicles: []world.EntityID{TrainID},
		OverallView: geom.CoordsXY{
			X: (trackMin.X + trackMax.X + 1) * geom.TileSize / 2,
			Y: (trackMin.Y + trackMax.Y + 1) * geom.TileSize / 2,
		},
	}
	p.rides[CarouselRide] = &world.Ride{
		ID:          CarouselRide,
		OverallView: geom.CoordsXY{X: (p.size - 4) * geom.TileSize, Y: 4 * geom.TileSize},
	}
	p.placeTrain()
}

func (p *Park) buildScenery(rng *rand.Rand) {
	for ty := range p.size {
		for tx := range p.size {
			i := p.index(tx, ty)
			if p.paths[i] != nil || p.track[i] != nil || rng.IntN(8) != 0 {
				continue
			}
			p.scenery[i] = &world.TileElement{
				Type:    world.ElementSmallScenery,
				Loc:     p.surfaces[i].Loc,
				Scenery: sceneryKind[rng.IntN(len(sceneryKind))],
			}
		}
	}
}

// buildCrowd places guests on the path. Guest 0 rides the coaster and the
// last guest is leaving the carousel.
func (p *Park) buildCrowd(rng *rand.Rand, n int) {
	for i := range n {
		id := world.EntityID(i)
		g := &world.Entity{
			ID:          id,
			Kind:        world.EntityGuest,
			State:       world.PeepWalking,
			CurrentRide: world.NullRide,
		}
		g.Loc = p.pathPoint(rng.Int32N(p.size * geom.TileSize))
		p.entities[id] = g
		p.guests = append(p.guests, id)
	}
	if n > 0 {
		g := p.entities[0]
		g.State = world.PeepOnRide
		g.CurrentRide = CoasterRide
		g.CurrentTrain = 0
		g.CurrentCar = 1
		g.Loc = p.entities[TrainID+1].Loc
	}
	if n > 1 {
		g := p.entities[world.EntityID(n-1)]
		g.State = world.PeepLeavingRide
		g.CurrentRide = CarouselRide
	}
	p.entities[StaffID] = &world.Entity{
		ID:          StaffID,
		Kind:        world.EntityStaff,
		State:       world.PeepWalking,
		CurrentRide: world.NullRide,
		Loc:         p.pathPoint(p.size * geom.TileSize / 2),
	}
}

func (p *Park) pathPoint(x int32) geom.CoordsXYZ {
	loc := geom.CoordsXY{X: x, Y: p.pathRow*geom.TileSize + geom.TileSize/2}
	return loc.WithZ(p.TileElementHeight(loc))
}

// loopPoint returns the point d units along the coaster loop.
func (p *Park) loopPoint(d int32) geom.CoordsXYZ {
	lo := geom.CoordsXY{X: trackMin.X*geom.TileSize + geom.TileSize/2, Y: trackMin.Y*geom.TileSize + geom.TileSize/2}
	hi := geom.CoordsXY{X: trackMax.X*geom.TileSize + geom.TileSize/2, Y: trackMax.Y*geom.TileSize + geom.TileSize/2}
	w, h := hi.X-lo.X, hi.Y-lo.Y
	d %= 2 * (w + h)
	if d < 0 {
		d += 2 * (w + h)
	}

	var loc geom.CoordsXY
	switch {
	case d < w:
		loc = geom.CoordsXY{X: lo.X + d, Y: lo.Y}
	case d < w+h:
		loc = geom.CoordsXY{X: hi.X, Y: lo.Y + d - w}
	case d < 2*w+h:
		loc = geom.CoordsXY{X: hi.X - (d - w - h), Y: hi.Y}
	default:
		loc = geom.CoordsXY{X: lo.X, Y: hi.Y - (d - 2*w - h)}
	}
	return loc.WithZ(p.TileElementHeight(loc))
}

func (p *Park) placeTrain() {
	for i, id := range p.cars[TrainID] {
		p.entities[id].Loc = p.loopPoint(p.progress - int32(i)*carSpacing)
	}
}

// Tick advances the park by one frame: the train moves round its loop,
// walking guests and staff move along the path and money labels age.
func (p *Park) Tick() {
	p.tick++
	p.progress += trainSpeed
	p.placeTrain()

	edge := p.size * geom.TileSize
	for _, e := range p.entities {
		switch {
		case e.Kind == world.EntityGuest && e.State == world.PeepOnRide:
			if car, ok := p.Car(TrainID, e.CurrentCar); ok {
				e.Loc = car.Loc
			}
		case (e.Kind == world.EntityGuest || e.Kind == world.EntityStaff) && e.State == world.PeepWalking:
			x := e.Loc.X + walkSpeed
			if x >= edge {
				x -= edge
			}
			e.Loc = p.pathPoint(x)
		}
	}

	p.money = slices.DeleteFunc(p.money, func(m moneyEffect) bool {
		return m.ttl <= 1
	})
	for i := range p.money {
		p.money[i].ttl--
		p.money[i].loc.Z++
	}
}

// Ticks returns the number of Tick calls so far.
func (p *Park) Ticks() uint32 { return p.tick }

// Size returns the map edge in tiles.
func (p *Park) Size() int32 { return p.size }

// Centre returns the middle of the map at terrain height.
func (p *Park) Centre() geom.CoordsXYZ {
	c := geom.CoordsXY{X: p.size * geom.TileSize / 2, Y: p.size * geom.TileSize / 2}
	return c.WithZ(p.TileElementHeight(c))
}

// PathRow returns the tile row the footpath runs along.
func (p *Park) PathRow() int32 { return p.pathRow }

// Guests returns the guest ids in creation order.
func (p *Park) Guests() []world.EntityID { return p.guests }

// AddMoney shows a floating cost label above loc for a short while.
func (p *Park) AddMoney(loc geom.CoordsXYZ, amount int64) {
	p.money = append(p.money, moneyEffect{loc: loc, amount: amount, ttl: moneyTicks})
}

// Surface returns the surface element of the tile containing pos.
func (p *Park) Surface(pos geom.CoordsXY) (*world.TileElement, bool) {
	tx, ty := pos.X/geom.TileSize, pos.Y/geom.TileSize
	if !p.IsLocationValid(pos) {
		return nil, false
	}
	return &p.surfaces[p.index(tx, ty)], true
}

// TileElementHeight implements world.World.
func (p *Park) TileElementHeight(pos geom.CoordsXY) int32 {
	s, ok := p.Surface(pos)
	if !ok {
		return MinimumLandHeight
	}
	return s.Loc.Z
}

// MapSizeMinus2 implements world.World.
func (p *Park) MapSizeMinus2() geom.CoordsXY {
	edge := p.size*geom.TileSize - 2
	return geom.CoordsXY{X: edge, Y: edge}
}

// IsLocationValid implements world.World.
func (p *Park) IsLocationValid(pos geom.CoordsXY) bool {
	edge := p.size * geom.TileSize
	return pos.X >= 0 && pos.Y >= 0 && pos.X < edge && pos.Y < edge
}

// Entity implements world.World.
func (p *Park) Entity(id world.EntityID) (*world.Entity, bool) {
	e, ok := p.entities[id]
	return e, ok
}

// Ride implements world.World.
func (p *Park) Ride(id world.RideID) (*world.Ride, bool) {
	r, ok := p.rides[id]
	return r, ok
}

// Car implements world.World.
func (p *Park) Car(train world.EntityID, index uint8) (*world.Entity, bool) {
	cars := p.cars[train]
	if int(index) >= len(cars) {
		return nil, false
	}
	return p.Entity(cars[index])
}

// RemoveEntity deletes an entity, as when a guest leaves the park.
func (p *Park) RemoveEntity(id world.EntityID) {
	delete(p.entities, id)
	p.guests = slices.DeleteFunc(p.guests, func(g world.EntityID) bool { return g == id })
}

// eachEntity visits entities in id order.
func (p *Park) eachEntity(fn func(e *world.Entity)) {
	ids := make([]world.EntityID, 0, len(p.entities))
	for id := range p.entities {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn(p.entities[id])
	}
}
