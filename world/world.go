// Package world defines the slice of simulation state the viewport core
// consumes: terrain height, map extent, entities, rides and tile elements.
//
// Implementations live outside isoview; internal/sandbox provides a small
// deterministic one for tests and the demo commands.
package world

import "github.com/gogpu/isoview/geom"

// World answers the queries the viewport core makes against simulation state.
type World interface {
	// TileElementHeight returns the terrain surface height at pos.
	TileElementHeight(pos geom.CoordsXY) int32
	// MapSizeMinus2 returns the largest world coordinate a view may centre on.
	MapSizeMinus2() geom.CoordsXY
	// IsLocationValid reports whether pos lies on the map.
	IsLocationValid(pos geom.CoordsXY) bool
	// Entity looks up a live entity. Vanished entities report false.
	Entity(id EntityID) (*Entity, bool)
	// Ride looks up a ride.
	Ride(id RideID) (*Ride, bool)
	// Car returns the index-th car of the train headed by train.
	Car(train EntityID, index uint8) (*Entity, bool)
}

// EntityID identifies an entity by value.
type EntityID uint16

// NullEntity is the absent entity.
const NullEntity EntityID = 0xFFFF

// IsNull reports whether id refers to no entity.
func (id EntityID) IsNull() bool { return id == NullEntity }

// RideID identifies a ride by value.
type RideID uint16

// NullRide is the absent ride.
const NullRide RideID = 0xFFFF

// EntityKind is the category of an entity.
type EntityKind uint8

const (
	EntityNull EntityKind = iota
	EntityVehicle
	EntityGuest
	EntityStaff
	EntityLitter
	EntityDuck
	EntityMoneyEffect
	EntitySteamParticle
	EntityBalloon
)

var entityKindNames = [...]string{
	"null", "vehicle", "guest", "staff", "litter", "duck", "money-effect", "steam-particle", "balloon",
}

func (k EntityKind) String() string {
	if int(k) < len(entityKindNames) {
		return entityKindNames[k]
	}
	return "unknown"
}

// PeepState is the activity of a guest or staff member.
type PeepState uint8

const (
	PeepWalking PeepState = iota
	PeepPicked
	PeepEnteringRide
	PeepOnRide
	PeepLeavingRide
	PeepQueuing
	PeepSitting
)

// Entity is a snapshot of a moving world object.
type Entity struct {
	ID   EntityID
	Kind EntityKind
	Loc  geom.CoordsXYZ

	// Peep fields, meaningful for guests and staff.
	State        PeepState
	CurrentRide  RideID
	CurrentTrain uint8
	CurrentCar   uint8

	// Ride is the owning ride of a vehicle.
	Ride RideID
}

// Ride is the subset of ride state the viewport core reads.
type Ride struct {
	ID RideID
	// OnTrack is set while the ride's trains are placed on the track.
	OnTrack bool
	// HasTrack reports whether the ride type is built from track pieces.
	HasTrack bool
	// Vehicles holds the head car of each train.
	Vehicles []EntityID
	// OverallView is a representative tile for camera framing.
	OverallView geom.CoordsXY
}
