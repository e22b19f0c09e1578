package isoview

import (
	"fmt"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/world"
)

// FocusKind says what a Focus points at.
type FocusKind uint8

const (
	FocusNone FocusKind = iota
	FocusCoordinate
	FocusEntity
)

// Focus is the target of a viewport: a fixed world position or an entity,
// plus the zoom level to view it at. The zero value is no focus.
type Focus struct {
	kind   FocusKind
	coords geom.CoordsXYZ
	entity world.EntityID
	Zoom   geom.Zoom
}

// CoordinateFocus looks at a fixed world position.
func CoordinateFocus(c geom.CoordsXYZ) Focus {
	return Focus{kind: FocusCoordinate, coords: c}
}

// EntityFocus follows an entity by id.
func EntityFocus(id world.EntityID) Focus {
	return Focus{kind: FocusEntity, entity: id}
}

// WithZoom returns f with a zoom level.
func (f Focus) WithZoom(z geom.Zoom) Focus {
	f.Zoom = z
	return f
}

// Kind returns what f points at.
func (f Focus) Kind() FocusKind { return f.kind }

// IsSet reports whether f points at anything.
func (f Focus) IsSet() bool { return f.kind != FocusNone }

// Entity returns the followed entity, if any.
func (f Focus) Entity() (world.EntityID, bool) {
	return f.entity, f.kind == FocusEntity
}

// Coordinate returns the fixed position, if any.
func (f Focus) Coordinate() (geom.CoordsXYZ, bool) {
	return f.coords, f.kind == FocusCoordinate
}

// Position resolves f to a world position. It fails with ErrEntityNotFound
// when the followed entity has vanished, ErrInvalidLocation for the null
// coordinate and ErrNoFocus for the zero Focus.
func (f Focus) Position(w world.World) (geom.CoordsXYZ, error) {
	switch f.kind {
	case FocusCoordinate:
		if f.coords.IsNull() {
			return geom.CoordsXYZ{}, ErrInvalidLocation
		}
		return f.coords, nil
	case FocusEntity:
		e, ok := w.Entity(f.entity)
		if !ok {
			return geom.CoordsXYZ{}, fmt.Errorf("focus on entity %d: %w", f.entity, ErrEntityNotFound)
		}
		return e.Loc, nil
	default:
		return geom.CoordsXYZ{}, ErrNoFocus
	}
}

func (f Focus) String() string {
	switch f.kind {
	case FocusCoordinate:
		return fmt.Sprintf("coords%v", f.coords)
	case FocusEntity:
		return fmt.Sprintf("entity(%d)", f.entity)
	default:
		return "none"
	}
}
