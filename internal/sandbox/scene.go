package sandbox

import (
	"github.com/gogpu/isoview"
	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/paint"
	"github.com/gogpu/isoview/sprite"
	"github.com/gogpu/isoview/world"
)

// Screen-space extent of anything painted on a tile, relative to the tile
// centre.
var tileBounds = geom.Rect(-tileWidth/2, -64, tileWidth/2, tileHeight/2+blockDepth)

// Scene paints a Park with Sprites. It implements isoview.SceneGenerator and
// may run on many columns at once.
type Scene struct {
	park    *Park
	sprites *Sprites
}

// NewScene returns a scene generator for park.
func NewScene(park *Park, sprites *Sprites) *Scene {
	return &Scene{park: park, sprites: sprites}
}

// Generate adds every tile and entity that may touch the session target.
func (g *Scene) Generate(s *paint.Session) {
	view := s.Target.ViewRect()
	p := g.park

	for ty := range p.size {
		for tx := range p.size {
			i := p.index(tx, ty)
			surface := &p.surfaces[i]
			centre := surface.Loc.XY().ToTileCentre().WithZ(surface.Loc.Z)
			origin := geom.Translate3DTo2D(s.Rotation, centre)
			if tileBounds.Translate(origin).Intersect(view).Empty() {
				continue
			}
			g.paintTile(s, i, centre)
		}
	}

	p.eachEntity(func(e *world.Entity) {
		g.paintEntity(s, e, view)
	})

	for _, m := range p.money {
		origin := geom.Translate3DTo2D(s.Rotation, m.loc)
		if geom.RectWH(origin.X-64, origin.Y-16, 128, 32).Intersect(view).Empty() {
			continue
		}
		colour := sprite.ColourBrightRed
		if m.amount < 0 {
			colour = sprite.ColourBrightGreen
		}
		s.AddMoney(m.amount, m.loc, colour)
	}
}

// look returns img as it should be drawn for the item described by ps, or
// false if the item is hidden. Partially hidden items are see-through.
func (g *Scene) look(s *paint.Session, ps *paint.PaintStruct, img sprite.ImageID) (sprite.ImageID, bool) {
	switch isoview.PaintStructVisibility(ps, s.ViewFlags, g.park) {
	case isoview.Hidden:
		return img, false
	case isoview.Partial:
		return img.WithTransparency(FilterSeeThrough), true
	}
	return img, true
}

func (g *Scene) paintTile(s *paint.Session, i int, centre geom.CoordsXYZ) {
	p := g.park
	surface := &p.surfaces[i]

	if !s.ViewFlags.Has(paint.FlagUndergroundInside) {
		colour := sprite.ColourDarkGreen
		if surface.Loc.Z > MinimumLandHeight+landStep {
			colour = sprite.ColourMossGreen
		}
		ps := s.AddImage(g.sprites.Block.WithRemap(uint8(colour)), centre, paint.InteractionTerrain)
		ps.MapPos = surface.Loc.XY()
		ps.Element = surface
		if s.ViewFlags.Has(paint.FlagGridlines) {
			s.Attach(ps, g.sprites.Grid, geom.ScreenXY{})
		}
		if s.ViewFlags.Has(paint.FlagLandOwnership | paint.FlagConstructionRights) {
			s.Attach(ps, g.sprites.Ownership, geom.ScreenXY{})
		}
		if path := p.paths[i]; path != nil {
			g.addChild(s, ps, path, g.sprites.Path, centre, paint.InteractionFootpath)
		}
	}

	if track := p.track[i]; track != nil {
		query := paint.PaintStruct{Interaction: paint.InteractionRide, Element: track}
		if img, ok := g.look(s, &query, g.sprites.Track); ok {
			ps := s.AddImage(img, centre, paint.InteractionRide)
			ps.MapPos = track.Loc.XY()
			ps.Element = track
		}
	}

	if el := p.scenery[i]; el != nil {
		img := g.sprites.Bench
		switch {
		case el.Scenery.IsTree:
			img = g.sprites.Tree
		case el.Scenery.Tool == world.CursorFlowerDown:
			img = g.sprites.Flowers
		}
		query := paint.PaintStruct{Interaction: paint.InteractionScenery, Element: el}
		img, ok := g.look(s, &query, img)
		if !ok {
			return
		}
		ps := s.AddImage(img, centre, paint.InteractionScenery)
		ps.MapPos = el.Loc.XY()
		ps.Element = el
	}
}

func (g *Scene) addChild(s *paint.Session, parent *paint.PaintStruct, el *world.TileElement, img sprite.ImageID, pos geom.CoordsXYZ, item paint.InteractionItem) {
	query := paint.PaintStruct{Interaction: item, Element: el}
	img, ok := g.look(s, &query, img)
	if !ok {
		return
	}
	ps := s.AddChild(parent, img, pos, item)
	ps.MapPos = el.Loc.XY()
	ps.Element = el
}

// entityColour gives each peep a stable shirt colour.
func entityColour(e *world.Entity) sprite.Colour {
	switch e.Kind {
	case world.EntityStaff:
		return sprite.ColourLightBlue
	case world.EntityVehicle:
		return sprite.ColourBrightRed
	}
	shirts := [...]sprite.Colour{sprite.ColourYellow, sprite.ColourBrightPink, sprite.ColourDarkPurple, sprite.ColourLightBrown}
	return shirts[int(e.ID)%len(shirts)]
}

func (g *Scene) paintEntity(s *paint.Session, e *world.Entity, view geom.ScreenRect) {
	if e.Kind == world.EntityGuest && e.State == world.PeepOnRide {
		return
	}
	origin := geom.Translate3DTo2D(s.Rotation, e.Loc)
	if geom.Rect(origin.X-16, origin.Y-24, origin.X+16, origin.Y+8).Intersect(view).Empty() {
		return
	}
	img := g.sprites.Peep
	if e.Kind == world.EntityVehicle {
		img = g.sprites.Car
	}
	query := paint.PaintStruct{Interaction: paint.InteractionEntity, Entity: e}
	img, ok := g.look(s, &query, img.WithRemap(uint8(entityColour(e))))
	if !ok {
		return
	}
	ps := s.AddImage(img, e.Loc, paint.InteractionEntity)
	ps.Entity = e

	// Riders sit in their car.
	if e.Kind != world.EntityVehicle {
		return
	}
	for _, id := range g.park.guests {
		rider := g.park.entities[id]
		if rider.State != world.PeepOnRide || rider.CurrentRide != e.Ride {
			continue
		}
		if car, ok := g.park.Car(TrainID, rider.CurrentCar); ok && car.ID == e.ID {
			s.Attach(ps, g.sprites.Peep.WithRemap(uint8(entityColour(rider))), geom.ScreenXY{Y: -4})
		}
	}
}
