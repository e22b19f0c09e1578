package paint

import (
	"golang.org/x/text/language"

	"github.com/gogpu/isoview/geom"
	"github.com/gogpu/isoview/sprite"
	"github.com/gogpu/isoview/world"
)

// PaintStruct is one image in the scene graph.
//
// Structs added with AddImage are top-level nodes; Arrange links them in
// draw order through NextQuadrantEntry. Structs added with AddChild hang off
// a parent through the Children chain and are drawn right after it.
type PaintStruct struct {
	Image     sprite.ImageID
	ScreenPos geom.ScreenXY
	MapPos    geom.CoordsXY
	Quadrant  int32

	Interaction InteractionItem
	Element     *world.TileElement
	Entity      *world.Entity

	Children          *PaintStruct
	NextQuadrantEntry *PaintStruct
	Attached          *AttachedPaintStruct
}

// AttachedPaintStruct is an extra image drawn at an offset from its owner.
type AttachedPaintStruct struct {
	Image       sprite.ImageID
	RelativePos geom.ScreenXY
	Next        *AttachedPaintStruct
}

// MoneyString is a floating cost label. Amount is in cents; Pos is in view
// units.
type MoneyString struct {
	Amount int64
	Pos    geom.ScreenXY
	Colour sprite.Colour
	Next   *MoneyString
}

const chunkSize = 128

// Session collects the scene graph for one column of one paint pass.
type Session struct {
	Target    Target
	ViewFlags ViewFlags
	Rotation  uint8
	Store     sprite.Store
	Locale    language.Tag

	// Head is the first struct in draw order, valid after Arrange.
	Head *PaintStruct
	// Money is the list of floating money labels, in insertion order.
	Money *MoneyString

	roots     []*PaintStruct
	chunks    [][]PaintStruct
	used      int
	attached  []AttachedPaintStruct
	moneyTail *MoneyString
	rowBuf    []uint8
}

// Reset clears the session for reuse while keeping its allocations.
func (s *Session) Reset() {
	for _, c := range s.chunks {
		clear(c)
	}
	clear(s.attached)
	*s = Session{
		chunks:   s.chunks,
		attached: s.attached[:0],
		roots:    s.roots[:0],
		rowBuf:   s.rowBuf,
	}
}

// Len returns the number of paint structs in the session, children
// included.
func (s *Session) Len() int { return s.used }

func (s *Session) alloc() *PaintStruct {
	chunk, idx := s.used/chunkSize, s.used%chunkSize
	if chunk == len(s.chunks) {
		s.chunks = append(s.chunks, make([]PaintStruct, chunkSize))
	}
	s.used++
	return &s.chunks[chunk][idx]
}

func (s *Session) newStruct(id sprite.ImageID, pos geom.CoordsXYZ, item InteractionItem) *PaintStruct {
	ps := s.alloc()
	rotated := pos.XY().Rotate(s.Rotation)
	*ps = PaintStruct{
		Image:       id,
		ScreenPos:   geom.Translate3DTo2D(s.Rotation, pos),
		MapPos:      pos.XY(),
		Quadrant:    (rotated.X + rotated.Y) >> 5,
		Interaction: item,
	}
	return ps
}

// AddImage adds a top-level image anchored at the world position pos.
func (s *Session) AddImage(id sprite.ImageID, pos geom.CoordsXYZ, item InteractionItem) *PaintStruct {
	ps := s.newStruct(id, pos, item)
	s.roots = append(s.roots, ps)
	return ps
}

// AddChild adds an image drawn after parent and its earlier children.
// The child shares the parent's quadrant.
func (s *Session) AddChild(parent *PaintStruct, id sprite.ImageID, pos geom.CoordsXYZ, item InteractionItem) *PaintStruct {
	ps := s.newStruct(id, pos, item)
	ps.Quadrant = parent.Quadrant
	tail := parent
	for tail.Children != nil {
		tail = tail.Children
	}
	tail.Children = ps
	return ps
}

// Attach adds an image drawn at ps.ScreenPos+rel, after ps itself.
func (s *Session) Attach(ps *PaintStruct, id sprite.ImageID, rel geom.ScreenXY) {
	if len(s.attached) == cap(s.attached) {
		// Growing would move earlier entries; start a fresh backing array.
		s.attached = make([]AttachedPaintStruct, 0, max(2*cap(s.attached), 16))
	}
	s.attached = append(s.attached, AttachedPaintStruct{Image: id, RelativePos: rel})
	a := &s.attached[len(s.attached)-1]
	if ps.Attached == nil {
		ps.Attached = a
		return
	}
	tail := ps.Attached
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = a
}

// AddMoney adds a floating money label above the world position pos.
func (s *Session) AddMoney(amount int64, pos geom.CoordsXYZ, colour sprite.Colour) {
	m := &MoneyString{
		Amount: amount,
		Pos:    geom.Translate3DTo2D(s.Rotation, pos),
		Colour: colour,
	}
	if s.moneyTail == nil {
		s.Money = m
	} else {
		s.moneyTail.Next = m
	}
	s.moneyTail = m
}
