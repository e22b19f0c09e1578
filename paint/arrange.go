package paint

import "slices"

// Arrange links the session's top-level structs into draw order through
// NextQuadrantEntry and sets Head. Structs are ordered by quadrant, far to
// near; structs in the same quadrant keep insertion order.
func Arrange(s *Session) {
	slices.SortStableFunc(s.roots, func(a, b *PaintStruct) int {
		return int(a.Quadrant - b.Quadrant)
	})
	s.Head = nil
	var prev *PaintStruct
	for _, ps := range s.roots {
		ps.NextQuadrantEntry = nil
		if prev == nil {
			s.Head = ps
		} else {
			prev.NextQuadrantEntry = ps
		}
		prev = ps
	}
}
