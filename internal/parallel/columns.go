package parallel

// ColumnWidth is the width in view units of one paint column.
const ColumnWidth = 32

// Column is a vertical strip [X, X+Width) of a paint rectangle.
type Column struct {
	X     int32
	Width int32
}

// Columns splits [left, left+width) into strips that break on multiples of
// ColumnWidth. Only the first and last strip may be narrower than
// ColumnWidth; together the strips cover the span exactly once.
func Columns(left, width int32) []Column {
	right := left + width
	if width <= 0 {
		return nil
	}
	aligned := left &^ (ColumnWidth - 1)

	cols := make([]Column, 0, (right-aligned+ColumnWidth-1)/ColumnWidth)
	for x := aligned; x < right; x += ColumnWidth {
		start := max(x, left)
		end := min(x+ColumnWidth, right)
		cols = append(cols, Column{X: start, Width: end - start})
	}
	return cols
}
