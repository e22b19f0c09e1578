package parallel

import (
	"math/bits"
	"sync/atomic"

	"github.com/gogpu/isoview/geom"
)

// Dirty block size in screen pixels. Blocks are wide and short because
// invalidations tend to be horizontal bands of isometric tiles.
const (
	DirtyBlockWidth  = 64
	DirtyBlockHeight = 8
)

// DirtyRegion tracks which screen blocks need repainting using an atomic
// bitmap, one bit per block packed into uint64 words.
//
// All methods are safe for concurrent use without external synchronization.
type DirtyRegion struct {
	words   []atomic.Uint64
	blocksX int
	blocksY int
}

// NewDirtyRegion creates a tracker covering a width×height pixel screen.
// Returns nil if either dimension is not positive.
func NewDirtyRegion(width, height int) *DirtyRegion {
	if width <= 0 || height <= 0 {
		return nil
	}
	bx := (width + DirtyBlockWidth - 1) / DirtyBlockWidth
	by := (height + DirtyBlockHeight - 1) / DirtyBlockHeight
	return &DirtyRegion{
		words:   make([]atomic.Uint64, (bx*by+63)/64),
		blocksX: bx,
		blocksY: by,
	}
}

// Mark flags a single block. Out of range blocks are ignored.
func (d *DirtyRegion) Mark(bx, by int) {
	if bx < 0 || bx >= d.blocksX || by < 0 || by >= d.blocksY {
		return
	}
	idx := by*d.blocksX + bx
	d.words[idx/64].Or(1 << (idx & 63))
}

// MarkRect flags every block touched by the half-open pixel rectangle r.
// The rectangle is clipped to the screen; empty rectangles mark nothing.
func (d *DirtyRegion) MarkRect(r geom.ScreenRect) {
	if r.Empty() {
		return
	}
	bx1 := max(int(r.Min.X), 0) / DirtyBlockWidth
	by1 := max(int(r.Min.Y), 0) / DirtyBlockHeight
	bx2 := min((int(r.Max.X)-1)/DirtyBlockWidth, d.blocksX-1)
	by2 := min((int(r.Max.Y)-1)/DirtyBlockHeight, d.blocksY-1)
	if r.Max.X <= 0 || r.Max.Y <= 0 || bx1 > bx2 || by1 > by2 {
		return
	}
	for by := by1; by <= by2; by++ {
		for bx := bx1; bx <= bx2; bx++ {
			d.Mark(bx, by)
		}
	}
}

// MarkAll flags the whole screen.
func (d *DirtyRegion) MarkAll() {
	total := d.blocksX * d.blocksY
	full := total / 64
	for i := range full {
		d.words[i].Store(^uint64(0))
	}
	if rem := total % 64; rem > 0 {
		d.words[full].Store(1<<rem - 1)
	}
}

// IsDirty reports whether block (bx, by) is flagged.
func (d *DirtyRegion) IsDirty(bx, by int) bool {
	if bx < 0 || bx >= d.blocksX || by < 0 || by >= d.blocksY {
		return false
	}
	idx := by*d.blocksX + bx
	return d.words[idx/64].Load()&(1<<(idx&63)) != 0
}

// Count returns the number of flagged blocks.
func (d *DirtyRegion) Count() int {
	n := 0
	for i := range d.words {
		n += bits.OnesCount64(d.words[i].Load())
	}
	return n
}

// IsEmpty reports whether nothing is flagged.
func (d *DirtyRegion) IsEmpty() bool {
	for i := range d.words {
		if d.words[i].Load() != 0 {
			return false
		}
	}
	return true
}

// Drain atomically clears the bitmap and returns the flagged area as pixel
// rectangles. Horizontal runs of blocks become one rectangle and identical
// runs on consecutive block rows are merged.
func (d *DirtyRegion) Drain() []geom.ScreenRect {
	snapshot := make([]uint64, len(d.words))
	for i := range d.words {
		snapshot[i] = d.words[i].Swap(0)
	}
	dirty := func(bx, by int) bool {
		idx := by*d.blocksX + bx
		return snapshot[idx/64]&(1<<(idx&63)) != 0
	}

	var (
		rects []geom.ScreenRect
		open  = map[[2]int]int{} // run span -> index of the rect ending on the previous row
	)
	for by := range d.blocksY {
		next := map[[2]int]int{}
		for bx := 0; bx < d.blocksX; {
			if !dirty(bx, by) {
				bx++
				continue
			}
			start := bx
			for bx < d.blocksX && dirty(bx, by) {
				bx++
			}
			span := [2]int{start, bx}
			if i, ok := open[span]; ok {
				rects[i].Max.Y = int32((by + 1) * DirtyBlockHeight)
				next[span] = i
				continue
			}
			rects = append(rects, geom.Rect(
				int32(start*DirtyBlockWidth), int32(by*DirtyBlockHeight),
				int32(bx*DirtyBlockWidth), int32((by+1)*DirtyBlockHeight),
			))
			next[span] = len(rects) - 1
		}
		open = next
	}
	return rects
}

// BlocksX returns the number of block columns.
func (d *DirtyRegion) BlocksX() int { return d.blocksX }

// BlocksY returns the number of block rows.
func (d *DirtyRegion) BlocksY() int { return d.blocksY }
