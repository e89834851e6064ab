// Package tiles defines the immutable tile shapes the solver places, and
// parses them from the coordinate-list input format.
package tiles

import (
	"sort"

	"github.com/samber/lo"

	"github.com/domino14/quadrille/bitboard"
)

// Tile is an immutable shape anchored at the board origin: its mask is
// nonzero and has at least one set bit on row 0 and one on column 0.
// Width and Height are the maximum x and y coordinates of any set bit.
type Tile struct {
	Mask   bitboard.Mask
	Width  uint8
	Height uint8
}

// New builds a Tile from a nonzero mask, computing its bounding extents.
func New(mask bitboard.Mask) Tile {
	var maxX, maxY uint8
	for m := mask; m != 0; m &= m - 1 {
		i := m.LSB()
		x := uint8(i % 8)
		y := uint8(i / 8)
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}
	return Tile{Mask: mask, Width: maxX, Height: maxY}
}

func (t Tile) Size() int {
	return t.Mask.Count()
}

// Sort orders tiles largest-first so the most constrained placements come
// first, breaking ties by mask value descending so identical tiles end up
// adjacent. The duplicate-ordering symmetry break depends on this grouping.
func Sort(ts []Tile) {
	sort.Slice(ts, func(i, j int) bool {
		ci, cj := ts[i].Size(), ts[j].Size()
		if ci != cj {
			return ci > cj
		}
		return ts[i].Mask > ts[j].Mask
	})
}

// TotalArea is the number of cells the tile set covers when fully placed.
func TotalArea(ts []Tile) int {
	return lo.SumBy(ts, Tile.Size)
}
