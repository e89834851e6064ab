package board

import (
	"github.com/domino14/quadrille/tiles"
)

// PieceSet is the immutable half of the search state: the sorted tile list
// and the suffix tables derived from it. Boards share one PieceSet by
// pointer, so cloning a Board at a task boundary copies only the mutable
// occupancy, cursor, imbalance and history.
type PieceSet struct {
	pieces []tiles.Tile

	// suffixMinSize[i] is the smallest popcount among pieces[i:]. The
	// sentinel at index len is 0, which HasSolvableRegions treats as
	// "no pieces left, nothing to check".
	suffixMinSize []int

	// suffixMaxImbalance[i] bounds how much checkerboard imbalance
	// pieces[i:] can still cancel: the sum of each piece's absolute
	// imbalance over all its placements.
	suffixMaxImbalance []int

	gcd       int
	totalArea int
}

// NewPieceSet sorts a copy of ts (largest first, identical tiles adjacent)
// and precomputes the suffix tables and the popcount GCD.
func NewPieceSet(ts []tiles.Tile) *PieceSet {
	pieces := make([]tiles.Tile, len(ts))
	copy(pieces, ts)
	tiles.Sort(pieces)

	ps := &PieceSet{
		pieces:             pieces,
		suffixMinSize:      make([]int, len(pieces)+1),
		suffixMaxImbalance: make([]int, len(pieces)+1),
		totalArea:          tiles.TotalArea(pieces),
	}

	minSize := 0
	maxImbalance := 0
	for i := len(pieces) - 1; i >= 0; i-- {
		size := pieces[i].Size()
		if minSize == 0 || size < minSize {
			minSize = size
		}
		ps.suffixMinSize[i] = minSize

		imb := pieces[i].Mask.Imbalance()
		if imb < 0 {
			imb = -imb
		}
		maxImbalance += imb
		ps.suffixMaxImbalance[i] = maxImbalance

		ps.gcd = gcd(ps.gcd, size)
	}
	return ps
}

func (ps *PieceSet) NumPieces() int {
	return len(ps.pieces)
}

func (ps *PieceSet) Piece(i int) tiles.Tile {
	return ps.pieces[i]
}

// TotalArea is the number of cells the full tile set covers. A set whose
// total area is not 64 cannot tile the board.
func (ps *PieceSet) TotalArea() int {
	return ps.totalArea
}

// GCD is the greatest common divisor of all piece sizes.
func (ps *PieceSet) GCD() int {
	return ps.gcd
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
