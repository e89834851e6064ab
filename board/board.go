// Package board holds the mutable search state of the packing solver: an
// occupancy bitboard over the 8x8 grid, a cursor into the shared sorted tile
// list, and a bounded undo history giving constant-time place and pop.
package board

import (
	"github.com/domino14/quadrille/bitboard"
	"github.com/domino14/quadrille/tiles"
)

// Board is the per-search mutable state. It is mutated only by Place and
// Pop; everything else is a read-only query. Boards are cloned by value at
// task boundaries and are never shared between goroutines.
type Board struct {
	occ        bitboard.Mask
	set        *PieceSet
	pieceIndex int
	imbalance  int
	hist       history
}

// New returns an empty board over the given piece set.
func New(set *PieceSet) *Board {
	return &Board{set: set}
}

// Copy returns an independent clone. The PieceSet is shared; the mutable
// state (occupancy, cursor, imbalance, history) is copied.
func (b *Board) Copy() *Board {
	nb := *b
	return &nb
}

// Place puts the piece mask, shifted to origin, onto the board. The caller
// must have checked that the shifted piece stays on the grid and does not
// collide with occupied cells.
func (b *Board) Place(piece bitboard.Mask, origin uint8) {
	shifted := piece << origin
	delta := shifted.Imbalance()
	b.hist.push(placement{occ: b.occ, origin: origin, delta: int8(delta)})
	b.occ |= shifted
	b.imbalance += delta
	b.pieceIndex++
}

// Pop exactly reverses the most recent Place. It is a no-op on an empty
// history.
func (b *Board) Pop() {
	last, ok := b.hist.pop()
	if !ok {
		return
	}
	b.occ = last.occ
	b.imbalance -= int(last.delta)
	b.pieceIndex--
}

// Placements returns the set of unoccupied cells.
func (b *Board) Placements() bitboard.Mask {
	return ^b.occ
}

func (b *Board) Occupancy() bitboard.Mask {
	return b.occ
}

func (b *Board) OpenSquares() int {
	return (^b.occ).Count()
}

// CurrentPiece is the next tile to place. Undefined when Done.
func (b *Board) CurrentPiece() tiles.Tile {
	return b.set.pieces[b.pieceIndex]
}

func (b *Board) Piece(i int) tiles.Tile {
	return b.set.pieces[i]
}

func (b *Board) NumPieces() int {
	return len(b.set.pieces)
}

func (b *Board) PieceIndex() int {
	return b.pieceIndex
}

// LastPlacementOrigin is the origin cell of the most recent placement, or 0
// if nothing has been placed.
func (b *Board) LastPlacementOrigin() uint8 {
	last, ok := b.hist.top()
	if !ok {
		return 0
	}
	return last.origin
}

// PlacementOrigin returns the origin of the i-th placed piece, i < PieceIndex.
func (b *Board) PlacementOrigin(i int) uint8 {
	return b.hist.at(i).origin
}

// SymmetryBroken reports whether any piece has been placed yet. The first
// piece is the one restricted to the canonical octant.
func (b *Board) SymmetryBroken() bool {
	return b.pieceIndex > 0
}

func (b *Board) Done() bool {
	return b.pieceIndex == len(b.set.pieces)
}

// Filled reports whether every cell is covered.
func (b *Board) Filled() bool {
	return b.occ == bitboard.Full
}

func (b *Board) CurrentImbalance() int {
	return b.imbalance
}

func (b *Board) PieceSet() *PieceSet {
	return b.set
}

// Equals compares occupancy. Two boards over the same piece set with equal
// occupancy are interchangeable as search states.
func (b *Board) Equals(other *Board) bool {
	return b.occ == other.occ
}
