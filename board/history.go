package board

import "github.com/domino14/quadrille/bitboard"

// placement is one undo record: the occupancy before the piece went down,
// the origin cell it was shifted to, and the checkerboard imbalance it added.
type placement struct {
	occ    bitboard.Mask
	origin uint8
	delta  int8
}

// history is a fixed-capacity LIFO of placements. Capacity 64 covers any
// tile set that fits on the board, so pushes never allocate.
type history struct {
	entries [64]placement
	used    int
}

func (h *history) push(p placement) {
	h.entries[h.used] = p
	h.used++
}

func (h *history) pop() (placement, bool) {
	if h.used == 0 {
		return placement{}, false
	}
	h.used--
	return h.entries[h.used], true
}

func (h *history) top() (placement, bool) {
	if h.used == 0 {
		return placement{}, false
	}
	return h.entries[h.used-1], true
}

func (h *history) len() int {
	return h.used
}

func (h *history) at(i int) placement {
	return h.entries[i]
}
