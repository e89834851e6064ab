package board

// ParityFeasible is the checkerboard parity bound. If the imbalance already
// accumulated exceeds what the remaining pieces can cancel even in their most
// corrective placements, no completion exists.
func (b *Board) ParityFeasible() bool {
	imb := b.imbalance
	if imb < 0 {
		imb = -imb
	}
	return imb <= b.set.suffixMaxImbalance[b.pieceIndex]
}

// SuffixMaxImbalance is the parity budget of the remaining pieces.
func (b *Board) SuffixMaxImbalance() int {
	return b.set.suffixMaxImbalance[b.pieceIndex]
}

// HasSolvableRegions partitions the empty cells into king-connected
// components and checks each for two necessary conditions: it must be at
// least as large as the smallest remaining piece, and its area must be a
// multiple of the GCD of all piece sizes. A component failing either cannot
// be exactly covered, so the branch is dead.
func (b *Board) HasSolvableRegions() bool {
	empty := ^b.occ
	if empty == 0 {
		return true
	}
	minSize := b.set.suffixMinSize[b.pieceIndex]
	if minSize == 0 {
		return true
	}
	for empty != 0 {
		c, rest := empty.PopComponent()
		empty = rest
		size := c.Count()
		if size < minSize || size%b.set.gcd != 0 {
			return false
		}
	}
	return true
}
