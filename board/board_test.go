package board

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"lukechampine.com/frand"

	"github.com/domino14/quadrille/bitboard"
	"github.com/domino14/quadrille/tiles"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func square2x2() tiles.Tile {
	return tiles.New(bitboard.Square(0, 0) | bitboard.Square(1, 0) |
		bitboard.Square(0, 1) | bitboard.Square(1, 1))
}

func TestPlacePop(t *testing.T) {
	is := is.New(t)
	set := NewPieceSet([]tiles.Tile{square2x2(), square2x2()})
	b := New(set)

	is.Equal(b.OpenSquares(), 64)
	is.True(!b.SymmetryBroken())

	b.Place(square2x2().Mask, 0)
	is.Equal(b.OpenSquares(), 60)
	is.Equal(b.PieceIndex(), 1)
	is.Equal(b.LastPlacementOrigin(), uint8(0))
	is.True(b.SymmetryBroken())
	// A 2x2 square covers two black and two white cells.
	is.Equal(b.CurrentImbalance(), 0)

	b.Pop()
	is.Equal(b.OpenSquares(), 64)
	is.Equal(b.PieceIndex(), 0)
	is.Equal(b.CurrentImbalance(), 0)
	is.Equal(b.hist.len(), 0)
}

func TestPopOnEmptyIsNoop(t *testing.T) {
	is := is.New(t)
	b := New(NewPieceSet([]tiles.Tile{square2x2()}))
	b.Pop()
	is.Equal(b.PieceIndex(), 0)
	is.Equal(b.Occupancy(), bitboard.Empty)
}

// randomTileSet builds tiles with random masks anchored at the origin.
func randomTileSet(n int) []tiles.Tile {
	ts := make([]tiles.Tile, 0, n)
	for i := 0; i < n; i++ {
		w := int(frand.Intn(4)) + 1
		h := int(frand.Intn(4)) + 1
		var mask bitboard.Mask
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if frand.Intn(2) == 0 {
					mask |= bitboard.Square(x, y)
				}
			}
		}
		// Anchor: guarantee a bit on row 0 and on column 0.
		mask |= bitboard.Square(0, 0)
		ts = append(ts, tiles.New(mask))
	}
	return ts
}

// TestPlacePopRoundTripRandomized drives random placement sequences and
// verifies that popping restores the exact prior state, and that occupancy
// and imbalance always match recomputation from scratch.
func TestPlacePopRoundTripRandomized(t *testing.T) {
	is := is.New(t)

	for trial := 0; trial < 50; trial++ {
		set := NewPieceSet(randomTileSet(6))
		b := New(set)

		type snapshot struct {
			occ        bitboard.Mask
			imbalance  int
			pieceIndex int
		}
		var snaps []snapshot

		for !b.Done() {
			tile := b.CurrentPiece()
			// Collect the legal origins for this tile.
			var legal []int
			for y := 0; y <= 7-int(tile.Height); y++ {
				for x := 0; x <= 7-int(tile.Width); x++ {
					origin := y*8 + x
					if (tile.Mask<<origin)&b.Occupancy() == 0 {
						legal = append(legal, origin)
					}
				}
			}
			if len(legal) == 0 {
				break
			}
			snaps = append(snaps, snapshot{b.Occupancy(), b.CurrentImbalance(), b.PieceIndex()})
			b.Place(tile.Mask, uint8(legal[frand.Intn(len(legal))]))

			// Invariant 1: occupancy popcount equals the sum of the
			// placed piece sizes.
			total := 0
			for i := 0; i < b.PieceIndex(); i++ {
				total += b.Piece(i).Size()
			}
			is.Equal(b.Occupancy().Count(), total)

			// Invariant 2: imbalance matches recomputation.
			imb := 0
			for i := 0; i < b.PieceIndex(); i++ {
				imb += (b.Piece(i).Mask << b.PlacementOrigin(i)).Imbalance()
			}
			is.Equal(b.CurrentImbalance(), imb)

			// Invariant 3: history length tracks the cursor.
			is.Equal(b.hist.len(), b.PieceIndex())
		}

		// Unwind completely; every pop must restore the snapshot.
		for i := len(snaps) - 1; i >= 0; i-- {
			b.Pop()
			is.Equal(b.Occupancy(), snaps[i].occ)
			is.Equal(b.CurrentImbalance(), snaps[i].imbalance)
			is.Equal(b.PieceIndex(), snaps[i].pieceIndex)
		}
		is.Equal(b.hist.len(), 0)
		is.Equal(b.Occupancy(), bitboard.Empty)
	}
}

func TestCopySharesPieceSet(t *testing.T) {
	is := is.New(t)
	set := NewPieceSet([]tiles.Tile{square2x2(), square2x2()})
	b := New(set)
	b.Place(square2x2().Mask, 0)

	c := b.Copy()
	is.True(c.PieceSet() == b.PieceSet())
	is.True(c.Equals(b))

	// Mutating the copy leaves the original alone.
	c.Place(square2x2().Mask, 2)
	is.True(!c.Equals(b))
	is.Equal(b.PieceIndex(), 1)
}

func TestSuffixTables(t *testing.T) {
	is := is.New(t)
	// Sorted order: strip (8), square (4), domino (2).
	strip := tiles.New(0xFF)
	domino := tiles.New(0x3)
	set := NewPieceSet([]tiles.Tile{domino, strip, square2x2()})

	is.Equal(set.Piece(0), strip)
	is.Equal(set.Piece(1), square2x2())
	is.Equal(set.Piece(2), domino)

	is.Equal(set.suffixMinSize[0], 2)
	is.Equal(set.suffixMinSize[1], 2)
	is.Equal(set.suffixMinSize[2], 2)
	is.Equal(set.suffixMinSize[3], 0)

	// All three shapes are parity-balanced, so the suffix imbalance
	// budget is zero everywhere.
	is.Equal(set.suffixMaxImbalance[0], 0)
	is.Equal(set.suffixMaxImbalance[3], 0)

	is.Equal(set.GCD(), 2)
	is.Equal(set.TotalArea(), 14)
}

func TestSuffixMaxImbalanceUnbalancedTiles(t *testing.T) {
	is := is.New(t)
	// A single cell has imbalance 1; an L-tromino covers either 2+1 or
	// 1+2 of the colorings, imbalance 1 as well.
	single := tiles.New(bitboard.Square(0, 0))
	tromino := tiles.New(bitboard.Square(0, 0) | bitboard.Square(1, 0) | bitboard.Square(0, 1))
	set := NewPieceSet([]tiles.Tile{single, tromino})

	is.Equal(set.suffixMaxImbalance[0], 2)
	is.Equal(set.suffixMaxImbalance[1], 1)
	is.Equal(set.suffixMaxImbalance[2], 0)
}

func TestParityFeasible(t *testing.T) {
	is := is.New(t)
	// Three single cells, each of imbalance 1: budget 3.
	single := tiles.New(bitboard.Square(0, 0))
	set := NewPieceSet([]tiles.Tile{single, single, single})
	b := New(set)

	is.True(b.ParityFeasible())
	// Place one single on a black cell: imbalance 1, remaining budget 2.
	b.Place(single.Mask, 0)
	is.True(b.ParityFeasible())
}

func TestEquals(t *testing.T) {
	is := is.New(t)
	set := NewPieceSet([]tiles.Tile{square2x2(), square2x2()})
	a := New(set)
	b := New(set)
	is.True(a.Equals(b))
	a.Place(square2x2().Mask, 0)
	is.True(!a.Equals(b))
	b.Place(square2x2().Mask, 0)
	is.True(a.Equals(b))
}
