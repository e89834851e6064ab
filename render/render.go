// Package render formats solved boards for terminal output. Rendering
// policy lives here, in a Config value owned by the emission routine; the
// board type knows nothing about presentation.
package render

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/domino14/quadrille/board"
)

// Config selects a presentation mode. Zero value is plain ASCII.
type Config struct {
	// Color cycles a 12-color ANSI palette over the piece letters.
	Color bool
	// Blocks draws each cell as a 2-space background-colored block.
	// Only meaningful together with Color.
	Blocks bool
	// Flat emits the 64 cells as a single line with no adornment.
	Flat bool
}

// Twelve ANSI palette indices: the six standard colors and their bright
// variants, skipping black and white so pieces stay visible on any terminal.
var colorIndices = [...]uint8{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14}

// Board formats a board as one contiguous string, top row (y=0) first.
// Occupied cells show 'a'+(k mod 26) for the k-th placed piece, empty cells
// show '.'. Non-flat output carries a "Board:" header, a tab before each
// row, and a space after each cell unless blocks are active.
func (c Config) Board(b *board.Board) string {
	au := aurora.NewAurora(c.Color)
	var sb strings.Builder

	if !c.Flat {
		sb.WriteString("Board:\n")
	}
	for y := 0; y < 8; y++ {
		if !c.Flat {
			sb.WriteByte('\t')
		}
		for x := 0; x < 8; x++ {
			ch := CellChar(b, x, y)
			switch {
			case c.Color && ch >= 'a' && ch <= 'z':
				ci := colorIndices[int(ch-'a')%len(colorIndices)]
				if c.Blocks {
					sb.WriteString(au.BgIndex(ci, "  ").String())
				} else {
					sb.WriteString(au.Index(ci, string(ch)).String())
				}
			case c.Blocks && ch == '.':
				sb.WriteString("  ")
			default:
				sb.WriteByte(ch)
			}
			if !c.Blocks && !c.Flat {
				sb.WriteByte(' ')
			}
		}
		if !c.Flat {
			sb.WriteByte('\n')
		}
	}
	if c.Flat {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CellChar reconstructs which piece covers cell (x, y): '.' when empty,
// otherwise the letter of the placing piece.
func CellChar(b *board.Board, x, y int) byte {
	if !b.Occupancy().Has(x, y) {
		return '.'
	}
	for i := 0; i < b.PieceIndex(); i++ {
		if (b.Piece(i).Mask << b.PlacementOrigin(i)).Has(x, y) {
			return 'a' + byte(i%26)
		}
	}
	return '?'
}

// Summary is the end-of-run line: "No solutions." or a singular/plural
// found count.
func Summary(count uint64) string {
	if count == 0 {
		return "No solutions."
	}
	if count == 1 {
		return "\nFound 1 solution."
	}
	return fmt.Sprintf("\nFound %d solutions.", count)
}
