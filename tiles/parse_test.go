package tiles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/bitboard"
)

func captureWarnings(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = old })
	return &buf
}

func TestParseSimple(t *testing.T) {
	is := is.New(t)
	ts, err := ParseReader(strings.NewReader("(0,0)(1,0)(0,1)(1,1)\n(0,0) (1,0)\n"))
	is.NoErr(err)
	is.Equal(len(ts), 2)
	is.Equal(ts[0].Mask, bitboard.Square(0, 0)|bitboard.Square(1, 0)|
		bitboard.Square(0, 1)|bitboard.Square(1, 1))
	is.Equal(ts[1].Mask, bitboard.Mask(0x3))
}

func TestParseIgnoresJunkBetweenTokens(t *testing.T) {
	is := is.New(t)
	ts, err := ParseReader(strings.NewReader("tile one: (2,3), then (3,3)!\n"))
	is.NoErr(err)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Mask, bitboard.Square(2, 3)|bitboard.Square(3, 3))
}

func TestParseWarnsAndSkipsBadTokens(t *testing.T) {
	is := is.New(t)
	buf := captureWarnings(t)

	// An out-of-range coordinate and a truncated token are both skipped
	// with warnings; the valid coordinate still makes a tile.
	ts, err := ParseReader(strings.NewReader("(3,3) (9,0) (2,\n"))
	is.NoErr(err)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Mask, bitboard.Square(3, 3))

	out := buf.String()
	is.True(strings.Contains(out, "out of 8x8 board bounds"))
	is.True(strings.Contains(out, "malformed coordinate"))
}

func TestParseDiscardsEmptyLines(t *testing.T) {
	is := is.New(t)
	ts, err := ParseReader(strings.NewReader("\nno coordinates here\n(4,4)\n"))
	is.NoErr(err)
	is.Equal(len(ts), 1)
	is.Equal(ts[0].Mask, bitboard.Square(4, 4))
}

func TestParseEmptyInput(t *testing.T) {
	is := is.New(t)
	_, err := ParseReader(strings.NewReader(""))
	is.Equal(err, ErrNoTiles)

	_, err = ParseReader(strings.NewReader("nothing\n(8,8)\n"))
	is.Equal(err, ErrNoTiles)
}

func TestParseNegativeCoordinate(t *testing.T) {
	is := is.New(t)
	buf := captureWarnings(t)
	ts, err := ParseReader(strings.NewReader("(-1,2) (0,0)\n"))
	is.NoErr(err)
	is.Equal(ts[0].Mask, bitboard.Square(0, 0))
	is.True(strings.Contains(buf.String(), "out of 8x8 board bounds"))
}
