package tiles

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/bitboard"
)

// ErrNoTiles is returned when an input yields no usable tiles at all.
var ErrNoTiles = errors.New("no valid tiles in input")

// ParseReader reads one tile per line. Each line holds zero or more (x,y)
// coordinate tokens; anything between tokens is ignored. Malformed tokens and
// out-of-range coordinates are warned about and skipped. Lines that
// accumulate an empty mask are discarded.
func ParseReader(r io.Reader) ([]Tile, error) {
	var ts []Tile
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		mask := parseLine(scanner.Text())
		if mask != 0 {
			ts = append(ts, New(mask))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, ErrNoTiles
	}
	return ts, nil
}

// ParseFile reads a tile list from a file on disk.
func ParseFile(path string) ([]Tile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseReader(f)
}

func parseLine(line string) bitboard.Mask {
	var mask bitboard.Mask
	pos := 0
	for {
		open := strings.IndexByte(line[pos:], '(')
		if open < 0 {
			return mask
		}
		open += pos
		comma := strings.IndexByte(line[open+1:], ',')
		if comma < 0 {
			log.Warn().Str("token", line[open:]).Msg("malformed coordinate")
			pos = open + 1
			continue
		}
		comma += open + 1
		closing := strings.IndexByte(line[comma+1:], ')')
		if closing < 0 {
			log.Warn().Str("token", line[open:]).Msg("malformed coordinate")
			pos = open + 1
			continue
		}
		closing += comma + 1

		x, errX := strconv.Atoi(strings.TrimSpace(line[open+1 : comma]))
		y, errY := strconv.Atoi(strings.TrimSpace(line[comma+1 : closing]))
		if errX != nil || errY != nil {
			log.Warn().Str("token", line[open:closing+1]).Msg("malformed coordinate")
			pos = closing + 1
			continue
		}
		if x < 0 || x > 7 || y < 0 || y > 7 {
			log.Warn().Int("x", x).Int("y", y).Msg("coordinate out of 8x8 board bounds")
			pos = closing + 1
			continue
		}
		mask |= bitboard.Square(x, y)
		pos = closing + 1
	}
}
