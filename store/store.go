// Package store archives found solutions in a sqlite database so long
// enumeration runs can be inspected later.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/domino14/quadrille/board"
)

const schema = `
CREATE TABLE IF NOT EXISTS solutions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tileset TEXT NOT NULL,
	occupancy TEXT NOT NULL,
	origins TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_solutions_tileset ON solutions(tileset);
`

type Archive struct {
	db *sql.DB
}

func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating solutions table: %w", err)
	}
	return &Archive{db: db}, nil
}

// Save records one solved board: the tile set fingerprint, the final
// occupancy, and each piece's placement origin in placement order.
func (a *Archive) Save(b *board.Board) error {
	origins := make([]string, b.PieceIndex())
	for i := range origins {
		origins[i] = fmt.Sprintf("%d", b.PlacementOrigin(i))
	}
	_, err := a.db.Exec(
		`INSERT INTO solutions (tileset, occupancy, origins) VALUES (?, ?, ?)`,
		Fingerprint(b.PieceSet()),
		fmt.Sprintf("%016x", uint64(b.Occupancy())),
		strings.Join(origins, ","),
	)
	return err
}

// Count returns how many solutions are archived for the given piece set.
func (a *Archive) Count(ps *board.PieceSet) (int64, error) {
	var n int64
	err := a.db.QueryRow(
		`SELECT COUNT(*) FROM solutions WHERE tileset = ?`, Fingerprint(ps),
	).Scan(&n)
	return n, err
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Fingerprint identifies a sorted piece set by its tile masks.
func Fingerprint(ps *board.PieceSet) string {
	masks := make([]string, ps.NumPieces())
	for i := range masks {
		masks[i] = fmt.Sprintf("%016x", uint64(ps.Piece(i).Mask))
	}
	return strings.Join(masks, ",")
}
