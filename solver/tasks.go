package solver

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/board"
)

// generateTasks materializes the top of the search tree as independent board
// snapshots. The expansion depth starts at 1 and grows until the task count
// reaches max(8, 4*threads), so short queues on large first pieces and high
// thread counts both get enough granularity.
func (s *Solver) generateTasks(root *board.Board) []*board.Board {
	target := 4 * s.threads
	if target < 8 {
		target = 8
	}

	var tasks []*board.Board
	depth := 1
	for {
		tasks = tasks[:0]
		s.expand(root, 0, depth, &tasks)
		if len(tasks) >= target || depth >= root.NumPieces() {
			break
		}
		depth++
	}
	log.Debug().Int("depth", depth).Int("tasks", len(tasks)).Msg("generated-tasks")
	return tasks
}

// expand walks the same placements as solve, minus the pruning predicates:
// the validity checks (duplicate ordering, first-piece octant, boundary,
// collision) still apply so the queue holds exactly the roots of legal
// subtrees. Snapshots are taken where the goal depth is reached or the board
// runs out of pieces.
func (s *Solver) expand(b *board.Board, depth, goal int, tasks *[]*board.Board) {
	if depth == goal || b.Done() {
		*tasks = append(*tasks, b.Copy())
		return
	}

	idx := b.PieceIndex()
	t := b.CurrentPiece()
	start := 0
	if idx > 0 && b.Piece(idx) == b.Piece(idx-1) {
		start = int(b.LastPlacementOrigin()) + 1
	}

	for i := start; i < 64; i++ {
		x := i % 8
		y := i / 8
		if idx == 0 && (y > 3 || x > 3 || y > x) {
			continue
		}
		if x > 7-int(t.Width) || y > 7-int(t.Height) {
			continue
		}
		if (t.Mask<<i)&b.Occupancy() != 0 {
			continue
		}

		b.Place(t.Mask, uint8(i))
		s.expand(b, depth+1, goal, tasks)
		b.Pop()
	}
}
