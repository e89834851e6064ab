// Package solver runs the exact depth-first packing search: place every tile
// on the 8x8 grid with no overlaps and no uncovered cells, pruning dead
// branches by checkerboard parity and empty-region feasibility, with the top
// of the search tree split into independent tasks for parallel workers.
package solver

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/quadrille/board"
)

// DefaultHSRGate is the threshold for the region-solvability check: it only
// runs when open squares plus the product of the current piece's x and y
// extents (Width*Height) exceed the gate. The gate is a heuristic; any threshold is correct.
const DefaultHSRGate = 32

// Solver coordinates one solve invocation. It owns the task queue and the
// shared atomics (task cursor, solution count, finished flag, node count);
// everything else is per-worker state. Configure it
// with the setters before calling Solve.
type Solver struct {
	set *board.PieceSet

	oneSolution bool
	threads     int
	hsrGate     int

	// emit receives each solved board. It may be called concurrently from
	// worker goroutines; the caller serializes writes. A nil emit
	// suppresses per-solution output.
	emit func(*board.Board)

	// onTasksGenerated and onTaskDone report parallel progress.
	onTasksGenerated func(n int)
	onTaskDone       func()

	tasks         []*board.Board
	nextTask      atomic.Uint64
	solutionCount atomic.Uint64
	finished      atomic.Bool
	nodes         atomic.Uint64
}

// New returns a solver over the given piece set with default settings:
// sequential, first solution only.
func New(set *board.PieceSet) *Solver {
	return &Solver{
		set:         set,
		oneSolution: true,
		threads:     1,
		hsrGate:     DefaultHSRGate,
	}
}

// SetThreads sets the worker count. 0 or 1 runs the search sequentially on
// the calling goroutine with no task generation.
func (s *Solver) SetThreads(n int) {
	if n <= 1 {
		s.threads = 1
		return
	}
	s.threads = n
}

// SetAllSolutions switches between enumerate-all and stop-at-first modes.
func (s *Solver) SetAllSolutions(all bool) {
	s.oneSolution = !all
}

// SetEmitter installs the solution sink. It must be safe for concurrent
// use when the solver runs with more than one thread.
func (s *Solver) SetEmitter(emit func(*board.Board)) {
	s.emit = emit
}

// SetHSRGate overrides the region-check threshold. Zero runs the check at
// every node.
func (s *Solver) SetHSRGate(gate int) {
	s.hsrGate = gate
}

// SetProgressHooks installs callbacks fired when the task queue has been
// generated and after each task completes.
func (s *Solver) SetProgressHooks(generated func(n int), done func()) {
	s.onTasksGenerated = generated
	s.onTaskDone = done
}

// SolutionCount returns the total found by the last Solve.
func (s *Solver) SolutionCount() uint64 {
	return s.solutionCount.Load()
}

// Nodes returns the number of placements tried by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Solve searches for packings of the piece set. It returns whether at least
// one solution was found. The context is observed between tasks, not inside
// a task's subtree.
func (s *Solver) Solve(ctx context.Context) (bool, error) {
	s.nextTask.Store(0)
	s.solutionCount.Store(0)
	s.finished.Store(false)
	s.nodes.Store(0)

	// A set whose total area differs from the board's 64 cells can never
	// cover every cell exactly once. The leaf test only checks that all
	// pieces are down, so rule this out before searching.
	if s.set.TotalArea() != 64 {
		log.Debug().Int("total-area", s.set.TotalArea()).Msg("tile-area-mismatch")
		return false, nil
	}

	tstart := time.Now()
	defer func() {
		log.Debug().
			Uint64("nodes", s.nodes.Load()).
			Uint64("solutions", s.solutionCount.Load()).
			Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
			Msg("solve-returning")
	}()

	root := board.New(s.set)
	if s.threads <= 1 {
		var count uint64
		found := s.solve(root, &count)
		s.solutionCount.Store(count)
		return found, ctx.Err()
	}

	s.tasks = s.generateTasks(root)
	if s.onTasksGenerated != nil {
		s.onTasksGenerated(len(s.tasks))
	}
	return s.runWorkers(ctx)
}

// solve is the recursive core. count accumulates solutions found in this
// subtree; the return value reports whether any leaf was reached.
func (s *Solver) solve(b *board.Board, count *uint64) bool {
	if b.Done() {
		*count++
		if s.emit != nil {
			s.emit(b)
		}
		return true
	}

	// Parity bound: the remaining pieces must be able to cancel the
	// accumulated checkerboard imbalance.
	if !b.ParityFeasible() {
		return false
	}

	t := b.CurrentPiece()

	// Region solvability runs only while the open squares plus the product
	// of the current piece's extents exceed the gate; the gate tunes that
	// point.
	if b.OpenSquares()+int(t.Width)*int(t.Height) > s.hsrGate && !b.HasSolvableRegions() {
		return false
	}

	// Identical tiles are placed in increasing origin order, so that
	// permutations of equal pieces collapse to one representative.
	start := 0
	idx := b.PieceIndex()
	if idx > 0 && b.Piece(idx) == b.Piece(idx-1) {
		start = int(b.LastPlacementOrigin()) + 1
	}

	occ := b.Occupancy()
	maxX := 7 - int(t.Width)
	maxY := 7 - int(t.Height)
	found := false

	for y := start / 8; y <= maxY; y++ {
		x := 0
		if y == start/8 {
			x = start % 8
		}
		for ; x <= maxX; x++ {
			// The first piece is anchored to the canonical octant,
			// collapsing the board's dihedral symmetries.
			if !b.SymmetryBroken() && (y > 3 || x > 3 || y > x) {
				continue
			}
			origin := y*8 + x
			if (t.Mask<<origin)&occ != 0 {
				continue
			}

			b.Place(t.Mask, uint8(origin))
			s.nodes.Add(1)
			solved := s.solve(b, count)
			b.Pop()

			if solved {
				if s.oneSolution {
					return true
				}
				found = true
			}
		}
	}
	return found
}
