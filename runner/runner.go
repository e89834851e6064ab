// Package runner assembles a solve job from parsed tiles and settings:
// solver, rendering sink, optional progress bar and solution archive. Both
// the CLI and the shell drive solves through it.
package runner

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/domino14/quadrille/board"
	"github.com/domino14/quadrille/render"
	"github.com/domino14/quadrille/solver"
	"github.com/domino14/quadrille/store"
	"github.com/domino14/quadrille/tiles"
)

// Job is one solve invocation.
type Job struct {
	Tiles        []tiles.Tile
	AllSolutions bool
	Silent       bool
	Threads      int
	HSRGate      int
	Render       render.Config
	// SavePath, when nonempty, archives solutions to this sqlite file.
	SavePath string
	// Progress shows a task-queue progress bar on parallel runs.
	Progress bool
}

// Run solves the job and writes each solution plus the summary line to out.
// Boards are written as contiguous units under a lock, so parallel workers
// never interleave output. It returns the solution count.
func Run(ctx context.Context, job Job, out io.Writer) (uint64, error) {
	set := board.NewPieceSet(job.Tiles)

	var archive *store.Archive
	if job.SavePath != "" {
		var err error
		archive, err = store.Open(job.SavePath)
		if err != nil {
			return 0, fmt.Errorf("opening solution archive: %w", err)
		}
		defer archive.Close()
	}

	s := solver.New(set)
	s.SetThreads(job.Threads)
	s.SetAllSolutions(job.AllSolutions)
	s.SetHSRGate(job.HSRGate)

	var mu sync.Mutex
	if !job.Silent || archive != nil {
		s.SetEmitter(func(b *board.Board) {
			mu.Lock()
			defer mu.Unlock()
			if !job.Silent {
				io.WriteString(out, job.Render.Board(b))
			}
			if archive != nil {
				if err := archive.Save(b); err != nil {
					log.Error().Err(err).Msg("archiving solution")
				}
			}
		})
	}

	if job.Progress {
		var bar *progressbar.ProgressBar
		s.SetProgressHooks(
			func(n int) {
				bar = progressbar.NewOptions(n,
					progressbar.OptionSetDescription("tasks"),
					progressbar.OptionSetWidth(50),
				)
			},
			func() {
				if bar != nil {
					bar.Add(1)
				}
			},
		)
	}

	if _, err := s.Solve(ctx); err != nil {
		return s.SolutionCount(), err
	}
	count := s.SolutionCount()
	fmt.Fprintln(out, render.Summary(count))
	return count, nil
}
