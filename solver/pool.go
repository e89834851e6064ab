package solver

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// runWorkers drains the task queue with s.threads goroutines. Each worker
// claims tasks by atomic fetch-and-add, solves a private clone, and folds its
// local count into the shared total on exit. In one-solution mode the first
// worker to find a leaf raises the finished flag; others observe it at their
// next task boundary, so a few extra solutions may still be emitted.
func (s *Solver) runWorkers(ctx context.Context) (bool, error) {
	g := errgroup.Group{}

	done := make(chan struct{})
	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	workers := errgroup.Group{}
	for w := 0; w < s.threads; w++ {
		workers.Go(func() error {
			var local uint64
			for !s.finished.Load() && ctx.Err() == nil {
				idx := s.nextTask.Add(1) - 1
				if idx >= uint64(len(s.tasks)) {
					break
				}
				b := s.tasks[idx].Copy()
				var count uint64
				solved := s.solve(b, &count)
				local += count
				if s.onTaskDone != nil {
					s.onTaskDone()
				}
				if s.oneSolution && solved {
					s.finished.Store(true)
				}
			}
			s.solutionCount.Add(local)
			return ctx.Err()
		})
	}

	err := workers.Wait()
	close(done)
	if gerr := g.Wait(); err == nil {
		err = gerr
	}
	return s.solutionCount.Load() > 0, err
}
