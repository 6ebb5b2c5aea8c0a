package thicket

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SimulateParallel advances each scene by frames fixed ticks on its own
// goroutine. Scenes share nothing, so they can run side by side; a scene must
// not be touched by anything else while this runs. Destroy queues are flushed
// after every tick. Returns ctx.Err() if the context is cancelled before all
// scenes finish.
func SimulateParallel(ctx context.Context, scenes []*Scene, frames int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range scenes {
		g.Go(func() error {
			step := s.clock.Step
			for i := 0; i < frames; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				s.runUpdateCallbacks(step)
				s.Step(step)
				s.FlushDestroyed()
			}
			return nil
		})
	}
	return g.Wait()
}
