package terminal

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"shieldhero-quiz/internal/loop"
)

// Run drives the controller on lp until the player quits or ctx ends. The
// event poller only feeds the loop; screen is finalized on return.
func (c *Controller) Run(ctx context.Context, lp *loop.Loop, screen tcell.Screen) error {
	g, gctx := errgroup.WithContext(ctx)
	lp.Post(func() { c.Boot(gctx, lp) })

	g.Go(func() error {
		defer screen.Fini()
		err := lp.Run(gctx)
		lp.Stop()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			posted := lp.Post(func() {
				if c.HandleEvent(gctx, ev) {
					c.Shutdown()
					lp.Stop()
				}
			})
			if !posted {
				return nil
			}
		}
	})
	return g.Wait()
}
