// internal/ramp/runner.go
package ramp

import (
	"context"
	"time"

	"github.com/tamzrod/muses-control/internal/muses"
)

// Run emits one step per tick on out, starting immediately.
// It returns when the fade completes or ctx is cancelled.
// out is not closed. One goroutine per ramp. No overlap.
func (r *Ramp) Run(ctx context.Context, out chan<- muses.Command) error {
	if len(r.steps) == 0 {
		return nil
	}

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for i, cmd := range r.steps {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- cmd:
		}
	}

	return nil
}
