// internal/sequence/apply.go
package sequence

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tamzrod/muses-control/internal/mirror"
	"github.com/tamzrod/muses-control/internal/muses"
)

// Apply sends every step of a plan in order.
// The first failed send aborts the plan. Successful sends are recorded;
// a failure is reported to rec and returned. rec may be nil.
func Apply(ctx context.Context, plan Plan, s Sender, rec Recorder, log zerolog.Logger) error {
	log = log.With().Str("chip", plan.ChipID).Uint8("address", uint8(plan.Address)).Logger()

	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sequence: chip %q aborted before %s: %w", plan.ChipID, step.Name, err)
		}

		if err := s.Send(step.Command); err != nil {
			if rec != nil {
				rec.Fail(mirror.ErrorCode(err))
			}
			log.Error().Err(err).Str("step", step.Name).Stringer("cmd", step.Command).Msg("send failed")
			return fmt.Errorf("sequence: chip %q step %d (%s): %w", plan.ChipID, i, step.Name, err)
		}

		if rec != nil {
			rec.Record(step.Command)
		}
		log.Debug().Str("step", step.Name).Stringer("cmd", step.Command).Msg("sent")
	}

	log.Info().Int("steps", len(plan.Steps)).Msg("plan applied")
	return nil
}

// Replay re-sends a list of commands, e.g. mirror.Replay() after a bridge
// reset. Unlike Apply it keeps going and reports every failure.
func Replay(ctx context.Context, cmds []muses.Command, s Sender, rec Recorder, log zerolog.Logger) error {
	var errs []error

	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := s.Send(cmd); err != nil {
			if rec != nil {
				rec.Fail(mirror.ErrorCode(err))
			}
			log.Warn().Err(err).Stringer("cmd", cmd).Msg("replay send failed")
			errs = append(errs, fmt.Errorf("sequence: replay %s: %w", cmd, err))
			continue
		}
		if rec != nil {
			rec.Record(cmd)
		}
	}

	return errors.Join(errs...)
}
