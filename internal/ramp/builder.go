// internal/ramp/builder.go
package ramp

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/muses-control/internal/config"
	"github.com/tamzrod/muses-control/internal/muses"
)

// Build constructs a fade from a chip's configured volume to a target.
// A muted chip starts from the variant's maximum attenuation.
// Assumes config has already passed validation and normalization.
func Build(c cfg.ChipConfig, ch muses.Channel, to muses.Attenuation) (*Ramp, error) {
	enc, err := muses.EncoderFor(c.Variant)
	if err != nil {
		return nil, fmt.Errorf("ramp: chip %q: %w", c.ID, err)
	}

	from := muses.Attenuation(c.Volume.Left)
	if ch == muses.ChannelRight {
		from = muses.Attenuation(c.Volume.Right)
	}
	// A muted chip fades in from the quietest step it can encode.
	if c.Volume.Muted {
		from = enc.Max()
	}

	r, err := New(Config{
		Chip:     muses.ChipAddress(c.Address),
		Channel:  ch,
		From:     from,
		To:       to,
		Step:     muses.Attenuation(c.Ramp.Step),
		Interval: time.Duration(c.Ramp.IntervalMs) * time.Millisecond,
		SoftStep: c.Volume.SoftStep,
		Encoder:  enc,
	})
	if err != nil {
		return nil, fmt.Errorf("ramp: chip %q: %w", c.ID, err)
	}
	return r, nil
}
