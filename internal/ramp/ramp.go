// internal/ramp/ramp.go
package ramp

import (
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/muses-control/internal/muses"
)

// Config is the immutable description of one fade.
type Config struct {
	Chip     muses.ChipAddress
	Channel  muses.Channel
	From     muses.Attenuation
	To       muses.Attenuation
	Step     muses.Attenuation
	Interval time.Duration
	SoftStep bool
	Encoder  muses.Encoder
}

// Ramp is a dumb, clock-driven volume fade for one channel.
type Ramp struct {
	cfg   Config
	steps []muses.Command
}

// New validates the fade and pre-encodes every step.
// From and To below MinAttenuation are raised to it, as the encoder would.
func New(cfg Config) (*Ramp, error) {
	if cfg.Step <= 0 {
		return nil, errors.New("ramp: step must be > 0")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("ramp: interval must be > 0")
	}

	if cfg.From < muses.MinAttenuation {
		cfg.From = muses.MinAttenuation
	}
	if cfg.To < muses.MinAttenuation {
		cfg.To = muses.MinAttenuation
	}

	r := &Ramp{cfg: cfg}
	steps, err := r.encode()
	if err != nil {
		return nil, err
	}
	r.steps = steps
	return r, nil
}

// Steps returns the encoded fade. The first word sets From, the last sets
// To exactly; intermediate words move by Step.
func (r *Ramp) Steps() []muses.Command {
	out := make([]muses.Command, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *Ramp) encode() ([]muses.Command, error) {
	c := r.cfg

	dir := muses.Attenuation(1)
	if c.To < c.From {
		dir = -1
	}

	var out []muses.Command
	att := c.From
	for {
		cmd, err := c.Encoder.SetVolume(c.Chip, c.Channel, att, c.SoftStep)
		if err != nil {
			return nil, fmt.Errorf("ramp: attenuation %d: %w", att, err)
		}
		out = append(out, cmd)

		if att == c.To {
			return out, nil
		}

		// clamp the last step onto To
		next := int(att) + int(dir)*int(c.Step)
		if (dir > 0 && next > int(c.To)) || (dir < 0 && next < int(c.To)) {
			next = int(c.To)
		}
		att = muses.Attenuation(next)
	}
}
