// internal/sequence/builder.go
package sequence

import (
	"errors"
	"fmt"

	cfg "github.com/tamzrod/muses-control/internal/config"
	"github.com/tamzrod/muses-control/internal/muses"
)

// BuildPlan converts one chip config into its power-up sequence:
// configure, gain, left volume, right volume (mute codes when muted).
// Assumes config has already passed validation; encoder errors are still
// surfaced with the chip id.
func BuildPlan(c cfg.ChipConfig) (Plan, error) {
	if c.ID == "" {
		return Plan{}, errors.New("sequence: chip.id required")
	}

	enc, err := muses.EncoderFor(c.Variant)
	if err != nil {
		return Plan{}, fmt.Errorf("sequence: chip %q: %w", c.ID, err)
	}

	addr := muses.ChipAddress(c.Address)
	plan := Plan{ChipID: c.ID, Address: addr}

	add := func(name string, cmd muses.Command, err error) error {
		if err != nil {
			return fmt.Errorf("sequence: chip %q %s: %w", c.ID, name, err)
		}
		plan.Steps = append(plan.Steps, Step{Name: name, Command: cmd})
		return nil
	}

	src, err := c.Configure.Source()
	if err != nil {
		return Plan{}, fmt.Errorf("sequence: chip %q: %w", c.ID, err)
	}

	cmd, err := enc.Configure(addr, muses.ZeroWindow(c.Configure.ZeroWindow), muses.ClockDivider(c.Configure.ClockDivider), src)
	if err := add("configure", cmd, err); err != nil {
		return Plan{}, err
	}

	cmd, err = enc.SetGain(addr, muses.ChannelGain(c.Gain.Left), muses.ChannelGain(c.Gain.Right), c.Gain.Link, c.Gain.ZeroCross)
	if err := add("gain", cmd, err); err != nil {
		return Plan{}, err
	}

	volumes := []struct {
		ch  muses.Channel
		att int16
	}{
		{muses.ChannelLeft, c.Volume.Left},
		{muses.ChannelRight, c.Volume.Right},
	}

	for _, v := range volumes {
		name := "volume-" + v.ch.String()
		if c.Volume.Muted {
			cmd, err = enc.Mute(addr, v.ch, c.Volume.SoftStep)
			name = "mute-" + v.ch.String()
		} else {
			cmd, err = enc.SetVolume(addr, v.ch, muses.Attenuation(v.att), c.Volume.SoftStep)
		}
		if err := add(name, cmd, err); err != nil {
			return Plan{}, err
		}
	}

	return plan, nil
}
