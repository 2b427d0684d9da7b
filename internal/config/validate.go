// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/muses-control/internal/mirror"
	"github.com/tamzrod/muses-control/internal/muses"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	t := cfg.Controller.Transport

	switch t.Kind {
	case TransportModbusTCP, TransportModbusRTU, TransportSerial, TransportRawTCP:
	default:
		return fmt.Errorf("transport: unsupported kind %q", t.Kind)
	}

	if t.Endpoint == "" {
		return fmt.Errorf("transport: endpoint required (kind=%s)", t.Kind)
	}
	if t.TimeoutMs < 0 {
		return fmt.Errorf("transport: timeout_ms must be >= 0")
	}
	if t.BaudRate < 0 {
		return fmt.Errorf("transport: baud_rate must be >= 0")
	}

	if m := cfg.Controller.Mirror; m != nil {
		if !isModbus(t.Kind) {
			return fmt.Errorf("mirror: requires a modbus transport (kind=%s)", t.Kind)
		}
		if err := validateMirror(*m, t); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// CHIPS
	// ------------------------------------------------------------

	if len(cfg.Controller.Chips) == 0 {
		return fmt.Errorf("controller: at least one chip required")
	}

	ids := make(map[string]struct{})
	addrOwner := make(map[uint8]string)

	for _, c := range cfg.Controller.Chips {
		if c.ID == "" {
			return fmt.Errorf("chip at address %d: id required", c.Address)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("chip %q: duplicate id", c.ID)
		}
		ids[c.ID] = struct{}{}

		if prev, taken := addrOwner[c.Address]; taken {
			return fmt.Errorf(
				"chip address collision: address=%d used by chips %q and %q",
				c.Address,
				prev,
				c.ID,
			)
		}
		addrOwner[c.Address] = c.ID

		if err := validateChip(c); err != nil {
			return fmt.Errorf("chip %q: %w", c.ID, err)
		}
	}

	return nil
}

// validateMirror keeps the shadow block inside the register space and
// away from the command register the bridge forwards to the chips.
func validateMirror(m MirrorConfig, t TransportConfig) error {
	end := int(m.BaseRegister) + mirror.BlockSize // exclusive
	if end > 0x10000 {
		return fmt.Errorf("mirror: block [%d, %d) exceeds register space", m.BaseRegister, end)
	}
	if m.UnitID == t.UnitID && int(t.Register) >= int(m.BaseRegister) && int(t.Register) < end {
		return fmt.Errorf(
			"mirror: block [%d, %d) on unit %d overlaps command register %d",
			m.BaseRegister, end, m.UnitID, t.Register,
		)
	}
	return nil
}

// validateChip runs every configured value through the encoder so the
// config layer reports exactly what the encoder would reject.
func validateChip(c ChipConfig) error {
	enc, err := muses.EncoderFor(c.Variant)
	if err != nil {
		return err
	}

	addr := muses.ChipAddress(c.Address)

	src, err := c.Configure.Source()
	if err != nil {
		return err
	}
	if _, err := enc.Configure(addr, muses.ZeroWindow(c.Configure.ZeroWindow), muses.ClockDivider(c.Configure.ClockDivider), src); err != nil {
		return err
	}

	if _, err := enc.SetGain(addr, muses.ChannelGain(c.Gain.Left), muses.ChannelGain(c.Gain.Right), c.Gain.Link, c.Gain.ZeroCross); err != nil {
		return err
	}

	if _, err := enc.SetVolume(addr, muses.ChannelLeft, muses.Attenuation(c.Volume.Left), c.Volume.SoftStep); err != nil {
		return err
	}
	if _, err := enc.SetVolume(addr, muses.ChannelRight, muses.Attenuation(c.Volume.Right), c.Volume.SoftStep); err != nil {
		return err
	}

	if c.Ramp.Step < 0 {
		return fmt.Errorf("ramp: step must be >= 0")
	}
	if c.Ramp.IntervalMs < 0 {
		return fmt.Errorf("ramp: interval_ms must be >= 0")
	}

	return nil
}

// Source maps the configured clock name; empty means external.
func (c ConfigureConfig) Source() (muses.SoftStepClock, error) {
	if c.SoftStepClock == "" {
		return muses.SoftStepClockExternal, nil
	}
	return muses.ParseSoftStepClock(c.SoftStepClock)
}

func isModbus(kind string) bool {
	return kind == TransportModbusTCP || kind == TransportModbusRTU
}
