// internal/config/normalize.go
package config

import "github.com/tamzrod/muses-control/internal/muses"

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs      = 1000
	DefaultBaudRate       = 115200
	DefaultRampStep       = 4 // 1 dB
	DefaultRampIntervalMs = 20
	DefaultLogLevel       = "info"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Controller.Transport
	if t.TimeoutMs == 0 {
		t.TimeoutMs = DefaultTimeoutMs
	}
	if t.BaudRate == 0 && (t.Kind == TransportModbusRTU || t.Kind == TransportSerial) {
		t.BaudRate = DefaultBaudRate
	}

	for i := range cfg.Controller.Chips {
		c := &cfg.Controller.Chips[i]

		if c.Variant == "" {
			c.Variant = muses.Variant72323
		}
		if c.Configure.SoftStepClock == "" {
			c.Configure.SoftStepClock = muses.SoftStepClockExternal.String()
		}

		// Values below the device floor are encoded as the floor anyway;
		// store what will actually be sent.
		if c.Volume.Left < int16(muses.MinAttenuation) {
			c.Volume.Left = int16(muses.MinAttenuation)
		}
		if c.Volume.Right < int16(muses.MinAttenuation) {
			c.Volume.Right = int16(muses.MinAttenuation)
		}

		if c.Ramp.Step == 0 {
			c.Ramp.Step = DefaultRampStep
		}
		if c.Ramp.IntervalMs == 0 {
			c.Ramp.IntervalMs = DefaultRampIntervalMs
		}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}
