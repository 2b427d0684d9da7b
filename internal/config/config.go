// internal/config/config.go
package config

type Config struct {
	Controller ControllerConfig `yaml:"controller" toml:"controller"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

type ControllerConfig struct {
	Transport TransportConfig `yaml:"transport" toml:"transport"`
	Mirror    *MirrorConfig   `yaml:"mirror" toml:"mirror"`
	Chips     []ChipConfig    `yaml:"chips" toml:"chips"`
}

// ---- TRANSPORT ----

// Transport kinds.
const (
	TransportModbusTCP = "modbus-tcp"
	TransportModbusRTU = "modbus-rtu"
	TransportSerial    = "serial"
	TransportRawTCP    = "raw-tcp"
)

type TransportConfig struct {
	Kind      string `yaml:"kind" toml:"kind"`
	Endpoint  string `yaml:"endpoint" toml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id" toml:"unit_id"`   // modbus only
	Register  uint16 `yaml:"register" toml:"register"` // modbus mailbox register
	BaudRate  int    `yaml:"baud_rate" toml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms" toml:"timeout_ms"`
}

// ---- MIRROR (optional shadow block, modbus only) ----

type MirrorConfig struct {
	UnitID       uint8  `yaml:"unit_id" toml:"unit_id"`
	BaseRegister uint16 `yaml:"base_register" toml:"base_register"`
}

// ---- CHIP ----

type ChipConfig struct {
	ID      string `yaml:"id" toml:"id"`
	Address uint8  `yaml:"address" toml:"address"`
	Variant string `yaml:"variant" toml:"variant"`

	Configure ConfigureConfig `yaml:"configure" toml:"configure"`
	Gain      GainConfig      `yaml:"gain" toml:"gain"`
	Volume    VolumeConfig    `yaml:"volume" toml:"volume"`
	Ramp      RampConfig      `yaml:"ramp" toml:"ramp"`
}

type ConfigureConfig struct {
	ZeroWindow    uint8  `yaml:"zero_window" toml:"zero_window"`
	ClockDivider  uint8  `yaml:"clock_divider" toml:"clock_divider"`
	SoftStepClock string `yaml:"soft_step_clock" toml:"soft_step_clock"` // external | internal
}

type GainConfig struct {
	Left      uint8 `yaml:"left" toml:"left"`
	Right     uint8 `yaml:"right" toml:"right"`
	Link      bool  `yaml:"link" toml:"link"`
	ZeroCross bool  `yaml:"zero_cross" toml:"zero_cross"`
}

// VolumeConfig holds the power-up attenuation in device units.
type VolumeConfig struct {
	Left     int16 `yaml:"left" toml:"left"`
	Right    int16 `yaml:"right" toml:"right"`
	SoftStep bool  `yaml:"soft_step" toml:"soft_step"`
	Muted    bool  `yaml:"muted" toml:"muted"`
}

type RampConfig struct {
	Step       int16 `yaml:"step" toml:"step"`
	IntervalMs int   `yaml:"interval_ms" toml:"interval_ms"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	JSON    bool   `yaml:"json" toml:"json"`
	NoColor bool   `yaml:"no_color" toml:"no_color"`

	// Optional rotated file sink.
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// Chip returns the chip with the given id.
func (c *Config) Chip(id string) (ChipConfig, bool) {
	for _, ch := range c.Controller.Chips {
		if ch.ID == id {
			return ch, true
		}
	}
	return ChipConfig{}, false
}
