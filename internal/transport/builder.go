// internal/transport/builder.go
package transport

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/muses-control/internal/config"
	"github.com/tamzrod/muses-control/internal/muses"
	tmodbus "github.com/tamzrod/muses-control/internal/transport/modbus"
	"github.com/tamzrod/muses-control/internal/transport/raw"
	"github.com/tamzrod/muses-control/internal/transport/serial"
)

// Sender delivers command words to the chips.
// Implementations serialize their own writes.
type Sender interface {
	Send(cmd muses.Command) error
	Close() error
}

// Build opens the transport described by config.
// Assumes config has already passed validation and normalization.
func Build(t cfg.TransportConfig) (Sender, error) {
	timeout := time.Duration(t.TimeoutMs) * time.Millisecond

	switch t.Kind {
	case cfg.TransportModbusTCP, cfg.TransportModbusRTU:
		mode := tmodbus.ModeTCP
		if t.Kind == cfg.TransportModbusRTU {
			mode = tmodbus.ModeRTU
		}
		c, err := tmodbus.New(tmodbus.Config{
			Mode:     mode,
			Endpoint: t.Endpoint,
			UnitID:   t.UnitID,
			Register: t.Register,
			BaudRate: t.BaudRate,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	case cfg.TransportSerial:
		p, err := serial.Open(serial.Config{
			Device:   t.Endpoint,
			BaudRate: t.BaudRate,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		return p, nil

	case cfg.TransportRawTCP:
		c, err := raw.New(raw.Config{
			Endpoint: t.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("transport: unsupported kind %q", t.Kind)
	}
}
