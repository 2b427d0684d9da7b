// internal/transport/serial/port.go
package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"

	"github.com/tamzrod/muses-control/internal/muses"
)

// Port writes command words to a USB-serial bus bridge.
// Framing is the word itself, MSB first; the bridge raises chip-select
// around every two bytes.
type Port struct {
	mu   sync.Mutex
	port io.WriteCloser
}

type Config struct {
	Device   string
	BaudRate int
	Timeout  time.Duration
}

// Open opens the serial device 8N1.
func Open(cfg Config) (*Port, error) {
	if cfg.Device == "" {
		return nil, errors.New("transport serial: device required")
	}

	p, err := serial.Open(&serial.Config{
		Address:  cfg.Device,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport serial: open %s: %w", cfg.Device, err)
	}

	return newPort(p), nil
}

func newPort(w io.WriteCloser) *Port {
	return &Port{port: w}
}

// Send writes one word.
func (p *Port) Send(cmd muses.Command) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := cmd.Bytes()
	n, err := p.port.Write(b[:])
	if err != nil {
		return fmt.Errorf("transport serial: write %s: %w", cmd, err)
	}
	if n != len(b) {
		return fmt.Errorf("transport serial: short write %s: %d of %d bytes", cmd, n, len(b))
	}
	return nil
}

func (p *Port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.port.Close()
}
