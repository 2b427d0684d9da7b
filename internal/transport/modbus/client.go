// internal/transport/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/muses-control/internal/muses"
)

// Modes.
const (
	ModeTCP = "tcp"
	ModeRTU = "rtu"
)

// Client delivers command words to a Modbus bus bridge.
// Each command is written to one mailbox holding register; the bridge
// shifts it out to the chips. It serializes requests because it mutates
// SlaveId per write.
type Client struct {
	mu       sync.Mutex
	closer   io.Closer
	setSlave func(uint8)
	client   modbus.Client

	unitID   uint8
	register uint16
}

type Config struct {
	Mode     string // ModeTCP | ModeRTU
	Endpoint string // host:port or serial device
	UnitID   uint8
	Register uint16
	BaudRate int // RTU only
	Timeout  time.Duration
}

// New connects to the bridge.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("transport modbus: endpoint required")
	}

	switch cfg.Mode {
	case ModeTCP:
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("transport modbus: connect %s: %w", cfg.Endpoint, err)
		}
		return newClient(h, func(id uint8) { h.SlaveId = id }, modbus.NewClient(h), cfg), nil

	case ModeRTU:
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("transport modbus: open %s: %w", cfg.Endpoint, err)
		}
		return newClient(h, func(id uint8) { h.SlaveId = id }, modbus.NewClient(h), cfg), nil

	default:
		return nil, fmt.Errorf("transport modbus: unknown mode %q", cfg.Mode)
	}
}

func newClient(closer io.Closer, setSlave func(uint8), mc modbus.Client, cfg Config) *Client {
	return &Client{
		closer:   closer,
		setSlave: setSlave,
		client:   mc,
		unitID:   cfg.UnitID,
		register: cfg.Register,
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Send writes one command word into the mailbox register.
func (c *Client) Send(cmd muses.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(c.unitID)

	if _, err := c.client.WriteSingleRegister(c.register, uint16(cmd)); err != nil {
		return fmt.Errorf("transport modbus: unit=%d reg=%d cmd=%s: %w", c.unitID, c.register, cmd, err)
	}
	return nil
}

// WriteRegisters writes a register range on any unit of the bridge.
// Used for the shadow block.
func (c *Client) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setSlave(unitID)

	qty := uint16(len(regs))
	payload := packRegisters(regs)

	if _, err := c.client.WriteMultipleRegisters(addr, qty, payload); err != nil {
		return fmt.Errorf("transport modbus: unit=%d reg=%d qty=%d: %w", unitID, addr, qty, err)
	}
	return nil
}

// Modbus register memory order (BIG-ENDIAN)
func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}
