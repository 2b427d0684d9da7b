// internal/transport/raw/client.go
package raw

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/tamzrod/muses-control/internal/muses"
)

const (
	magicHi byte = 0x4D // 'M'
	magicLo byte = 0x57 // 'W'

	versionV1 byte = 0x01

	respOK       byte = 0x00
	respRejected byte = 0x01

	headerLen = 6

	// MaxWords bounds one frame.
	MaxWords = 256
)

// Raw word frame client (stateless, 1 frame = 1 connection)
type Client struct {
	endpoint string
	timeout  time.Duration
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("transport raw: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}, nil
}

func (c *Client) Close() error { return nil }

// Send delivers a single command word.
func (c *Client) Send(cmd muses.Command) error {
	return c.SendBatch([]muses.Command{cmd})
}

// SendBatch delivers words in one frame; the bridge shifts them out in order.
func (c *Client) SendBatch(cmds []muses.Command) error {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) > MaxWords {
		return fmt.Errorf("transport raw: %d words exceeds frame limit %d", len(cmds), MaxWords)
	}

	pkt := buildFrameV1(cmds)

	conn, err := net.DialTimeout("tcp", c.endpoint, c.timeout)
	if err != nil {
		return fmt.Errorf("transport raw: dial: %w", err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(c.timeout))
	if err := writeAll(conn, pkt); err != nil {
		return fmt.Errorf("transport raw: write: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.timeout))
	var resp [1]byte
	if _, err := io.ReadFull(conn, resp[:]); err != nil {
		return fmt.Errorf("transport raw: read status: %w", err)
	}

	switch resp[0] {
	case respOK:
		return nil
	case respRejected:
		return errors.New("transport raw: rejected")
	default:
		return fmt.Errorf("transport raw: unknown status 0x%02x", resp[0])
	}
}

//
// ---- Raw word frame v1 (LOCKED) ----
//
// Layout (6 bytes header):
// 0–1  Magic "MW"
// 2    Version (0x01)
// 3    Reserved (0x00)
// 4–5  Word count
// 6+   Words, MSB first
//

func buildFrameV1(cmds []muses.Command) []byte {
	pkt := make([]byte, headerLen, headerLen+2*len(cmds))

	pkt[0] = magicHi
	pkt[1] = magicLo
	pkt[2] = versionV1
	pkt[3] = 0

	putU16(pkt[4:6], uint16(len(cmds)))

	for _, cmd := range cmds {
		b := cmd.Bytes()
		pkt = append(pkt, b[0], b[1])
	}
	return pkt
}

//
// ---- helpers ----
//

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func putU16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}
