// internal/mirror/writer.go
package mirror

import (
	"errors"
	"fmt"
	"strings"
)

// RegisterWriter is the exact contract the block writer needs from a
// Modbus endpoint.
type RegisterWriter interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Target locates the shadow block on the bridge.
type Target struct {
	UnitID       uint8
	BaseRegister uint16
}

// Writer delivers snapshots into a shadow register block.
type Writer struct {
	target Target
	cli    RegisterWriter

	needFull bool
	last     Snapshot
}

// NewWriter builds a block writer. The first write is always a full block.
func NewWriter(target Target, cli RegisterWriter) *Writer {
	return &Writer{
		target:   target,
		cli:      cli,
		needFull: true,
	}
}

// WriteSnapshot delivers a snapshot into the shadow block.
// On any write failure, the next call re-asserts the full block.
func (w *Writer) WriteSnapshot(s Snapshot) error {
	if w == nil || w.cli == nil {
		return errors.New("mirror writer: no client")
	}

	// ------------------------------------------------------------
	// Full block write (re-assert)
	// ------------------------------------------------------------
	if w.needFull {
		if err := w.cli.WriteRegisters(w.target.UnitID, w.target.BaseRegister, Encode(s)); err != nil {
			w.needFull = true
			return fmt.Errorf("mirror writer: full block write failed: %w", err)
		}

		w.needFull = false
		w.last = s
		return nil
	}

	next := Encode(s)
	prev := Encode(w.last)

	var errs []string
	for slot := range next {
		if next[slot] == prev[slot] {
			continue
		}
		addr := w.target.BaseRegister + uint16(slot)
		if err := w.cli.WriteRegisters(w.target.UnitID, addr, []uint16{next[slot]}); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", slot, err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next call.
		w.needFull = true
		return errors.New("mirror writer: " + strings.Join(errs, " | "))
	}

	w.last = s
	return nil
}
