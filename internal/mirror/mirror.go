// internal/mirror/mirror.go
package mirror

import (
	"sync"

	"github.com/tamzrod/muses-control/internal/muses"
)

// Mirror remembers the last word delivered to every chip register.
// MUSES registers are write-only, so this is the only record of what the
// device currently holds. Safe for concurrent use.
type Mirror struct {
	mu   sync.Mutex
	snap Snapshot
	sent [CommandSlots]bool
}

// New returns an empty mirror in the HealthUnknown state.
func New() *Mirror {
	return &Mirror{}
}

// Record stores a delivered command and marks the bus healthy.
func (m *Mirror) Record(cmd muses.Command) {
	addr, sel := muses.Header(cmd)
	slot := Slot(addr, sel)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap.Commands[slot] = cmd
	m.sent[slot] = true
	m.snap.Health = HealthOK
	m.snap.LastErrorCode = 0
}

// Fail marks the bus unhealthy. Recorded commands are kept: a failed send
// does not change what the device last accepted.
func (m *Mirror) Fail(code uint16) {
	if code == 0 {
		code = CodeGeneric
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap.Health = HealthError
	m.snap.LastErrorCode = code
}

// Last returns the last delivered command for a register.
func (m *Mirror) Last(addr muses.ChipAddress, sel muses.SelectAddress) (muses.Command, bool) {
	if addr > muses.MaxChipAddress || int(sel) >= SlotsPerChip {
		return 0, false
	}
	slot := Slot(addr, sel)

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snap.Commands[slot], m.sent[slot]
}

// replayOrder puts configuration ahead of gain and volume.
var replayOrder = [SlotsPerChip]muses.SelectAddress{
	muses.SelectConfigure,
	muses.SelectGain,
	muses.SelectChannelLeft,
	muses.SelectChannelRight,
}

// Replay returns every known command, chip by chip, in the order a freshly
// powered chip needs them. Used to re-assert state after a bridge reset.
func (m *Mirror) Replay() []muses.Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []muses.Command
	for addr := 0; addr < Chips; addr++ {
		for _, sel := range replayOrder {
			slot := Slot(muses.ChipAddress(addr), sel)
			if m.sent[slot] {
				out = append(out, m.snap.Commands[slot])
			}
		}
	}
	return out
}

// Snapshot returns a copy of the current state.
func (m *Mirror) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}
