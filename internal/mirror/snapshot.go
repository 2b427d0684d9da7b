// internal/mirror/snapshot.go
package mirror

import "github.com/tamzrod/muses-control/internal/muses"

// Snapshot is a copy of the mirror at one point in time.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	// Commands[Slot(addr, sel)] is the last word delivered, 0 if never sent.
	Commands [CommandSlots]muses.Command

	Health        uint16
	LastErrorCode uint16
}
