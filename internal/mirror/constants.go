// internal/mirror/constants.go
package mirror

import "github.com/tamzrod/muses-control/internal/muses"

// Shadow block layout constants.
// These values define the bridge protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// Chips is the number of chip addresses on one bus.
const Chips = int(muses.MaxChipAddress) + 1

// SlotsPerChip is one slot per select address.
const SlotsPerChip = 4

// CommandSlots is the number of command slots at the start of the block.
const CommandSlots = Chips * SlotsPerChip

// ---- STATUS SLOTS (after the command slots) ----

// SlotHealthCode holds the delivery health state.
const SlotHealthCode = CommandSlots

// SlotLastErrorCode holds the code of the last delivery or encode failure.
const SlotLastErrorCode = CommandSlots + 1

// BlockSize is the total number of registers in the block.
const BlockSize = CommandSlots + 2

// ---- HEALTH CODES ----

// HealthUnknown represents the boot state (nothing delivered yet).
const HealthUnknown uint16 = 0

// HealthOK represents a bus that accepted the last command.
const HealthOK uint16 = 1

// HealthError represents a bus that rejected the last command.
const HealthError uint16 = 2

// ---- ERROR CODES ----

// CodeGeneric marks a failure that carries no code of its own.
// Encoder codes occupy the low range, so this sits at the top.
const CodeGeneric uint16 = 0xFFFF

// Slot returns the command slot index for a chip/select pair.
func Slot(addr muses.ChipAddress, sel muses.SelectAddress) int {
	return int(addr)*SlotsPerChip + int(sel)
}
