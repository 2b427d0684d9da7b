// internal/mirror/encode.go
package mirror

// Encode converts a Snapshot into a full shadow block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, BlockSize)

	for i, c := range s.Commands {
		regs[i] = uint16(c)
	}
	regs[SlotHealthCode] = s.Health
	regs[SlotLastErrorCode] = s.LastErrorCode

	return regs
}
