// internal/muses/types.go
package muses

import "fmt"

// Command is one 16-bit word ready to be shifted out MSB first.
type Command uint16

// String renders the word as fixed-width hex.
func (c Command) String() string {
	return fmt.Sprintf("0x%04X", uint16(c))
}

// Bytes returns the word in wire order (MSB first).
func (c Command) Bytes() [2]byte {
	return [2]byte{byte(c >> 8), byte(c)}
}

// ChipAddress selects one of up to four chips sharing a bus (0..3).
type ChipAddress uint8

// ChannelGain is a per-channel gain step of 3 dB (0..7).
type ChannelGain uint8

// Attenuation is a volume step in 0.25 dB units, expressed in device units:
// MinAttenuation is the loudest setting.
type Attenuation int16

// ZeroWindow is the zero-cross detection window (0..3).
type ZeroWindow uint8

// ClockDivider is the soft-step clock divider (0..7).
type ClockDivider uint8

// Channel is one of the two volume channels.
type Channel uint8

const (
	ChannelLeft  Channel = 0x00
	ChannelRight Channel = 0x01
)

func (c Channel) String() string {
	switch c {
	case ChannelLeft:
		return "left"
	case ChannelRight:
		return "right"
	default:
		return fmt.Sprintf("channel(%d)", uint8(c))
	}
}

// ParseChannel accepts "left"/"l" and "right"/"r".
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "left", "l", "L":
		return ChannelLeft, nil
	case "right", "r", "R":
		return ChannelRight, nil
	}
	return 0, fmt.Errorf("muses: unknown channel %q", s)
}

// selectAddress maps a channel onto its volume select code.
func (c Channel) selectAddress() SelectAddress {
	if c == ChannelRight {
		return SelectChannelRight
	}
	return SelectChannelLeft
}

// SelectAddress is the 2-bit operation code in bits [3:2].
// Encoders derive it from the operation; it is never caller supplied.
type SelectAddress uint8

const (
	SelectChannelLeft  SelectAddress = 0x00
	SelectChannelRight SelectAddress = 0x01
	SelectGain         SelectAddress = 0x02
	SelectConfigure    SelectAddress = 0x03
)

func (s SelectAddress) String() string {
	switch s {
	case SelectChannelLeft:
		return "volume-left"
	case SelectChannelRight:
		return "volume-right"
	case SelectGain:
		return "gain"
	case SelectConfigure:
		return "configure"
	default:
		return fmt.Sprintf("select(%d)", uint8(s))
	}
}

// SoftStepClock chooses the clock that drives soft-step ramps.
type SoftStepClock uint8

const (
	SoftStepClockExternal SoftStepClock = 0x00
	SoftStepClockInternal SoftStepClock = 0x01
)

func (s SoftStepClock) String() string {
	if s == SoftStepClockInternal {
		return "internal"
	}
	return "external"
}

// ParseSoftStepClock accepts "external" and "internal".
func ParseSoftStepClock(s string) (SoftStepClock, error) {
	switch s {
	case "external", "ext":
		return SoftStepClockExternal, nil
	case "internal", "int":
		return SoftStepClockInternal, nil
	}
	return 0, fmt.Errorf("muses: unknown soft-step clock %q", s)
}
