// internal/muses/errors.go
package muses

import (
	"errors"
	"fmt"
)

// Validation failures. They are caller errors, never transient.
var (
	ErrChipAddressOutOfRange  = errors.New("muses: chip address out of range")
	ErrChannelGainOutOfRange  = errors.New("muses: channel gain out of range")
	ErrZeroWindowOutOfRange   = errors.New("muses: zero window out of range")
	ErrClockDividerOutOfRange = errors.New("muses: clock divider out of range")
	ErrAttenuationOutOfRange  = errors.New("muses: attenuation out of range")
)

// Numeric codes exposed through RangeError.Code.
// 0 is reserved for "no error".
const (
	CodeChipAddressOutOfRange  uint16 = 1
	CodeChannelGainOutOfRange  uint16 = 2
	CodeZeroWindowOutOfRange   uint16 = 3
	CodeClockDividerOutOfRange uint16 = 4
	CodeAttenuationOutOfRange  uint16 = 5
)

// RangeError reports which field was rejected and why.
// It unwraps to one of the Err*OutOfRange sentinels.
type RangeError struct {
	Field string
	Value int
	Max   int

	err  error
	code uint16
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: %s=%d max=%d", e.err, e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return e.err }

// Code returns the stable numeric code for the failure.
func (e *RangeError) Code() uint16 { return e.code }

func chipAddressError(v ChipAddress) error {
	return &RangeError{
		Field: "chip_address", Value: int(v), Max: int(MaxChipAddress),
		err: ErrChipAddressOutOfRange, code: CodeChipAddressOutOfRange,
	}
}

func channelGainError(field string, v ChannelGain) error {
	return &RangeError{
		Field: field, Value: int(v), Max: int(MaxChannelGain),
		err: ErrChannelGainOutOfRange, code: CodeChannelGainOutOfRange,
	}
}

func zeroWindowError(v ZeroWindow) error {
	return &RangeError{
		Field: "zero_window", Value: int(v), Max: int(MaxZeroWindow),
		err: ErrZeroWindowOutOfRange, code: CodeZeroWindowOutOfRange,
	}
}

func clockDividerError(v ClockDivider) error {
	return &RangeError{
		Field: "clock_divider", Value: int(v), Max: int(MaxClockDivider),
		err: ErrClockDividerOutOfRange, code: CodeClockDividerOutOfRange,
	}
}

func attenuationError(v, limit Attenuation) error {
	return &RangeError{
		Field: "attenuation", Value: int(v), Max: int(limit),
		err: ErrAttenuationOutOfRange, code: CodeAttenuationOutOfRange,
	}
}

// maxAttenuationError reports an encoder whose own limit cannot be packed
// without colliding with the mute code or the 9-bit field.
func maxAttenuationError(limit Attenuation) error {
	return &RangeError{
		Field: "max_attenuation", Value: int(limit), Max: int(MuteAttenuation - 1),
		err: ErrAttenuationOutOfRange, code: CodeAttenuationOutOfRange,
	}
}
