// internal/muses/constants.go
package muses

// Command word layout constants.
// These values define the device protocol and MUST NOT be configurable.

// ---- HEADER (every command) ----

const (
	maskSelectAddress uint16 = 0x000C // bits [3:2]
	maskChipAddress   uint16 = 0x0003 // bits [1:0]

	shiftSelectAddress = 2
)

// ---- VOLUME (select 0 / 1) ----

const (
	maskVolume   uint16 = 0xFF80 // bits [15:7]
	maskSoftStep uint16 = 0x0010 // bit 4

	shiftVolume   = 7
	shiftSoftStep = 4
)

// ---- GAIN (select 2) ----

const (
	maskLinkChannels uint16 = 0x8000 // bit 15
	maskLeftGain     uint16 = 0x7000 // bits [14:12]
	maskRightGain    uint16 = 0x0E00 // bits [11:9]
	maskZeroCross    uint16 = 0x0100 // bit 8

	shiftLinkChannels = 15
	shiftLeftGain     = 12
	shiftRightGain    = 9
	shiftZeroCross    = 8
)

// ---- CONFIGURE (select 3) ----

const (
	maskZeroWindow    uint16 = 0x6000 // bits [14:13]
	maskClockDivider  uint16 = 0x1C00 // bits [12:10]
	maskSoftStepClock uint16 = 0x0200 // bit 9

	shiftZeroWindow    = 13
	shiftClockDivider  = 10
	shiftSoftStepClock = 9
)

// ---- LIMITS ----

// MaxChipAddress is the highest address reachable with the 2-bit field.
const MaxChipAddress ChipAddress = 0x03

// MaxChannelGain is the highest gain step (8 steps of 3 dB).
const MaxChannelGain ChannelGain = 0x07

// MaxZeroWindow is the highest zero-window setting.
const MaxZeroWindow ZeroWindow = 0x03

// MaxClockDivider is the highest soft-step clock divider setting.
const MaxClockDivider ClockDivider = 0x07

// MinAttenuation is the loudest addressable volume step.
// Requests below it are raised to it.
const MinAttenuation Attenuation = 0x20

// MaxAttenuation72323 is the quietest volume step of the MUSES72323.
const MaxAttenuation72323 Attenuation = 0x1DF

// MaxAttenuationLegacy is the quietest volume step of the earlier
// silicon revision, which stops 8 dB short.
const MaxAttenuationLegacy Attenuation = 0x1BF

// MuteAttenuation is the reserved all-ones volume code.
const MuteAttenuation Attenuation = 0x1FF
