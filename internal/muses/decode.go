// internal/muses/decode.go
package muses

// Fields is a command word split back into its parts.
// Only the sub-struct matching Select is meaningful.
type Fields struct {
	ChipAddress ChipAddress
	Select      SelectAddress

	Configure ConfigureFields
	Gain      GainFields
	Volume    VolumeFields
}

type ConfigureFields struct {
	ZeroWindow    ZeroWindow
	ClockDivider  ClockDivider
	SoftStepClock SoftStepClock
}

type GainFields struct {
	Left, Right ChannelGain
	Link        bool
	ZeroCross   bool
}

type VolumeFields struct {
	Channel     Channel
	Attenuation Attenuation
	SoftStep    bool
	Muted       bool
}

// Header returns the chip address and select code of a word.
func Header(c Command) (ChipAddress, SelectAddress) {
	w := uint16(c)
	return ChipAddress(w & maskChipAddress),
		SelectAddress((w & maskSelectAddress) >> shiftSelectAddress)
}

// Decode splits a word into its fields. It never fails: every 16-bit
// pattern has a reading, even if no encoder would produce it.
func Decode(c Command) Fields {
	w := uint16(c)
	addr, sel := Header(c)
	f := Fields{ChipAddress: addr, Select: sel}

	switch sel {
	case SelectConfigure:
		f.Configure = ConfigureFields{
			ZeroWindow:    ZeroWindow((w & maskZeroWindow) >> shiftZeroWindow),
			ClockDivider:  ClockDivider((w & maskClockDivider) >> shiftClockDivider),
			SoftStepClock: SoftStepClock((w & maskSoftStepClock) >> shiftSoftStepClock),
		}

	case SelectGain:
		f.Gain = GainFields{
			Left:      ChannelGain((w & maskLeftGain) >> shiftLeftGain),
			Right:     ChannelGain((w & maskRightGain) >> shiftRightGain),
			Link:      w&maskLinkChannels != 0,
			ZeroCross: w&maskZeroCross != 0,
		}

	default:
		att := Attenuation((w & maskVolume) >> shiftVolume)
		ch := ChannelLeft
		if sel == SelectChannelRight {
			ch = ChannelRight
		}
		f.Volume = VolumeFields{
			Channel:     ch,
			Attenuation: att,
			SoftStep:    w&maskSoftStep != 0,
			Muted:       att == MuteAttenuation,
		}
	}

	return f
}
