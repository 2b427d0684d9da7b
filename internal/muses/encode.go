// internal/muses/encode.go
package muses

// Encoder packs commands for one chip variant.
// The zero value targets the MUSES72323 (MaxAttenuation72323).
// A non-zero MaxAttenuation must lie in [MinAttenuation, MuteAttenuation-1];
// SetVolume rejects every request on an encoder outside that range.
// Encoder holds no state: every method is a pure function of its inputs.
type Encoder struct {
	MaxAttenuation Attenuation
}

// Package-level helpers use the default variant.
var defaultEncoder Encoder

func (e Encoder) maxAttenuation() Attenuation {
	if e.MaxAttenuation == 0 {
		return MaxAttenuation72323
	}
	return e.MaxAttenuation
}

// Max returns the quietest volume step accepted by this encoder.
func (e Encoder) Max() Attenuation { return e.maxAttenuation() }

// header builds bits [3:0], shared by every command.
// Chip address is always validated before any payload field.
func header(addr ChipAddress, sel SelectAddress) (Command, error) {
	if addr > MaxChipAddress {
		return 0, chipAddressError(addr)
	}

	var w uint16
	w |= maskSelectAddress & (uint16(sel) << shiftSelectAddress)
	w |= maskChipAddress & uint16(addr)

	return Command(w), nil
}

// Configure encodes the chip-wide configuration command.
func (e Encoder) Configure(addr ChipAddress, zw ZeroWindow, cd ClockDivider, src SoftStepClock) (Command, error) {
	cmd, err := header(addr, SelectConfigure)
	if err != nil {
		return 0, err
	}
	if zw > MaxZeroWindow {
		return 0, zeroWindowError(zw)
	}
	if cd > MaxClockDivider {
		return 0, clockDividerError(cd)
	}

	w := uint16(cmd)
	w |= maskZeroWindow & (uint16(zw) << shiftZeroWindow)
	w |= maskClockDivider & (uint16(cd) << shiftClockDivider)
	if src == SoftStepClockInternal {
		w |= maskSoftStepClock & (1 << shiftSoftStepClock)
	}

	return Command(w), nil
}

// SetGain encodes the gain command for both channels.
// When link is set the device mirrors the left gain onto the right channel;
// right is still packed as given.
func (e Encoder) SetGain(addr ChipAddress, left, right ChannelGain, link, zeroCross bool) (Command, error) {
	cmd, err := header(addr, SelectGain)
	if err != nil {
		return 0, err
	}
	if left > MaxChannelGain {
		return 0, channelGainError("left_gain", left)
	}
	if right > MaxChannelGain {
		return 0, channelGainError("right_gain", right)
	}

	w := uint16(cmd)
	if link {
		w |= maskLinkChannels & (1 << shiftLinkChannels)
	}
	w |= maskLeftGain & (uint16(left) << shiftLeftGain)
	w |= maskRightGain & (uint16(right) << shiftRightGain)
	if zeroCross {
		w |= maskZeroCross & (1 << shiftZeroCross)
	}

	return Command(w), nil
}

// SetVolume encodes a volume command for one channel.
// Attenuation above the variant maximum is rejected; anything below
// MinAttenuation (including negative values) is raised to MinAttenuation.
func (e Encoder) SetVolume(addr ChipAddress, ch Channel, att Attenuation, softStep bool) (Command, error) {
	cmd, err := header(addr, ch.selectAddress())
	if err != nil {
		return 0, err
	}

	limit := e.maxAttenuation()
	if limit < MinAttenuation || limit >= MuteAttenuation {
		return 0, maxAttenuationError(limit)
	}
	if att > limit {
		return 0, attenuationError(att, limit)
	}
	if att < MinAttenuation {
		att = MinAttenuation
	}

	return volumeWord(cmd, att, softStep), nil
}

// Mute encodes a volume command carrying the reserved mute code.
// Muting is undone by a later SetVolume; nothing is remembered here.
func (e Encoder) Mute(addr ChipAddress, ch Channel, softStep bool) (Command, error) {
	cmd, err := header(addr, ch.selectAddress())
	if err != nil {
		return 0, err
	}
	return volumeWord(cmd, MuteAttenuation, softStep), nil
}

func volumeWord(hdr Command, att Attenuation, softStep bool) Command {
	w := uint16(hdr)
	w |= maskVolume & (uint16(att) << shiftVolume)
	if softStep {
		w |= maskSoftStep & (1 << shiftSoftStep)
	}
	return Command(w)
}

// ---- default variant ----

// Configure encodes a configuration command for the default variant.
func Configure(addr ChipAddress, zw ZeroWindow, cd ClockDivider, src SoftStepClock) (Command, error) {
	return defaultEncoder.Configure(addr, zw, cd, src)
}

// SetGain encodes a gain command for the default variant.
func SetGain(addr ChipAddress, left, right ChannelGain, link, zeroCross bool) (Command, error) {
	return defaultEncoder.SetGain(addr, left, right, link, zeroCross)
}

// SetVolume encodes a volume command for the default variant.
func SetVolume(addr ChipAddress, ch Channel, att Attenuation, softStep bool) (Command, error) {
	return defaultEncoder.SetVolume(addr, ch, att, softStep)
}

// Mute encodes a mute command for the default variant.
func Mute(addr ChipAddress, ch Channel, softStep bool) (Command, error) {
	return defaultEncoder.Mute(addr, ch, softStep)
}
