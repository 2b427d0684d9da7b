// cmd/musesctl/encode.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/fatih/color"

	"github.com/tamzrod/muses-control/internal/muses"
)

// runEncode builds a single command word from flags and prints it.
func runEncode(args []string, w io.Writer) error {
	if len(args) < 1 {
		return errors.New("usage: musesctl encode configure|gain|volume|mute [flags]")
	}
	op, args := args[0], args[1:]

	fs := flag.NewFlagSet("encode "+op, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addr := fs.Uint("addr", 0, "chip address (0..3)")
	variant := fs.String("variant", "", "chip variant (muses72323|legacy)")
	binary := fs.Bool("bin", false, "also print the word in binary")

	// configure
	zw := fs.Uint("zero-window", 0, "zero-cross window (0..3)")
	cd := fs.Uint("clock-div", 0, "soft-step clock divider (0..7)")
	clk := fs.String("clock", "external", "soft-step clock (external|internal)")

	// gain
	gl := fs.Uint("left", 0, "left gain step (0..7)")
	gr := fs.Uint("right", 0, "right gain step (0..7)")
	link := fs.Bool("link", false, "link channels")
	zc := fs.Bool("zero-cross", false, "enable zero-cross detection")

	// volume / mute
	chName := fs.String("channel", "left", "channel (left|right)")
	att := fs.Int("att", int(muses.MinAttenuation), "attenuation in device units")
	soft := fs.Bool("soft", false, "soft-step the change")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("encode %s: %w", op, err)
	}

	enc, err := muses.EncoderFor(*variant)
	if err != nil {
		return err
	}

	var cmd muses.Command
	switch op {
	case "configure":
		src, perr := muses.ParseSoftStepClock(*clk)
		if perr != nil {
			return perr
		}
		cmd, err = enc.Configure(muses.ChipAddress(narrow(*addr)), muses.ZeroWindow(narrow(*zw)), muses.ClockDivider(narrow(*cd)), src)

	case "gain":
		cmd, err = enc.SetGain(muses.ChipAddress(narrow(*addr)), muses.ChannelGain(narrow(*gl)), muses.ChannelGain(narrow(*gr)), *link, *zc)

	case "volume", "mute":
		ch, perr := muses.ParseChannel(*chName)
		if perr != nil {
			return perr
		}
		if op == "mute" {
			cmd, err = enc.Mute(muses.ChipAddress(narrow(*addr)), ch, *soft)
		} else {
			cmd, err = enc.SetVolume(muses.ChipAddress(narrow(*addr)), ch, attenuation(*att), *soft)
		}

	default:
		return fmt.Errorf("encode: unknown operation %q", op)
	}
	if err != nil {
		return err
	}

	if *binary {
		fmt.Fprintf(w, "%s %016b\n", cmd, uint16(cmd))
		return nil
	}
	fmt.Fprintln(w, cmd)
	return nil
}

// runDecode prints the fields of one or more command words.
func runDecode(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	noColor := fs.Bool("no-color", false, "disable colour output")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if fs.NArg() == 0 {
		return errors.New("usage: musesctl decode [-no-color] <word>...")
	}

	p := newPalette(*noColor)
	for _, raw := range fs.Args() {
		v, err := strconv.ParseUint(raw, 0, 16)
		if err != nil {
			return fmt.Errorf("decode: word %q: %w", raw, err)
		}
		fmt.Fprintln(w, p.describe(muses.Command(v)))
	}
	return nil
}

// narrow saturates flag values so oversized input is rejected by the
// encoder instead of wrapping into range.
func narrow(v uint) uint8 {
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

func attenuation(v int) muses.Attenuation {
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return muses.Attenuation(v)
}

// ---- rendering ----

type palette struct {
	word  *color.Color
	op    *color.Color
	key   *color.Color
	alert *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		word:  color.New(color.FgHiWhite, color.Bold),
		op:    color.New(color.FgYellow),
		key:   color.New(color.FgCyan),
		alert: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		p.word.DisableColor()
		p.op.DisableColor()
		p.key.DisableColor()
		p.alert.DisableColor()
	}
	return p
}

func (p palette) kv(k string, v any) string {
	return fmt.Sprintf(" %s=%v", p.key.Sprint(k), v)
}

func (p palette) describe(cmd muses.Command) string {
	f := muses.Decode(cmd)
	s := p.word.Sprint(cmd.String()) + " " + p.op.Sprint(f.Select.String()) + p.kv("chip", f.ChipAddress)

	switch f.Select {
	case muses.SelectConfigure:
		s += p.kv("zero_window", f.Configure.ZeroWindow) +
			p.kv("clock_div", f.Configure.ClockDivider) +
			p.kv("clock", f.Configure.SoftStepClock)

	case muses.SelectGain:
		s += p.kv("left", fmt.Sprintf("%ddB", 3*int(f.Gain.Left))) +
			p.kv("right", fmt.Sprintf("%ddB", 3*int(f.Gain.Right))) +
			p.kv("link", f.Gain.Link) +
			p.kv("zero_cross", f.Gain.ZeroCross)

	default:
		if f.Volume.Muted {
			s += " " + p.alert.Sprint("MUTE")
		} else {
			s += p.kv("att", int(f.Volume.Attenuation)) + p.kv("level", level(f.Volume.Attenuation))
		}
		s += p.kv("soft", f.Volume.SoftStep)
	}
	return s
}

// level renders attenuation as dB relative to the loudest setting.
func level(a muses.Attenuation) string {
	switch {
	case a < muses.MinAttenuation:
		return "invalid"
	case a == muses.MinAttenuation:
		return "0.00dB"
	}
	return fmt.Sprintf("-%.2fdB", float64(a-muses.MinAttenuation)/4)
}
