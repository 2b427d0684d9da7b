// cmd/musesctl/encode_test.go
package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/tamzrod/muses-control/internal/muses"
)

func TestRunEncode(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"volume", []string{"volume", "-addr", "1", "-channel", "right", "-att", "64", "-soft"}, "0x2015"},
		{"configure", []string{"configure", "-addr", "3", "-zero-window", "2", "-clock-div", "5", "-clock", "internal"}, "0x560F"},
		{"gain", []string{"gain", "-left", "7", "-right", "1", "-link", "-zero-cross"}, "0xF308"},
		{"mute", []string{"mute", "-addr", "2"}, "0xFF82"},
		{"clamped", []string{"volume", "-att", "10"}, "0x1000"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		if err := runEncode(tc.args, &buf); err != nil {
			t.Fatalf("%s: err=%v", tc.name, err)
		}
		if got := strings.TrimSpace(buf.String()); got != tc.want {
			t.Fatalf("%s: got=%s want=%s", tc.name, got, tc.want)
		}
	}
}

func TestRunEncode_Binary(t *testing.T) {
	var buf bytes.Buffer
	if err := runEncode([]string{"mute", "-addr", "2", "-bin"}, &buf); err != nil {
		t.Fatalf("err=%v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "0xFF82 1111111110000010" {
		t.Fatalf("got=%q", got)
	}
}

func TestRunEncode_Errors(t *testing.T) {
	var buf bytes.Buffer

	if err := runEncode([]string{"volume", "-addr", "4"}, &buf); !errors.Is(err, muses.ErrChipAddressOutOfRange) {
		t.Fatalf("expected ErrChipAddressOutOfRange, got %v", err)
	}
	if err := runEncode([]string{"volume", "-addr", "260"}, &buf); !errors.Is(err, muses.ErrChipAddressOutOfRange) {
		t.Fatalf("oversized address must not wrap, got %v", err)
	}
	if err := runEncode([]string{"volume", "-variant", "legacy", "-att", "479"}, &buf); !errors.Is(err, muses.ErrAttenuationOutOfRange) {
		t.Fatalf("expected ErrAttenuationOutOfRange, got %v", err)
	}
	if err := runEncode([]string{"gain", "-left", "8"}, &buf); !errors.Is(err, muses.ErrChannelGainOutOfRange) {
		t.Fatalf("expected ErrChannelGainOutOfRange, got %v", err)
	}
	if err := runEncode([]string{"balance"}, &buf); err == nil {
		t.Fatalf("expected unknown operation error")
	}
	if err := runEncode(nil, &buf); err == nil {
		t.Fatalf("expected usage error")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed encodes must not print, got %q", buf.String())
	}
}

func TestRunDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := runDecode([]string{"-no-color", "0x2015", "0xFF82", "0xF308", "0x560F"}, &buf); err != nil {
		t.Fatalf("err=%v", err)
	}

	want := []string{
		"0x2015 volume-right chip=1 att=64 level=-8.00dB soft=true",
		"0xFF82 volume-left chip=2 MUTE soft=false",
		"0xF308 gain chip=0 left=21dB right=3dB link=true zero_cross=true",
		"0x560F configure chip=3 zero_window=2 clock_div=5 clock=internal",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("lines=%d want=%d: %q", len(got), len(want), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}

func TestRunDecode_BadWord(t *testing.T) {
	var buf bytes.Buffer
	if err := runDecode([]string{"0x10000"}, &buf); err == nil {
		t.Fatalf("expected overflow error")
	}
	if err := runDecode([]string{"zz"}, &buf); err == nil {
		t.Fatalf("expected parse error")
	}
	if err := runDecode(nil, &buf); err == nil {
		t.Fatalf("expected usage error")
	}
}

func TestLevel(t *testing.T) {
	if got := level(muses.MinAttenuation); got != "0.00dB" {
		t.Fatalf("got=%s", got)
	}
	if got := level(33); got != "-0.25dB" {
		t.Fatalf("got=%s", got)
	}
	if got := level(0); got != "invalid" {
		t.Fatalf("got=%s", got)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	if err := run("reboot", nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error")
	}
}
