// cmd/musesctl/apply_test.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tamzrod/muses-control/internal/config"
	"github.com/tamzrod/muses-control/internal/logging"
	"github.com/tamzrod/muses-control/internal/mirror"
	"github.com/tamzrod/muses-control/internal/muses"
)

// ---- fakes ----

type fakeSender struct {
	mu   sync.Mutex
	sent []muses.Command
	fail func(muses.Command) error
}

func (f *fakeSender) Send(cmd muses.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		if err := f.fail(cmd); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeSender) Close() error { return nil }

// bridge answers every raw word frame with OK and collects the words.
type bridge struct {
	mu    sync.Mutex
	words []muses.Command
}

func startBridge(t *testing.T) (string, *bridge) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	b := &bridge{}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			b.serve(conn)
		}
	}()
	return ln.Addr().String(), b
}

func (b *bridge) serve(conn net.Conn) {
	defer conn.Close()

	hdr := make([]byte, 6)
	if _, err := io.ReadFull(conn, hdr); err != nil {
		return
	}
	n := int(hdr[4])<<8 | int(hdr[5])
	body := make([]byte, 2*n)
	if _, err := io.ReadFull(conn, body); err != nil {
		return
	}

	b.mu.Lock()
	for i := 0; i < n; i++ {
		b.words = append(b.words, muses.Command(uint16(body[2*i])<<8|uint16(body[2*i+1])))
	}
	b.mu.Unlock()

	_, _ = conn.Write([]byte{0x00})
}

func (b *bridge) received() []muses.Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]muses.Command(nil), b.words...)
}

func equalWords(a, b []muses.Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const twoChips = `
controller:
  transport:
    kind: raw-tcp
    endpoint: %q
  chips:
    - id: a
      address: 0
      volume: { left: 64, right: 64 }
      ramp: { step: 4, interval_ms: 1 }
    - id: b
      address: 1
      volume: { muted: true }
logging:
  level: disabled
`

func writeConfig(t *testing.T, endpoint string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "musesctl.yaml")
	if err := os.WriteFile(p, []byte(fmt.Sprintf(twoChips, endpoint)), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

// ---- tests ----

func TestApplyAll_ChipsIndependent(t *testing.T) {
	fs := &fakeSender{
		fail: func(c muses.Command) error {
			if addr, sel := muses.Header(c); addr == 0 && sel == muses.SelectGain {
				return errors.New("bridge busy")
			}
			return nil
		},
	}
	s := &session{
		cfg: &config.Config{Controller: config.ControllerConfig{Chips: []config.ChipConfig{
			{ID: "a", Address: 0, Volume: config.VolumeConfig{Left: 64, Right: 64}},
			{ID: "b", Address: 1, Volume: config.VolumeConfig{Muted: true}},
		}}},
		log:    logging.Nop(),
		sender: fs,
		mirror: mirror.New(),
	}

	if err := applyAll(context.Background(), s); err == nil {
		t.Fatalf("expected error from chip a")
	}

	want := []muses.Command{0x000C, 0x000D, 0x0009, 0xFF81, 0xFF85}
	if !equalWords(fs.sent, want) {
		t.Fatalf("sent=%v want=%v", fs.sent, want)
	}

	if _, ok := s.mirror.Last(0, muses.SelectChannelLeft); ok {
		t.Fatalf("chip a volume must not be recorded after abort")
	}
	if c, ok := s.mirror.Last(1, muses.SelectChannelRight); !ok || c != 0xFF85 {
		t.Fatalf("chip b right=(%s,%v)", c, ok)
	}
	// chip b delivered after the failure, so the bus reads healthy again
	if snap := s.mirror.Snapshot(); snap.Health != mirror.HealthOK || snap.LastErrorCode != 0 {
		t.Fatalf("health=%d code=%d", snap.Health, snap.LastErrorCode)
	}
}

func twoChipSession(sender *fakeSender) *session {
	return &session{
		cfg: &config.Config{Controller: config.ControllerConfig{Chips: []config.ChipConfig{
			{ID: "a", Address: 0, Volume: config.VolumeConfig{Left: 64, Right: 64}},
			{ID: "b", Address: 1, Volume: config.VolumeConfig{Muted: true}},
		}}},
		log:    logging.Nop(),
		sender: sender,
		mirror: mirror.New(),
	}
}

func TestWatchLoop_ApplyUntilCompleteThenReplay(t *testing.T) {
	gainFailures := 1
	fs := &fakeSender{
		fail: func(c muses.Command) error {
			if addr, sel := muses.Header(c); addr == 0 && sel == muses.SelectGain && gainFailures > 0 {
				gainFailures--
				return errors.New("bridge busy")
			}
			return nil
		},
	}
	s := twoChipSession(fs)

	ticks := make(chan time.Time, 2)
	ticks <- time.Time{}
	ticks <- time.Time{}
	close(ticks)

	watchLoop(context.Background(), s, ticks)

	full := []muses.Command{
		0x000C, 0x0008, 0x2000, 0x2004,
		0x000D, 0x0009, 0xFF81, 0xFF85,
	}
	var want []muses.Command
	// initial apply: chip a aborts at gain, chip b completes
	want = append(want, 0x000C, 0x000D, 0x0009, 0xFF81, 0xFF85)
	// first tick: still incomplete, so both plans run again
	want = append(want, full...)
	// second tick: replay from the mirror, configure first per chip
	want = append(want, full...)

	if !equalWords(fs.sent, want) {
		t.Fatalf("sent=%v\nwant=%v", fs.sent, want)
	}
}

func TestWatchTick_StaysIncompleteOnFailure(t *testing.T) {
	fs := &fakeSender{fail: func(muses.Command) error { return errors.New("bridge offline") }}
	s := twoChipSession(fs)

	if watchTick(context.Background(), s, false) {
		t.Fatalf("failed apply must leave watch incomplete")
	}
	if len(fs.sent) != 0 {
		t.Fatalf("sent=%v", fs.sent)
	}
	if s.mirror.Snapshot().Health != mirror.HealthError {
		t.Fatalf("health=%d", s.mirror.Snapshot().Health)
	}
}

func TestWatchLoop_StopsOnCancel(t *testing.T) {
	fs := &fakeSender{}
	s := twoChipSession(fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		watchLoop(ctx, s, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("watchLoop did not stop on cancel")
	}
	if len(fs.sent) != 0 {
		t.Fatalf("cancelled watch must not send, sent=%v", fs.sent)
	}
}

func TestRunApply_RawBridge(t *testing.T) {
	addr, b := startBridge(t)

	if err := runApply([]string{writeConfig(t, addr)}); err != nil {
		t.Fatalf("runApply() err=%v", err)
	}

	want := []muses.Command{
		0x000C, 0x0008, 0x2000, 0x2004,
		0x000D, 0x0009, 0xFF81, 0xFF85,
	}
	if got := b.received(); !equalWords(got, want) {
		t.Fatalf("bridge got=%v want=%v", got, want)
	}
}

func TestRunFade_RawBridge(t *testing.T) {
	addr, b := startBridge(t)

	if err := runFade([]string{writeConfig(t, addr), "a", "left", "72"}); err != nil {
		t.Fatalf("runFade() err=%v", err)
	}

	want := []muses.Command{0x2000, 0x2200, 0x2400}
	if got := b.received(); !equalWords(got, want) {
		t.Fatalf("bridge got=%v want=%v", got, want)
	}
}

func TestRunFade_BadArgs(t *testing.T) {
	if err := runFade([]string{"x.yaml", "a", "left"}); err == nil {
		t.Fatalf("expected usage error")
	}
	if err := runFade([]string{"x.yaml", "a", "centre", "64"}); err == nil {
		t.Fatalf("expected channel error")
	}

	addr, _ := startBridge(t)
	if err := runFade([]string{writeConfig(t, addr), "nope", "left", "64"}); err == nil {
		t.Fatalf("expected unknown chip error")
	}
}

func TestOpen_MirrorNeedsRegisterWriter(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	body := "controller:\n  transport: { kind: raw-tcp, endpoint: \"127.0.0.1:1\" }\n  mirror: { base_register: 10 }\n  chips: [ { id: a } ]\n"
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := open(p); err == nil {
		t.Fatalf("expected mirror error for raw transport")
	}
}
