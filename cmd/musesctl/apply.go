// cmd/musesctl/apply.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/muses-control/internal/config"
	"github.com/tamzrod/muses-control/internal/logging"
	"github.com/tamzrod/muses-control/internal/mirror"
	"github.com/tamzrod/muses-control/internal/muses"
	"github.com/tamzrod/muses-control/internal/ramp"
	"github.com/tamzrod/muses-control/internal/sequence"
	"github.com/tamzrod/muses-control/internal/transport"
)

// session is everything a bus-facing command needs.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	sender transport.Sender
	mirror *mirror.Mirror
	shadow *mirror.Writer // nil unless configured
}

// open loads, validates and normalizes config, then builds logging,
// transport and mirror.
func open(path string) (*session, func(), error) {
	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	log, closeLog := logging.New(cfg.Logging)

	// --------------------
	// Transport + mirror
	// --------------------

	sender, err := transport.Build(cfg.Controller.Transport)
	if err != nil {
		_ = closeLog()
		return nil, nil, err
	}

	s := &session{
		cfg:    cfg,
		log:    log,
		sender: sender,
		mirror: mirror.New(),
	}

	if mc := cfg.Controller.Mirror; mc != nil {
		rw, ok := sender.(mirror.RegisterWriter)
		if !ok {
			_ = sender.Close()
			_ = closeLog()
			return nil, nil, fmt.Errorf("mirror: transport %s cannot write registers", cfg.Controller.Transport.Kind)
		}
		s.shadow = mirror.NewWriter(mirror.Target{UnitID: mc.UnitID, BaseRegister: mc.BaseRegister}, rw)
	}

	closeAll := func() {
		if err := sender.Close(); err != nil {
			log.Warn().Err(err).Msg("transport close failed")
		}
		_ = closeLog()
	}

	log.Info().
		Str("transport", cfg.Controller.Transport.Kind).
		Str("endpoint", cfg.Controller.Transport.Endpoint).
		Int("chips", len(cfg.Controller.Chips)).
		Msg("session open")

	return s, closeAll, nil
}

func (s *session) pushShadow() error {
	if s.shadow == nil {
		return nil
	}
	if err := s.shadow.WriteSnapshot(s.mirror.Snapshot()); err != nil {
		s.log.Warn().Err(err).Msg("shadow block write failed")
		return err
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runApply sends every chip's power-up sequence once.
func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: musesctl apply <config>")
	}

	s, closeAll, err := open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, stop := signalContext()
	defer stop()

	return applyAll(ctx, s)
}

// applyAll runs every chip's plan and pushes the shadow block.
// Chips are independent: one failing chip does not stop the others.
func applyAll(ctx context.Context, s *session) error {
	var errs []error
	for _, chip := range s.cfg.Controller.Chips {
		plan, err := sequence.BuildPlan(chip)
		if err != nil {
			s.mirror.Fail(mirror.ErrorCode(err))
			errs = append(errs, err)
			continue
		}
		if err := sequence.Apply(ctx, plan, s.sender, s.mirror, s.log); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.pushShadow(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// runWatch applies the config, then keeps re-asserting the last delivered
// words until interrupted. The chips lose their registers whenever the
// bridge power-cycles them, and nothing can be read back.
func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	every := fs.Duration("every", 5*time.Second, "re-assert interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: musesctl watch [-every 5s] <config>")
	}
	if *every <= 0 {
		return errors.New("watch: -every must be > 0")
	}

	s, closeAll, err := open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, stop := signalContext()
	defer stop()

	ticker := time.NewTicker(*every)
	defer ticker.Stop()

	s.log.Info().Dur("every", *every).Msg("watch started")
	watchLoop(ctx, s, ticker.C)
	s.log.Info().Msg("watch stopped")
	return nil
}

// watchLoop applies every plan, then handles one tick at a time until ctx
// is done or ticks is closed. Until one full apply succeeds the mirror is
// incomplete, so ticks keep applying plans rather than replaying.
func watchLoop(ctx context.Context, s *session, ticks <-chan time.Time) {
	complete := applyAll(ctx, s) == nil
	if !complete {
		s.log.Warn().Msg("initial apply incomplete")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
		}
		complete = watchTick(ctx, s, complete)
	}
}

// watchTick runs one re-assert round and reports whether the mirror now
// holds every chip's full plan.
func watchTick(ctx context.Context, s *session, complete bool) bool {
	if !complete {
		if err := applyAll(ctx, s); err != nil {
			s.log.Warn().Err(err).Msg("apply incomplete")
			return false
		}
		return true
	}

	cmds := s.mirror.Replay()
	if err := sequence.Replay(ctx, cmds, s.sender, s.mirror, s.log); err != nil {
		s.log.Warn().Err(err).Msg("re-assert incomplete")
	} else {
		s.log.Debug().Int("words", len(cmds)).Msg("re-asserted")
	}
	_ = s.pushShadow()
	return true
}

// runFade ramps one channel from its configured volume to a target.
func runFade(args []string) error {
	fs := flag.NewFlagSet("fade", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return errors.New("usage: musesctl fade <config> <chip-id> <left|right> <attenuation>")
	}

	ch, err := muses.ParseChannel(fs.Arg(2))
	if err != nil {
		return err
	}
	to, err := strconv.ParseInt(fs.Arg(3), 0, 16)
	if err != nil {
		return fmt.Errorf("fade: attenuation %q: %w", fs.Arg(3), err)
	}

	s, closeAll, err := open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer closeAll()

	chip, ok := s.cfg.Chip(fs.Arg(1))
	if !ok {
		return fmt.Errorf("fade: unknown chip %q", fs.Arg(1))
	}

	r, err := ramp.Build(chip, ch, muses.Attenuation(to))
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// ---- ramp producer ----
	out := make(chan muses.Command)
	runErr := make(chan error, 1)
	go func() {
		runErr <- r.Run(ctx, out)
		close(out)
	}()

	// ---- delivery ----
	var sendErr error
	sent := 0
	for cmd := range out {
		if sendErr != nil {
			continue
		}
		if err := s.sender.Send(cmd); err != nil {
			s.mirror.Fail(mirror.ErrorCode(err))
			sendErr = fmt.Errorf("fade: chip %q: %w", chip.ID, err)
			cancel()
			continue
		}
		s.mirror.Record(cmd)
		sent++
	}

	s.log.Info().
		Str("chip", chip.ID).
		Stringer("channel", ch).
		Int64("to", to).
		Int("steps", sent).
		Msg("fade finished")

	shadowErr := s.pushShadow()

	if sendErr != nil {
		return sendErr
	}
	if err := <-runErr; err != nil {
		return fmt.Errorf("fade: interrupted: %w", err)
	}
	return shadowErr
}
