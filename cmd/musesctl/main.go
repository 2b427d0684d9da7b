// cmd/musesctl/main.go
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tamzrod/muses-control/internal/mirror"
)

const usage = `usage:
  musesctl apply  <config>
  musesctl watch  [-every 5s] <config>
  musesctl fade   <config> <chip-id> <left|right> <attenuation>
  musesctl encode configure|gain|volume|mute [flags]
  musesctl decode [-no-color] <word>...`

func main() {
	// Bootstrap logger; apply/fade replace it with the configured one.
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Error().Err(err).Uint16("code", mirror.ErrorCode(err)).Str("cmd", os.Args[1]).Msg("failed")
		os.Exit(1)
	}
}

func run(sub string, args []string, stdout io.Writer) error {
	switch sub {
	case "apply":
		return runApply(args)
	case "watch":
		return runWatch(args)
	case "fade":
		return runFade(args)
	case "encode":
		return runEncode(args, stdout)
	case "decode":
		return runDecode(args, stdout)
	default:
		return fmt.Errorf("unknown command %q\n%s", sub, usage)
	}
}
