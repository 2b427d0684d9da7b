// internal/sequence/types.go
package sequence

import "github.com/tamzrod/muses-control/internal/muses"

// Step is one encoded command with a label for logs.
type Step struct {
	Name    string
	Command muses.Command
}

// Plan is the ordered power-up sequence for one chip.
type Plan struct {
	ChipID  string
	Address muses.ChipAddress
	Steps   []Step
}

// Sender is the exact contract Apply needs from a transport.
type Sender interface {
	Send(cmd muses.Command) error
}

// Recorder receives delivery outcomes. *mirror.Mirror implements it.
type Recorder interface {
	Record(cmd muses.Command)
	Fail(code uint16)
}
