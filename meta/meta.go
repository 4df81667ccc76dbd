// Package meta interprets the sentinel-prefixed host lines the input
// channel routes out of the normal program-input stream. It never reaches
// into vm.Machine directly — every command is expressed purely in terms of
// vm.Host, snapshot.Save/Restore, and the solve package.
package meta

import (
	"fmt"

	"synacorvm/snapshot"
	"synacorvm/solve"
	"synacorvm/vm"
)

// UnknownCommandError is returned (never as a fatal error — see §7 of the
// design) when a sentinel line's token doesn't match any recognized
// command.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("meta: unrecognized command %q", e.Token)
}

// Options configures Dispatch with the collaborators it needs beyond the
// Host interface: where to save/restore snapshots, where the fresh image
// lives, and the tracer toggles a dispatcher mutates. No recognized command
// reads ImagePath.
type Options struct {
	SnapshotPath string
	ImagePath    string
	Trace        *TraceToggles
}

// TraceToggles holds the three independent debug bits the original
// implementation exposes as meta-commands: whether tracing is on at all,
// whether every instruction additionally prints as it executes, and a
// request to truncate the trace log.
type TraceToggles struct {
	Enabled bool
	Print   bool
	Clear   func() error
}

// Dispatch interprets line (already stripped of its leading sentinel
// character) against host and opts. An unrecognized token returns
// UnknownCommandError; every other error is a snapshot or solver failure
// that the caller should report but that must not abort the running
// machine.
func Dispatch(host vm.Host, opts Options, line string) error {
	switch line {

	case "save":
		return snapshot.Save(opts.SnapshotPath, host)

	case "quit":
		if err := snapshot.Save(opts.SnapshotPath, host); err != nil {
			return err
		}
		host.Halt()
		return nil

	case "force-quit":
		host.Halt()
		return nil

	case "reload-save":
		if err := snapshot.Restore(opts.SnapshotPath, host); err != nil {
			return err
		}
		return nil

	case "toggle-trace":
		if opts.Trace != nil {
			opts.Trace.Enabled = !opts.Trace.Enabled
		}
		return nil

	case "toggle-print":
		if opts.Trace != nil {
			opts.Trace.Print = !opts.Trace.Print
		}
		return nil

	case "clear-trace":
		if opts.Trace != nil && opts.Trace.Clear != nil {
			return opts.Trace.Clear()
		}
		return nil

	case "solve-coins":
		solve.Coins(host)
		return nil

	case "solve-path":
		solve.Path(host)
		return nil

	case "solve-teleport":
		v, ok := solve.TeleportRegister(solve.DefaultTarget)
		if ok {
			host.SetRegister(7, vm.Word(v))
		}
		return nil

	default:
		return &UnknownCommandError{Token: line}
	}
}
