// Package trace formats the per-instruction records the run loop's
// TraceFunc hook receives: an append-only human-readable log (Recorder),
// and an interactive terminal viewer (Replay) built on the same
// bubbletea/lipgloss/spew stack the teacher repo uses for its own
// instruction-level debugger.
package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"synacorvm/vm"
)

// Recorder appends one line per executed instruction to an underlying
// writer: opcode name, PC-at-fetch, operand words, register file, stack
// depth, and the tail of the stack. It never rewrites lines already
// written during a run — only Clear discards history, and only when the
// sink is a real trace file rather than stdout or an in-memory buffer.
type Recorder struct {
	w    io.Writer
	file *os.File // non-nil only when the sink is a dedicated trace file
}

// NewRecorder wraps w as a trace sink. Clear is a no-op for a Recorder
// built this way, since an arbitrary io.Writer (stdout, a test buffer) has
// no file to truncate.
func NewRecorder(w io.Writer) *Recorder { return &Recorder{w: w} }

// NewFileRecorder opens path for appending and wraps it as a trace sink
// whose Clear method actually truncates the file.
func NewFileRecorder(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, &vm.IOError{Path: path, Err: err}
	}
	return &Recorder{w: f, file: f}, nil
}

// Observe is a vm.TraceFunc: it formats rec as one line and writes it.
// Errors writing to the underlying sink are swallowed rather than
// propagated, matching the hook's signature (vm.TraceFunc returns
// nothing) — a tracer must never be able to abort the run it's observing.
func (r *Recorder) Observe(rec vm.TraceRecord) {
	fmt.Fprintln(r.w, formatLine(rec))
}

// Clear truncates the trace log back to empty, so the next Observe starts
// the session's trace file over from byte zero. It does nothing when the
// Recorder isn't backed by a dedicated file (NewRecorder rather than
// NewFileRecorder) — there is no history to discard from stdout.
func (r *Recorder) Clear() error {
	if r.file == nil {
		return nil
	}
	if err := r.file.Truncate(0); err != nil {
		return &vm.IOError{Path: r.file.Name(), Err: err}
	}
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return &vm.IOError{Path: r.file.Name(), Err: err}
	}
	return nil
}

// Close releases the underlying file, if any. Safe to call on a Recorder
// built from NewRecorder, where it is a no-op.
func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

func formatLine(rec vm.TraceRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%05d %-5s", rec.PC, rec.Opcode.Name)
	for _, o := range rec.Operands {
		fmt.Fprintf(&b, " %d", o)
	}
	fmt.Fprintf(&b, " | regs=%v stack_depth=%d stack_tail=%v", rec.Registers, rec.StackDepth, rec.StackTail)
	return b.String()
}
