// Package snapshot serializes and restores the full observable state of a
// vm.Machine — memory, stack, registers, program counter, and pending
// input — as a self-describing YAML document, so a run can be paused and
// later resumed bit-exactly.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"synacorvm/vm"
)

// canned is the byte sequence preloaded into a restored machine's input
// buffer: a harmless "look" command that re-issues the current room's
// description, so the player immediately sees where they ended up.
var canned = []byte("look\n")

// document is the on-disk shape of a Snapshot. Its field names double as
// the YAML keys the external interface (§6 of the design) promises:
// registers, memory, stack, pc, inputs.
type document struct {
	Registers [vm.NumRegisters]vm.Word `yaml:"registers"`
	Memory    []vm.Word                `yaml:"memory"`
	Stack     []vm.Word                `yaml:"stack"`
	PC        vm.Word                  `yaml:"pc"`
	Inputs    []byte                   `yaml:"inputs"`
}

// Save writes host's current state to path as a YAML document. The state
// captured is whatever host.State() returns at the moment of the call —
// callers are expected to only call Save when the machine is quiescent
// (between instructions), matching the concurrency model's snapshot
// guarantee.
func Save(path string, host vm.Host) error {
	s := host.State()
	doc := document{
		Registers: s.Registers,
		Memory:    s.Memory,
		Stack:     s.Stack,
		PC:        s.PC,
		Inputs:    s.Inputs,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return &vm.IOError{Path: path, Err: err}
	}
	return nil
}

// Load reads the YAML document at path and returns it as a vm.State,
// exactly as it was saved — this is the form used by the bit-exact
// save-then-load round trip. Restore, below, is the gameplay-facing
// convenience that additionally overrides the input buffer.
func Load(path string) (vm.State, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return vm.State{}, &vm.IOError{Path: path, Err: err}
	}
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return vm.State{}, fmt.Errorf("snapshot: corrupt document at %q: %w", path, err)
	}
	return vm.State{
		Registers: doc.Registers,
		Memory:    doc.Memory,
		Stack:     doc.Stack,
		PC:        doc.PC,
		Inputs:    doc.Inputs,
	}, nil
}

// Restore loads path and installs it on host, replacing whatever the
// snapshot recorded as pending input with the canned "look" line — a
// convenience so the player immediately sees where they ended up. If path
// does not exist or cannot be parsed, Restore returns the underlying error
// unchanged so the caller can decide to fall back to loading a fresh image
// (§7).
func Restore(path string, host vm.Host) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	s.Inputs = append([]byte(nil), canned...)
	host.Restore(s)
	return nil
}
