package vm

import (
	"bufio"
	"io"
	"os"
)

// A Machine is the complete, single-threaded state of one running program:
// its registers, memory, stack, program counter, run flag, and pending
// input. A Machine exclusively owns all of this state; nothing outside the
// vm package mutates it directly — collaborators go through the Host
// interface below.
type Machine struct {
	Registers [NumRegisters]Word
	Memory    []Word
	Stack     []Word
	PC        Word
	Running   bool

	Input  *InputChannel
	output *bufio.Writer
}

// NewMachine returns an empty, unloaded Machine with its input channel wired
// to the given host-line reader and its output wired to os.Stdout. A
// typical caller immediately follows this with Load or Restore.
func NewMachine(readLine HostLineReader, meta MetaHandler) *Machine {
	return &Machine{
		Input:  NewInputChannel(readLine, meta),
		output: bufio.NewWriter(os.Stdout),
	}
}

// SetOutput redirects character output to w instead of os.Stdout. Tests use
// this to capture what a program prints.
func (m *Machine) SetOutput(w io.Writer) { m.output = bufio.NewWriter(w) }

// FlushOutput flushes any buffered output bytes to the underlying writer.
// Step calls this after every out instruction whose character is a newline,
// and Step calls it once more on halt, so output is never left stranded in
// the buffer after a run.
func (m *Machine) FlushOutput() error { return m.output.Flush() }

// Halt clears the run flag and resets the program counter, matching the
// semantics of the halt opcode. Meta-commands that terminate the VM call
// this directly rather than re-deriving opcode 0.
func (m *Machine) Halt() {
	m.PC = 0
	m.Running = false
}

// PushInput enqueues bytes as if they had arrived from the host terminal,
// without going through the meta-command sentinel check. Auxiliary solvers
// use this to drive the VM's input opcode.
func (m *Machine) PushInput(s string) {
	m.Input.pending = append(m.Input.pending, []byte(s)...)
}

// Register returns the current contents of register i.
func (m *Machine) Register(i int) Word { return m.Registers[i] }

// SetRegister overwrites register i.
func (m *Machine) SetRegister(i int, v Word) { m.Registers[i] = v }

// ReadMemory returns the word stored at addr, growing memory with zeros if
// addr falls past the currently loaded image.
func (m *Machine) ReadMemory(addr Word) Word {
	if int(addr) >= len(m.Memory) {
		return 0
	}
	return m.Memory[addr]
}

// WriteMemory stores v at addr, growing memory with zeros as needed.
func (m *Machine) WriteMemory(addr Word, v Word) {
	if int(addr) >= len(m.Memory) {
		grown := make([]Word, int(addr)+1)
		copy(grown, m.Memory)
		m.Memory = grown
	}
	m.Memory[addr] = v
}

// Host is the narrow interface through which every collaborator outside the
// vm package — the meta-command dispatcher, the auxiliary solvers, the
// tracer's replay mode — observes and drives a Machine. None of them hold a
// *Machine directly, so the core's internal layout can change without
// touching a single collaborator.
type Host interface {
	Halt()
	PushInput(s string)
	Register(i int) Word
	SetRegister(i int, v Word)
	ReadMemory(addr Word) Word
	WriteMemory(addr Word, v Word)
	State() State
	Restore(State)
}

// State is an immutable-by-convention, by-value snapshot of everything a
// Machine owns: memory, stack, registers, program counter, and pending
// input. It is the unit the snapshot package serializes; the vm package
// itself never writes it to disk.
type State struct {
	Registers [NumRegisters]Word
	Memory    []Word
	Stack     []Word
	PC        Word
	Inputs    []byte
}

// State captures the Machine's current contents as an independent copy.
func (m *Machine) State() State {
	s := State{
		Registers: m.Registers,
		Memory:    append([]Word(nil), m.Memory...),
		Stack:     append([]Word(nil), m.Stack...),
		PC:        m.PC,
		Inputs:    append([]byte(nil), m.Input.pending...),
	}
	return s
}

// Restore replaces the Machine's state with an independent copy of s and
// marks the run flag running again. Restoring never preserves the prior
// pending input: callers that want to seed input (e.g. the snapshot
// package's canned "look" line) do so by constructing s.Inputs themselves.
func (m *Machine) Restore(s State) {
	m.Registers = s.Registers
	m.Memory = append([]Word(nil), s.Memory...)
	m.Stack = append([]Word(nil), s.Stack...)
	m.PC = s.PC
	m.Input.pending = append([]byte(nil), s.Inputs...)
	m.Running = true
}
