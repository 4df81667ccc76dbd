package vm

import "fmt"

// TraceRecord is the immutable, by-value record the run loop hands to a
// TraceFunc after executing one instruction. It is never a view onto live
// Machine state — register and stack contents are copied — so a tracer can
// hold onto a TraceRecord across the next Step without it changing under it.
type TraceRecord struct {
	Opcode     Opcode
	PC         Word // address of the opcode word, before decoding
	Operands   []Word
	Registers  [NumRegisters]Word
	StackDepth int
	StackTail  []Word
}

// maxStackTail bounds how many of the topmost stack words a TraceRecord
// copies, so tracing a program with a deep stack doesn't itself become the
// dominant cost of tracing.
const maxStackTail = 8

// Step executes exactly one instruction: it fetches the opcode word at PC,
// decodes it (failing on an unknown opcode), advances PC past the opcode
// and its operands, applies the opcode's semantics, and returns a
// TraceRecord describing what just happened. Step never advances past a
// blocking call to the input channel — a program that calls `in` and the
// host hasn't supplied a line yet simply blocks here, exactly once, exactly
// as architected.
func (m *Machine) Step() (TraceRecord, error) {
	fetchPC := m.PC

	w, op, err := decodeOpcode(m.Memory, m.PC)
	if err != nil {
		return TraceRecord{}, err
	}
	m.PC++

	operands := make([]Word, op.Arity)
	for i := range operands {
		operands[i] = m.ReadMemory(m.PC)
		m.PC++
	}

	if err := m.apply(w, operands); err != nil {
		return TraceRecord{}, fmt.Errorf("vm: %s (opcode %d) at address %d: %w", op.Name, w, fetchPC, err)
	}

	return m.record(op, fetchPC, operands), nil
}

func (m *Machine) record(op Opcode, fetchPC Word, operands []Word) TraceRecord {
	tail := m.Stack
	if len(tail) > maxStackTail {
		tail = tail[len(tail)-maxStackTail:]
	}
	return TraceRecord{
		Opcode:     op,
		PC:         fetchPC,
		Operands:   append([]Word(nil), operands...),
		Registers:  m.Registers,
		StackDepth: len(m.Stack),
		StackTail:  append([]Word(nil), tail...),
	}
}

// apply performs the semantics of opcode w given its already-read operands.
// a, b, c follow the distilled spec's naming: a is the first operand (often
// a write destination), rb and rc are the resolved (register-or-literal)
// values of the second and third operands.
func (m *Machine) apply(w Word, ops []Word) error {
	switch w {

	case OpHalt:
		m.Halt()
		return m.FlushOutput()

	case OpSet:
		m.Registers[WriteDest(ops[0])] = m.Read(ops[1])

	case OpPush:
		m.Stack = append(m.Stack, m.Read(ops[0]))

	case OpPop:
		v, err := m.pop()
		if err != nil {
			return err
		}
		m.Registers[WriteDest(ops[0])] = v

	case OpEq:
		m.Registers[WriteDest(ops[0])] = boolWord(m.Read(ops[1]) == m.Read(ops[2]))

	case OpGt:
		m.Registers[WriteDest(ops[0])] = boolWord(m.Read(ops[1]) > m.Read(ops[2]))

	case OpJmp:
		m.PC = m.Read(ops[0])

	case OpJt:
		if m.Read(ops[0]) != 0 {
			m.PC = m.Read(ops[1])
		}

	case OpJf:
		if m.Read(ops[0]) == 0 {
			m.PC = m.Read(ops[1])
		}

	case OpAdd:
		m.Registers[WriteDest(ops[0])] = AddMod(m.Read(ops[1]), m.Read(ops[2]))

	case OpMult:
		m.Registers[WriteDest(ops[0])] = MulMod(m.Read(ops[1]), m.Read(ops[2]))

	case OpMod:
		m.Registers[WriteDest(ops[0])] = m.Read(ops[1]) % m.Read(ops[2])

	case OpAnd:
		m.Registers[WriteDest(ops[0])] = m.Read(ops[1]) & m.Read(ops[2])

	case OpOr:
		m.Registers[WriteDest(ops[0])] = m.Read(ops[1]) | m.Read(ops[2])

	case OpNot:
		m.Registers[WriteDest(ops[0])] = Not15(m.Read(ops[1]))

	case OpRmem:
		m.Registers[WriteDest(ops[0])] = m.ReadMemory(m.Read(ops[1]))

	case OpWmem:
		m.WriteMemory(m.Read(ops[0]), m.Read(ops[1]))

	case OpCall:
		target := m.Read(ops[0])
		m.Stack = append(m.Stack, m.PC)
		m.PC = target

	case OpRet:
		v, err := m.pop()
		if err != nil {
			// An empty stack on ret is not an error: it terminates the
			// machine cleanly, distinct in origin from halt but not in
			// effect.
			m.Halt()
			return m.FlushOutput()
		}
		m.PC = v

	case OpOut:
		return m.writeChar(rune(m.Read(ops[0])))

	case OpIn:
		b, err := m.Input.Next()
		if err != nil {
			return err
		}
		m.Registers[WriteDest(ops[0])] = Word(b)

	case OpNoop:
		// nothing

	}
	return nil
}

func (m *Machine) pop() (Word, error) {
	if len(m.Stack) == 0 {
		return 0, ErrEmptyStack
	}
	v := m.Stack[len(m.Stack)-1]
	m.Stack = m.Stack[:len(m.Stack)-1]
	return v, nil
}

func (m *Machine) writeChar(r rune) error {
	if _, err := m.output.WriteRune(r); err != nil {
		return err
	}
	if r == '\n' {
		return m.output.Flush()
	}
	return nil
}

func boolWord(b bool) Word {
	if b {
		return 1
	}
	return 0
}
