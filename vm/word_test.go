package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModularAdd(t *testing.T) {
	for _, tc := range []struct{ a, b Word }{
		{0, 0}, {1, 1}, {32767, 1}, {32767, 32767}, {100, 32700},
	} {
		got := AddMod(tc.a, tc.b)
		want := Word((uint32(tc.a) + uint32(tc.b)) % uint32(WordSize))
		assert.Equal(t, want, got)
		assert.True(t, got < WordSize, "add result must stay in 0..32767")
	}
}

func TestModularMult(t *testing.T) {
	for _, tc := range []struct{ a, b Word }{
		{0, 0}, {1, 32767}, {32767, 32767}, {182, 9000},
	} {
		got := MulMod(tc.a, tc.b)
		want := Word((uint32(tc.a) * uint32(tc.b)) % uint32(WordSize))
		assert.Equal(t, want, got)
		assert.True(t, got < WordSize, "mult result must stay in 0..32767")
	}
}

func TestNot15XorInputIsAllFifteenBits(t *testing.T) {
	for _, w := range []Word{0, 1, 42, 16384, 32767} {
		assert.Equal(t, Word(32767), Not15(w)^w)
		assert.True(t, Not15(w) < WordSize)
	}
}

func TestOperandResolution(t *testing.T) {
	m := &Machine{}
	for k := 0; k < NumRegisters; k++ {
		m.Registers[k] = Word(1000 + k)
	}
	for k := 0; k < NumRegisters; k++ {
		operand := WordSize + Word(k)
		assert.Equal(t, m.Registers[k], m.Read(operand))
	}
	// a literal in 0..32767 resolves to itself
	assert.Equal(t, Word(55), m.Read(55))
}

func TestWriteDestReducesModEight(t *testing.T) {
	assert.Equal(t, 0, WriteDest(WordSize))
	assert.Equal(t, 3, WriteDest(WordSize+3))
	assert.Equal(t, 7, WriteDest(WordSize+7))
}

func TestArithmeticClosure(t *testing.T) {
	samples := []Word{0, 1, 255, 16384, 32767}
	for _, rb := range samples {
		for _, rc := range samples {
			assert.True(t, AddMod(rb, rc) < WordSize)
			assert.True(t, MulMod(rb, rc) < WordSize)
			if rc != 0 {
				assert.True(t, rb%rc < WordSize)
			}
			assert.True(t, (rb&rc) < WordSize)
			assert.True(t, (rb|rc) < WordSize)
			assert.True(t, Not15(rb) < WordSize)
		}
	}
}
