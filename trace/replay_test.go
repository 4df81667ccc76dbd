package trace

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synacorvm/vm"
)

func newSteppedMachine(t *testing.T, program []vm.Word) *vm.Machine {
	t.Helper()
	m := vm.NewMachine(func() (string, error) { return "", nil }, nil)
	for i, w := range program {
		m.WriteMemory(vm.Word(i), w)
	}
	m.Running = true
	return m
}

func TestReplayModelMemoryWindowReadsFromPC(t *testing.T) {
	m := newSteppedMachine(t, []vm.Word{9, 4, 99, 0, 21})
	rec, err := m.Step()
	require.NoError(t, err)

	// rec.PC is the address the instruction was fetched from, not where
	// execution left off, so the window starts back at the add itself.
	model := replayModel{m: m, window: 2, last: rec}
	got := model.memoryWindow()
	assert.Contains(t, got, "00009")
	assert.Contains(t, got, "00004")
}

func TestReplayModelStatusIncludesOpcodeAndPC(t *testing.T) {
	m := newSteppedMachine(t, []vm.Word{21})
	rec, err := m.Step()
	require.NoError(t, err)

	model := replayModel{m: m, window: 1, last: rec}
	got := model.status()
	assert.Contains(t, got, "noop")
	assert.Contains(t, got, "00000")
}

func TestReplayModelViewShowsStepPromptAfterEmptyRet(t *testing.T) {
	m := newSteppedMachine(t, []vm.Word{18}) // ret with empty stack halts cleanly
	rec, err := m.Step()
	require.NoError(t, err)

	model := replayModel{m: m, last: rec}
	view := model.View()
	assert.Contains(t, view, "step")
}

func TestReplayModelUpdateQuitsOnQ(t *testing.T) {
	m := newSteppedMachine(t, []vm.Word{21})
	model := replayModel{m: m}
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
}
