package trace

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"synacorvm/vm"
)

// Stepper is the slice of *vm.Machine the replay viewer needs: the Host
// accessors for rendering state, plus Step to advance one instruction at a
// time. Keeping this as its own small interface (rather than depending on
// *vm.Machine concretely) is what lets the viewer be driven in tests
// without a real loaded image.
type Stepper interface {
	vm.Host
	Step() (vm.TraceRecord, error)
}

type replayModel struct {
	m      Stepper
	window int // how many words of memory to show per page
	last   vm.TraceRecord
	err    error
	done   bool
}

func (m replayModel) Init() tea.Cmd { return nil }

func (m replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "n":
			if m.done {
				return m, nil
			}
			rec, err := m.m.Step()
			if err != nil {
				m.err = err
				m.done = true
				return m, nil
			}
			m.last = rec
		}
	}
	return m, nil
}

func (m replayModel) memoryWindow() string {
	var b strings.Builder
	start := m.last.PC
	for i := 0; i < m.window; i++ {
		addr := int(start) + i
		b.WriteString(fmt.Sprintf(" %05d", m.m.ReadMemory(vm.Word(addr))))
	}
	return b.String()
}

func (m replayModel) status() string {
	return fmt.Sprintf(
		"PC: %05d\nop: %-5s\nregs: %v\n",
		m.last.PC, m.last.Opcode.Name, m.last.Registers,
	)
}

func (m replayModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("halted: %v\n(q to quit)\n", m.err)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.memoryWindow(),
		m.status(),
		spew.Sdump(m.last.Operands),
		"(space/n: step, q: quit)",
	)
}

// Replay launches an interactive terminal viewer over m: pressing space or
// "n" steps exactly one instruction and redraws the decoded opcode,
// register file, and a window of memory starting at the address the last
// executed instruction was fetched from.
func Replay(m Stepper) error {
	_, err := tea.NewProgram(replayModel{m: m, window: 8}).Run()
	return err
}
