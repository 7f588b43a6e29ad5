package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"go6502/mask"
)

// model is the bubbletea debugger, driving Step-based execution over the
// packed P register.
type model struct {
	cpu     *CPU
	program []byte

	offset uint16 // only for drawing the page table
	prevPC uint16
	err    error
}

// Init loads the program at offset and positions PC there.
func (m model) Init() tea.Cmd {
	m.cpu.Mem.LoadImage(m.program, m.offset)
	m.cpu.PC = m.offset
	return nil
}

// Update steps the CPU by one instruction per keypress.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			m.cpu.Step(false)
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page as a line, highlighting PC.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.cpu.Mem.Read(start + i)
		if start+i == m.cpu.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

// status renders registers and the NV1BDIZC flag row. mask.IsSet's
// 1-indexed, MSB-first addressing happens to line up exactly with that
// display order: I1 is bit 7 (N), I8 is bit 0 (C).
func (m model) status() string {
	var flags string
	for _, set := range []bool{
		mask.IsSet(m.cpu.P, mask.I1), // N
		mask.IsSet(m.cpu.P, mask.I2), // V
		mask.IsSet(m.cpu.P, mask.I3), // U
		mask.IsSet(m.cpu.P, mask.I4), // B
		mask.IsSet(m.cpu.P, mask.I5), // D
		mask.IsSet(m.cpu.P, mask.I6), // I
		mask.IsSet(m.cpu.P, mask.I7), // Z
		mask.IsSet(m.cpu.P, mask.I8), // C
	} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %x (%x)
 A: %x
 X: %x
 Y: %x
SP: %x
N V U B D I Z C
`,
		m.cpu.PC,
		m.prevPC,
		m.cpu.A,
		m.cpu.X,
		m.cpu.Y,
		m.cpu.SP,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := range 16 {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}

	offsets := []int{
		0, 16, 32, 48, 64,
		int(m.offset),
		int(m.offset + 16*1),
		int(m.offset + 16*2),
		int(m.offset + 16*3),
		int(m.offset + 16*4),
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(uint16(i)))
	}
	return strings.Join(pages, "\n")
}

// View renders the page table, the register/flag status, and a spew dump of
// the opcode about to execute.
func (m model) View() string {
	entry := opcodeTable[m.cpu.Mem.Read(m.cpu.PC)]
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(entry),
	)
}

// Debug loads program into memory at offset, then starts an interactive
// TUI for single-stepping it.
func Debug(c *CPU, program []byte, offset uint16) error {
	m, err := tea.NewProgram(model{
		cpu:     c,
		program: program,
		offset:  offset,
	}).Run()
	if err != nil {
		return err
	}
	x := m.(model)
	return x.err
}
