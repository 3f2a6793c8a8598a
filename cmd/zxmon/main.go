package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eng2007/zxgo/internal/config"
	"github.com/eng2007/zxgo/internal/machine"
	"github.com/eng2007/zxgo/internal/snapshot"
	"github.com/eng2007/zxgo/internal/trd"
	"github.com/eng2007/zxgo/internal/z80"
)

type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(20*time.Millisecond, func(t time.Time) tea.Msg {
		return stepTick{}
	})
}

// regState is a snapshot of the registers shown in the panel, used to
// highlight anything that changed since the last step.
type regState struct {
	AF, BC, DE, HL, IX, IY, SP, PC uint16
}

func snapshotRegs(c *z80.CPU) regState {
	return regState{c.AF, c.BC, c.DE, c.HL, c.IX, c.IY, c.SP, c.PC}
}

// Monitor is the TUI register/memory/FDC-status inspector, styled after
// newhook-6502/monitor/main.go's bubbletea register-and-memory panels.
type Monitor struct {
	m *machine.Machine

	paused        bool
	width, height int

	memoryAddress uint16
	activePane    string // "registers" or "memory"
	gotoInput     textinput.Model
	showingGoto   bool

	last        regState
	lastMemory  [64]uint8
	breakpoints map[uint16]bool
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	regStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(34)

	memoryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(50)

	fdcStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(34)

	changedStyle = lipgloss.NewStyle().Foreground(changed).Bold(true)
)

func NewMonitor(m *machine.Machine) *Monitor {
	ti := textinput.New()
	ti.Placeholder = "Enter hex address (e.g. 4000)"
	ti.CharLimit = 4
	ti.Width = 6

	mon := &Monitor{
		m:             m,
		paused:        true,
		activePane:    "registers",
		gotoInput:     ti,
		breakpoints:   make(map[uint16]bool),
		last:          snapshotRegs(m.CPU),
	}
	mon.captureMemoryState()
	return mon
}

func (m *Monitor) captureMemoryState() {
	addr := m.memoryAddress
	for i := 0; i < 64; i++ {
		m.lastMemory[i] = m.m.Memory.Read(addr + uint16(i))
	}
}

func (m Monitor) Init() tea.Cmd { return nil }

func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.paused || m.breakpoints[m.m.CPU.PC] {
			m.paused = true
			return m, nil
		}
		m.last = snapshotRegs(m.m.CPU)
		m.captureMemoryState()
		m.m.CPU.Step()
		return m, doStep()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		if m.showingGoto {
			switch msg.Type {
			case tea.KeyEnter:
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					m.memoryAddress = uint16(addr)
					m.captureMemoryState()
				}
				m.showingGoto = false
				return m, nil
			case tea.KeyEsc:
				m.showingGoto = false
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "g":
			m.showingGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		case "q", "ctrl+c":
			return m, tea.Quit
		case "s":
			if m.paused {
				m.last = snapshotRegs(m.m.CPU)
				m.captureMemoryState()
				m.m.CPU.Step()
			}
		case "b":
			addr := m.m.CPU.PC
			if m.breakpoints[addr] {
				delete(m.breakpoints, addr)
			} else {
				m.breakpoints[addr] = true
			}
		case "p":
			m.paused = !m.paused
			if !m.paused {
				return m, doStep()
			}
		case "tab":
			if m.activePane == "registers" {
				m.activePane = "memory"
			} else {
				m.activePane = "registers"
			}
		case "up":
			if m.memoryAddress >= 8 {
				m.memoryAddress -= 8
				m.captureMemoryState()
			}
		case "down":
			if m.memoryAddress <= 0xFFF8 {
				m.memoryAddress += 8
				m.captureMemoryState()
			}
		case "pgup":
			if m.memoryAddress >= 64 {
				m.memoryAddress -= 64
			} else {
				m.memoryAddress = 0
			}
			m.captureMemoryState()
		case "pgdown":
			if m.memoryAddress <= 0xFFC0 {
				m.memoryAddress += 64
			} else {
				m.memoryAddress = 0xFFC0
			}
			m.captureMemoryState()
		}
	}
	return m, nil
}

func (m Monitor) formatReg16(name string, current, last uint16) string {
	value := fmt.Sprintf("%-4s $%04X", name, current)
	if current != last {
		return changedStyle.Render(value)
	}
	return value
}

func (m Monitor) formatFlags() string {
	flags := []struct {
		name string
		mask uint8
	}{
		{"S", z80.FlagS}, {"Z", z80.FlagZ}, {"H", z80.FlagH},
		{"PV", z80.FlagPV}, {"N", z80.FlagN}, {"C", z80.FlagC},
	}
	var b strings.Builder
	f := m.m.CPU.F()
	for _, fl := range flags {
		if f&fl.mask != 0 {
			b.WriteString(fl.name + " ")
		} else {
			b.WriteString("- ")
		}
	}
	return b.String()
}

func (m Monitor) registerPanel() string {
	c := m.m.CPU
	var b strings.Builder
	b.WriteString(titleStyle.Render("Registers") + "\n")
	b.WriteString(m.formatReg16("AF", c.AF, m.last.AF) + "  " + m.formatReg16("AF'", c.AFPrime, c.AFPrime) + "\n")
	b.WriteString(m.formatReg16("BC", c.BC, m.last.BC) + "  " + m.formatReg16("DE", c.DE, m.last.DE) + "\n")
	b.WriteString(m.formatReg16("HL", c.HL, m.last.HL) + "  " + m.formatReg16("IX", c.IX, m.last.IX) + "\n")
	b.WriteString(m.formatReg16("IY", c.IY, m.last.IY) + "  " + m.formatReg16("SP", c.SP, m.last.SP) + "\n")
	b.WriteString(m.formatReg16("PC", c.PC, m.last.PC) + "\n")
	b.WriteString(fmt.Sprintf("I:$%02X R:$%02X IM%d IFF1:%v\n", c.I, c.R, c.IM, c.IFF1))
	b.WriteString("Flags: " + m.formatFlags() + "\n")
	if m.paused {
		b.WriteString("\n[paused]")
	} else {
		b.WriteString("\n[running]")
	}
	return regStyle.Render(b.String())
}

func (m Monitor) memoryPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Memory @ $%04X", m.memoryAddress)) + "\n")
	addr := m.memoryAddress
	for row := 0; row < 8; row++ {
		b.WriteString(fmt.Sprintf("$%04X: ", addr))
		for col := 0; col < 8; col++ {
			offset := row*8 + col
			value := m.m.Memory.Read(addr + uint16(col))
			if value != m.lastMemory[offset] {
				b.WriteString(changedStyle.Render(fmt.Sprintf("%02X ", value)))
			} else {
				b.WriteString(fmt.Sprintf("%02X ", value))
			}
		}
		b.WriteString(" | ")
		for col := 0; col < 8; col++ {
			value := m.m.Memory.Read(addr + uint16(col))
			if value >= 32 && value <= 126 {
				b.WriteString(string(value))
			} else {
				b.WriteString(".")
			}
		}
		b.WriteString("\n")
		addr += 8
	}
	if m.showingGoto {
		b.WriteString("\nGoto: " + m.gotoInput.View())
	}
	return memoryStyle.Render(b.String())
}

func (m Monitor) fdcPanel() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FDC") + "\n")
	b.WriteString(fmt.Sprintf("DRQ:%v  INTRQ:%v\n", m.m.FDC.IsDRQ(), m.m.FDC.IsINTRQ()))
	b.WriteString(fmt.Sprintf("TR-DOS active: %v\n", m.m.Memory.TRDOSActive()))
	b.WriteString(fmt.Sprintf("ROM: %d  screen bank: %d  slot3: %d\n",
		m.m.Memory.CurrentROM(), m.m.Memory.ScreenBank(), m.m.Memory.Slot3Bank()))
	b.WriteString("\ns: step  p: run/pause  b: breakpoint  g: goto  tab: pane  q: quit")
	return fdcStyle.Render(b.String())
}

func (m Monitor) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.registerPanel(), m.memoryPanel())
	return lipgloss.JoinVertical(lipgloss.Left, top, m.fdcPanel())
}

func main() {
	romPath := flag.String("rom", "", "Main ROM image")
	trdosROMPath := flag.String("trdos-rom", "", "TR-DOS overlay ROM image")
	snapshotPath := flag.String("snapshot", "", "Load a .sna or .z80 snapshot at startup")
	diskPath := flag.String("disk", "", "TRD disk image to mount")
	flag.Parse()

	cfg := config.Default()
	m := machine.New(cfg, nil)

	do := func() error {
		if *romPath != "" {
			if err := snapshot.LoadROM(*romPath, m.Memory); err != nil {
				return err
			}
		}
		if *trdosROMPath != "" {
			if err := snapshot.LoadTRDOSROM(*trdosROMPath, m.Memory); err != nil {
				return err
			}
		}
		if *diskPath != "" {
			disk, err := trd.Load(*diskPath)
			if err != nil {
				return err
			}
			m.FDC.LoadDisk(disk)
		}
		if *snapshotPath != "" {
			data, err := os.ReadFile(*snapshotPath)
			if err != nil {
				return err
			}
			if strings.HasSuffix(strings.ToLower(*snapshotPath), ".z80") {
				err = snapshot.LoadZ80(data, m.CPU, m.Memory)
			} else {
				err = snapshot.LoadSNA(data, m.CPU, m.Memory)
			}
			if err != nil {
				return err
			}
		}

		p := tea.NewProgram(NewMonitor(m))
		_, err := p.Run()
		return err
	}
	if err := do(); err != nil {
		fmt.Fprintln(os.Stderr, "zxmon:", err)
		os.Exit(1)
	}
}
