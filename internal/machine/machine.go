// Package machine wires the CPU, memory map, I/O router, FDC and keyboard
// into a frame-driven ZX Spectrum, the way
// newhook-6502/c64/c64/c64.go wires its CPU and chips together.
package machine

import (
	"fmt"
	"log"

	"github.com/davecgh/go-spew/spew"

	"github.com/eng2007/zxgo/internal/config"
	"github.com/eng2007/zxgo/internal/fdc"
	"github.com/eng2007/zxgo/internal/ioport"
	"github.com/eng2007/zxgo/internal/keyboard"
	"github.com/eng2007/zxgo/internal/memory"
	"github.com/eng2007/zxgo/internal/z80"
)

// CyclesPerFrame is the Pentagon/48K T-state budget for one 50Hz video
// frame, grounded on original_source/src/main.rs's CYCLES_PER_FRAME.
const CyclesPerFrame = 69888

// MaxInstructionsPerFrame bounds the number of Step calls in a single
// RunFrame call, grounded on original_source/src/main.rs's
// MAX_INSTRUCTIONS_PER_FRAME. Every Step (halted or not) consumes at least
// 4 T-states, so with CyclesPerFrame the cycle budget is reached first.
const MaxInstructionsPerFrame = 100000

// Machine is a complete ZX Spectrum 48K/128K/Pentagon 512K with the
// Beta-Disk/TR-DOS floppy interface.
type Machine struct {
	CPU      *z80.CPU
	Memory   *memory.Map
	Router   *ioport.Router
	FDC      *fdc.Controller
	Keyboard *keyboard.Matrix

	frameCounter uint64
}

// New builds a fully wired machine from a config. logger may be nil, in
// which case the FDC stays silent.
func New(cfg config.Config, logger *log.Logger) *Machine {
	memory512K := cfg.MemorySize == config.MemorySize512K
	mem := memory.New(memory512K)
	kbd := keyboard.NewMatrix()
	fd := fdc.New(logger)
	router := ioport.New(cfg, mem, kbd, fd)
	cpu := z80.NewCPU(mem, router)

	return &Machine{
		CPU:      cpu,
		Memory:   mem,
		Router:   router,
		FDC:      fd,
		Keyboard: kbd,
	}
}

// RunFrame executes one video frame's worth of instructions, then honors a
// single maskable interrupt, matching the once-per-frame interrupt timing
// in original_source/src/main.rs's loop.
func (m *Machine) RunFrame() {
	start := m.CPU.Cycles
	steps := 0
	for m.CPU.Cycles-start < CyclesPerFrame && steps < MaxInstructionsPerFrame {
		m.CPU.Step()
		steps++
	}
	m.CPU.RequestIRQ()
	m.frameCounter++
}

// Reset restores the CPU, memory paging and I/O latches to their power-on
// state, keeping any loaded ROMs and disk images in place.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Memory.Reset()
	m.Router.Reset()
	m.frameCounter = 0
}

// FrameCounter is the number of frames RunFrame has completed, used by
// internal/display's flash-phase timing.
func (m *Machine) FrameCounter() uint64 { return m.frameCounter }

// DumpState renders the full CPU/memory-paging state for debugging,
// grounded on oisee-z80-optimizer's reliance on go-spew-style deep dumps
// for CPU inspection in its test harness.
func (m *Machine) DumpState() string {
	return fmt.Sprintf("CPU:\n%s\nPaging: ROM=%d screenBank=%d slot3=%d trdosActive=%v\n",
		spew.Sdump(m.CPU), m.Memory.CurrentROM(), m.Memory.ScreenBank(), m.Memory.Slot3Bank(), m.Memory.TRDOSActive())
}
