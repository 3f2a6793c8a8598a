// Package z80 implements a cycle-accounted Z80 instruction-set interpreter:
// the documented and undocumented flag behavior, CB/ED/DD/FD/DDCB/FDCB
// opcode prefixes, block instructions, and maskable/non-maskable interrupt
// entry of the CPU found in ZX Spectrum-family machines.
package z80

import "fmt"

// MemoryAccessor is the CPU's non-owning view of the machine's address
// space. The CPU never owns memory; the frame driver supplies an
// implementation (see internal/memory.Map) for the CPU's lifetime.
type MemoryAccessor interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
	ReadWord(addr uint16) uint16
	WriteWord(addr uint16, v uint16)

	// TRDOSActive and DisableTRDOS let RET/RETN/RETI auto-exit the TR-DOS
	// overlay ROM when control returns to an address at or above 0x4000
	// (spec §4.3/§4.4). Activation is decided on the memory side, through
	// MaybeActivateOverlay below.
	TRDOSActive() bool
	DisableTRDOS()

	// MaybeActivateOverlay is consulted on every PC-driven fetch so the
	// memory map can auto-activate the TR-DOS overlay ROM when execution
	// enters its trap window (spec §4.3).
	MaybeActivateOverlay(pc uint16)
}

// PortAccessor is the CPU's non-owning view of the I/O address space.
type PortAccessor interface {
	In(port uint16) uint8
	Out(port uint16, v uint8)
}

// indexContext parameterizes the helpers (indexHL, hlAddr, indexHigh,
// indexLow) so that the DD- and FD-prefixed forms share one curated opcode
// table (opcodes_index.go) and one DDCB/FDCB decoder: under idxIX/idxIY,
// "(HL)" becomes "(IX+d)"/"(IY+d)" and the H/L halves become the index
// register's halves. The unprefixed table (opcodes.go) addresses HL
// directly. See SPEC_FULL.md §4.2 / spec.md §9.
type indexContext uint8

const (
	idxNone indexContext = iota
	idxIX
	idxIY
)

// CPU holds Z80 register state and non-owning references to memory and I/O.
type CPU struct {
	AF, BC, DE, HL             uint16
	AFPrime, BCPrime, DEPrime, HLPrime uint16
	IX, IY                     uint16
	SP, PC                     uint16
	I, R                       uint8
	IFF1, IFF2                 bool
	IM                         uint8
	Halted                     bool
	Cycles                     uint64

	Mem MemoryAccessor
	IO  PortAccessor

	idx indexContext // active index context for the instruction being decoded
	disp int8        // displacement fetched for (IX+d)/(IY+d), valid when idx != idxNone
}

// NewCPU constructs a CPU wired to the given memory and I/O, already reset.
func NewCPU(mem MemoryAccessor, io PortAccessor) *CPU {
	c := &CPU{Mem: mem, IO: io}
	c.Reset()
	return c
}

// Reset restores the power-on/reset register state (spec §3). Shadow
// registers are zeroed on cold reset, not merely left alone.
func (c *CPU) Reset() {
	c.AF = 0xFFFF
	c.BC, c.DE, c.HL = 0, 0, 0
	c.AFPrime, c.BCPrime, c.DEPrime, c.HLPrime = 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.SP = 0xFFFF
	c.PC = 0
	c.I, c.R = 0, 0
	c.IFF1, c.IFF2 = false, false
	c.IM = 0
	c.Halted = false
}

// Register half accessors (big-endian within the pair).
func (c *CPU) A() uint8 { return uint8(c.AF >> 8) }
func (c *CPU) F() uint8 { return uint8(c.AF) }
func (c *CPU) B() uint8 { return uint8(c.BC >> 8) }
func (c *CPU) Cc() uint8 { return uint8(c.BC) }
func (c *CPU) D() uint8 { return uint8(c.DE >> 8) }
func (c *CPU) E() uint8 { return uint8(c.DE) }
func (c *CPU) H() uint8 { return uint8(c.HL >> 8) }
func (c *CPU) L() uint8 { return uint8(c.HL) }

func (c *CPU) SetA(v uint8) { c.AF = (c.AF & 0x00FF) | uint16(v)<<8 }
func (c *CPU) SetF(v uint8) { c.AF = (c.AF & 0xFF00) | uint16(v) }
func (c *CPU) SetB(v uint8) { c.BC = (c.BC & 0x00FF) | uint16(v)<<8 }
func (c *CPU) SetC(v uint8) { c.BC = (c.BC & 0xFF00) | uint16(v) }
func (c *CPU) SetD(v uint8) { c.DE = (c.DE & 0x00FF) | uint16(v)<<8 }
func (c *CPU) SetE(v uint8) { c.DE = (c.DE & 0xFF00) | uint16(v) }
func (c *CPU) SetH(v uint8) { c.HL = (c.HL & 0x00FF) | uint16(v)<<8 }
func (c *CPU) SetL(v uint8) { c.HL = (c.HL & 0xFF00) | uint16(v) }

func (c *CPU) flag(mask uint8) bool { return c.F()&mask != 0 }
func (c *CPU) setFlag(mask uint8, v bool) {
	if v {
		c.SetF(c.F() | mask)
	} else {
		c.SetF(c.F() &^ mask)
	}
}

// indexHL returns the 16-bit value the current index context substitutes
// for HL: HL itself, or IX/IY.
func (c *CPU) indexHL() uint16 {
	switch c.idx {
	case idxIX:
		return c.IX
	case idxIY:
		return c.IY
	default:
		return c.HL
	}
}

func (c *CPU) setIndexHL(v uint16) {
	switch c.idx {
	case idxIX:
		c.IX = v
	case idxIY:
		c.IY = v
	default:
		c.HL = v
	}
}

// indexHigh/indexLow read/write the H/L halves under the active index
// context (IXH/IXL, IYH/IYL, or plain H/L).
func (c *CPU) indexHigh() uint8 { return uint8(c.indexHL() >> 8) }
func (c *CPU) indexLow() uint8  { return uint8(c.indexHL()) }
func (c *CPU) setIndexHigh(v uint8) {
	c.setIndexHL((c.indexHL() & 0x00FF) | uint16(v)<<8)
}
func (c *CPU) setIndexLow(v uint8) {
	c.setIndexHL((c.indexHL() & 0xFF00) | uint16(v))
}

// hlAddr resolves the effective address for an "(HL)"-shaped operand under
// the active index context: HL directly, or (IX+d)/(IY+d) using the
// displacement already fetched for this instruction.
func (c *CPU) hlAddr() uint16 {
	if c.idx == idxNone {
		return c.HL
	}
	return uint16(int32(c.indexHL()) + int32(c.disp))
}

// fetch reads the byte at PC, advances PC, and increments R's low 7 bits
// (bit 7 preserved). Every fetch also performs the overlay-ROM trap check:
// the memory map auto-activates the TR-DOS overlay when PC lands in
// [0x3C00, 0x4000) (spec §4.3); that logic lives in memory.Map and is
// triggered by the Mem.MaybeActivateOverlay call made before the read.
func (c *CPU) fetch() uint8 {
	c.Mem.MaybeActivateOverlay(c.PC)
	b := c.Mem.Read(c.PC)
	c.PC++
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
	return b
}

func (c *CPU) fetchWord() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// fetchDisplacement fetches the signed displacement byte used by
// (IX+d)/(IY+d) addressing. It is an ordinary fetch, so it also runs the
// overlay trap check and increments R.
func (c *CPU) fetchDisplacement() int8 {
	return int8(c.fetch())
}

func (c *CPU) readByte(addr uint16) uint8     { return c.Mem.Read(addr) }
func (c *CPU) writeByte(addr uint16, v uint8)  { c.Mem.Write(addr, v) }
func (c *CPU) readWord(addr uint16) uint16     { return c.Mem.ReadWord(addr) }
func (c *CPU) writeWord(addr uint16, v uint16) { c.Mem.WriteWord(addr, v) }

func (c *CPU) ioRead(port uint16) uint8    { return c.IO.In(port) }
func (c *CPU) ioWrite(port uint16, v uint8) { c.IO.Out(port, v) }

// push/pop implement the stack exactly as spec §4.2 describes it: SP
// decrements by 2 before a push, increments by 2 after a pop.
func (c *CPU) push(v uint16) {
	c.SP -= 2
	c.writeWord(c.SP, v)
}

func (c *CPU) pop() uint16 {
	v := c.readWord(c.SP)
	c.SP += 2
	return v
}

// popReturnAddr pops a return address, auto-exiting the TR-DOS overlay ROM
// if control is returning above 0x4000 while it's active. Shared by
// RET/RETN/RETI (spec §4.3/§4.4).
func (c *CPU) popReturnAddr() uint16 {
	addr := c.pop()
	if c.Mem.TRDOSActive() && addr >= 0x4000 {
		c.Mem.DisableTRDOS()
	}
	return addr
}

// retn is shared by RETN and RETI: both restore IFF1 from IFF2 and pop PC.
func (c *CPU) retn() {
	c.IFF1 = c.IFF2
	c.PC = c.popReturnAddr()
}

// RequestIRQ honors a maskable interrupt if IFF1 is set (spec §4.2).
func (c *CPU) RequestIRQ() uint8 {
	if !c.IFF1 {
		return 0
	}
	c.Halted = false
	c.IFF1 = false
	c.IFF2 = false
	switch c.IM {
	case 0, 1:
		c.push(c.PC)
		c.PC = 0x0038
		c.Cycles += 13
		return 13
	case 2:
		c.push(c.PC)
		vector := (uint16(c.I) << 8) | 0xFF
		c.PC = c.readWord(vector)
		c.Cycles += 19
		return 19
	}
	return 0
}

// RequestNMI handles a non-maskable interrupt unconditionally (spec §4.2).
func (c *CPU) RequestNMI() uint8 {
	c.Halted = false
	c.IFF2 = c.IFF1
	c.IFF1 = false
	c.push(c.PC)
	c.PC = 0x0066
	c.Cycles += 11
	return 11
}

// Step executes exactly one instruction, including any prefix chain, and
// returns the number of T-states consumed. If halted, it consumes 4 cycles
// without touching memory.
func (c *CPU) Step() uint8 {
	if c.Halted {
		c.Cycles += 4
		return 4
	}
	c.idx = idxNone
	opcode := c.fetch()
	cycles := c.executeOpcode(opcode)
	c.Cycles += uint64(cycles)
	return cycles
}

// RunCycles steps the CPU until at least target cycles have elapsed since
// the call began.
func (c *CPU) RunCycles(target uint64) {
	start := c.Cycles
	for c.Cycles-start < target {
		c.Step()
	}
}

// panicUnreachable documents a genuinely-unreachable decode path (spec §7
// category 1) rather than silently falling through; every caller site is
// guarded by an exhaustive preceding switch and should never actually run.
func panicUnreachable(what string) uint8 {
	panic(fmt.Sprintf("z80: unreachable decode state: %s", what))
}
