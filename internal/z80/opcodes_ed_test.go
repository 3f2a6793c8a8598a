package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLDIRCopiesAndRepeats(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.HL = 0x2000
	c.DE = 0x3000
	c.BC = 2
	mem.ram[0x2000] = 0xAA
	mem.ram[0x2001] = 0xBB
	load(c, mem, 0xED, 0xB0) // LDIR

	cycles := c.Step()
	assert.Equal(t, uint8(21), cycles, "repeats while BC != 0")
	assert.Equal(t, uint16(0), c.PC, "PC rewound onto the LDIR itself")
	assert.Equal(t, uint8(0xAA), mem.ram[0x3000])
	assert.Equal(t, uint16(1), c.BC)

	cycles = c.Step()
	assert.Equal(t, uint8(16), cycles, "final iteration does not repeat")
	assert.Equal(t, uint8(0xBB), mem.ram[0x3001])
	assert.Equal(t, uint16(0), c.BC)
}

func TestCPIRStopsOnMatch(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x42)
	c.HL = 0x2000
	c.BC = 5
	mem.ram[0x2000] = 0x42
	load(c, mem, 0xED, 0xB1) // CPIR

	cycles := c.Step()
	assert.Equal(t, uint8(16), cycles, "stops once a match is found even with BC left")
	assert.NotZero(t, c.F()&FlagZ)
}

func TestNegFromZero(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x00)
	load(c, mem, 0xED, 0x44) // NEG
	c.Step()
	assert.Equal(t, uint8(0x00), c.A())
	assert.NotZero(t, c.F()&FlagZ)
	assert.Zero(t, c.F()&FlagC, "negating zero does not set carry")
}

func TestNegFromNonzero(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x01)
	load(c, mem, 0xED, 0x44) // NEG
	c.Step()
	assert.Equal(t, uint8(0xFF), c.A())
	assert.NotZero(t, c.F()&FlagC)
}

func TestLDAIUsesIFF2ForParity(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.I = 0x55
	c.IFF2 = true
	load(c, mem, 0xED, 0x57) // LD A,I
	c.Step()
	assert.Equal(t, uint8(0x55), c.A())
	assert.NotZero(t, c.F()&FlagPV)
}

func TestOutiDecrementsBAndSetsFlags(t *testing.T) {
	c, mem, io := newTestCPU()
	c.SetB(1)
	c.HL = 0x4000
	mem.ram[0x4000] = 0x77
	load(c, mem, 0xED, 0xA3) // OUTI
	c.Step()
	assert.Equal(t, uint8(0), c.B())
	assert.NotZero(t, c.F()&FlagZ)
	assert.Equal(t, uint8(0x77), io.out[c.BC])
}

func TestRetnRestoresIFF1FromIFF2(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SP = 0x8000
	c.IFF2 = true
	c.IFF1 = false
	mem.WriteWord(0x8000, 0x1234)
	load(c, mem, 0xED, 0x45) // RETN
	c.Step()
	assert.True(t, c.IFF1)
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestUndefinedEDOpcodeIsEightCycleNop(t *testing.T) {
	c, mem, _ := newTestCPU()
	load(c, mem, 0xED, 0x00)
	cycles := c.Step()
	assert.Equal(t, uint8(8), cycles)
}
