package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLDAImmediate(t *testing.T) {
	c, mem, _ := newTestCPU()
	load(c, mem, 0x3E, 0x42) // LD A,0x42
	cycles := c.Step()
	assert.Equal(t, uint8(7), cycles)
	assert.Equal(t, uint8(0x42), c.A())
}

func TestAddAImmediate(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x10)
	load(c, mem, 0xC6, 0x05) // ADD A,0x05
	c.Step()
	assert.Equal(t, uint8(0x15), c.A())
	assert.Zero(t, c.F()&FlagC)
}

func TestAddAHL(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x10)
	c.HL = 0x2000
	mem.ram[0x2000] = 0x05
	load(c, mem, 0x86) // ADD A,(HL)
	cycles := c.Step()
	assert.Equal(t, uint8(7), cycles)
	assert.Equal(t, uint8(0x15), c.A())
}

func TestJumpAbsolute(t *testing.T) {
	c, mem, _ := newTestCPU()
	load(c, mem, 0xC3, 0x34, 0x12) // JP 0x1234
	c.Step()
	assert.Equal(t, uint16(0x1234), c.PC)
}

func TestCallAndRet(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SP = 0x8000
	load(c, mem, 0xCD, 0x00, 0x10) // CALL 0x1000
	c.Step()
	assert.Equal(t, uint16(0x1000), c.PC)
	assert.Equal(t, uint16(0x0003), mem.ReadWord(c.SP), "return address pushed")

	mem.ram[0x1000] = 0xC9 // RET
	c.Step()
	assert.Equal(t, uint16(0x0003), c.PC)
}

func TestHaltSetsHaltedFlag(t *testing.T) {
	c, mem, _ := newTestCPU()
	load(c, mem, 0x76) // HALT
	c.Step()
	assert.True(t, c.Halted)
}

func TestCompareImmediateSetsZero(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x42)
	load(c, mem, 0xFE, 0x42) // CP 0x42
	c.Step()
	assert.NotZero(t, c.F()&FlagZ)
	assert.Equal(t, uint8(0x42), c.A(), "CP does not modify A")
}

func TestDJNZLoops(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetB(2)
	load(c, mem, 0x10, 0xFE) // DJNZ -2 (loop on itself)
	cycles := c.Step()
	assert.Equal(t, uint8(13), cycles, "branch taken")
	assert.Equal(t, uint8(1), c.B())
	assert.Equal(t, uint16(0), c.PC, "jumped back to the DJNZ itself")

	cycles = c.Step()
	assert.Equal(t, uint8(8), cycles, "branch not taken once B reaches 0")
	assert.Equal(t, uint8(0), c.B())
}

func TestDAAAfterBCDAdd(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x09)
	load(c, mem, 0xC6, 0x01, 0x27) // ADD A,1 ; DAA -> 0x10
	c.Step()
	c.Step()
	assert.Equal(t, uint8(0x10), c.A())
}

func TestOutputPort(t *testing.T) {
	c, mem, io := newTestCPU()
	c.SetA(0x7F)
	load(c, mem, 0xD3, 0xFE) // OUT (0xFE),A; port high byte comes from A
	c.Step()
	assert.Equal(t, uint8(0x7F), io.out[0x7FFE])
}

func TestInputPort(t *testing.T) {
	c, mem, io := newTestCPU()
	c.SetA(0x7F)
	io.in[0x7FFE] = 0x1F
	load(c, mem, 0xDB, 0xFE) // IN A,(0xFE); port high byte comes from A
	c.Step()
	assert.Equal(t, uint8(0x1F), c.A())
}
