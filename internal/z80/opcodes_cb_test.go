package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCBRotateLeftCircularB(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetB(0x81)
	load(c, mem, 0xCB, 0x00) // RLC B
	c.Step()
	assert.Equal(t, uint8(0x03), c.B())
	assert.NotZero(t, c.F()&FlagC)
}

func TestCBBitTestClear(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0x00)
	load(c, mem, 0xCB, 0x47) // BIT 0,A
	cycles := c.Step()
	assert.Equal(t, uint8(8), cycles)
	assert.NotZero(t, c.F()&FlagZ)
	assert.NotZero(t, c.F()&FlagH)
}

func TestCBBitTestOnMemory(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.HL = 0x4000
	mem.ram[0x4000] = 0x80
	load(c, mem, 0xCB, 0x7E) // BIT 7,(HL)
	cycles := c.Step()
	assert.Equal(t, uint8(12), cycles)
	assert.Zero(t, c.F()&FlagZ, "bit 7 is set")
}

func TestCBResAndSet(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.SetA(0xFF)
	load(c, mem, 0xCB, 0x87) // RES 0,A
	c.Step()
	assert.Equal(t, uint8(0xFE), c.A())

	c, mem, _ = newTestCPU()
	c.SetA(0x00)
	load(c, mem, 0xCB, 0xC7) // SET 0,A
	c.Step()
	assert.Equal(t, uint8(0x01), c.A())
}

func TestDDCBBitTestOnIndexedAddress(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.IX = 0x4000
	mem.ram[0x4005] = 0x01
	load(c, mem, 0xDD, 0xCB, 0x05, 0x46) // BIT 0,(IX+5)
	cycles := c.Step()
	assert.Equal(t, uint8(20), cycles)
	assert.Zero(t, c.F()&FlagZ)
}

func TestDDCBRotateCopiesIntoRegister(t *testing.T) {
	c, mem, _ := newTestCPU()
	c.IX = 0x4000
	mem.ram[0x4002] = 0x01
	load(c, mem, 0xDD, 0xCB, 0x02, 0x00) // RLC (IX+2),B
	cycles := c.Step()
	assert.Equal(t, uint8(23), cycles)
	assert.Equal(t, uint8(0x02), c.B(), "result also copied into B")
	assert.Equal(t, uint8(0x02), mem.ram[0x4002], "memory operand updated too")
}
