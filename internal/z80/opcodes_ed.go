package z80

// executeED decodes an ED-prefixed instruction. Undefined ED opcodes behave
// as an 8-cycle NOP, matching original_source/src/cpu/extended.rs execute_ed.
func (c *CPU) executeED() uint8 {
	opcode := c.fetch()

	switch opcode {
	case 0x40:
		v := c.ioRead(c.BC)
		c.SetB(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x41:
		c.ioWrite(c.BC, c.B())
		return 12
	case 0x42:
		c.sbcHL(c.BC)
		return 15
	case 0x43:
		addr := c.fetchWord()
		c.writeWord(addr, c.BC)
		return 20
	case 0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C:
		c.neg()
		return 8
	case 0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D:
		c.retn()
		return 14
	case 0x46, 0x4E, 0x66, 0x6E:
		c.IM = 0
		return 8
	case 0x47:
		c.I = c.A()
		return 9
	case 0x48:
		v := c.ioRead(c.BC)
		c.SetC(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x49:
		c.ioWrite(c.BC, c.Cc())
		return 12
	case 0x4A:
		c.adcHL(c.BC)
		return 15
	case 0x4B:
		addr := c.fetchWord()
		c.BC = c.readWord(addr)
		return 20
	case 0x4D:
		c.retn() // RETI: same IFF/overlay contract as RETN.
		return 14
	case 0x4F:
		c.R = c.A()
		return 9
	case 0x50:
		v := c.ioRead(c.BC)
		c.SetD(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x51:
		c.ioWrite(c.BC, c.D())
		return 12
	case 0x52:
		c.sbcHL(c.DE)
		return 15
	case 0x53:
		addr := c.fetchWord()
		c.writeWord(addr, c.DE)
		return 20
	case 0x56, 0x76:
		c.IM = 1
		return 8
	case 0x57:
		c.ldAIR(c.I)
		return 9
	case 0x58:
		v := c.ioRead(c.BC)
		c.SetE(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x59:
		c.ioWrite(c.BC, c.E())
		return 12
	case 0x5A:
		c.adcHL(c.DE)
		return 15
	case 0x5B:
		addr := c.fetchWord()
		c.DE = c.readWord(addr)
		return 20
	case 0x5E, 0x7E:
		c.IM = 2
		return 8
	case 0x5F:
		c.ldAIR(c.R)
		return 9
	case 0x60:
		v := c.ioRead(c.BC)
		c.SetH(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x61:
		c.ioWrite(c.BC, c.H())
		return 12
	case 0x62:
		c.sbcHL(c.HL)
		return 15
	case 0x63:
		addr := c.fetchWord()
		c.writeWord(addr, c.HL)
		return 20
	case 0x67:
		c.rrd()
		return 18
	case 0x68:
		v := c.ioRead(c.BC)
		c.SetL(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x69:
		c.ioWrite(c.BC, c.L())
		return 12
	case 0x6A:
		c.adcHL(c.HL)
		return 15
	case 0x6B:
		addr := c.fetchWord()
		c.HL = c.readWord(addr)
		return 20
	case 0x6F:
		c.rld()
		return 18
	case 0x70:
		v := c.ioRead(c.BC)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x71:
		c.ioWrite(c.BC, 0)
		return 12
	case 0x72:
		c.sbcHL(c.SP)
		return 15
	case 0x73:
		addr := c.fetchWord()
		c.writeWord(addr, c.SP)
		return 20
	case 0x78:
		v := c.ioRead(c.BC)
		c.SetA(v)
		c.SetF(inFlags(c.F(), v))
		return 12
	case 0x79:
		c.ioWrite(c.BC, c.A())
		return 12
	case 0x7A:
		c.adcHL(c.SP)
		return 15
	case 0x7B:
		addr := c.fetchWord()
		c.SP = c.readWord(addr)
		return 20

	case 0xA0:
		c.ldi()
		return 16
	case 0xA1:
		c.cpi()
		return 16
	case 0xA2:
		c.ini()
		return 16
	case 0xA3:
		c.outi()
		return 16
	case 0xA8:
		c.ldd()
		return 16
	case 0xA9:
		c.cpd()
		return 16
	case 0xAA:
		c.ind()
		return 16
	case 0xAB:
		c.outd()
		return 16
	case 0xB0:
		c.ldi()
		if c.BC != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB1:
		c.cpi()
		if c.BC != 0 && !c.flag(FlagZ) {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB2:
		c.ini()
		if c.B() != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB3:
		c.outi()
		if c.B() != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB8:
		c.ldd()
		if c.BC != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xB9:
		c.cpd()
		if c.BC != 0 && !c.flag(FlagZ) {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xBA:
		c.ind()
		if c.B() != 0 {
			c.PC -= 2
			return 21
		}
		return 16
	case 0xBB:
		c.outd()
		if c.B() != 0 {
			c.PC -= 2
			return 21
		}
		return 16

	default:
		return 8
	}
}

func (c *CPU) adcHL(value uint16) {
	result, f := adcHLFlags(c.flag(FlagC), c.HL, value)
	c.HL = result
	c.SetF(f)
}

func (c *CPU) sbcHL(value uint16) {
	result, f := sbcHLFlags(c.flag(FlagC), c.HL, value)
	c.HL = result
	c.SetF(f)
}

func (c *CPU) neg() {
	a := c.A()
	result, f := subFlags(0, a, false)
	c.SetA(result)
	c.SetF(f)
}

// ldAIR implements LD A,I and LD A,R: PV takes IFF2, not parity.
func (c *CPU) ldAIR(value uint8) {
	c.SetA(value)
	f := sz53(value) | (c.F() & FlagC)
	if c.IFF2 {
		f |= FlagPV
	}
	c.SetF(f)
}

func (c *CPU) rrd() {
	a := c.A()
	mem := c.readByte(c.HL)
	newA := (a & 0xF0) | (mem & 0x0F)
	newMem := (a&0x0F)<<4 | (mem >> 4)
	c.SetA(newA)
	c.writeByte(c.HL, newMem)
	c.SetF(sz53(newA) | parityFlag(newA) | (c.F() & FlagC))
}

func (c *CPU) rld() {
	a := c.A()
	mem := c.readByte(c.HL)
	newA := (a & 0xF0) | (mem >> 4)
	newMem := (mem&0x0F)<<4 | (a & 0x0F)
	c.SetA(newA)
	c.writeByte(c.HL, newMem)
	c.SetF(sz53(newA) | parityFlag(newA) | (c.F() & FlagC))
}

// Block instructions (LDI/LDD/CPI/CPD/INI/IND/OUTI/OUTD and their *IR/*DR
// repeating forms, dispatched above).

func (c *CPU) ldi() {
	val := c.readByte(c.HL)
	c.writeByte(c.DE, val)
	c.HL++
	c.DE++
	c.BC--
	c.SetF(blockTailFlags(c.F(), c.BC, val, c.A()))
}

func (c *CPU) ldd() {
	val := c.readByte(c.HL)
	c.writeByte(c.DE, val)
	c.HL--
	c.DE--
	c.BC--
	c.SetF(blockTailFlags(c.F(), c.BC, val, c.A()))
}

func (c *CPU) cpi() {
	val := c.readByte(c.HL)
	a := c.A()
	c.HL++
	c.BC--
	c.SetF(blockCompareFlags(c.F(), a, val, c.BC))
}

func (c *CPU) cpd() {
	val := c.readByte(c.HL)
	a := c.A()
	c.HL--
	c.BC--
	c.SetF(blockCompareFlags(c.F(), a, val, c.BC))
}

func (c *CPU) ini() {
	val := c.ioRead(c.BC)
	c.writeByte(c.HL, val)
	c.HL++
	b := c.B() - 1
	c.SetB(b)
	c.SetF(blockIOFlags(b))
}

func (c *CPU) ind() {
	val := c.ioRead(c.BC)
	c.writeByte(c.HL, val)
	c.HL--
	b := c.B() - 1
	c.SetB(b)
	c.SetF(blockIOFlags(b))
}

func (c *CPU) outi() {
	val := c.readByte(c.HL)
	b := c.B() - 1
	c.SetB(b)
	c.ioWrite(c.BC, val)
	c.HL++
	c.SetF(blockIOFlags(b))
}

func (c *CPU) outd() {
	val := c.readByte(c.HL)
	b := c.B() - 1
	c.SetB(b)
	c.ioWrite(c.BC, val)
	c.HL--
	c.SetF(blockIOFlags(b))
}
