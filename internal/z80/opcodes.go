package z80

// executeOpcode decodes and runs one unprefixed (or prefix-dispatching)
// opcode, returning T-states consumed. Grounded on
// original_source/src/cpu/instructions.rs execute_opcode.
func (c *CPU) executeOpcode(opcode uint8) uint8 {
	switch opcode {
	case 0x00: // NOP
		return 4
	case 0x01:
		c.BC = c.fetchWord()
		return 10
	case 0x02:
		c.writeByte(c.BC, c.A())
		return 7
	case 0x03:
		c.BC++
		return 6
	case 0x04:
		c.SetB(c.incR8(c.B()))
		return 4
	case 0x05:
		c.SetB(c.decR8(c.B()))
		return 4
	case 0x06:
		c.SetB(c.fetch())
		return 7
	case 0x07:
		c.rlca()
		return 4
	case 0x08:
		c.AF, c.AFPrime = c.AFPrime, c.AF
		return 4
	case 0x09:
		c.addHL(c.BC)
		return 11
	case 0x0A:
		c.SetA(c.readByte(c.BC))
		return 7
	case 0x0B:
		c.BC--
		return 6
	case 0x0C:
		c.SetC(c.incR8(c.Cc()))
		return 4
	case 0x0D:
		c.SetC(c.decR8(c.Cc()))
		return 4
	case 0x0E:
		c.SetC(c.fetch())
		return 7
	case 0x0F:
		c.rrca()
		return 4

	case 0x10:
		return c.djnz()
	case 0x11:
		c.DE = c.fetchWord()
		return 10
	case 0x12:
		c.writeByte(c.DE, c.A())
		return 7
	case 0x13:
		c.DE++
		return 6
	case 0x14:
		c.SetD(c.incR8(c.D()))
		return 4
	case 0x15:
		c.SetD(c.decR8(c.D()))
		return 4
	case 0x16:
		c.SetD(c.fetch())
		return 7
	case 0x17:
		c.rla()
		return 4
	case 0x18:
		c.jr()
		return 12
	case 0x19:
		c.addHL(c.DE)
		return 11
	case 0x1A:
		c.SetA(c.readByte(c.DE))
		return 7
	case 0x1B:
		c.DE--
		return 6
	case 0x1C:
		c.SetE(c.incR8(c.E()))
		return 4
	case 0x1D:
		c.SetE(c.decR8(c.E()))
		return 4
	case 0x1E:
		c.SetE(c.fetch())
		return 7
	case 0x1F:
		c.rra()
		return 4

	case 0x20:
		return c.jrCC(!c.flag(FlagZ))
	case 0x21:
		c.HL = c.fetchWord()
		return 10
	case 0x22:
		addr := c.fetchWord()
		c.writeWord(addr, c.HL)
		return 16
	case 0x23:
		c.HL++
		return 6
	case 0x24:
		c.SetH(c.incR8(c.H()))
		return 4
	case 0x25:
		c.SetH(c.decR8(c.H()))
		return 4
	case 0x26:
		c.SetH(c.fetch())
		return 7
	case 0x27:
		c.daa()
		return 4
	case 0x28:
		return c.jrCC(c.flag(FlagZ))
	case 0x29:
		c.addHL(c.HL)
		return 11
	case 0x2A:
		addr := c.fetchWord()
		c.HL = c.readWord(addr)
		return 16
	case 0x2B:
		c.HL--
		return 6
	case 0x2C:
		c.SetL(c.incR8(c.L()))
		return 4
	case 0x2D:
		c.SetL(c.decR8(c.L()))
		return 4
	case 0x2E:
		c.SetL(c.fetch())
		return 7
	case 0x2F:
		c.cpl()
		return 4

	case 0x30:
		return c.jrCC(!c.flag(FlagC))
	case 0x31:
		c.SP = c.fetchWord()
		return 10
	case 0x32:
		addr := c.fetchWord()
		c.writeByte(addr, c.A())
		return 13
	case 0x33:
		c.SP++
		return 6
	case 0x34:
		c.incMem(c.HL)
		return 11
	case 0x35:
		c.decMem(c.HL)
		return 11
	case 0x36:
		n := c.fetch()
		c.writeByte(c.HL, n)
		return 10
	case 0x37:
		c.scf()
		return 4
	case 0x38:
		return c.jrCC(c.flag(FlagC))
	case 0x39:
		c.addHL(c.SP)
		return 11
	case 0x3A:
		addr := c.fetchWord()
		c.SetA(c.readByte(addr))
		return 13
	case 0x3B:
		c.SP--
		return 6
	case 0x3C:
		c.SetA(c.incR8(c.A()))
		return 4
	case 0x3D:
		c.SetA(c.decR8(c.A()))
		return 4
	case 0x3E:
		c.SetA(c.fetch())
		return 7
	case 0x3F:
		c.ccf()
		return 4

	// LD r,r' (0x40-0x7F), HALT at 0x76.
	case 0x40:
		return 4
	case 0x41:
		c.SetB(c.Cc())
		return 4
	case 0x42:
		c.SetB(c.D())
		return 4
	case 0x43:
		c.SetB(c.E())
		return 4
	case 0x44:
		c.SetB(c.H())
		return 4
	case 0x45:
		c.SetB(c.L())
		return 4
	case 0x46:
		c.SetB(c.readByte(c.HL))
		return 7
	case 0x47:
		c.SetB(c.A())
		return 4

	case 0x48:
		c.SetC(c.B())
		return 4
	case 0x49:
		return 4
	case 0x4A:
		c.SetC(c.D())
		return 4
	case 0x4B:
		c.SetC(c.E())
		return 4
	case 0x4C:
		c.SetC(c.H())
		return 4
	case 0x4D:
		c.SetC(c.L())
		return 4
	case 0x4E:
		c.SetC(c.readByte(c.HL))
		return 7
	case 0x4F:
		c.SetC(c.A())
		return 4

	case 0x50:
		c.SetD(c.B())
		return 4
	case 0x51:
		c.SetD(c.Cc())
		return 4
	case 0x52:
		return 4
	case 0x53:
		c.SetD(c.E())
		return 4
	case 0x54:
		c.SetD(c.H())
		return 4
	case 0x55:
		c.SetD(c.L())
		return 4
	case 0x56:
		c.SetD(c.readByte(c.HL))
		return 7
	case 0x57:
		c.SetD(c.A())
		return 4

	case 0x58:
		c.SetE(c.B())
		return 4
	case 0x59:
		c.SetE(c.Cc())
		return 4
	case 0x5A:
		c.SetE(c.D())
		return 4
	case 0x5B:
		return 4
	case 0x5C:
		c.SetE(c.H())
		return 4
	case 0x5D:
		c.SetE(c.L())
		return 4
	case 0x5E:
		c.SetE(c.readByte(c.HL))
		return 7
	case 0x5F:
		c.SetE(c.A())
		return 4

	case 0x60:
		c.SetH(c.B())
		return 4
	case 0x61:
		c.SetH(c.Cc())
		return 4
	case 0x62:
		c.SetH(c.D())
		return 4
	case 0x63:
		c.SetH(c.E())
		return 4
	case 0x64:
		return 4
	case 0x65:
		c.SetH(c.L())
		return 4
	case 0x66:
		c.SetH(c.readByte(c.HL))
		return 7
	case 0x67:
		c.SetH(c.A())
		return 4

	case 0x68:
		c.SetL(c.B())
		return 4
	case 0x69:
		c.SetL(c.Cc())
		return 4
	case 0x6A:
		c.SetL(c.D())
		return 4
	case 0x6B:
		c.SetL(c.E())
		return 4
	case 0x6C:
		c.SetL(c.H())
		return 4
	case 0x6D:
		return 4
	case 0x6E:
		c.SetL(c.readByte(c.HL))
		return 7
	case 0x6F:
		c.SetL(c.A())
		return 4

	case 0x70:
		c.writeByte(c.HL, c.B())
		return 7
	case 0x71:
		c.writeByte(c.HL, c.Cc())
		return 7
	case 0x72:
		c.writeByte(c.HL, c.D())
		return 7
	case 0x73:
		c.writeByte(c.HL, c.E())
		return 7
	case 0x74:
		c.writeByte(c.HL, c.H())
		return 7
	case 0x75:
		c.writeByte(c.HL, c.L())
		return 7
	case 0x76:
		c.Halted = true
		return 4
	case 0x77:
		c.writeByte(c.HL, c.A())
		return 7

	case 0x78:
		c.SetA(c.B())
		return 4
	case 0x79:
		c.SetA(c.Cc())
		return 4
	case 0x7A:
		c.SetA(c.D())
		return 4
	case 0x7B:
		c.SetA(c.E())
		return 4
	case 0x7C:
		c.SetA(c.H())
		return 4
	case 0x7D:
		c.SetA(c.L())
		return 4
	case 0x7E:
		c.SetA(c.readByte(c.HL))
		return 7
	case 0x7F:
		return 4

	case 0x80:
		c.addA(c.B(), false)
		return 4
	case 0x81:
		c.addA(c.Cc(), false)
		return 4
	case 0x82:
		c.addA(c.D(), false)
		return 4
	case 0x83:
		c.addA(c.E(), false)
		return 4
	case 0x84:
		c.addA(c.H(), false)
		return 4
	case 0x85:
		c.addA(c.L(), false)
		return 4
	case 0x86:
		c.addA(c.readByte(c.HL), false)
		return 7
	case 0x87:
		c.addA(c.A(), false)
		return 4

	case 0x88:
		c.addA(c.B(), c.flag(FlagC))
		return 4
	case 0x89:
		c.addA(c.Cc(), c.flag(FlagC))
		return 4
	case 0x8A:
		c.addA(c.D(), c.flag(FlagC))
		return 4
	case 0x8B:
		c.addA(c.E(), c.flag(FlagC))
		return 4
	case 0x8C:
		c.addA(c.H(), c.flag(FlagC))
		return 4
	case 0x8D:
		c.addA(c.L(), c.flag(FlagC))
		return 4
	case 0x8E:
		c.addA(c.readByte(c.HL), c.flag(FlagC))
		return 7
	case 0x8F:
		c.addA(c.A(), c.flag(FlagC))
		return 4

	case 0x90:
		c.subA(c.B(), false)
		return 4
	case 0x91:
		c.subA(c.Cc(), false)
		return 4
	case 0x92:
		c.subA(c.D(), false)
		return 4
	case 0x93:
		c.subA(c.E(), false)
		return 4
	case 0x94:
		c.subA(c.H(), false)
		return 4
	case 0x95:
		c.subA(c.L(), false)
		return 4
	case 0x96:
		c.subA(c.readByte(c.HL), false)
		return 7
	case 0x97:
		c.subA(c.A(), false)
		return 4

	case 0x98:
		c.subA(c.B(), c.flag(FlagC))
		return 4
	case 0x99:
		c.subA(c.Cc(), c.flag(FlagC))
		return 4
	case 0x9A:
		c.subA(c.D(), c.flag(FlagC))
		return 4
	case 0x9B:
		c.subA(c.E(), c.flag(FlagC))
		return 4
	case 0x9C:
		c.subA(c.H(), c.flag(FlagC))
		return 4
	case 0x9D:
		c.subA(c.L(), c.flag(FlagC))
		return 4
	case 0x9E:
		c.subA(c.readByte(c.HL), c.flag(FlagC))
		return 7
	case 0x9F:
		c.subA(c.A(), c.flag(FlagC))
		return 4

	case 0xA0:
		c.andA(c.B())
		return 4
	case 0xA1:
		c.andA(c.Cc())
		return 4
	case 0xA2:
		c.andA(c.D())
		return 4
	case 0xA3:
		c.andA(c.E())
		return 4
	case 0xA4:
		c.andA(c.H())
		return 4
	case 0xA5:
		c.andA(c.L())
		return 4
	case 0xA6:
		c.andA(c.readByte(c.HL))
		return 7
	case 0xA7:
		c.andA(c.A())
		return 4

	case 0xA8:
		c.xorA(c.B())
		return 4
	case 0xA9:
		c.xorA(c.Cc())
		return 4
	case 0xAA:
		c.xorA(c.D())
		return 4
	case 0xAB:
		c.xorA(c.E())
		return 4
	case 0xAC:
		c.xorA(c.H())
		return 4
	case 0xAD:
		c.xorA(c.L())
		return 4
	case 0xAE:
		c.xorA(c.readByte(c.HL))
		return 7
	case 0xAF:
		c.xorA(c.A())
		return 4

	case 0xB0:
		c.orA(c.B())
		return 4
	case 0xB1:
		c.orA(c.Cc())
		return 4
	case 0xB2:
		c.orA(c.D())
		return 4
	case 0xB3:
		c.orA(c.E())
		return 4
	case 0xB4:
		c.orA(c.H())
		return 4
	case 0xB5:
		c.orA(c.L())
		return 4
	case 0xB6:
		c.orA(c.readByte(c.HL))
		return 7
	case 0xB7:
		c.orA(c.A())
		return 4

	case 0xB8:
		c.cpA(c.B())
		return 4
	case 0xB9:
		c.cpA(c.Cc())
		return 4
	case 0xBA:
		c.cpA(c.D())
		return 4
	case 0xBB:
		c.cpA(c.E())
		return 4
	case 0xBC:
		c.cpA(c.H())
		return 4
	case 0xBD:
		c.cpA(c.L())
		return 4
	case 0xBE:
		c.cpA(c.readByte(c.HL))
		return 7
	case 0xBF:
		c.cpA(c.A())
		return 4

	case 0xC0:
		if !c.flag(FlagZ) {
			c.ret()
			return 11
		}
		return 5
	case 0xC1:
		c.BC = c.pop()
		return 10
	case 0xC2:
		addr := c.fetchWord()
		if !c.flag(FlagZ) {
			c.PC = addr
		}
		return 10
	case 0xC3:
		c.PC = c.fetchWord()
		return 10
	case 0xC4:
		addr := c.fetchWord()
		if !c.flag(FlagZ) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xC5:
		c.push(c.BC)
		return 11
	case 0xC6:
		c.addA(c.fetch(), false)
		return 7
	case 0xC7:
		c.rst(0x00)
		return 11
	case 0xC8:
		if c.flag(FlagZ) {
			c.ret()
			return 11
		}
		return 5
	case 0xC9:
		c.ret()
		return 10
	case 0xCA:
		addr := c.fetchWord()
		if c.flag(FlagZ) {
			c.PC = addr
		}
		return 10
	case 0xCB:
		return c.executeCB()
	case 0xCC:
		addr := c.fetchWord()
		if c.flag(FlagZ) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xCD:
		addr := c.fetchWord()
		c.call(addr)
		return 17
	case 0xCE:
		c.addA(c.fetch(), c.flag(FlagC))
		return 7
	case 0xCF:
		c.rst(0x08)
		return 11

	case 0xD0:
		if !c.flag(FlagC) {
			c.ret()
			return 11
		}
		return 5
	case 0xD1:
		c.DE = c.pop()
		return 10
	case 0xD2:
		addr := c.fetchWord()
		if !c.flag(FlagC) {
			c.PC = addr
		}
		return 10
	case 0xD3:
		port := uint16(c.fetch()) | uint16(c.A())<<8
		c.ioWrite(port, c.A())
		return 11
	case 0xD4:
		addr := c.fetchWord()
		if !c.flag(FlagC) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xD5:
		c.push(c.DE)
		return 11
	case 0xD6:
		c.subA(c.fetch(), false)
		return 7
	case 0xD7:
		c.rst(0x10)
		return 11
	case 0xD8:
		if c.flag(FlagC) {
			c.ret()
			return 11
		}
		return 5
	case 0xD9:
		c.BC, c.BCPrime = c.BCPrime, c.BC
		c.DE, c.DEPrime = c.DEPrime, c.DE
		c.HL, c.HLPrime = c.HLPrime, c.HL
		return 4
	case 0xDA:
		addr := c.fetchWord()
		if c.flag(FlagC) {
			c.PC = addr
		}
		return 10
	case 0xDB:
		port := uint16(c.fetch()) | uint16(c.A())<<8
		c.SetA(c.ioRead(port))
		return 11
	case 0xDC:
		addr := c.fetchWord()
		if c.flag(FlagC) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xDD:
		return c.executeDD()
	case 0xDE:
		c.subA(c.fetch(), c.flag(FlagC))
		return 7
	case 0xDF:
		c.rst(0x18)
		return 11

	case 0xE0:
		if !c.flag(FlagPV) {
			c.ret()
			return 11
		}
		return 5
	case 0xE1:
		c.HL = c.pop()
		return 10
	case 0xE2:
		addr := c.fetchWord()
		if !c.flag(FlagPV) {
			c.PC = addr
		}
		return 10
	case 0xE3:
		v := c.readWord(c.SP)
		c.writeWord(c.SP, c.HL)
		c.HL = v
		return 19
	case 0xE4:
		addr := c.fetchWord()
		if !c.flag(FlagPV) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xE5:
		c.push(c.HL)
		return 11
	case 0xE6:
		c.andA(c.fetch())
		return 7
	case 0xE7:
		c.rst(0x20)
		return 11
	case 0xE8:
		if c.flag(FlagPV) {
			c.ret()
			return 11
		}
		return 5
	case 0xE9:
		c.PC = c.HL
		return 4
	case 0xEA:
		addr := c.fetchWord()
		if c.flag(FlagPV) {
			c.PC = addr
		}
		return 10
	case 0xEB:
		c.DE, c.HL = c.HL, c.DE
		return 4
	case 0xEC:
		addr := c.fetchWord()
		if c.flag(FlagPV) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xED:
		return c.executeED()
	case 0xEE:
		c.xorA(c.fetch())
		return 7
	case 0xEF:
		c.rst(0x28)
		return 11

	case 0xF0:
		if !c.flag(FlagS) {
			c.ret()
			return 11
		}
		return 5
	case 0xF1:
		c.AF = c.pop()
		return 10
	case 0xF2:
		addr := c.fetchWord()
		if !c.flag(FlagS) {
			c.PC = addr
		}
		return 10
	case 0xF3:
		c.IFF1, c.IFF2 = false, false
		return 4
	case 0xF4:
		addr := c.fetchWord()
		if !c.flag(FlagS) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xF5:
		c.push(c.AF)
		return 11
	case 0xF6:
		c.orA(c.fetch())
		return 7
	case 0xF7:
		c.rst(0x30)
		return 11
	case 0xF8:
		if c.flag(FlagS) {
			c.ret()
			return 11
		}
		return 5
	case 0xF9:
		c.SP = c.HL
		return 6
	case 0xFA:
		addr := c.fetchWord()
		if c.flag(FlagS) {
			c.PC = addr
		}
		return 10
	case 0xFB:
		c.IFF1, c.IFF2 = true, true
		return 4
	case 0xFC:
		addr := c.fetchWord()
		if c.flag(FlagS) {
			c.call(addr)
			return 17
		}
		return 10
	case 0xFD:
		return c.executeFD()
	case 0xFE:
		c.cpA(c.fetch())
		return 7
	case 0xFF:
		c.rst(0x38)
		return 11
	}
	return panicUnreachable("opcode switch is exhaustive over all 256 byte values")
}

// ALU helpers shared by the base table and, where noted, the index tables.

func (c *CPU) incR8(v uint8) uint8 {
	r := v + 1
	c.SetF(incFlags(v, r, c.F()))
	return r
}

func (c *CPU) decR8(v uint8) uint8 {
	r := v - 1
	c.SetF(decFlags(v, r, c.F()))
	return r
}

func (c *CPU) incMem(addr uint16) {
	v := c.readByte(addr)
	r := v + 1
	c.writeByte(addr, r)
	c.SetF(incFlags(v, r, c.F()))
}

func (c *CPU) decMem(addr uint16) {
	v := c.readByte(addr)
	r := v - 1
	c.writeByte(addr, r)
	c.SetF(decFlags(v, r, c.F()))
}

func (c *CPU) addA(value uint8, carry bool) {
	result, f := addFlags(c.A(), value, carry)
	c.SetA(result)
	c.SetF(f)
}

func (c *CPU) subA(value uint8, carry bool) {
	result, f := subFlags(c.A(), value, carry)
	c.SetA(result)
	c.SetF(f)
}

func (c *CPU) andA(value uint8) {
	c.SetA(c.A() & value)
	c.SetF(andFlags(c.A()))
}

func (c *CPU) xorA(value uint8) {
	c.SetA(c.A() ^ value)
	c.SetF(orXorFlags(c.A()))
}

func (c *CPU) orA(value uint8) {
	c.SetA(c.A() | value)
	c.SetF(orXorFlags(c.A()))
}

func (c *CPU) cpA(value uint8) {
	c.SetF(cpFlags(c.A(), value))
}

func (c *CPU) addHL(value uint16) {
	result, f := addHLFlags(c.F(), c.HL, value)
	c.HL = result
	c.SetF(f)
}

func (c *CPU) rlca() {
	a := c.A()
	carry := a >> 7
	result := (a << 1) | carry
	c.SetA(result)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if carry != 0 {
		f |= FlagC
	}
	f |= result & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) rrca() {
	a := c.A()
	carry := a & 1
	result := (a >> 1) | (carry << 7)
	c.SetA(result)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if carry != 0 {
		f |= FlagC
	}
	f |= result & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) rla() {
	a := c.A()
	oldCarry := uint8(0)
	if c.flag(FlagC) {
		oldCarry = 1
	}
	newCarry := a >> 7
	result := (a << 1) | oldCarry
	c.SetA(result)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if newCarry != 0 {
		f |= FlagC
	}
	f |= result & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) rra() {
	a := c.A()
	oldCarry := uint8(0)
	if c.flag(FlagC) {
		oldCarry = 0x80
	}
	newCarry := a & 1
	result := (a >> 1) | oldCarry
	c.SetA(result)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if newCarry != 0 {
		f |= FlagC
	}
	f |= result & (FlagF3 | FlagF5)
	c.SetF(f)
}

// daa implements decimal adjust after ADD/ADC/SUB/SBC, following the N/H/C
// flag-driven correction table (original_source/src/cpu/instructions.rs daa).
func (c *CPU) daa() {
	a := c.A()
	var correction uint8
	carry := c.flag(FlagC)

	if c.flag(FlagH) || (a&0x0F) > 9 {
		correction |= 0x06
	}
	if carry || a > 0x99 {
		correction |= 0x60
		carry = true
	}

	var result uint8
	if c.flag(FlagN) {
		result = a - correction
	} else {
		result = a + correction
	}
	c.SetA(result)

	f := sz53(result) | parityFlag(result)
	if carry {
		f |= FlagC
	}
	if c.flag(FlagN) {
		f |= FlagN
	}
	var half bool
	if c.flag(FlagN) {
		half = c.flag(FlagH) && (a&0x0F) < 6
	} else {
		half = (a & 0x0F) > 9
	}
	if half {
		f |= FlagH
	}
	c.SetF(f)
}

func (c *CPU) cpl() {
	result := ^c.A()
	c.SetA(result)
	f := c.F()
	f |= FlagH | FlagN
	f &^= FlagF3 | FlagF5
	f |= result & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) scf() {
	a := c.A()
	f := c.F() & (FlagS | FlagZ | FlagPV)
	f |= FlagC
	f |= a & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) ccf() {
	a := c.A()
	oldCarry := c.flag(FlagC)
	f := c.F() & (FlagS | FlagZ | FlagPV)
	if oldCarry {
		f |= FlagH
	} else {
		f |= FlagC
	}
	f |= a & (FlagF3 | FlagF5)
	c.SetF(f)
}

func (c *CPU) jr() {
	offset := int8(c.fetch())
	c.PC = uint16(int32(c.PC) + int32(offset))
}

func (c *CPU) jrCC(condition bool) uint8 {
	offset := int8(c.fetch())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 12
	}
	return 7
}

func (c *CPU) djnz() uint8 {
	b := c.B() - 1
	c.SetB(b)
	offset := int8(c.fetch())
	if b != 0 {
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 13
	}
	return 8
}

func (c *CPU) call(addr uint16) {
	c.push(c.PC)
	c.PC = addr
}

func (c *CPU) ret() {
	c.PC = c.popReturnAddr()
}

func (c *CPU) rst(addr uint16) {
	c.push(c.PC)
	c.PC = addr
}
