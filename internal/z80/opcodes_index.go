package z80

// executeDD handles the DD prefix (IX). A second 0xCB byte diverts to the
// DDCB decode; everything else goes through the curated IX/IY opcode set.
func (c *CPU) executeDD() uint8 {
	c.idx = idxIX
	opcode := c.fetch()
	if opcode == 0xCB {
		return c.executeIndexedCBPrefix()
	}
	return c.executeIndexed(opcode)
}

// executeFD handles the FD prefix (IY), mirroring executeDD.
func (c *CPU) executeFD() uint8 {
	c.idx = idxIY
	opcode := c.fetch()
	if opcode == 0xCB {
		return c.executeIndexedCBPrefix()
	}
	return c.executeIndexed(opcode)
}

// executeIndexed implements the curated set of opcodes that DD/FD actually
// change: arithmetic/load on IX/IY as a whole, IXH/IXL/IYH/IYL halves, and
// (HL)-shaped operands reinterpreted as (IX+d)/(IY+d). Any opcode outside
// this set behaves as a 4-cycle no-op rather than falling back to the
// unprefixed instruction, per original_source/src/cpu/extended.rs
// execute_index's catch-all arm.
func (c *CPU) executeIndexed(opcode uint8) uint8 {
	switch opcode {
	case 0x09:
		c.addIndexed(c.BC)
		return 15
	case 0x19:
		c.addIndexed(c.DE)
		return 15
	case 0x21:
		c.setIndexHL(c.fetchWord())
		return 14
	case 0x22:
		addr := c.fetchWord()
		c.writeWord(addr, c.indexHL())
		return 20
	case 0x23:
		c.setIndexHL(c.indexHL() + 1)
		return 10
	case 0x24:
		v := c.indexHigh()
		r := v + 1
		c.setIndexHigh(r)
		c.SetF(incFlags(v, r, c.F()))
		return 8
	case 0x25:
		v := c.indexHigh()
		r := v - 1
		c.setIndexHigh(r)
		c.SetF(decFlags(v, r, c.F()))
		return 8
	case 0x26:
		c.setIndexHigh(c.fetch())
		return 11
	case 0x29:
		c.addIndexed(c.indexHL())
		return 15
	case 0x2A:
		addr := c.fetchWord()
		c.setIndexHL(c.readWord(addr))
		return 20
	case 0x2B:
		c.setIndexHL(c.indexHL() - 1)
		return 10
	case 0x2C:
		v := c.indexLow()
		r := v + 1
		c.setIndexLow(r)
		c.SetF(incFlags(v, r, c.F()))
		return 8
	case 0x2D:
		v := c.indexLow()
		r := v - 1
		c.setIndexLow(r)
		c.SetF(decFlags(v, r, c.F()))
		return 8
	case 0x2E:
		c.setIndexLow(c.fetch())
		return 11
	case 0x34:
		c.disp = c.fetchDisplacement()
		addr := c.hlAddr()
		v := c.readByte(addr)
		r := v + 1
		c.writeByte(addr, r)
		c.SetF(incFlags(v, r, c.F()))
		return 23
	case 0x35:
		c.disp = c.fetchDisplacement()
		addr := c.hlAddr()
		v := c.readByte(addr)
		r := v - 1
		c.writeByte(addr, r)
		c.SetF(decFlags(v, r, c.F()))
		return 23
	case 0x36:
		c.disp = c.fetchDisplacement()
		n := c.fetch()
		c.writeByte(c.hlAddr(), n)
		return 19
	case 0x39:
		c.addIndexed(c.SP)
		return 15
	case 0x46, 0x4E, 0x56, 0x5E, 0x66, 0x6E, 0x7E:
		c.disp = c.fetchDisplacement()
		v := c.readByte(c.hlAddr())
		switch opcode {
		case 0x46:
			c.SetB(v)
		case 0x4E:
			c.SetC(v)
		case 0x56:
			c.SetD(v)
		case 0x5E:
			c.SetE(v)
		case 0x66:
			c.SetH(v)
		case 0x6E:
			c.SetL(v)
		case 0x7E:
			c.SetA(v)
		}
		return 19
	case 0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x77:
		c.disp = c.fetchDisplacement()
		var v uint8
		switch opcode & 0x07 {
		case 0:
			v = c.B()
		case 1:
			v = c.Cc()
		case 2:
			v = c.D()
		case 3:
			v = c.E()
		case 4:
			v = c.H()
		case 5:
			v = c.L()
		case 7:
			v = c.A()
		}
		c.writeByte(c.hlAddr(), v)
		return 19
	case 0x86, 0x8E, 0x96, 0x9E, 0xA6, 0xAE, 0xB6, 0xBE:
		c.disp = c.fetchDisplacement()
		v := c.readByte(c.hlAddr())
		switch opcode {
		case 0x86:
			result, f := addFlags(c.A(), v, false)
			c.SetA(result)
			c.SetF(f)
		case 0x8E:
			result, f := addFlags(c.A(), v, c.flag(FlagC))
			c.SetA(result)
			c.SetF(f)
		case 0x96:
			result, f := subFlags(c.A(), v, false)
			c.SetA(result)
			c.SetF(f)
		case 0x9E:
			result, f := subFlags(c.A(), v, c.flag(FlagC))
			c.SetA(result)
			c.SetF(f)
		case 0xA6:
			c.SetA(c.A() & v)
			c.SetF(andFlags(c.A()))
		case 0xAE:
			c.SetA(c.A() ^ v)
			c.SetF(orXorFlags(c.A()))
		case 0xB6:
			c.SetA(c.A() | v)
			c.SetF(orXorFlags(c.A()))
		case 0xBE:
			c.SetF(cpFlags(c.A(), v))
		}
		return 19
	case 0xE1:
		c.setIndexHL(c.pop())
		return 14
	case 0xE3:
		v := c.readWord(c.SP)
		c.writeWord(c.SP, c.indexHL())
		c.setIndexHL(v)
		return 23
	case 0xE5:
		c.push(c.indexHL())
		return 15
	case 0xE9:
		c.PC = c.indexHL()
		return 8
	case 0xF9:
		c.SP = c.indexHL()
		return 10
	default:
		return 4
	}
}

func (c *CPU) addIndexed(value uint16) {
	result, f := addHLFlags(c.F(), c.indexHL(), value)
	c.setIndexHL(result)
	c.SetF(f)
}
