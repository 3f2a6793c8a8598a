package z80

// executeCB decodes a plain CB-prefixed instruction against B/C/D/E/H/L/(HL)/A.
func (c *CPU) executeCB() uint8 {
	opcode := c.fetch()
	reg := opcode & 0x07
	op := (opcode >> 3) & 0x07
	bit := (opcode >> 3) & 0x07

	value := c.readCBOperand(reg)
	cycles := uint8(8)
	if reg == 6 {
		cycles = 15
	}

	if opcode>>6 == 1 { // BIT n,r
		c.SetF(bitFlags(c.F(), bit, value))
		if reg == 6 {
			return 12
		}
		return 8
	}

	var result uint8
	switch opcode >> 6 {
	case 0:
		result = c.rotShift(op, value)
	case 2: // RES n,r
		result = value &^ (1 << bit)
	case 3: // SET n,r
		result = value | (1 << bit)
	}
	c.writeCBOperand(reg, result)
	return cycles
}

func (c *CPU) readCBOperand(reg uint8) uint8 {
	switch reg {
	case 0:
		return c.B()
	case 1:
		return c.Cc()
	case 2:
		return c.D()
	case 3:
		return c.E()
	case 4:
		return c.H()
	case 5:
		return c.L()
	case 6:
		return c.readByte(c.HL)
	default: // 7
		return c.A()
	}
}

func (c *CPU) writeCBOperand(reg uint8, v uint8) {
	switch reg {
	case 0:
		c.SetB(v)
	case 1:
		c.SetC(v)
	case 2:
		c.SetD(v)
	case 3:
		c.SetE(v)
	case 4:
		c.SetH(v)
	case 5:
		c.SetL(v)
	case 6:
		c.writeByte(c.HL, v)
	default: // 7
		c.SetA(v)
	}
}

// rotShift dispatches the 8 CB rotate/shift variants (6 = SLL, undocumented).
func (c *CPU) rotShift(op uint8, value uint8) uint8 {
	switch op {
	case 0:
		return c.rlc(value)
	case 1:
		return c.rrc(value)
	case 2:
		return c.rl(value)
	case 3:
		return c.rr(value)
	case 4:
		return c.sla(value)
	case 5:
		return c.sra(value)
	case 6:
		return c.sll(value)
	default: // 7
		return c.srl(value)
	}
}

func (c *CPU) rlc(value uint8) uint8 {
	carry := value >> 7
	result := (value << 1) | carry
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

func (c *CPU) rrc(value uint8) uint8 {
	carry := value & 1
	result := (value >> 1) | (carry << 7)
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

func (c *CPU) rl(value uint8) uint8 {
	oldCarry := uint8(0)
	if c.flag(FlagC) {
		oldCarry = 1
	}
	newCarry := value >> 7
	result := (value << 1) | oldCarry
	c.SetF(rotShiftFlags(result, newCarry != 0))
	return result
}

func (c *CPU) rr(value uint8) uint8 {
	oldCarry := uint8(0)
	if c.flag(FlagC) {
		oldCarry = 0x80
	}
	newCarry := value & 1
	result := (value >> 1) | oldCarry
	c.SetF(rotShiftFlags(result, newCarry != 0))
	return result
}

func (c *CPU) sla(value uint8) uint8 {
	carry := value >> 7
	result := value << 1
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

func (c *CPU) sra(value uint8) uint8 {
	carry := value & 1
	result := (value >> 1) | (value & 0x80)
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

// sll is the undocumented "shift logical left" that shifts in a 1 at bit 0.
func (c *CPU) sll(value uint8) uint8 {
	carry := value >> 7
	result := (value << 1) | 1
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

func (c *CPU) srl(value uint8) uint8 {
	carry := value & 1
	result := value >> 1
	c.SetF(rotShiftFlags(result, carry != 0))
	return result
}

// executeIndexedCBPrefix implements DDCB/FDCB: the displacement byte is
// fetched before the opcode byte (reversed order from DD/FD's own
// opcode-then-operand shape), and the operand is always (IX+d)/(IY+d)
// regardless of the opcode's low 3 bits. Non-BIT opcodes whose low 3 bits
// don't select 6 additionally copy the result into that register.
func (c *CPU) executeIndexedCBPrefix() uint8 {
	c.disp = c.fetchDisplacement()
	opcode := c.fetch()
	addr := c.hlAddr()
	value := c.readByte(addr)
	bit := (opcode >> 3) & 0x07
	op := (opcode >> 3) & 0x07

	if opcode>>6 == 1 { // BIT n,(IX/IY+d)
		c.SetF(bitFlags(c.F(), bit, value))
		return 20
	}

	var result uint8
	switch opcode >> 6 {
	case 0:
		result = c.rotShift(op, value)
	case 2:
		result = value &^ (1 << bit)
	case 3:
		result = value | (1 << bit)
	}
	c.writeByte(addr, result)

	reg := opcode & 0x07
	if reg != 6 {
		c.writeCBOperand(reg, result)
	}
	return 23
}
