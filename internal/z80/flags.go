package z80

// Flag bit positions within the F register.
const (
	FlagC  uint8 = 0x01 // carry
	FlagN  uint8 = 0x02 // add/subtract
	FlagPV uint8 = 0x04 // parity/overflow
	FlagF3 uint8 = 0x08 // undocumented, copy of result bit 3
	FlagH  uint8 = 0x10 // half-carry
	FlagF5 uint8 = 0x20 // undocumented, copy of result bit 5
	FlagZ  uint8 = 0x40 // zero
	FlagS  uint8 = 0x80 // sign
)

// sz53Table and parityTable are precomputed over all 256 byte values,
// following the same ported-table technique oisee-z80-optimizer/pkg/cpu/flags.go
// uses (there credited to remogatto/z80): S/Z/F5/F3 and parity depend only on
// the result byte, so they are cheap to precompute once.
var sz53Table [256]uint8
var sz53pTable [256]uint8
var parityTable [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		v := uint8(i)
		sz := v & (FlagF3 | FlagF5 | FlagS)
		if v == 0 {
			sz |= FlagZ
		}
		sz53Table[i] = sz

		p := uint8(0)
		if popcount8(v)%2 == 0 {
			p = FlagPV
		}
		parityTable[i] = p
		sz53pTable[i] = sz | p
	}
}

func popcount8(v uint8) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func sz53(result uint8) uint8 {
	return sz53Table[result]
}

func parityFlag(result uint8) uint8 {
	return parityTable[result]
}

// addFlags computes the F byte for ADD/ADC A,n: a + b + carryIn -> result.
func addFlags(a, b uint8, carryIn bool) (result uint8, f uint8) {
	cin := uint8(0)
	if carryIn {
		cin = 1
	}
	sum := uint16(a) + uint16(b) + uint16(cin)
	result = uint8(sum)
	f = sz53(result)
	if sum > 0xFF {
		f |= FlagC
	}
	if (a&0x0F)+(b&0x0F)+cin > 0x0F {
		f |= FlagH
	}
	sa, sb := int16(int8(a)), int16(int8(b))
	signedSum := sa + sb + int16(cin)
	if signedSum < -128 || signedSum > 127 {
		f |= FlagPV
	}
	return result, f
}

// subFlags computes the F byte for SUB/SBC/CP A,n: a - b - carryIn -> result.
// N is always set. Callers needing CP's operand-sourced F3/F5 override them
// after calling this.
func subFlags(a, b uint8, carryIn bool) (result uint8, f uint8) {
	cin := uint8(0)
	if carryIn {
		cin = 1
	}
	result = a - b - cin
	f = sz53(result) | FlagN
	diff := int16(a) - int16(b) - int16(cin)
	if diff < 0 {
		f |= FlagC
	}
	if (a & 0x0F) < (b&0x0F)+cin {
		f |= FlagH
	}
	sa, sb := int16(int8(a)), int16(int8(b))
	signedDiff := sa - sb - int16(cin)
	if signedDiff < -128 || signedDiff > 127 {
		f |= FlagPV
	}
	return result, f
}

// cpFlags is SUB's flags, except the undocumented F3/F5 bits are copied from
// the operand b rather than from the result (spec contract, §4.1).
func cpFlags(a, b uint8) uint8 {
	_, f := subFlags(a, b, false)
	f &^= FlagF3 | FlagF5
	f |= b & (FlagF3 | FlagF5)
	return f
}

func andFlags(result uint8) uint8 {
	return sz53(result) | FlagH | parityFlag(result)
}

func orXorFlags(result uint8) uint8 {
	return sz53(result) | parityFlag(result)
}

// incFlags computes the F byte for INC r, preserving the caller's carry.
func incFlags(before, after, carry uint8) uint8 {
	f := sz53(after)
	if before == 0x7F {
		f |= FlagPV
	}
	if before&0x0F == 0x0F {
		f |= FlagH
	}
	return f | (carry & FlagC)
}

// decFlags computes the F byte for DEC r, preserving the caller's carry.
func decFlags(before, after, carry uint8) uint8 {
	f := sz53(after) | FlagN
	if before == 0x80 {
		f |= FlagPV
	}
	if before&0x0F == 0x00 {
		f |= FlagH
	}
	return f | (carry & FlagC)
}

// addHLFlags computes flags for ADD HL,rr (and the IX/IY equivalents): S, Z
// and PV are left as they were; N=0; C/H from the 16-bit add; F3/F5 come
// from the high byte of the result.
func addHLFlags(prevF uint8, hl, value uint16) (result uint16, f uint8) {
	result = hl + value
	f = prevF & (FlagS | FlagZ | FlagPV)
	if uint32(hl)+uint32(value) > 0xFFFF {
		f |= FlagC
	}
	if (hl&0x0FFF)+(value&0x0FFF) > 0x0FFF {
		f |= FlagH
	}
	f |= uint8(result>>8) & (FlagF3 | FlagF5)
	return result, f
}

// adcHLFlags / sbcHLFlags compute full S/Z/H/PV/N/C plus F3/F5 from the high
// byte, per original_source/src/cpu/extended.rs adc_hl/sbc_hl.
func adcHLFlags(carryIn bool, hl, value uint16) (result uint16, f uint8) {
	cin := uint16(0)
	if carryIn {
		cin = 1
	}
	result = hl + value + cin
	if result == 0 {
		f |= FlagZ
	}
	if result&0x8000 != 0 {
		f |= FlagS
	}
	f |= uint8(result>>8) & (FlagF3 | FlagF5)
	if uint32(hl)+uint32(value)+uint32(cin) > 0xFFFF {
		f |= FlagC
	}
	if (hl&0x0FFF)+(value&0x0FFF)+cin > 0x0FFF {
		f |= FlagH
	}
	shl, sv := int32(int16(hl)), int32(int16(value))
	sum := shl + sv + int32(cin)
	if sum < -32768 || sum > 32767 {
		f |= FlagPV
	}
	return result, f
}

func sbcHLFlags(carryIn bool, hl, value uint16) (result uint16, f uint8) {
	cin := uint16(0)
	if carryIn {
		cin = 1
	}
	result = hl - value - cin
	f = FlagN
	if result == 0 {
		f |= FlagZ
	}
	if result&0x8000 != 0 {
		f |= FlagS
	}
	f |= uint8(result>>8) & (FlagF3 | FlagF5)
	if int32(hl)-int32(value)-int32(cin) < 0 {
		f |= FlagC
	}
	if (hl & 0x0FFF) < (value&0x0FFF)+cin {
		f |= FlagH
	}
	shl, sv := int32(int16(hl)), int32(int16(value))
	diff := shl - sv - int32(cin)
	if diff < -32768 || diff > 32767 {
		f |= FlagPV
	}
	return result, f
}

// rotShiftFlags is shared by RLC/RRC/RL/RR/SLA/SRA/SLL/SRL: H=0, N=0,
// parity+SZ53 from the result, C from the bit shifted out.
func rotShiftFlags(result uint8, carryOut bool) uint8 {
	f := sz53(result) | parityFlag(result)
	if carryOut {
		f |= FlagC
	}
	return f
}

// bitFlags computes BIT n,r: Z=PV=(tested bit clear); H=1; N=0; S set only
// when testing bit 7 and it is set; C unchanged; F3/F5 from the source byte.
func bitFlags(prevF uint8, bit uint8, value uint8) uint8 {
	test := value & (1 << bit)
	f := (prevF & FlagC) | FlagH
	if test == 0 {
		f |= FlagZ | FlagPV
	}
	if bit == 7 && test != 0 {
		f |= FlagS
	}
	f |= value & (FlagF3 | FlagF5)
	return f
}

// blockTailFlags computes the shared PV/F3/F5 pattern for LDI/LDD/LDIR/LDDR:
// PV reflects BC after decrement; F3/F5 derive from transferredByte+A, per
// original_source/src/cpu/extended.rs ldi/ldd (spec §4.1, §9: "treat as a
// specified contract").
func blockTailFlags(prevF uint8, bcAfter uint16, transferred, a uint8) uint8 {
	f := prevF & (FlagS | FlagZ | FlagC)
	if bcAfter != 0 {
		f |= FlagPV
	}
	n := transferred + a
	f |= n & FlagF3
	f |= (n & 0x02) << 4
	return f
}

// blockCompareFlags computes CPI/CPD/CPIR/CPDR's flags: standard compare
// S/Z/H/N/C against A-value, PV from BC after decrement, and F3/F5 from
// (A-value)-halfCarry rather than from the operand (divergent from CP).
func blockCompareFlags(prevF uint8, a, value uint8, bcAfter uint16) uint8 {
	result := a - value
	f := (prevF & FlagC) | FlagN
	if result == 0 {
		f |= FlagZ
	}
	if result&0x80 != 0 {
		f |= FlagS
	}
	if a&0x0F < value&0x0F {
		f |= FlagH
	}
	if bcAfter != 0 {
		f |= FlagPV
	}
	n := result
	if f&FlagH != 0 {
		n--
	}
	f |= n & FlagF3
	f |= (n & 0x02) << 4
	return f
}

// inFlags computes flags for IN r,(C)'s "set flags from the byte read" step:
// SZ53+parity from the value, carry preserved.
func inFlags(prevF uint8, value uint8) uint8 {
	return sz53(value) | parityFlag(value) | (prevF & FlagC)
}

// blockIOFlags computes INI/IND/OUTI/OUTD's flags: the whole F register is
// replaced by just S/Z (from B after decrement) and N set, per
// original_source/src/cpu/extended.rs ini/ind/outi/outd. H/PV/C/F3/F5 are not
// reproduced here; the original's simplified form clears them.
func blockIOFlags(bAfter uint8) uint8 {
	f := FlagN
	if bAfter == 0 {
		f |= FlagZ
	}
	if bAfter&0x80 != 0 {
		f |= FlagS
	}
	return f
}
