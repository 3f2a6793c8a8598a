package snapshot

import (
	"fmt"

	"github.com/eng2007/zxgo/internal/memory"
	"github.com/eng2007/zxgo/internal/z80"
)

// LoadZ80 loads a .z80 snapshot (v1, v2, or v3), grounded on
// original_source/src/snapshot.rs load_z80.
func LoadZ80(data []byte, cpu *z80.CPU, mem *memory.Map) error {
	if len(data) < 30 {
		return fmt.Errorf("snapshot: .z80 file too short")
	}
	if le16(data[6], data[7]) == 0 {
		if len(data) < 32 || int(le16(data[30], data[31])) < 3 || len(data) < 32+int(le16(data[30], data[31])) {
			return fmt.Errorf("snapshot: .z80 extra header truncated")
		}
		for b := data[32+int(le16(data[30], data[31])):]; len(b) >= 3; {
			n := int(le16(b[0], b[1]))
			if n == 0xFFFF {
				n = 0x4000
			}
			if len(b) < 3+n {
				return fmt.Errorf("snapshot: .z80 memory block truncated")
			}
			b = b[3+n:]
		}
	}

	cpu.SetA(data[0])
	cpu.SetF(data[1])
	cpu.BC = le16(data[2], data[3])
	cpu.HL = le16(data[4], data[5])
	pcV1 := le16(data[6], data[7])
	cpu.SP = le16(data[8], data[9])
	cpu.I = data[10]
	r7 := data[11]

	flags1 := data[12]
	if flags1 == 0xFF {
		flags1 = 1
	}
	r := r7 & 0x7F
	if flags1&0x01 != 0 {
		r |= 0x80
	}
	cpu.R = r
	border := (flags1 >> 1) & 0x07
	_ = border
	compressed := flags1&0x20 != 0

	cpu.DE = le16(data[13], data[14])
	cpu.BCPrime = le16(data[15], data[16])
	cpu.DEPrime = le16(data[17], data[18])
	cpu.HLPrime = le16(data[19], data[20])
	afPrimeA, afPrimeF := data[21], data[22]
	cpu.AFPrime = le16(afPrimeF, afPrimeA)
	cpu.IY = le16(data[23], data[24])
	cpu.IX = le16(data[25], data[26])
	cpu.IFF1 = data[27] != 0
	cpu.IFF2 = data[28] != 0
	cpu.IM = data[29] & 0x03

	if pcV1 != 0 {
		cpu.PC = pcV1
		body := data[30:]
		if compressed {
			body = decompressBlock(body)
		}
		copyInto48K(mem, body)
		return nil
	}

	// v2/v3: an extra header follows, then a real PC, then a hardware-mode
	// byte that decides how page numbers map onto addresses.
	extraLen := int(le16(data[30], data[31]))
	extra := data[32 : 32+extraLen]
	cpu.PC = le16(extra[0], extra[1])
	hwMode := extra[2]
	is128K := hwMode >= 3

	blocks := data[32+extraLen:]
	for len(blocks) >= 3 {
		blockLen := int(le16(blocks[0], blocks[1]))
		page := blocks[2]
		blocks = blocks[3:]
		var raw []byte
		if blockLen == 0xFFFF {
			raw = blocks[:0x4000]
			blocks = blocks[0x4000:]
		} else {
			raw = decompressBlock(blocks[:blockLen])
			blocks = blocks[blockLen:]
		}
		writeZ80Page(mem, page, is128K, raw)
	}
	return nil
}

// writeZ80Page maps a .z80 page number onto the address space, following
// original_source/src/snapshot.rs's page tables for 48K and 128K mode.
func writeZ80Page(mem *memory.Map, page uint8, is128K bool, data []byte) {
	if is128K {
		if page < 3 || page > 10 {
			return
		}
		bank := int(page) - 3
		copy(mem.RAM()[bank*memory.BankSize:], data)
		return
	}
	var addr uint16
	switch page {
	case 4:
		addr = 0x8000
	case 5:
		addr = 0xC000
	case 8:
		addr = 0x4000
	default:
		return
	}
	for i, b := range data {
		mem.Write(addr+uint16(i), b)
	}
}

func copyInto48K(mem *memory.Map, data []byte) {
	for i := 0; i < len(data) && i < 49152; i++ {
		mem.Write(uint16(0x4000+i), data[i])
	}
}

// decompressBlock expands the "ED ED count byte" RLE scheme .z80 files use.
func decompressBlock(in []byte) []byte {
	out := make([]byte, 0, len(in)*2)
	for i := 0; i < len(in); {
		if i+3 < len(in) && in[i] == 0xED && in[i+1] == 0xED {
			count := int(in[i+2])
			value := in[i+3]
			for n := 0; n < count; n++ {
				out = append(out, value)
			}
			i += 4
			continue
		}
		out = append(out, in[i])
		i++
	}
	return out
}
