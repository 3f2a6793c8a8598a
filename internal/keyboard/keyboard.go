// Package keyboard implements the ZX Spectrum's 8x5 keyboard matrix as read
// through port 0xFE.
package keyboard

// Matrix holds the pressed/released state of all 40 keys, organized the
// way the hardware scans them: 8 half-rows of 5 keys, selected by which
// high-address-byte bit is held low during an IN A,(0xFE).
type Matrix struct {
	rows [8]uint8 // each row: bit set = key up, bit clear = key down (the same active-low sense as the wire); see Read
}

// NewMatrix returns a matrix with every key released.
func NewMatrix() *Matrix {
	m := &Matrix{}
	for i := range m.rows {
		m.rows[i] = 0x1F
	}
	return m
}

// Row/column layout, outer index is the row, inner the bit position.
var keyNames = [8][5]string{
	{"CAPS SHIFT", "Z", "X", "C", "V"},
	{"A", "S", "D", "F", "G"},
	{"Q", "W", "E", "R", "T"},
	{"1", "2", "3", "4", "5"},
	{"0", "9", "8", "7", "6"},
	{"P", "O", "I", "U", "Y"},
	{"ENTER", "L", "K", "J", "H"},
	{"SPACE", "SYMBOL SHIFT", "M", "N", "B"},
}

// SetKey presses (down=true) or releases a named key. Unknown names are
// ignored: the keyboard has no concept of a key it doesn't have a
// position for.
func (m *Matrix) SetKey(name string, down bool) {
	for row := range keyNames {
		for col := range keyNames[row] {
			if keyNames[row][col] != name {
				continue
			}
			bit := uint8(1 << col)
			if down {
				m.rows[row] &^= bit
			} else {
				m.rows[row] |= bit
			}
			return
		}
	}
}

// Read implements the port-0xFE keyboard half: bits 0-4 of the result are
// low for each pressed key in the selected row(s); a 0 bit in the high
// address byte selects that row. Multiple rows may be selected at once,
// and the result is the AND of all of them, matching real hardware.
func (m *Matrix) Read(highByte uint8) uint8 {
	result := uint8(0x1F)
	for row := 0; row < 8; row++ {
		if highByte&(1<<row) == 0 {
			result &= m.rows[row]
		}
	}
	return result
}
