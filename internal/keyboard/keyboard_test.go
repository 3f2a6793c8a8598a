package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMatrixAllReleased(t *testing.T) {
	m := NewMatrix()
	assert.Equal(t, uint8(0x1F), m.Read(0x00), "every row selected, no key down")
}

func TestSetKeyPressLowersBit(t *testing.T) {
	m := NewMatrix()
	m.SetKey("A", true)
	assert.Equal(t, uint8(0x1E), m.Read(0xFD), "row 1 selected, bit 0 (A) cleared")
}

func TestSetKeyReleaseRestoresBit(t *testing.T) {
	m := NewMatrix()
	m.SetKey("A", true)
	m.SetKey("A", false)
	assert.Equal(t, uint8(0x1F), m.Read(0xFD))
}

func TestSetKeyUnknownNameIsIgnored(t *testing.T) {
	m := NewMatrix()
	m.SetKey("F13", true)
	for row := 0; row < 8; row++ {
		assert.Equal(t, uint8(0x1F), m.rows[row])
	}
}

func TestReadCombinesMultipleSelectedRows(t *testing.T) {
	m := NewMatrix()
	m.SetKey("A", true)  // row 1, bit 0
	m.SetKey("Q", true)  // row 2, bit 0
	highByte := uint8(0xFF) &^ (1<<1 | 1<<2)
	assert.Equal(t, uint8(0x1E), m.Read(highByte), "AND of both rows, both cleared on bit 0")
}

func TestReadUnselectedRowIgnoresPressedKey(t *testing.T) {
	m := NewMatrix()
	m.SetKey("A", true)
	assert.Equal(t, uint8(0x1F), m.Read(0xFF&^(1<<2)), "row 2 selected, row 1's press has no effect")
}

func TestEachColumnBitIndependent(t *testing.T) {
	m := NewMatrix()
	m.SetKey("CAPS SHIFT", true) // row 0, col 0
	m.SetKey("V", true)          // row 0, col 4
	assert.Equal(t, uint8(0x0E), m.Read(0xFE))
}
