package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng2007/zxgo/internal/memory"
	"github.com/eng2007/zxgo/internal/z80"
)

type noopPorts struct{}

func (noopPorts) In(uint16) uint8    { return 0xFF }
func (noopPorts) Out(uint16, uint8) {}

func newTestCPU(mem *memory.Map) *z80.CPU {
	return z80.NewCPU(mem, noopPorts{})
}

func TestLoadROMSingleImageGoesToSlotZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "48.rom")
	data := make([]byte, memory.BankSize)
	data[0] = 0xAA
	require.NoError(t, os.WriteFile(path, data, 0o644))

	mem := memory.New(false)
	require.NoError(t, LoadROM(path, mem))
	assert.Equal(t, uint8(0xAA), mem.Read(0x0000))
}

func TestLoadROMTwoImagesSplitAcrossSlots(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "128.rom")
	data := make([]byte, 2*memory.BankSize)
	data[0] = 0x11
	data[memory.BankSize] = 0x22
	require.NoError(t, os.WriteFile(path, data, 0o644))

	mem := memory.New(false)
	require.NoError(t, LoadROM(path, mem))
	assert.Equal(t, uint8(0x11), mem.Read(0x0000))

	mem.WritePagingPort(0x10) // select ROM slot 1
	assert.Equal(t, uint8(0x22), mem.Read(0x0000))
}

func TestLoadTRDOSROM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trdos.rom")
	data := make([]byte, memory.BankSize)
	data[0] = 0x99
	require.NoError(t, os.WriteFile(path, data, 0o644))

	mem := memory.New(false)
	require.NoError(t, LoadTRDOSROM(path, mem))
	mem.MaybeActivateOverlay(0x3C00)
	assert.Equal(t, uint8(0x99), mem.Read(0x0000))
}

func TestLoadSNARejectsShortFile(t *testing.T) {
	mem := memory.New(false)
	cpu := newTestCPU(mem)
	err := LoadSNA(make([]byte, 10), cpu, mem)
	assert.Error(t, err)
}

func buildSNA() []byte {
	data := make([]byte, sna48KSize)
	data[0] = 0x12                        // I
	data[19] = 0x04                       // IFF2 set
	data[20] = 0x01                       // R
	data[21], data[22] = 0x34, 0x12       // AF = 0x1234
	data[23], data[24] = 0x00, 0x60       // SP = 0x6000
	data[25] = 1                          // IM 1
	// return address 0x8000 stored at the saved SP (0x6000), i.e. 0x2000
	// bytes into the 48K RAM image that follows the header.
	ramOffset := snaHeaderSize + (0x6000 - 0x4000)
	data[ramOffset] = 0x00
	data[ramOffset+1] = 0x80
	return data
}

func TestLoadSNARestoresRegistersAndPC(t *testing.T) {
	mem := memory.New(false)
	cpu := newTestCPU(mem)
	data := buildSNA()

	require.NoError(t, LoadSNA(data, cpu, mem))
	assert.Equal(t, uint8(0x12), cpu.I)
	assert.True(t, cpu.IFF1)
	assert.True(t, cpu.IFF2)
	assert.Equal(t, uint16(0x1234), cpu.AF)
	assert.Equal(t, uint8(1), cpu.IM)
	assert.Equal(t, uint16(0x8000), cpu.PC, "PC popped from the snapshot's stack")
	assert.Equal(t, uint16(0x6002), cpu.SP)
}

func TestDecompressBlockExpandsRunLength(t *testing.T) {
	in := []byte{0x01, 0xED, 0xED, 0x03, 0x42, 0x02}
	out := decompressBlock(in)
	assert.Equal(t, []byte{0x01, 0x42, 0x42, 0x42, 0x02}, out)
}

func TestDecompressBlockLeavesLiteralEDAlone(t *testing.T) {
	in := []byte{0xED, 0x00, 0x01}
	out := decompressBlock(in)
	assert.Equal(t, []byte{0xED, 0x00, 0x01}, out)
}

func TestLoadZ80V1Uncompressed(t *testing.T) {
	data := make([]byte, 30+49152)
	data[0] = 0x42 // A
	data[1] = 0x01 // F
	data[6], data[7] = 0x00, 0x80 // PC = 0x8000 (v1 format)
	data[12] = 0x00                // flags1, not compressed
	data[27] = 0x01                // IFF1
	data[28] = 0x01                // IFF2
	data[30] = 0x77                // first byte of the 48K RAM dump

	mem := memory.New(false)
	cpu := newTestCPU(mem)
	require.NoError(t, LoadZ80(data, cpu, mem))
	assert.Equal(t, uint8(0x42), cpu.A())
	assert.Equal(t, uint16(0x8000), cpu.PC)
	assert.True(t, cpu.IFF1)
	assert.Equal(t, uint8(0x77), mem.Read(0x4000))
}

func TestLoadZ80RejectsShortFile(t *testing.T) {
	mem := memory.New(false)
	cpu := newTestCPU(mem)
	err := LoadZ80(make([]byte, 5), cpu, mem)
	assert.Error(t, err)
}
