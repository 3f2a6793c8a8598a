package trd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesRejectsWrongSize(t *testing.T) {
	_, err := FromBytes(make([]byte, 100))
	assert.Error(t, err)
}

func TestFromBytesAcceptsExactSize(t *testing.T) {
	d, err := FromBytes(make([]byte, Size))
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestReadWriteSectorRoundTrip(t *testing.T) {
	d := New()
	payload := make([]byte, SectorSize)
	for i := range payload {
		payload[i] = uint8(i)
	}
	ok := d.WriteSector(10, 1, 5, payload)
	require.True(t, ok)

	got, ok := d.ReadSector(10, 1, 5)
	require.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestReadSectorOutOfRange(t *testing.T) {
	d := New()
	_, ok := d.ReadSector(Tracks, 0, 1)
	assert.False(t, ok, "track out of range")
	_, ok = d.ReadSector(0, Sides, 1)
	assert.False(t, ok, "side out of range")
	_, ok = d.ReadSector(0, 0, 0)
	assert.False(t, ok, "sector is 1-based, 0 is invalid")
	_, ok = d.ReadSector(0, 0, SectorsPerTrack+1)
	assert.False(t, ok, "sector beyond last on track")
}

func TestWriteSectorRejectsWrongLength(t *testing.T) {
	d := New()
	ok := d.WriteSector(0, 0, 1, make([]byte, 10))
	assert.False(t, ok)
}

func TestSectorsOnDifferentTracksDoNotOverlap(t *testing.T) {
	d := New()
	d.WriteSector(0, 0, 1, bytesOf(0xAA))
	d.WriteSector(1, 0, 1, bytesOf(0xBB))

	s0, _ := d.ReadSector(0, 0, 1)
	s1, _ := d.ReadSector(1, 0, 1)
	assert.Equal(t, uint8(0xAA), s0[0])
	assert.Equal(t, uint8(0xBB), s1[0])
}

func TestDiskInfoDecodesNameAndCounts(t *testing.T) {
	d := New()
	sec, ok := d.ReadSector(0, 0, 10) // track 0, side 0, sector 10 (1-based) == infoSector
	require.True(t, ok)
	infoSec := make([]byte, SectorSize)
	copy(infoSec, sec)
	infoSec[0xE1] = 4   // first free sector
	infoSec[0xE2] = 20  // first free track
	infoSec[0xE3] = 0x16
	infoSec[0xE4] = 3 // num files
	infoSec[0xE5] = 0x10
	infoSec[0xE6] = 0x00
	infoSec[0xE7] = 0x55
	copy(infoSec[0xF5:0xFD], "MYDISK  ")
	require.True(t, d.WriteSector(0, 0, 10, infoSec))

	info, ok := d.DiskInfo()
	require.True(t, ok)
	assert.Equal(t, uint8(4), info.FirstFreeSector)
	assert.Equal(t, uint8(20), info.FirstFreeTrack)
	assert.Equal(t, uint8(0x16), info.DiskType)
	assert.Equal(t, uint8(3), info.NumFiles)
	assert.Equal(t, uint16(0x10), info.FreeSectors)
	assert.Equal(t, uint8(0x55), info.DiskID)
	assert.Equal(t, "MYDISK", info.DiskName)
}

func TestCatalogSkipsEmptyEntriesAndTrimsNames(t *testing.T) {
	d := New()
	sec, _ := d.ReadSector(0, 0, 1)
	entry := make([]byte, SectorSize)
	copy(entry, sec)
	copy(entry[0:8], "GAME    ")
	entry[8] = 'C'
	entry[0x0D] = 12
	entry[0x0E] = 1
	entry[0x0F] = 5
	require.True(t, d.WriteSector(0, 0, 1, entry))

	entries, ok := d.Catalog()
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "GAME", entries[0].Filename)
	assert.Equal(t, byte('C'), entries[0].Extension)
	assert.Equal(t, uint8(12), entries[0].LengthSectors)
	assert.Equal(t, uint8(1), entries[0].StartSector)
	assert.Equal(t, uint8(5), entries[0].StartTrack)
}

func bytesOf(b byte) []byte {
	buf := make([]byte, SectorSize)
	buf[0] = b
	return buf
}
