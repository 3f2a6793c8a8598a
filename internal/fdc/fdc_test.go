package fdc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eng2007/zxgo/internal/trd"
)

func newTestController() (*Controller, *trd.Disk) {
	c := New(nil)
	d := trd.New()
	c.LoadDisk(d)
	return c, d
}

func TestReadStatusReportsNotReadyWithoutDisk(t *testing.T) {
	c := New(nil)
	assert.NotZero(t, c.ReadStatus()&statusNotReady)
}

func TestReadStatusClearsINTRQ(t *testing.T) {
	c, _ := newTestController()
	c.intrq = true
	c.ReadStatus()
	assert.False(t, c.IsINTRQ())
}

func TestRestoreCommandSeeksToTrackZero(t *testing.T) {
	c, _ := newTestController()
	c.track = 40
	c.WriteCommand(0x03) // restore, high nibble 0x0
	assert.Equal(t, uint8(0), c.track)
	assert.True(t, c.IsINTRQ())
}

func TestSeekCommandMovesToDataRegisterTrack(t *testing.T) {
	c, _ := newTestController()
	c.WriteTrack(0)
	c.data = 12
	c.WriteCommand(0x10) // seek
	assert.Equal(t, uint8(12), c.track)
}

func TestReadSectorCommandFillsBufferAndSetsDRQ(t *testing.T) {
	c, d := newTestController()
	sector, ok := d.ReadSector(5, 0, 1)
	require.True(t, ok)
	sector[0] = 0x42
	c.WriteTrack(5)
	c.WriteSectorReg(1)
	c.WriteCommand(0x80) // read sector

	assert.True(t, c.IsDRQ())
	assert.Equal(t, uint8(0x42), c.ReadData())
}

func TestReadSectorCommandWithoutDiskRaisesRecordNotFound(t *testing.T) {
	c := New(nil)
	c.WriteCommand(0x80)
	assert.NotZero(t, c.status&statusRecordNotFound)
	assert.Zero(t, c.status&statusBusy)
	assert.True(t, c.IsINTRQ())
}

func TestReadDataAdvancesThroughWholeSectorThenSetsINTRQ(t *testing.T) {
	c, _ := newTestController()
	c.WriteTrack(1)
	c.WriteSectorReg(1)
	c.WriteCommand(0x80)

	for i := 0; i < 255; i++ {
		c.ReadData()
	}
	assert.True(t, c.IsDRQ(), "255 of 256 bytes read, still mid-transfer")
	c.ReadData()
	assert.False(t, c.IsDRQ())
	assert.True(t, c.IsINTRQ())
}

func TestWriteSectorCommandPersistsBufferToDisk(t *testing.T) {
	c, d := newTestController()
	c.WriteTrack(2)
	c.WriteSectorReg(3)
	c.WriteCommand(0xA0) // write sector

	for i := 0; i < 256; i++ {
		c.WriteData(uint8(i))
	}
	assert.True(t, c.IsINTRQ())

	written, ok := d.ReadSector(2, 0, 3)
	require.True(t, ok)
	assert.Equal(t, uint8(0), written[0])
	assert.Equal(t, uint8(255), written[255])
}

func TestReadAddressCommandReturnsTrackAndSide(t *testing.T) {
	c, _ := newTestController()
	c.WriteSystem(sysSide | sysReset) // side selected, reset line held high (inactive)
	c.WriteTrack(7)
	c.WriteCommand(0xC0) // read address

	assert.Equal(t, uint8(7), c.ReadData())
	assert.Equal(t, uint8(1), c.ReadData(), "side from the system register")
}

func TestForceInterruptAbortsWithoutRaisingINTRQ(t *testing.T) {
	c, _ := newTestController()
	c.WriteTrack(1)
	c.WriteSectorReg(1)
	c.WriteCommand(0x80) // start a read, leaves busy+drq set
	c.WriteCommand(0xD0) // force interrupt

	assert.False(t, c.IsDRQ())
	assert.False(t, c.IsINTRQ())
	assert.Zero(t, c.status&statusBusy)
}

func TestWriteSystemActiveLowResetClearsState(t *testing.T) {
	c, _ := newTestController()
	c.track = 30
	c.intrq = true
	c.WriteSystem(0x00) // reset bit low
	assert.Equal(t, uint8(0), c.track)
	assert.False(t, c.IsINTRQ())
}

func TestReadSystemReportsDRQAndINTRQBits(t *testing.T) {
	c, _ := newTestController()
	c.drq = true
	c.intrq = true
	v := c.ReadSystem()
	assert.NotZero(t, v&0x80)
	assert.NotZero(t, v&0x40)
}

func TestUnloadDiskForcesNotReady(t *testing.T) {
	c, _ := newTestController()
	c.UnloadDisk()
	assert.NotZero(t, c.ReadStatus()&statusNotReady)
}
