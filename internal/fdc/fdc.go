// Package fdc implements a WD1793-compatible floppy disk controller as
// found behind the Beta-Disk/TR-DOS interface: four addressable registers
// (command/status, track, sector, data) plus a system register, driving a
// TRD disk image through seek/read/write sector commands.
package fdc

import (
	"log"

	"github.com/eng2007/zxgo/internal/trd"
)

// Status register bits.
const (
	statusBusy           = 0x01
	statusDRQ            = 0x02
	statusTrack0         = 0x04
	statusLostData       = 0x04 // alias, meaning depends on command type
	statusCRCError       = 0x08
	statusRecordNotFound = 0x10
	statusNotReady       = 0x80
)

// System register bits (register @ port 0xFF).
const (
	sysDriveMask = 0x03
	sysSide      = 0x10
	sysReset     = 0x04 // active low: 0 = reset asserted
)

// State is the controller's command state machine.
type State int

const (
	Idle State = iota
	Seeking
	ReadingSector
	WritingSector
	ReadingAddress
)

// Controller is a WD1793-compatible FDC, structured the way
// newhook-6502/c64/cia/cia.go structures a register-file peripheral chip:
// a handful of addressable registers plus an internal state machine, with
// Read/Write dispatch by register offset.
type Controller struct {
	status  uint8
	track   uint8
	sector  uint8
	data    uint8
	system  uint8

	state State
	drq   bool
	intrq bool

	buffer    [256]uint8
	bufPos    int
	bufLen    int
	readAddrBuf [6]uint8

	disk *trd.Disk

	Log *log.Logger // nil is valid; logging is best-effort diagnostics only
}

// New returns a controller with no disk loaded.
func New(logger *log.Logger) *Controller {
	return &Controller{Log: logger}
}

func (c *Controller) logf(format string, args ...interface{}) {
	if c.Log != nil {
		c.Log.Printf(format, args...)
	}
}

// LoadDisk mounts a TRD image for command execution to operate on.
func (c *Controller) LoadDisk(d *trd.Disk) { c.disk = d }

// UnloadDisk removes the mounted disk; subsequent reads return no data and
// seeks report not-ready.
func (c *Controller) UnloadDisk() { c.disk = nil }

// ReadStatus reads the command/status register (port 0x1F) and clears
// INTRQ as a side effect — the one register read that does.
func (c *Controller) ReadStatus() uint8 {
	c.intrq = false
	s := c.status
	if c.drq {
		s |= statusDRQ
	}
	if c.track == 0 {
		s |= statusTrack0
	}
	if c.disk == nil {
		s |= statusNotReady
	}
	return s
}

// WriteCommand decodes a command byte (port 0x1F) by its high nibble.
func (c *Controller) WriteCommand(value uint8) {
	c.intrq = false
	switch value >> 4 {
	case 0x0:
		c.cmdRestore(value)
	case 0x1:
		c.cmdSeek(value)
	case 0x2, 0x3, 0x4, 0x5, 0x6, 0x7:
		c.cmdStep(value)
	case 0x8, 0x9:
		c.cmdReadSector(value)
	case 0xA, 0xB:
		c.cmdWriteSector(value)
	case 0xC:
		c.cmdReadAddress(value)
	case 0xD:
		c.cmdForceInterrupt(value)
	default:
		c.logf("fdc: unhandled command byte %#02x", value)
	}
}

// ReadTrack/WriteTrack are the track register (port 0x3F).
func (c *Controller) ReadTrack() uint8     { return c.track }
func (c *Controller) WriteTrack(v uint8)   { c.track = v }

// ReadSectorReg/WriteSectorReg are the sector register (port 0x5F).
func (c *Controller) ReadSectorReg() uint8   { return c.sector }
func (c *Controller) WriteSectorReg(v uint8) { c.sector = v }

// ReadData reads the data register (port 0x7F) during a read command,
// advancing the sector buffer one byte at a time.
func (c *Controller) ReadData() uint8 {
	if c.state != ReadingSector && c.state != ReadingAddress {
		return c.data
	}
	c.drq = false
	if c.bufPos < c.bufLen {
		c.data = c.buffer[c.bufPos]
		c.bufPos++
	}
	if c.bufPos >= c.bufLen {
		c.status &^= statusBusy
		c.intrq = true
		c.state = Idle
	} else {
		c.drq = true
	}
	return c.data
}

// WriteData writes the data register (port 0x7F) during a write command.
func (c *Controller) WriteData(v uint8) {
	if c.state != WritingSector {
		c.data = v
		return
	}
	c.drq = false
	if c.bufPos < c.bufLen {
		c.buffer[c.bufPos] = v
		c.bufPos++
	}
	if c.bufPos >= c.bufLen {
		c.executeWriteSector()
		c.status &^= statusBusy
		c.intrq = true
		c.state = Idle
	} else {
		c.drq = true
	}
}

// ReadSystem reads the system register (port 0xFF). Unlike ReadStatus,
// this does NOT clear INTRQ.
func (c *Controller) ReadSystem() uint8 {
	v := uint8(0x3F) // bits 0-5 always read as 1
	if c.intrq {
		v |= 0x40
	}
	if c.drq {
		v |= 0x80
	}
	return v
}

// WriteSystem writes the system register (port 0xFF): drive/side select,
// motor, and an active-low reset line.
func (c *Controller) WriteSystem(v uint8) {
	c.system = v
	if v&sysReset == 0 {
		c.reset()
	}
}

func (c *Controller) reset() {
	c.status = 0
	c.track = 0
	c.sector = 1
	c.data = 0
	c.state = Idle
	c.drq = false
	c.intrq = false
	c.bufPos, c.bufLen = 0, 0
}

func (c *Controller) cmdRestore(cmd uint8) {
	c.track = 0
	c.intrq = true
}

func (c *Controller) cmdSeek(cmd uint8) {
	c.track = c.data
	c.intrq = true
}

// cmdStep implements the Step/Step-In/Step-Out family. The controller has
// no concept of head direction beyond the track register, so it "holds
// position": the track register doubles as the head position, so the
// command's update-track-register bit (bit 4) has nothing to copy and the
// track register is left unchanged either way, matching
// original_source/src/fdc.rs cmd_step.
func (c *Controller) cmdStep(cmd uint8) {
	if cmd&0x10 != 0 {
		// track register already reflects the caller's desired position
	}
	c.intrq = true
}

func (c *Controller) cmdReadSector(cmd uint8) {
	if c.disk == nil {
		c.status |= statusRecordNotFound
		c.status &^= statusBusy
		c.intrq = true
		return
	}
	side := uint8(0)
	if c.system&sysSide != 0 {
		side = 1
	}
	data, ok := c.disk.ReadSector(c.track, side, c.sector)
	if !ok {
		c.status |= statusRecordNotFound
		c.status &^= statusBusy
		c.intrq = true
		return
	}
	copy(c.buffer[:], data)
	c.bufPos, c.bufLen = 0, len(data)
	c.status |= statusBusy
	c.drq = true
	c.state = ReadingSector
}

func (c *Controller) cmdWriteSector(cmd uint8) {
	if c.disk == nil {
		c.status |= statusRecordNotFound
		c.status &^= statusBusy
		c.intrq = true
		return
	}
	c.bufPos, c.bufLen = 0, 256
	c.status |= statusBusy
	c.drq = true
	c.state = WritingSector
}

func (c *Controller) executeWriteSector() {
	if c.disk == nil {
		return
	}
	side := uint8(0)
	if c.system&sysSide != 0 {
		side = 1
	}
	c.disk.WriteSector(c.track, side, c.sector, c.buffer[:256])
}

func (c *Controller) cmdReadAddress(cmd uint8) {
	side := uint8(0)
	if c.system&sysSide != 0 {
		side = 1
	}
	c.readAddrBuf = [6]uint8{c.track, side, 1, 1, 0, 0}
	copy(c.buffer[:], c.readAddrBuf[:])
	c.bufPos, c.bufLen = 0, len(c.readAddrBuf)
	c.status |= statusBusy
	c.drq = true
	c.state = ReadingAddress
}

// cmdForceInterrupt implements only the unconditional form: it always
// terminates the current command without raising INTRQ, matching
// original_source/src/fdc.rs cmd_force_interrupt (the condition-bit forms
// that would raise INTRQ are not implemented there either).
func (c *Controller) cmdForceInterrupt(cmd uint8) {
	c.status &^= statusBusy
	c.state = Idle
	c.drq = false
}

func (c *Controller) IsDRQ() bool   { return c.drq }
func (c *Controller) IsINTRQ() bool { return c.intrq }
