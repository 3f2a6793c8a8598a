// Package ioport routes Z80 IN/OUT accesses to the keyboard, the Beta-Disk
// FDC, the 7FFD paging port, and the border/speaker latch, and drives the
// TR-DOS overlay ROM's I/O-activity-based activation rule.
package ioport

import (
	"github.com/eng2007/zxgo/internal/config"
	"github.com/eng2007/zxgo/internal/fdc"
	"github.com/eng2007/zxgo/internal/keyboard"
	"github.com/eng2007/zxgo/internal/memory"
)

// overlayMemory is the slice of memory.Map's surface the router needs:
// enabling/disabling the TR-DOS overlay ROM from I/O activity, and paging.
// The paging-lock state lives only in memory.Map (WritePagingPort is a
// no-op once locked); the router has no shadow copy of its own to avoid
// the two disagreeing when something writes the paging port directly.
type overlayMemory interface {
	EnableTRDOS()
	DisableTRDOS()
	WritePagingPort(value uint8)
}

// Router dispatches port accesses, grounded on
// original_source/src/io.rs IoController.
type Router struct {
	cfg      config.Config
	mem      overlayMemory
	keyboard *keyboard.Matrix
	fdc      *fdc.Controller

	borderColor uint8
}

// New wires a router to its peripherals.
func New(cfg config.Config, mem *memory.Map, kbd *keyboard.Matrix, fd *fdc.Controller) *Router {
	return &Router{cfg: cfg, mem: mem, keyboard: kbd, fdc: fd}
}

func isFDCPort(port uint16) bool {
	switch port & 0xFF {
	case 0x1F, 0x3F, 0x5F, 0x7F, 0xFF:
		return true
	default:
		return false
	}
}

// In implements z80.PortAccessor.
func (r *Router) In(port uint16) uint8 {
	if port&0xFF == 0xFE {
		return r.keyboard.Read(uint8(port >> 8))
	}
	if isFDCPort(port) {
		if r.cfg.OverlayIOMode == config.OverlayIOStrict {
			r.mem.EnableTRDOS()
		}
		switch port & 0xFF {
		case 0x1F:
			return r.fdc.ReadStatus()
		case 0x3F:
			return r.fdc.ReadTrack()
		case 0x5F:
			return r.fdc.ReadSectorReg()
		case 0x7F:
			return r.fdc.ReadData()
		case 0xFF:
			return r.fdc.ReadSystem()
		}
	}
	if r.cfg.OverlayIOMode == config.OverlayIOStrict {
		r.mem.DisableTRDOS()
	}
	return 0xFF // floating bus
}

// Out implements z80.PortAccessor.
func (r *Router) Out(port uint16, value uint8) {
	if port&0xFF == 0xFE {
		r.borderColor = value & 0x07
		return
	}
	if isFDCPort(port) {
		if r.cfg.OverlayIOMode == config.OverlayIOStrict {
			r.mem.EnableTRDOS()
		}
		switch port & 0xFF {
		case 0x1F:
			r.fdc.WriteCommand(value)
		case 0x3F:
			r.fdc.WriteTrack(value)
		case 0x5F:
			r.fdc.WriteSectorReg(value)
		case 0x7F:
			r.fdc.WriteData(value)
		case 0xFF:
			r.fdc.WriteSystem(value)
		}
		return
	}
	if r.cfg.OverlayIOMode == config.OverlayIOStrict {
		r.mem.DisableTRDOS()
	}

	matched := false
	if r.cfg.PortDecoding == config.PortDecodingFull {
		matched = port == 0x7FFD
	} else {
		matched = port&0x8002 == 0
	}
	if matched {
		r.mem.WritePagingPort(value) // no-op once memory.Map's own lock is set
	}
}

// BorderColor returns the last value written to the border/speaker latch,
// masked to its 3 significant bits.
func (r *Router) BorderColor() uint8 { return r.borderColor }

// Reset clears the border latch, matching original_source/src/io.rs
// IoController::reset. The paging lock itself resets with memory.Map.
func (r *Router) Reset() {
	r.borderColor = 0
}
