// Package trd implements the flat TRD floppy disk image format used by
// TR-DOS: fixed 80-track/2-side/16-sector/256-byte geometry, a catalog
// sector, and a disk-info sector.
package trd

import (
	"fmt"
	"os"
	"strings"
)

const (
	Tracks          = 80
	Sides           = 2
	SectorsPerTrack = 16
	SectorSize      = 256
	Size            = Tracks * Sides * SectorsPerTrack * SectorSize

	catalogTrack = 0
	catalogStart = 0 // sectors 0-7 of track 0
	infoSector   = 9
)

// Disk holds a full TRD image as a flat byte array, addressed by
// track/side/sector the way the WD1793 addresses it.
type Disk struct {
	data [Size]byte
}

// New returns an empty (all-zero) disk image.
func New() *Disk { return &Disk{} }

// FromBytes wraps an existing image, validating its length.
func FromBytes(b []byte) (*Disk, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("trd: image must be %d bytes, got %d", Size, len(b))
	}
	d := &Disk{}
	copy(d.data[:], b)
	return d, nil
}

// Load reads a .trd image from disk.
func Load(path string) (*Disk, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trd: %w", err)
	}
	return FromBytes(b)
}

func calculateOffset(track, side, sector uint8) (int, bool) {
	if int(track) >= Tracks || int(side) >= Sides || sector < 1 || int(sector) > SectorsPerTrack {
		return 0, false
	}
	sectorsPerCyl := SectorsPerTrack * Sides
	offset := (int(track)*sectorsPerCyl + int(side)*SectorsPerTrack + int(sector-1)) * SectorSize
	return offset, true
}

// ReadSector returns a view of one 256-byte sector (sector is 1-based,
// matching WD1793 addressing), or ok=false if out of range.
func (d *Disk) ReadSector(track, side, sector uint8) ([]byte, bool) {
	offset, ok := calculateOffset(track, side, sector)
	if !ok {
		return nil, false
	}
	return d.data[offset : offset+SectorSize], true
}

// WriteSector writes exactly one 256-byte sector.
func (d *Disk) WriteSector(track, side, sector uint8, data []byte) bool {
	if len(data) != SectorSize {
		return false
	}
	offset, ok := calculateOffset(track, side, sector)
	if !ok {
		return false
	}
	copy(d.data[offset:offset+SectorSize], data)
	return true
}

// Data returns the raw underlying image, e.g. for persisting back to disk.
func (d *Disk) Data() []byte { return d.data[:] }

// Info is the decoded contents of track 0, sector 9 (1-based sector 10).
type Info struct {
	FirstFreeSector uint8
	FirstFreeTrack  uint8
	DiskType        uint8
	NumFiles        uint8
	FreeSectors     uint16
	DiskID          uint8
	DiskName        string
}

// DiskInfo decodes the disk-info sector, supplementing spec.md with the
// catalog metadata original_source/src/trd.rs's get_disk_info exposes.
func (d *Disk) DiskInfo() (Info, bool) {
	sec, ok := d.ReadSector(catalogTrack, 0, infoSector+1) // sector field is 1-based
	if !ok {
		return Info{}, false
	}
	name := strings.TrimRight(string(sec[0xF5:0xFD]), " \x00")
	return Info{
		FirstFreeSector: sec[0xE1],
		FirstFreeTrack:  sec[0xE2],
		DiskType:        sec[0xE3],
		NumFiles:        sec[0xE4],
		FreeSectors:     uint16(sec[0xE5]) | uint16(sec[0xE6])<<8,
		DiskID:          sec[0xE7],
		DiskName:        name,
	}, true
}

// CatalogEntry is one decoded 16-byte directory entry.
type CatalogEntry struct {
	Filename      string
	Extension     byte
	LengthSectors uint8
	StartSector   uint8
	StartTrack    uint8
}

// Catalog decodes the 8 catalog sectors (track 0, sectors 1-8) into up to
// 128 directory entries, skipping entries whose first byte is zero.
func (d *Disk) Catalog() ([]CatalogEntry, bool) {
	var entries []CatalogEntry
	for sector := uint8(1); sector <= 8; sector++ {
		sec, ok := d.ReadSector(catalogTrack, 0, sector)
		if !ok {
			return nil, false
		}
		for i := 0; i < 16; i++ {
			entry := sec[i*16 : i*16+16]
			if entry[0] == 0 {
				continue
			}
			entries = append(entries, CatalogEntry{
				Filename:      strings.TrimRight(string(entry[0:8]), " "),
				Extension:     entry[8],
				LengthSectors: entry[0x0D],
				StartSector:   entry[0x0E],
				StartTrack:    entry[0x0F],
			})
		}
	}
	return entries, true
}
