package snapshot

import (
	"fmt"
	"os"

	"github.com/eng2007/zxgo/internal/memory"
)

// LoadROM reads a ROM image file and installs it, auto-detecting 128K ROMs
// (two 16KB images concatenated) from their length, per
// original_source/src/snapshot.rs load_rom.
func LoadROM(path string, mem *memory.Map) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if len(data) >= 2*memory.BankSize {
		if err := mem.LoadMainROM(data[:memory.BankSize], 0); err != nil {
			return err
		}
		return mem.LoadMainROM(data[memory.BankSize:2*memory.BankSize], 1)
	}
	return mem.LoadMainROM(data, 0)
}

// LoadTRDOSROM reads and installs the TR-DOS overlay ROM image.
func LoadTRDOSROM(path string, mem *memory.Map) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return mem.LoadOverlayROM(data)
}
