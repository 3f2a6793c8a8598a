// Package config loads the machine's startup configuration: I/O port
// decoding width, RAM size, and the TR-DOS overlay activation policy.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// PortDecoding selects how the 7FFD paging port is address-matched.
type PortDecoding int

const (
	// PortDecodingPartial matches (port&0x8002)==0, the Pentagon-clone
	// convention that ignores most address lines.
	PortDecodingPartial PortDecoding = iota
	// PortDecodingFull matches only the exact port==0x7FFD.
	PortDecodingFull
)

// MemorySize selects the RAM capacity, and with it 128K vs 512K bank
// indexing on the paging port.
type MemorySize int

const (
	MemorySize128K MemorySize = iota
	MemorySize512K
)

// OverlayIOMode selects how I/O activity affects the TR-DOS overlay ROM, on
// top of the always-on PC-fetch trap (spec §4.3/§4.4, §9 open question).
type OverlayIOMode int

const (
	// OverlayIOStrict activates the overlay on any FDC port access and
	// deactivates it on any other I/O access except port 0xFE (keyboard
	// read / border+speaker write), which is excluded from both rules.
	// This is the only behavior the original implementation exercises.
	OverlayIOStrict OverlayIOMode = iota
	// OverlayIOPassive leaves I/O activity out of the decision entirely;
	// only the PC-fetch trap and RET-above-0x4000 rules apply.
	OverlayIOPassive
)

// Config holds the machine's startup configuration.
type Config struct {
	PortDecoding  PortDecoding
	MemorySize    MemorySize
	OverlayIOMode OverlayIOMode
}

// Default matches original_source/src/config.rs's Default impl: partial
// decoding, 128K RAM. OverlayIOMode defaults to the only behavior the
// original implementation actually has.
func Default() Config {
	return Config{
		PortDecoding:  PortDecodingPartial,
		MemorySize:    MemorySize128K,
		OverlayIOMode: OverlayIOStrict,
	}
}

// Load reads an INI-style config file, creating one with default contents
// if it doesn't exist yet. Grounded on original_source/src/config.rs
// load_config.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := writeDefault(path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg := Default()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := parts[1]
		if idx := strings.Index(value, ";"); idx >= 0 {
			value = value[:idx]
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "portdecoding":
			if strings.EqualFold(value, "full") {
				cfg.PortDecoding = PortDecodingFull
			} else {
				cfg.PortDecoding = PortDecodingPartial
			}
		case "memorysize":
			if value == "512" {
				cfg.MemorySize = MemorySize512K
			} else {
				cfg.MemorySize = MemorySize128K
			}
		case "overlayiomode":
			if strings.EqualFold(value, "passive") {
				cfg.OverlayIOMode = OverlayIOPassive
			} else {
				cfg.OverlayIOMode = OverlayIOStrict
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func writeDefault(path string) error {
	const body = "[Settings]\n" +
		"PortDecoding=Partial ; Full or Partial\n" +
		"MemorySize=128      ; 128 or 512\n" +
		"OverlayIOMode=Strict ; Strict or Passive\n"
	return os.WriteFile(path, []byte(body), 0o644)
}
