// Package display holds the ZX Spectrum's fixed 16-colour palette and the
// flash-attribute timing helper shared by any renderer consuming the
// machine's screen memory.
package display

// RGBA is a packed 0xRRGGBBAA color, convenient for framebuffer writes.
type RGBA uint32

// Palette is the 8 normal-brightness colors followed by their 8
// bright-bit equivalents, indexed the way attribute bytes encode them:
// bits 0-2 ink, bits 3-5 paper (each independently looked up here), bit 6
// bright, bit 7 flash.
var Palette = [16]RGBA{
	0x000000FF, 0x0000D7FF, 0xD70000FF, 0xD700D7FF,
	0x00D700FF, 0x00D7D7FF, 0xD7D700FF, 0xD7D7D7FF,
	0x000000FF, 0x0000FFFF, 0xFF0000FF, 0xFF00FFFF,
	0x00FF00FF, 0x00FFFFFF, 0xFFFF00FF, 0xFFFFFFFF,
}

// FlashPeriodFrames is how many 50Hz frames make up one flash half-cycle.
const FlashPeriodFrames = 16

// FlashPhase reports whether ink/paper should be swapped this frame for an
// attribute byte with the flash bit set, given a running frame counter.
func FlashPhase(frameCounter uint64) bool {
	return (frameCounter/FlashPeriodFrames)%2 == 1
}

// Decode splits an attribute byte into (ink, paper, bright, flash) palette
// lookups.
func Decode(attr uint8) (ink, paper RGBA, bright, flash bool) {
	bright = attr&0x40 != 0
	flash = attr&0x80 != 0
	base := 0
	if bright {
		base = 8
	}
	ink = Palette[base+int(attr&0x07)]
	paper = Palette[base+int((attr>>3)&0x07)]
	return ink, paper, bright, flash
}
