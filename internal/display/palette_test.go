package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashPhaseTogglesEverySixteenFrames(t *testing.T) {
	assert.False(t, FlashPhase(0))
	assert.False(t, FlashPhase(15))
	assert.True(t, FlashPhase(16))
	assert.True(t, FlashPhase(31))
	assert.False(t, FlashPhase(32))
}

func TestDecodeSplitsInkPaperBrightFlash(t *testing.T) {
	ink, paper, bright, flash := Decode(0b1_1_010_011)
	assert.True(t, flash)
	assert.True(t, bright)
	assert.Equal(t, Palette[8+3], ink)
	assert.Equal(t, Palette[8+2], paper)
}

func TestDecodeNonBrightUsesLowBank(t *testing.T) {
	ink, paper, bright, flash := Decode(0x00)
	assert.False(t, bright)
	assert.False(t, flash)
	assert.Equal(t, Palette[0], ink)
	assert.Equal(t, Palette[0], paper)
}

func TestPixelAddrThirdRowInterleave(t *testing.T) {
	assert.Equal(t, 0, pixelAddr(0, 0))
	assert.Equal(t, 256, pixelAddr(1, 0))
	assert.Equal(t, 2048, pixelAddr(64, 0))
	assert.Equal(t, 1, pixelAddr(0, 1))
	assert.Equal(t, 32, pixelAddr(8, 0))
}
