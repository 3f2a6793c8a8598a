package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eng2007/zxgo/internal/config"
)

func TestNewWiresAllComponents(t *testing.T) {
	m := New(config.Default(), nil)
	assert.NotNil(t, m.CPU)
	assert.NotNil(t, m.Memory)
	assert.NotNil(t, m.Router)
	assert.NotNil(t, m.FDC)
	assert.NotNil(t, m.Keyboard)
	assert.False(t, m.Memory.Is512K())
}

func TestNewHonors512KConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MemorySize = config.MemorySize512K
	m := New(cfg, nil)
	assert.True(t, m.Memory.Is512K())
}

func TestRunFrameAdvancesFrameCounterAndCycles(t *testing.T) {
	m := New(config.Default(), nil)
	m.RunFrame()
	assert.Equal(t, uint64(1), m.FrameCounter())
	assert.GreaterOrEqual(t, m.CPU.Cycles, uint64(CyclesPerFrame))
}

func TestRunFrameCompletesWhileHalted(t *testing.T) {
	m := New(config.Default(), nil)
	m.CPU.Halted = true
	m.RunFrame()
	assert.Equal(t, uint64(1), m.FrameCounter(), "halted steps still consume 4 cycles each, so the frame's cycle budget is reached")
}

func TestResetZeroesFrameCounterAndPC(t *testing.T) {
	m := New(config.Default(), nil)
	m.RunFrame()
	m.RunFrame()
	m.CPU.PC = 0x1234

	m.Reset()
	assert.Equal(t, uint64(0), m.FrameCounter())
	assert.Equal(t, uint16(0), m.CPU.PC)
}

func TestDumpStateIncludesPagingSummary(t *testing.T) {
	m := New(config.Default(), nil)
	out := m.DumpState()
	assert.Contains(t, out, "Paging:")
	assert.Contains(t, out, "trdosActive=false")
}
