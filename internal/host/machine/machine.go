// Package machine wires the core components (bus, CPU, PPU, cartridge,
// joypad) into the single step loop the host drives: run a fixed budget of
// CPU instructions per frame, trigger NMI at the vblank boundary, and hand
// the completed screen back to the renderer. This is
// the generalization of the teacher's internal/app.Emulator to the
// instruction-stepped (not cycle-stepped) model spec.md §1 requires.
package machine

import (
	"nescore/internal/bus"
	"nescore/internal/cartridge"
	"nescore/internal/cpu"
	"nescore/internal/joypad"
	"nescore/internal/logx"
	"nescore/internal/ppu"
	"nescore/internal/ram"
)

// instructionsPerFrame approximates one NTSC frame's worth of CPU work.
// The core does not count cycles (a stated non-goal), so this substitutes
// a fixed instruction budget for the ~29,781-cycle NTSC frame the
// teacher's cycle-stepped loop uses; it is a deliberate approximation,
// not a timing guarantee.
const instructionsPerFrame = 6000

// Machine owns every core component for one cartridge and drives it one
// display frame at a time.
type Machine struct {
	cpu     *cpu.CPU
	ppuCore *ppu.PPU
	bus     *bus.Bus
	log     *logx.Logger
}

// New constructs a Machine from a loaded cartridge and a joypad key
// source, wiring RAM, the mapper, the PPU, and the joypad port onto a
// single bus, then resetting the CPU from the reset vector.
func New(cart *cartridge.Cartridge, keys joypad.KeySource, bindings joypad.Bindings) (*Machine, error) {
	cpuRAM := ram.New()
	pad := joypad.New(keys, bindings)
	ppuCore := ppu.New(cart.Header.Mirroring, cart.Mapper, cart.Header.CHRRAM, cpuRAM)

	b := bus.New(cpuRAM, ppuCore, pad, cart.Mapper)
	c := cpu.New(b)
	if err := c.Reset(); err != nil {
		return nil, err
	}

	return &Machine{cpu: c, ppuCore: ppuCore, bus: b, log: logx.New("MACHINE")}, nil
}

// RunFrame steps the CPU until instructionsPerFrame instructions have
// executed, then raises vblank and NMI (if enabled) and asks the PPU to
// produce the completed screen.
func (m *Machine) RunFrame() (*ppu.Screen, error) {
	for i := 0; i < instructionsPerFrame; i++ {
		if err := m.cpu.Step(); err != nil {
			return nil, err
		}
	}

	m.ppuCore.VblankStarted()
	if m.ppuCore.NMIEnabled() {
		if err := m.cpu.HardwareInterrupt(cpu.NMI); err != nil {
			return nil, err
		}
	}

	screen, err := m.ppuCore.Frame()
	if err != nil {
		return nil, err
	}
	m.ppuCore.VblankFinished()
	return screen, nil
}
