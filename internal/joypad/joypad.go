// Package joypad implements the NES controller port: a strobe latch
// feeding an 8-button serial shift register at 0x4016, including the
// hardware signature quirk some games probe to detect a connected
// controller.
package joypad

import "nescore/internal/memport"

// Button names the eight buttons read back in fixed serial order.
type Button int

const (
	A Button = iota
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

// KeySource yields the pressed-state of a host scancode. It is the
// keyboard collaborator contract the core depends on without owning.
type KeySource interface {
	Pressed(scancode int) bool
}

// Bindings maps logical buttons to host scancodes.
type Bindings map[Button]int

const (
	// FirstJoypadAddress is the NES's primary controller port.
	FirstJoypadAddress = 0x4016
	// SecondJoypadAddress is read-only in this core (no second
	// controller is modeled), matching spec.md's "read-only for this
	// purpose" contract.
	SecondJoypadAddress = 0x4017

	maxReads = 24
	// signature is the read index at which the port returns 1
	// regardless of button state, per the NES hardware quirk some
	// games use to detect a connected controller.
	signature = 19
)

// readOrder is the fixed serial order buttons are shifted out in.
var readOrder = [8]Button{A, B, Select, Start, Up, Down, Left, Right}

// Port is the memory-mapped joypad device.
type Port struct {
	keys      KeySource
	bindings  Bindings
	lastWrite uint8
	numReads  int
}

// New constructs a joypad port bound to a keyboard collaborator and a
// button-to-scancode mapping.
func New(keys KeySource, bindings Bindings) *Port {
	return &Port{keys: keys, bindings: bindings}
}

func (p *Port) buttonDown(b Button) bool {
	scancode, ok := p.bindings[b]
	if !ok {
		return false
	}
	return p.keys.Pressed(scancode)
}

func (p *Port) strobe(value uint8) bool {
	return p.lastWrite == 1 && value == 0
}

func (p *Port) write(value uint8) {
	if p.strobe(value) {
		p.numReads = 0
	}
	p.lastWrite = value
}

func (p *Port) read() uint8 {
	if p.numReads == maxReads {
		p.numReads = 0
	}
	var result bool
	switch {
	case p.numReads == signature:
		result = true
	case p.numReads < len(readOrder):
		result = p.buttonDown(readOrder[p.numReads])
	}
	p.numReads++
	if result {
		return 1
	}
	return 0
}

// Readable reports the joypad claims both controller addresses for reads
// (the second port always reads as a disconnected stub).
func (p *Port) Readable(addr uint16) bool {
	return addr == FirstJoypadAddress || addr == SecondJoypadAddress
}

// Writable reports the joypad accepts writes only on the strobe address.
func (p *Port) Writable(addr uint16) bool {
	return addr == FirstJoypadAddress
}

func (p *Port) ReadByte(addr uint16) (uint8, error) {
	switch addr {
	case FirstJoypadAddress:
		return p.read(), nil
	case SecondJoypadAddress:
		return 0, nil
	default:
		return 0, &memport.InvalidRead{Address: addr}
	}
}

func (p *Port) WriteByte(addr uint16, value uint8) error {
	if addr != FirstJoypadAddress {
		return &memport.InvalidWrite{Address: addr}
	}
	p.write(value)
	return nil
}
