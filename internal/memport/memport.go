// Package memport defines the capability interface every addressable NES
// device implements, and the derived pointer operations built on top of
// it.
package memport

import "fmt"

// Readable is the read half of the capability set: a device reports which
// addresses it can answer and serves byte reads for them.
type Readable interface {
	Readable(addr uint16) bool
	ReadByte(addr uint16) (uint8, error)
}

// Port is the full capability set: readable plus writable. Every device on
// the bus implements Port, even devices that refuse all writes (they
// simply report Writable as always false).
type Port interface {
	Readable
	Writable(addr uint16) bool
	WriteByte(addr uint16, value uint8) error
}

// InvalidRead reports a read at an address no attached device claims.
type InvalidRead struct {
	Address uint16
}

func (e *InvalidRead) Error() string {
	return fmt.Sprintf("invalid read at address %#04x", e.Address)
}

// InvalidWrite reports a write at an address no attached device accepts.
type InvalidWrite struct {
	Address uint16
}

func (e *InvalidWrite) Error() string {
	return fmt.Sprintf("invalid write at address %#04x", e.Address)
}

// ReadPointer reads two bytes at addr, addr+1 as a little-endian address.
func ReadPointer(p Readable, addr uint16) (uint16, error) {
	low, err := p.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	high, err := p.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(low) | uint16(high)<<8, nil
}

// WritePointer writes a 16-bit value little-endian at addr, addr+1.
func WritePointer(p Port, addr uint16, value uint16) error {
	if err := p.WriteByte(addr, uint8(value&0xFF)); err != nil {
		return err
	}
	return p.WriteByte(addr+1, uint8(value>>8))
}

// DerefPointer reads the pointer at addr, then reads the pointer found at
// that address: read_pointer(read_pointer(addr)).
func DerefPointer(p Readable, addr uint16) (uint16, error) {
	inner, err := ReadPointer(p, addr)
	if err != nil {
		return 0, err
	}
	return ReadPointer(p, inner)
}
