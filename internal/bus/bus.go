// Package bus implements the address-decoded dispatch that glues
// heterogeneous NES devices together: RAM, the cartridge mapper, the PPU
// register file, and the joypad port.
package bus

import "nescore/internal/memport"

// Bus is an ordered collection of devices. For every access it forwards to
// the first device whose capability predicate accepts the address.
// Devices are expected to claim disjoint ranges; if two overlap, the first
// one registered wins, matching the original AccessibleMemory contract.
//
// Bus itself implements memport.Port, so it composes: a bus can be one of
// the devices inside another bus.
type Bus struct {
	devices []memport.Port
}

// New builds a bus from an ordered list of devices, first device highest
// priority.
func New(devices ...memport.Port) *Bus {
	return &Bus{devices: append([]memport.Port(nil), devices...)}
}

func (b *Bus) findReadable(addr uint16) memport.Port {
	for _, d := range b.devices {
		if d.Readable(addr) {
			return d
		}
	}
	return nil
}

func (b *Bus) findWritable(addr uint16) memport.Port {
	for _, d := range b.devices {
		if d.Writable(addr) {
			return d
		}
	}
	return nil
}

// Readable reports whether some device on the bus claims addr for reads.
func (b *Bus) Readable(addr uint16) bool {
	return b.findReadable(addr) != nil
}

// Writable reports whether some device on the bus claims addr for writes.
func (b *Bus) Writable(addr uint16) bool {
	return b.findWritable(addr) != nil
}

// ReadByte dispatches to the first device that claims addr for reading.
func (b *Bus) ReadByte(addr uint16) (uint8, error) {
	d := b.findReadable(addr)
	if d == nil {
		return 0, &memport.InvalidRead{Address: addr}
	}
	return d.ReadByte(addr)
}

// WriteByte dispatches to the first device that claims addr for writing.
func (b *Bus) WriteByte(addr uint16, value uint8) error {
	d := b.findWritable(addr)
	if d == nil {
		return &memport.InvalidWrite{Address: addr}
	}
	return d.WriteByte(addr, value)
}

// ReadPointer reads a little-endian 16-bit value through the bus.
func (b *Bus) ReadPointer(addr uint16) (uint16, error) {
	return memport.ReadPointer(b, addr)
}

// WritePointer writes a little-endian 16-bit value through the bus.
func (b *Bus) WritePointer(addr uint16, value uint16) error {
	return memport.WritePointer(b, addr, value)
}

// DerefPointer is read_pointer(read_pointer(addr)).
func (b *Bus) DerefPointer(addr uint16) (uint16, error) {
	return memport.DerefPointer(b, addr)
}
