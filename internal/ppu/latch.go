package ppu

// DoubleRegister models a PPU register fed by two sequential byte writes
// that together form a 16-bit value: SCROLL and VRAM-ADDRESS both use one.
// At construction the latch starts complete with value 0.
type DoubleRegister struct {
	value    uint16
	complete bool
}

// NewDoubleRegister returns a latch in its post-construction state: value
// zero, latch complete.
func NewDoubleRegister() *DoubleRegister {
	return &DoubleRegister{complete: true}
}

// WriteByte feeds one byte into the latch. A complete latch sets the high
// byte and clears to incomplete; an incomplete latch ORs in the low byte
// and toggles back to complete.
func (d *DoubleRegister) WriteByte(b uint8) {
	if d.complete {
		d.value = uint16(b) << 8
	} else {
		d.value |= uint16(b)
	}
	d.complete = !d.complete
}

// WriteAddress sets the value directly and marks the latch complete.
func (d *DoubleRegister) WriteAddress(v uint16) {
	d.value = v
	d.complete = true
}

// Increment adds delta to the value with 16-bit wraparound.
func (d *DoubleRegister) Increment(delta uint16) {
	d.value += delta
}

// Address returns the current 16-bit value.
func (d *DoubleRegister) Address() uint16 { return d.value }

// LowByte returns the low 8 bits of the current value.
func (d *DoubleRegister) LowByte() uint8 { return uint8(d.value & 0xFF) }

// HighByte returns the high 8 bits of the current value.
func (d *DoubleRegister) HighByte() uint8 { return uint8(d.value >> 8) }

// Complete reports whether the latch is awaiting its first (high) byte.
func (d *DoubleRegister) Complete() bool { return d.complete }

// Reset forces the latch back to complete without touching value, matching
// the real-hardware behavior of a STATUS register read.
func (d *DoubleRegister) Reset() {
	d.complete = true
}
