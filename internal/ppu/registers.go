// Package ppu implements the NES Picture Processing Unit: VRAM with its
// name-table mirroring and palette aliasing, the memory-mapped register
// file with its double-latched SCROLL/VRAM-ADDRESS registers, and the
// frame producer that paints a 256x240 screen from name tables, attribute
// tables, pattern tables, and OAM.
package ppu

import "nescore/internal/memport"

const (
	controlRegister  = 0x2000
	maskRegister     = 0x2001
	statusRegister   = 0x2002
	oamAddrRegister  = 0x2003
	oamDataRegister  = 0x2004
	scrollRegister   = 0x2005
	vramAddrRegister = 0x2006
	vramDataRegister = 0x2007
	oamDMARegister   = 0x4014

	vblankFlag = 7
)

const oamSize = 256

// DMASource is a read-only reference to whatever memory OAM-DMA copies
// from (host/machine passes CPU RAM directly). Keeping this a narrow interface,
// rather than a full bus reference, breaks the cycle a PPU-owning bus
// would otherwise create: the PPU needs to read from the bus, but the bus
// also dispatches to the PPU.
type DMASource interface {
	ReadByte(addr uint16) (uint8, error)
}

// PPU is the memory-mapped register file plus the VRAM/OAM state it
// fronts. It implements memport.Port over the eight $2000-$2007 registers
// and $4014 OAM-DMA.
type PPU struct {
	control uint8
	mask    uint8
	status  uint8

	oamAddress uint8
	oam        [oamSize]uint8

	scroll      *DoubleRegister
	vramAddress *DoubleRegister
	readBuffer  uint8
	vram        *VRAM
	dmaSource   DMASource
}

// New constructs a PPU bound to a mirroring mode, a CHR source, and a
// read-only DMA source (the device OAM-DMA copies from).
func New(mirroring Mirroring, chr CHRSource, chrRAM bool, dmaSource DMASource) *PPU {
	return &PPU{
		scroll:      NewDoubleRegister(),
		vramAddress: NewDoubleRegister(),
		vram:        NewVRAM(mirroring, chr, chrRAM),
		dmaSource:   dmaSource,
	}
}

// VblankStarted sets the vblank flag, typically called by the host at the
// start of the vertical blanking interval, before it decides whether to
// raise NMI.
func (p *PPU) VblankStarted() { p.status |= 1 << vblankFlag }

// VblankFinished clears the vblank flag.
func (p *PPU) VblankFinished() { p.status &^= 1 << vblankFlag }

// NMIEnabled reports CONTROL bit 7.
func (p *PPU) NMIEnabled() bool { return p.control&0x80 != 0 }

// BaseNameTableAddress decodes CONTROL bits 0-1 into the base address of
// the selected name table.
func (p *PPU) BaseNameTableAddress() uint16 {
	return 0x2000 + uint16(p.control&0x03)*0x0400
}

// AddressIncrement decodes CONTROL bit 2 into the VRAM address stride
// applied after a VRAM-DATA access.
func (p *PPU) AddressIncrement() uint16 {
	if p.control&0x04 != 0 {
		return 32
	}
	return 1
}

// SpritePatternTableAddress decodes CONTROL bit 3.
func (p *PPU) SpritePatternTableAddress() uint16 {
	if p.control&0x08 != 0 {
		return 0x1000
	}
	return 0x0000
}

// BackgroundPatternTableAddress decodes CONTROL bit 4.
func (p *PPU) BackgroundPatternTableAddress() uint16 {
	if p.control&0x10 != 0 {
		return 0x1000
	}
	return 0x0000
}

// SpriteHeight decodes CONTROL bit 5.
func (p *PPU) SpriteHeight() int {
	if p.control&0x20 != 0 {
		return 16
	}
	return 8
}

// Greyscale decodes MASK bit 0.
func (p *PPU) Greyscale() bool { return p.mask&0x01 != 0 }

// ShowLeftmostBackground decodes MASK bit 1.
func (p *PPU) ShowLeftmostBackground() bool { return p.mask&0x02 != 0 }

// ShowLeftmostSprites decodes MASK bit 2.
func (p *PPU) ShowLeftmostSprites() bool { return p.mask&0x04 != 0 }

// ShowBackground decodes MASK bit 3.
func (p *PPU) ShowBackground() bool { return p.mask&0x08 != 0 }

// ShowSprites decodes MASK bit 4.
func (p *PPU) ShowSprites() bool { return p.mask&0x10 != 0 }

// InVblank reports the current STATUS vblank flag without side effects.
func (p *PPU) InVblank() bool { return p.status&(1<<vblankFlag) != 0 }

func (p *PPU) incrementOAMAddress() { p.oamAddress++ }

func (p *PPU) incrementVRAMAddress() {
	p.vramAddress.Increment(p.AddressIncrement())
}

func (p *PPU) executeDMA(page uint8) error {
	base := uint16(page) << 8
	for i := 0; i < oamSize; i++ {
		b, err := p.dmaSource.ReadByte(base + uint16(i))
		if err != nil {
			return err
		}
		p.oam[p.oamAddress] = b
		p.oamAddress++
	}
	return nil
}

// Readable reports the registers the PPU answers reads for: STATUS,
// OAM-DATA, and VRAM-DATA.
func (p *PPU) Readable(addr uint16) bool {
	switch addr {
	case statusRegister, oamDataRegister, vramDataRegister:
		return true
	default:
		return false
	}
}

// Writable reports the registers the PPU accepts writes for.
func (p *PPU) Writable(addr uint16) bool {
	switch addr {
	case controlRegister, maskRegister, oamAddrRegister, oamDataRegister,
		scrollRegister, vramAddrRegister, vramDataRegister, oamDMARegister:
		return true
	default:
		return false
	}
}

func (p *PPU) ReadByte(addr uint16) (uint8, error) {
	switch addr {
	case statusRegister:
		result := p.status
		p.status &^= 1 << vblankFlag
		p.scroll.Reset()
		p.vramAddress.Reset()
		return result, nil
	case oamDataRegister:
		return p.oam[p.oamAddress], nil
	case vramDataRegister:
		result := p.readBuffer
		buffered, err := p.vram.ReadByte(p.vramAddress.Address())
		if err != nil {
			return 0, err
		}
		p.readBuffer = buffered
		p.incrementVRAMAddress()
		return result, nil
	default:
		return 0, &memport.InvalidRead{Address: addr}
	}
}

func (p *PPU) WriteByte(addr uint16, value uint8) error {
	switch addr {
	case controlRegister:
		p.control = value
	case maskRegister:
		p.mask = value
	case oamAddrRegister:
		p.oamAddress = value
	case oamDataRegister:
		p.oam[p.oamAddress] = value
		p.incrementOAMAddress()
	case scrollRegister:
		p.scroll.WriteByte(value)
	case vramAddrRegister:
		p.vramAddress.WriteByte(value)
	case vramDataRegister:
		if err := p.vram.WriteByte(p.vramAddress.Address(), value); err != nil {
			return err
		}
		p.incrementVRAMAddress()
	case oamDMARegister:
		return p.executeDMA(value)
	default:
		return &memport.InvalidWrite{Address: addr}
	}
	return nil
}
