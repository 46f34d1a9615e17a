package cartridge

import "nescore/internal/memport"

const (
	prgRAMStart = 0x6000
	prgRAMEnd   = 0x7FFF
	prgROMStart = 0x8000
	prgROMEnd   = 0xFFFF
)

// NROM is mapper 0: no bank switching. One or two 16 KiB PRG banks, a
// single 8 KiB CHR bank, and an 8 KiB PRG-RAM window. With a single PRG
// bank, the low half of the ROM window mirrors into the high half.
type NROM struct {
	cart     *Cartridge
	prgBanks int
	prgRAM   [prgRAMEnd - prgRAMStart + 1]uint8
}

func newNROM(cart *Cartridge) (*NROM, error) {
	banks := cart.Header.PRGBanks
	if banks != 1 && banks != 2 {
		return nil, &InvalidCartridgeHeader{Reason: "NROM requires 1 or 2 PRG-ROM banks"}
	}
	if cart.Header.CHRBanks != 1 {
		return nil, &InvalidCartridgeHeader{Reason: "NROM requires exactly 1 CHR-ROM bank"}
	}
	if cart.Header.HasSRAM {
		return nil, &InvalidCartridgeHeader{Reason: "NROM does not support battery-backed SRAM"}
	}
	return &NROM{cart: cart, prgBanks: banks}, nil
}

func (m *NROM) Readable(addr uint16) bool {
	return (addr >= prgRAMStart && addr <= prgRAMEnd) || (addr >= prgROMStart && addr <= prgROMEnd)
}

func (m *NROM) Writable(addr uint16) bool {
	return addr >= prgRAMStart && addr <= prgRAMEnd
}

func (m *NROM) ReadByte(addr uint16) (uint8, error) {
	switch {
	case addr >= prgRAMStart && addr <= prgRAMEnd:
		return m.prgRAM[addr-prgRAMStart], nil
	case addr >= prgROMStart && addr <= prgROMEnd:
		offset := addr - prgROMStart
		if m.prgBanks == 1 {
			offset &= 0x3FFF
		}
		return m.cart.PRG[offset], nil
	default:
		return 0, &memport.InvalidRead{Address: addr}
	}
}

func (m *NROM) WriteByte(addr uint16, value uint8) error {
	if addr < prgRAMStart || addr > prgRAMEnd {
		return &memport.InvalidWrite{Address: addr}
	}
	m.prgRAM[addr-prgRAMStart] = value
	return nil
}

// ReadCHR serves the PPU-side pattern table read for CHR-ROM. CHR-RAM
// cartridges are handled entirely inside ppu.VRAM, which owns a writable
// backing array instead of delegating here.
func (m *NROM) ReadCHR(addr uint16) uint8 {
	if int(addr) < len(m.cart.CHR) {
		return m.cart.CHR[addr]
	}
	return 0
}
