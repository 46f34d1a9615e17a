package ppu

import "testing"

type stubDMA struct{ data [0x10000]uint8 }

func (s *stubDMA) ReadByte(addr uint16) (uint8, error) { return s.data[addr], nil }

func newTestPPU() *PPU {
	return New(MirrorHorizontal, nil, true, &stubDMA{})
}

func TestPaletteWriteMasksTo6Bits(t *testing.T) {
	p := newTestPPU()
	for addr := uint16(0x3F00); addr <= 0x3FFF; addr += 7 {
		if err := p.vram.WriteByte(addr, 0xFF); err != nil {
			t.Fatalf("WriteByte(%#x): %v", addr, err)
		}
		got, err := p.vram.ReadByte(addr)
		if err != nil {
			t.Fatalf("ReadByte(%#x): %v", addr, err)
		}
		if got != 0xFF&0x3F {
			t.Fatalf("ReadByte(%#x) = %#x, want %#x", addr, got, 0xFF&0x3F)
		}
	}
}

func TestPaletteBackgroundAliasing(t *testing.T) {
	p := newTestPPU()
	if err := p.vram.WriteByte(0x3F00, 0x15); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	aliases := []uint16{0x3F00, 0x3F04, 0x3F08, 0x3F0C, 0x3F10, 0x3F14, 0x3F18, 0x3F1C}
	for _, a := range aliases {
		got, err := p.vram.ReadByte(a)
		if err != nil {
			t.Fatalf("ReadByte(%#x): %v", a, err)
		}
		if got != 0x15 {
			t.Fatalf("ReadByte(%#x) = %#x, want 0x15 (aliased to universal background)", a, got)
		}
	}
}

func TestNameTableRegionMirrorsAt0x3000(t *testing.T) {
	p := newTestPPU()
	for offset := uint16(0); offset < 0x0EFF; offset += 0x101 {
		addr := 0x2000 + offset
		mirror := 0x3000 + offset
		want := uint8(offset ^ 0x5A)
		if err := p.vram.WriteByte(addr, want); err != nil {
			t.Fatalf("WriteByte(%#x): %v", addr, err)
		}
		got, err := p.vram.ReadByte(mirror)
		if err != nil {
			t.Fatalf("ReadByte(%#x): %v", mirror, err)
		}
		if got != want {
			t.Fatalf("ReadByte(%#x) = %#x, want %#x (written at %#x)", mirror, got, want, addr)
		}
	}
}

func TestStatusReadResetsDoubleLatch(t *testing.T) {
	p := newTestPPU()
	_ = p.WriteByte(scrollRegister, 0x12) // latch now incomplete
	if p.scroll.Complete() {
		t.Fatalf("expected scroll latch incomplete after one write")
	}
	if _, err := p.ReadByte(statusRegister); err != nil {
		t.Fatalf("ReadByte(STATUS): %v", err)
	}
	if !p.scroll.Complete() {
		t.Fatalf("expected STATUS read to reset scroll latch to complete")
	}
	if !p.vramAddress.Complete() {
		t.Fatalf("expected STATUS read to reset vram-address latch to complete")
	}
}

func TestVRAMAddressLatchingScenario(t *testing.T) {
	p := newTestPPU()
	if err := p.WriteByte(vramAddrRegister, 0x20); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if err := p.WriteByte(vramAddrRegister, 0x00); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if got := p.vramAddress.Address(); got != 0x2000 {
		t.Fatalf("vram-address = %#x, want 0x2000", got)
	}
	if err := p.WriteByte(vramDataRegister, 0x7E); err != nil {
		t.Fatalf("WriteByte(VRAM-DATA): %v", err)
	}
	stored, err := p.vram.ReadByte(0x2000)
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if stored != 0x7E {
		t.Fatalf("stored byte = %#x, want 0x7E", stored)
	}
	if got := p.vramAddress.Address(); got != 0x2001 {
		t.Fatalf("vram-address after write = %#x, want 0x2001 (stride 1)", got)
	}
}

func TestOAMDMACopiesPage(t *testing.T) {
	dma := &stubDMA{}
	for i := 0; i < 256; i++ {
		dma.data[0x0200+i] = uint8(i)
	}
	p := New(MirrorHorizontal, nil, true, dma)
	if err := p.WriteByte(oamDMARegister, 0x02); err != nil {
		t.Fatalf("WriteByte(OAM-DMA): %v", err)
	}
	for i := 0; i < 256; i++ {
		if p.oam[i] != uint8(i) {
			t.Fatalf("oam[%d] = %#x, want %#x", i, p.oam[i], uint8(i))
		}
	}
}

func TestDoubleRegisterByteSequence(t *testing.T) {
	d := NewDoubleRegister()
	if !d.Complete() || d.Address() != 0 {
		t.Fatalf("expected fresh latch complete with value 0")
	}
	d.WriteByte(0x12)
	if d.Complete() {
		t.Fatalf("expected latch incomplete after first byte")
	}
	d.WriteByte(0x34)
	if !d.Complete() {
		t.Fatalf("expected latch complete after second byte")
	}
	if d.Address() != 0x1234 {
		t.Fatalf("Address() = %#x, want 0x1234", d.Address())
	}
}
