package cpu

import "testing"

// flatMemory is a full 64 KiB address space backing the scenario tests;
// it always accepts reads and writes so CPU programs can freely use zero
// page, the stack, and arbitrary RAM-like addresses without a real bus.
type flatMemory struct {
	data [0x10000]uint8
}

func (m *flatMemory) Readable(addr uint16) bool { return true }
func (m *flatMemory) Writable(addr uint16) bool { return true }

func (m *flatMemory) ReadByte(addr uint16) (uint8, error) {
	return m.data[addr], nil
}

func (m *flatMemory) WriteByte(addr uint16, value uint8) error {
	m.data[addr] = value
	return nil
}

// loadProgram writes program bytes at 0x0600 and points the reset vector
// there, matching every scenario's stated starting conditions.
func loadProgram(program []uint8) (*flatMemory, *CPU) {
	mem := &flatMemory{}
	for i, b := range program {
		mem.data[0x0600+i] = b
	}
	mem.data[0xFFFC] = 0x00
	mem.data[0xFFFD] = 0x06
	c := New(mem)
	if err := c.Reset(); err != nil {
		panic(err)
	}
	return mem, c
}

// runUntil steps the CPU until PC reaches end, failing the test if it
// never arrives within a generous step budget (a stuck test indicates a
// decoder or addressing bug rather than a slow-but-correct program).
func runUntil(t *testing.T, c *CPU, end uint16) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if c.PC == end {
			return
		}
		if err := c.Step(); err != nil {
			t.Fatalf("Step at pc=%#04x: %v", c.PC, err)
		}
	}
	t.Fatalf("program did not reach pc=%#04x (stopped at %#04x)", end, c.PC)
}

func TestScenarioALoads(t *testing.T) {
	_, c := loadProgram([]uint8{0xA9, 0x01, 0xA2, 0x02, 0xA0, 0x03})
	runUntil(t, c, 0x0606)
	if c.A != 0x01 || c.X != 0x02 || c.Y != 0x03 {
		t.Fatalf("a=%#x x=%#x y=%#x, want 01/02/03", c.A, c.X, c.Y)
	}
	if c.P != 0x20 {
		t.Fatalf("p=%#x, want 0x20", c.P)
	}
	if c.SP != 0xFF {
		t.Fatalf("sp=%#x, want 0xFF", c.SP)
	}
}

func TestScenarioBPushPull(t *testing.T) {
	mem, c := loadProgram([]uint8{0xA9, 0x11, 0x48, 0xA9, 0x00, 0x48, 0x08, 0x68, 0x28})
	runUntil(t, c, 0x0609)
	if c.A != 0x22 {
		t.Fatalf("a=%#x, want 0x22", c.A)
	}
	if c.P != 0x20 {
		t.Fatalf("p=%#x, want 0x20", c.P)
	}
	if c.SP != 0xFE {
		t.Fatalf("sp=%#x, want 0xFE", c.SP)
	}
	if mem.data[0x01FF] != 0x11 {
		t.Fatalf("stack[0x01FF]=%#x, want 0x11", mem.data[0x01FF])
	}
	if mem.data[0x01FD] != 0x22 {
		t.Fatalf("stack[0x01FD]=%#x, want 0x22", mem.data[0x01FD])
	}
}

func TestScenarioCJumpSkipsDeadCode(t *testing.T) {
	_, c := loadProgram([]uint8{0x4C, 0x05, 0x06, 0xA9, 0x01, 0xA9, 0x00})
	runUntil(t, c, 0x0607)
	if c.A != 0x00 {
		t.Fatalf("a=%#x, want 0x00", c.A)
	}
}

func TestScenarioDJSRRTSRoundTrip(t *testing.T) {
	bytes := []uint8{
		0xA9, 0xFF, 0x85, 0x00, 0x4C, 0x0E, 0x06, 0xE6, 0x00, 0xE6, 0x01, 0xE6, 0x02, 0x60,
		0x08, 0x20, 0x07, 0x06, 0x08, 0x20, 0x07, 0x06, 0x08, 0x20, 0x1A, 0x06, 0xEA,
	}
	mem, c := loadProgram(bytes)
	runUntil(t, c, 0x0600+uint16(len(bytes)))
	if mem.data[0x0000] != 0x01 {
		t.Fatalf("mem[0x0000]=%#x, want 0x01", mem.data[0x0000])
	}
	if mem.data[0x0001] != 0x02 {
		t.Fatalf("mem[0x0001]=%#x, want 0x02", mem.data[0x0001])
	}
	if mem.data[0x0002] != 0x02 {
		t.Fatalf("mem[0x0002]=%#x, want 0x02", mem.data[0x0002])
	}
	if c.SP != 0xFA {
		t.Fatalf("sp=%#x, want 0xFA", c.SP)
	}
}

func TestScenarioEDecAndFlags(t *testing.T) {
	bytes := []uint8{
		0xA9, 0x42, 0x85, 0x05, 0x8D, 0x00, 0x04, 0x8D, 0x01, 0x04,
		0xC6, 0x00, 0x08, 0xA2, 0x02, 0xD6, 0x03, 0x08, 0xD6, 0x03, 0x08,
		0xCE, 0x00, 0x04, 0x08, 0xDE, 0xFD, 0x03, 0x08,
	}
	mem, c := loadProgram(bytes)
	runUntil(t, c, 0x0600+uint16(len(bytes)))
	if mem.data[0x0000] != 0xFF {
		t.Fatalf("mem[0x0000]=%#x, want 0xFF", mem.data[0x0000])
	}
	if mem.data[0x0400] != 0x41 {
		t.Fatalf("mem[0x0400]=%#x, want 0x41", mem.data[0x0400])
	}
	if mem.data[0x0401] != 0x42 {
		t.Fatalf("mem[0x0401]=%#x, want 0x42", mem.data[0x0401])
	}
	if c.P != 0xA0 {
		t.Fatalf("p=%#x, want 0xA0", c.P)
	}
}

func TestScenarioFBranchTaken(t *testing.T) {
	bytes := []uint8{0x38, 0xB0, 0x02, 0xA9, 0xFF, 0x00}
	_, c := loadProgram(bytes)
	runUntil(t, c, 0x0605)
	if c.A != 0x00 {
		t.Fatalf("a=%#x, want 0x00 (LDA #$FF at 0603 must be skipped)", c.A)
	}
}

func TestResetState(t *testing.T) {
	mem := &flatMemory{}
	mem.data[0xFFFC] = 0x34
	mem.data[0xFFFD] = 0x12
	c := New(mem)
	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if c.PC != 0x1234 {
		t.Fatalf("pc=%#x, want 0x1234", c.PC)
	}
	if c.SP != 0xFF || c.P != 0x20 || c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Fatalf("unexpected power-up state: sp=%#x p=%#x a=%#x x=%#x y=%#x", c.SP, c.P, c.A, c.X, c.Y)
	}
}

func TestUnknownOpcodeDoesNotAdvancePC(t *testing.T) {
	mem, c := loadProgram([]uint8{0xFF})
	_ = mem
	pc := c.PC
	err := c.Step()
	if err == nil {
		t.Fatalf("expected UnknownOpcode error")
	}
	if c.PC != pc {
		t.Fatalf("pc advanced on unknown opcode: %#x -> %#x", pc, c.PC)
	}
}

func TestNMIPushesPCAndStatus(t *testing.T) {
	mem, c := loadProgram([]uint8{0xEA})
	mem.data[0xFFFA] = 0x00
	mem.data[0xFFFB] = 0x07
	c.SP = 0xFF
	startPC := c.PC
	if err := c.HardwareInterrupt(NMI); err != nil {
		t.Fatalf("HardwareInterrupt: %v", err)
	}
	if c.PC != 0x0700 {
		t.Fatalf("pc=%#x, want 0x0700", c.PC)
	}
	if !c.flag(FlagInterruptDisable) {
		t.Fatalf("expected interrupt-disable set after NMI")
	}
	if mem.data[0x01FF] != uint8(startPC>>8) || mem.data[0x01FE] != uint8(startPC) {
		t.Fatalf("pushed pc mismatch: high=%#x low=%#x", mem.data[0x01FF], mem.data[0x01FE])
	}
	if mem.data[0x01FD] != 0x20 {
		t.Fatalf("pushed status = %#x, want 0x20", mem.data[0x01FD])
	}
}

func TestIRQIgnoredWhenInterruptDisableSet(t *testing.T) {
	mem, c := loadProgram([]uint8{0xEA})
	mem.data[0xFFFE] = 0x00
	mem.data[0xFFFF] = 0x08
	c.setFlag(FlagInterruptDisable, true)
	pc := c.PC
	sp := c.SP
	if err := c.HardwareInterrupt(IRQ); err != nil {
		t.Fatalf("HardwareInterrupt: %v", err)
	}
	if c.PC != pc || c.SP != sp {
		t.Fatalf("IRQ should be a no-op when interrupt-disable is set")
	}
}
