package cpu

import (
	"nescore/internal/bits"
	"nescore/internal/memport"
)

// Mode names one of the 6502's addressing modes. The decoder pairs every
// opcode with exactly one of these.
type Mode int

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// resolveOperand advances PC past the instruction's operand bytes and
// returns the effective address the operation should read, write, or
// branch to. For Implied and Accumulator the returned address is unused.
func (cpu *CPU) resolveOperand(mode Mode) (uint16, error) {
	switch mode {
	case Implied, Accumulator:
		cpu.PC++
		return 0, nil

	case Immediate:
		addr := cpu.PC + 1
		cpu.PC += 2
		return addr, nil

	case ZeroPage:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		cpu.PC += 2
		return uint16(b), err

	case ZeroPageX:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		cpu.PC += 2
		return uint16(b+cpu.X) & 0xFF, err

	case ZeroPageY:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		cpu.PC += 2
		return uint16(b+cpu.Y) & 0xFF, err

	case Relative:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		if err != nil {
			return 0, err
		}
		base := cpu.PC + 2
		cpu.PC += 2
		return uint16(int32(base) + int32(bits.DecodeTwosComplement(b))), nil

	case Absolute:
		addr, err := memport.ReadPointer(cpu.bus, cpu.PC+1)
		cpu.PC += 3
		return addr, err

	case AbsoluteX:
		addr, err := memport.ReadPointer(cpu.bus, cpu.PC+1)
		cpu.PC += 3
		return addr + uint16(cpu.X), err

	case AbsoluteY:
		addr, err := memport.ReadPointer(cpu.bus, cpu.PC+1)
		cpu.PC += 3
		return addr + uint16(cpu.Y), err

	case Indirect:
		addr, err := memport.DerefPointer(cpu.bus, cpu.PC+1)
		cpu.PC += 3
		return addr, err

	case IndexedIndirect:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		cpu.PC += 2
		if err != nil {
			return 0, err
		}
		return memport.ReadPointer(cpu.bus, uint16(b+cpu.X)&0xFF)

	case IndirectIndexed:
		b, err := cpu.bus.ReadByte(cpu.PC + 1)
		cpu.PC += 2
		if err != nil {
			return 0, err
		}
		base, err := memport.ReadPointer(cpu.bus, uint16(b))
		if err != nil {
			return 0, err
		}
		return base + uint16(cpu.Y), nil

	default:
		cpu.PC++
		return 0, nil
	}
}
