package cpu

import "nescore/internal/memport"

// execute dispatches a decoded instruction to its operation. Operations
// divide into three kinds by memory interaction: read-operand (load a
// byte and use it), read-modify-write (load, transform, store back), and
// store (write without reading). Which kind an opcode belongs to falls
// out of its mnemonic below rather than being tracked as a separate enum
// field, since every mnemonic has exactly one interaction kind.
func (cpu *CPU) execute(mnemonic string, mode Mode, addr uint16) error {
	switch mnemonic {
	case "ADC":
		return cpu.adc(mode, addr)
	case "SBC":
		return cpu.sbc(mode, addr)
	case "AND":
		return cpu.bitwise(mode, addr, func(a, v uint8) uint8 { return a & v })
	case "ORA":
		return cpu.bitwise(mode, addr, func(a, v uint8) uint8 { return a | v })
	case "EOR":
		return cpu.bitwise(mode, addr, func(a, v uint8) uint8 { return a ^ v })
	case "ASL":
		return cpu.shift(mode, addr, true, true)
	case "LSR":
		return cpu.shift(mode, addr, false, true)
	case "ROL":
		return cpu.shift(mode, addr, true, false)
	case "ROR":
		return cpu.shift(mode, addr, false, false)
	case "BIT":
		return cpu.bit(addr)
	case "CMP":
		return cpu.compare(cpu.A, addr)
	case "CPX":
		return cpu.compare(cpu.X, addr)
	case "CPY":
		return cpu.compare(cpu.Y, addr)
	case "DEC":
		return cpu.incDecMemory(mode, addr, -1)
	case "INC":
		return cpu.incDecMemory(mode, addr, 1)
	case "DEX":
		cpu.X--
		cpu.updateZN(cpu.X)
		return nil
	case "DEY":
		cpu.Y--
		cpu.updateZN(cpu.Y)
		return nil
	case "INX":
		cpu.X++
		cpu.updateZN(cpu.X)
		return nil
	case "INY":
		cpu.Y++
		cpu.updateZN(cpu.Y)
		return nil
	case "LDA":
		return cpu.load(&cpu.A, mode, addr)
	case "LDX":
		return cpu.load(&cpu.X, mode, addr)
	case "LDY":
		return cpu.load(&cpu.Y, mode, addr)
	case "STA":
		return cpu.store(mode, addr, cpu.A)
	case "STX":
		return cpu.store(mode, addr, cpu.X)
	case "STY":
		return cpu.store(mode, addr, cpu.Y)
	case "TAX":
		cpu.X = cpu.A
		cpu.updateZN(cpu.X)
		return nil
	case "TAY":
		cpu.Y = cpu.A
		cpu.updateZN(cpu.Y)
		return nil
	case "TSX":
		cpu.X = cpu.SP
		cpu.updateZN(cpu.X)
		return nil
	case "TXA":
		cpu.A = cpu.X
		cpu.updateZN(cpu.A)
		return nil
	case "TXS":
		cpu.SP = cpu.X
		return nil
	case "TYA":
		cpu.A = cpu.Y
		cpu.updateZN(cpu.A)
		return nil
	case "PHA":
		return cpu.pushByte(cpu.A)
	case "PHP":
		return cpu.pushByte(cpu.P)
	case "PLA":
		v, err := cpu.pullByte()
		if err != nil {
			return err
		}
		cpu.A = v
		cpu.updateZN(cpu.A)
		return nil
	case "PLP":
		v, err := cpu.pullByte()
		if err != nil {
			return err
		}
		cpu.P = (v &^ uint8(FlagBreak)) | uint8(FlagUnused)
		return nil
	case "BCC":
		return cpu.branch(addr, !cpu.flag(FlagCarry))
	case "BCS":
		return cpu.branch(addr, cpu.flag(FlagCarry))
	case "BEQ":
		return cpu.branch(addr, cpu.flag(FlagZero))
	case "BNE":
		return cpu.branch(addr, !cpu.flag(FlagZero))
	case "BMI":
		return cpu.branch(addr, cpu.flag(FlagNegative))
	case "BPL":
		return cpu.branch(addr, !cpu.flag(FlagNegative))
	case "BVC":
		return cpu.branch(addr, !cpu.flag(FlagOverflow))
	case "BVS":
		return cpu.branch(addr, cpu.flag(FlagOverflow))
	case "CLC":
		cpu.setFlag(FlagCarry, false)
		return nil
	case "CLD":
		cpu.setFlag(FlagDecimal, false)
		return nil
	case "CLI":
		cpu.setFlag(FlagInterruptDisable, false)
		return nil
	case "CLV":
		cpu.setFlag(FlagOverflow, false)
		return nil
	case "SEC":
		cpu.setFlag(FlagCarry, true)
		return nil
	case "SED":
		cpu.setFlag(FlagDecimal, true)
		return nil
	case "SEI":
		cpu.setFlag(FlagInterruptDisable, true)
		return nil
	case "JMP":
		cpu.PC = addr
		return nil
	case "JSR":
		if err := cpu.pushPointer(cpu.PC - 1); err != nil {
			return err
		}
		cpu.PC = addr
		return nil
	case "RTS":
		ret, err := cpu.pullPointer()
		if err != nil {
			return err
		}
		cpu.PC = ret + 1
		return nil
	case "RTI":
		p, err := cpu.pullByte()
		if err != nil {
			return err
		}
		cpu.P = (p &^ uint8(FlagBreak)) | uint8(FlagUnused)
		ret, err := cpu.pullPointer()
		if err != nil {
			return err
		}
		cpu.PC = ret
		return nil
	case "BRK":
		return cpu.brk()
	case "NOP":
		return nil
	default:
		return &UnknownOpcode{Opcode: 0, PC: cpu.PC}
	}
}

func (cpu *CPU) adc(mode Mode, addr uint16) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	carryIn := uint16(0)
	if cpu.flag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(cpu.A) + uint16(v) + carryIn
	result := uint8(sum)
	cpu.setFlag(FlagCarry, sum > 0xFF)
	cpu.setFlag(FlagOverflow, (^(cpu.A^v))&(cpu.A^result)&0x80 != 0)
	cpu.A = result
	cpu.updateZN(cpu.A)
	return nil
}

// sbc is computed as adc against the one's complement of the operand,
// the standard formulation that reuses the carry/overflow rules of
// addition rather than tracking borrow directly.
func (cpu *CPU) sbc(mode Mode, addr uint16) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	inverted := ^v
	carryIn := uint16(0)
	if cpu.flag(FlagCarry) {
		carryIn = 1
	}
	sum := uint16(cpu.A) + uint16(inverted) + carryIn
	result := uint8(sum)
	cpu.setFlag(FlagCarry, sum > 0xFF)
	cpu.setFlag(FlagOverflow, (^(cpu.A^inverted))&(cpu.A^result)&0x80 != 0)
	cpu.A = result
	cpu.updateZN(cpu.A)
	return nil
}

func (cpu *CPU) bitwise(mode Mode, addr uint16, op func(a, v uint8) uint8) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	cpu.A = op(cpu.A, v)
	cpu.updateZN(cpu.A)
	return nil
}

func (cpu *CPU) bit(addr uint16) error {
	v, err := cpu.bus.ReadByte(addr)
	if err != nil {
		return err
	}
	cpu.setFlag(FlagZero, cpu.A&v == 0)
	cpu.setFlag(FlagOverflow, v&0x40 != 0)
	cpu.setFlag(FlagNegative, v&0x80 != 0)
	return nil
}

func (cpu *CPU) compare(reg uint8, addr uint16) error {
	v, err := cpu.bus.ReadByte(addr)
	if err != nil {
		return err
	}
	cpu.setFlag(FlagCarry, reg >= v)
	cpu.updateZN(reg - v)
	return nil
}

// shift implements ASL/LSR/ROL/ROR. left selects ASL/ROL vs LSR/ROR;
// plain selects the non-rotating shifts ASL/LSR (true, no carry-in) vs
// the rotating ROL/ROR (false, carry feeds back in on the vacated bit).
func (cpu *CPU) shift(mode Mode, addr uint16, left, plain bool) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	var result uint8
	var carryOut bool
	if left {
		carryOut = v&0x80 != 0
		result = v << 1
		if !plain && cpu.flag(FlagCarry) {
			result |= 0x01
		}
	} else {
		carryOut = v&0x01 != 0
		result = v >> 1
		if !plain && cpu.flag(FlagCarry) {
			result |= 0x80
		}
	}
	cpu.setFlag(FlagCarry, carryOut)
	cpu.updateZN(result)
	return cpu.store(mode, addr, result)
}

func (cpu *CPU) incDecMemory(mode Mode, addr uint16, delta int) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	result := v + uint8(delta)
	cpu.updateZN(result)
	return cpu.store(mode, addr, result)
}

func (cpu *CPU) load(reg *uint8, mode Mode, addr uint16) error {
	v, err := cpu.operand(mode, addr)
	if err != nil {
		return err
	}
	*reg = v
	cpu.updateZN(*reg)
	return nil
}

// branch takes the branch by assigning PC directly to the already
// resolved relative target; a not-taken branch leaves PC at the value
// resolveOperand already advanced it to.
func (cpu *CPU) branch(target uint16, taken bool) error {
	if taken {
		cpu.PC = target
	}
	return nil
}

// brk pushes pc+2 (skipping the padding byte that follows the BRK
// opcode), pushes p with the break bit set in the pushed copy only,
// clears break in the live register, and loads the IRQ vector.
func (cpu *CPU) brk() error {
	if err := cpu.pushPointer(cpu.PC + 1); err != nil {
		return err
	}
	if err := cpu.pushByte(cpu.P | uint8(FlagBreak)); err != nil {
		return err
	}
	cpu.setFlag(FlagBreak, false)
	cpu.setFlag(FlagInterruptDisable, true)
	pc, err := memport.ReadPointer(cpu.bus, irqVector)
	if err != nil {
		return err
	}
	cpu.PC = pc
	return nil
}
