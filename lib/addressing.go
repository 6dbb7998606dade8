package lib

/* https://www.masswerk.at/6502/6502_instruction_set.html
 * A = accumulator
 * abs = absolute
 * # = immediate
 * impl = implied
 * ind = indirect
 * rel = relative
 * zpg = zeropage
 */
type AddressingMode int

const (
    Immediate AddressingMode = iota
    Implied
    Accumulator
    ZeroPage
    ZeroPage_X
    ZeroPage_Y
    Absolute
    Absolute_X
    Absolute_Y
    Indirect
    Indirect_X
    Indirect_Y
    /* branches compute their own target from the displacement byte */
    NoneAddressing
)

func (mode AddressingMode) String() string {
    switch mode {
        case Immediate: return "Immediate"
        case Implied: return "Implied"
        case Accumulator: return "Accumulator"
        case ZeroPage: return "ZeroPage"
        case ZeroPage_X: return "ZeroPage_X"
        case ZeroPage_Y: return "ZeroPage_Y"
        case Absolute: return "Absolute"
        case Absolute_X: return "Absolute_X"
        case Absolute_Y: return "Absolute_Y"
        case Indirect: return "Indirect"
        case Indirect_X: return "Indirect_X"
        case Indirect_Y: return "Indirect_Y"
        case NoneAddressing: return "NoneAddressing"
    }

    return "unknown addressing mode"
}

/* read a little endian pointer out of the zero page. the high byte comes from
 * (pointer+1) & 0xff, so a pointer at 0xff takes its high byte from 0x00
 */
func (cpu *CPUState) loadZeroPagePointer(pointer byte) uint16 {
    low := uint16(cpu.LoadMemory(uint16(pointer)))
    high := uint16(cpu.LoadMemory(uint16(pointer + 1)))
    return (high<<8) | low
}

/* Compute the effective address of the operand for the instruction whose
 * first operand byte is at cpu.PC. The PC is not modified.
 */
func (cpu *CPUState) OperandAddress(mode AddressingMode) (uint16, error) {
    switch mode {
        case Immediate, Implied:
            return cpu.PC, nil

        case ZeroPage:
            return uint16(cpu.LoadMemory(cpu.PC)), nil

        case ZeroPage_X:
            /* keeping the sum as a byte wraps inside the zero page */
            return uint16(cpu.LoadMemory(cpu.PC) + cpu.X), nil

        case ZeroPage_Y:
            return uint16(cpu.LoadMemory(cpu.PC) + cpu.Y), nil

        case Absolute:
            return Read16(cpu.Bus, cpu.PC), nil

        case Absolute_X:
            return Read16(cpu.Bus, cpu.PC) + uint16(cpu.X), nil

        case Absolute_Y:
            return Read16(cpu.Bus, cpu.PC) + uint16(cpu.Y), nil

        case Indirect:
            pointer := Read16(cpu.Bus, cpu.PC)
            low := uint16(cpu.LoadMemory(pointer))

            /* the 6502 never carries into the high byte of the pointer, so
             * JMP ($10ff) reads its high byte from $1000 instead of $1100
             */
            highAddress := pointer + 1
            if pointer & 0xff == 0xff {
                highAddress = pointer & 0xff00
            }
            high := uint16(cpu.LoadMemory(highAddress))
            return (high<<8) | low, nil

        case Indirect_X:
            return cpu.loadZeroPagePointer(cpu.LoadMemory(cpu.PC) + cpu.X), nil

        case Indirect_Y:
            base := cpu.loadZeroPagePointer(cpu.LoadMemory(cpu.PC))
            return base + uint16(cpu.Y), nil
    }

    return 0, &InvalidAddressingModeError{Mode: mode}
}

/* load the byte the operand refers to */
func (cpu *CPUState) operandValue(mode AddressingMode) (byte, error) {
    address, err := cpu.OperandAddress(mode)
    if err != nil {
        return 0, err
    }
    return cpu.LoadMemory(address), nil
}
