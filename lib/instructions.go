package lib

func (cpu *CPUState) doLoad(register *byte, mode AddressingMode) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    *register = value
    cpu.Status.SetZeroAndNegative(value)
    return nil
}

/* stores never touch the flags */
func (cpu *CPUState) doStore(value byte, mode AddressingMode) error {
    address, err := cpu.OperandAddress(mode)
    if err != nil {
        return err
    }
    cpu.StoreMemory(address, value)
    return nil
}

func (cpu *CPUState) doTransfer(register *byte, value byte){
    *register = value
    cpu.Status.SetZeroAndNegative(value)
}

/* A + value + carry. Shared by adc and sbc
 * http://www.6502.org/tutorials/vflag.html
 */
func (cpu *CPUState) addToA(value byte){
    var carryBit uint16
    if cpu.Status.Has(FlagCarry) {
        carryBit = 1
    }

    full := uint16(cpu.A) + uint16(value) + carryBit
    result := byte(full)

    cpu.Status.Set(FlagCarry, full > 0xff)
    /* overflow when both inputs have the same sign and the result has the other one */
    cpu.Status.Set(FlagOverflow, (cpu.A ^ result) & (value ^ result) & 0x80 != 0)
    cpu.Status.SetZeroAndNegative(result)
    cpu.A = result
}

func (cpu *CPUState) adc(mode AddressingMode) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    cpu.addToA(value)
    return nil
}

/* A - M - (1 - C) is the same as A + (-M - 1) + C */
func SbcOperand(value byte) byte {
    return byte(-int8(value)) - 1
}

func (cpu *CPUState) sbc(mode AddressingMode) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    cpu.addToA(SbcOperand(value))
    return nil
}

func (cpu *CPUState) compare(register byte, mode AddressingMode) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    cpu.Status.SetZeroAndNegative(register - value)
    cpu.Status.Set(FlagCarry, register >= value)
    return nil
}

func (cpu *CPUState) logic(mode AddressingMode, operation func(byte, byte) byte) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    cpu.A = operation(cpu.A, value)
    cpu.Status.SetZeroAndNegative(cpu.A)
    return nil
}

/* zero comes from A & M, but negative and overflow are copied straight from
 * bits 7 and 6 of the memory value
 */
func (cpu *CPUState) bit(mode AddressingMode) error {
    value, err := cpu.operandValue(mode)
    if err != nil {
        return err
    }
    cpu.Status.Set(FlagZero, cpu.A & value == 0)
    cpu.Status.Set(FlagNegative, value & (1<<7) == (1<<7))
    cpu.Status.Set(FlagOverflow, value & (1<<6) == (1<<6))
    return nil
}

/* read-modify-write. the accumulator form operates on A without touching memory */
func (cpu *CPUState) modify(mode AddressingMode, operation func(byte) byte) error {
    if mode == Accumulator {
        cpu.A = operation(cpu.A)
        return nil
    }

    address, err := cpu.OperandAddress(mode)
    if err != nil {
        return err
    }
    cpu.StoreMemory(address, operation(cpu.LoadMemory(address)))
    return nil
}

func (cpu *CPUState) doAsl(value byte) byte {
    out := value << 1
    cpu.Status.Set(FlagCarry, value & (1<<7) == (1<<7))
    cpu.Status.SetZeroAndNegative(out)
    return out
}

func (cpu *CPUState) doLsr(value byte) byte {
    out := value >> 1
    cpu.Status.Set(FlagCarry, value & 1 == 1)
    cpu.Status.SetZeroAndNegative(out)
    return out
}

func (cpu *CPUState) doRol(value byte) byte {
    var carryBit byte
    if cpu.Status.Has(FlagCarry) {
        carryBit = 1
    }

    out := (value << 1) | carryBit
    cpu.Status.Set(FlagCarry, value & (1<<7) == (1<<7))
    cpu.Status.SetZeroAndNegative(out)
    return out
}

func (cpu *CPUState) doRor(value byte) byte {
    var carryBit byte
    if cpu.Status.Has(FlagCarry) {
        carryBit = 1
    }

    out := (value >> 1) | (carryBit << 7)
    cpu.Status.Set(FlagCarry, value & 1 == 1)
    cpu.Status.SetZeroAndNegative(out)
    return out
}

func (cpu *CPUState) doInc(value byte) byte {
    value = value + 1
    cpu.Status.SetZeroAndNegative(value)
    return value
}

func (cpu *CPUState) doDec(value byte) byte {
    value = value - 1
    cpu.Status.SetZeroAndNegative(value)
    return value
}
