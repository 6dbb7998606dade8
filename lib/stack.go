package lib

/* The stack lives in page 1. SP is only 8 bits, so pushing past 0x0100 wraps
 * back around to 0x01ff rather than running into the zero page.
 */
func (cpu *CPUState) PushStack(value byte) {
    cpu.StoreMemory(StackBase | uint16(cpu.SP), value)
    cpu.SP -= 1
}

func (cpu *CPUState) PopStack() byte {
    cpu.SP += 1
    return cpu.LoadMemory(StackBase | uint16(cpu.SP))
}

func (cpu *CPUState) jmp(mode AddressingMode) error {
    address, err := cpu.OperandAddress(mode)
    if err != nil {
        return err
    }
    cpu.PC = address
    return nil
}

/* JSR pushes the address of its own last byte, RTS adds the missing 1 back */
func (cpu *CPUState) jsr(mode AddressingMode) error {
    address, err := cpu.OperandAddress(mode)
    if err != nil {
        return err
    }

    ret := cpu.PC + 1
    cpu.PushStack(byte(ret >> 8))
    cpu.PushStack(byte(ret & 0xff))
    cpu.PC = address
    return nil
}

func (cpu *CPUState) rts(){
    low := uint16(cpu.PopStack())
    high := uint16(cpu.PopStack())
    cpu.PC = ((high<<8) | low) + 1
}

/* there are no interrupts to return from, but a program can still build an
 * interrupt frame by hand (status on top, then the return address)
 */
func (cpu *CPUState) rti(){
    cpu.Status = StatusFlags(cpu.PopStack())
    low := uint16(cpu.PopStack())
    high := uint16(cpu.PopStack())
    cpu.PC = (high<<8) | low
}
