package lib

/* The displacement is a signed byte relative to the address right after it.
 * When the branch is not taken nothing happens here and the run loop skips
 * the displacement byte.
 */
func (cpu *CPUState) branch(condition bool){
    if !condition {
        return
    }

    displacement := int8(cpu.LoadMemory(cpu.PC))
    /* converting through int8 sign extends, and uint16 addition wraps */
    cpu.PC = cpu.PC + 1 + uint16(displacement)
}

/* the address a branch at address would jump to if it were taken */
func BranchTarget(address uint16, displacement byte) uint16 {
    return address + 2 + uint16(int8(displacement))
}
