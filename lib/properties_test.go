package lib

import (
    "testing"
)

/* run a single immediate mode instruction on a reused cpu */
func runImmediate(cpu *CPUState, memory *Memory, code byte, a byte, value byte, carry bool){
    memory.Write(0x0600, code)
    memory.Write(0x0601, value)
    cpu.PC = 0x0600
    cpu.A = a
    cpu.Status = FlagUnused | FlagBreak
    cpu.Status.Set(FlagCarry, carry)
    cpu.Step()
}

/* ADC against an integer model for every a, b and carry in */
func TestADCExhaustive(test *testing.T){
    cpu, memory := makeCPU()

    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            for _, carry := range []bool{false, true} {
                runImmediate(cpu, memory, 0x69, byte(a), byte(b), carry)

                carryIn := 0
                if carry {
                    carryIn = 1
                }
                sum := a + b + carryIn
                signed := int(int8(byte(a))) + int(int8(byte(b))) + carryIn

                if cpu.A != byte(sum) {
                    test.Fatalf("adc 0x%x + 0x%x + %v: A is 0x%x", a, b, carryIn, cpu.A)
                }
                if cpu.Status.Has(FlagCarry) != (sum > 0xff) {
                    test.Fatalf("adc 0x%x + 0x%x + %v: wrong carry", a, b, carryIn)
                }
                if cpu.Status.Has(FlagOverflow) != (signed < -128 || signed > 127) {
                    test.Fatalf("adc 0x%x + 0x%x + %v: wrong overflow", a, b, carryIn)
                }
                if cpu.Status.Has(FlagZero) != (byte(sum) == 0) {
                    test.Fatalf("adc 0x%x + 0x%x + %v: wrong zero", a, b, carryIn)
                }
                if cpu.Status.Has(FlagNegative) != (byte(sum) & 0x80 != 0) {
                    test.Fatalf("adc 0x%x + 0x%x + %v: wrong negative", a, b, carryIn)
                }
            }
        }
    }
}

func TestSBCExhaustive(test *testing.T){
    cpu, memory := makeCPU()

    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            for _, carry := range []bool{false, true} {
                borrow := 1
                if carry {
                    borrow = 0
                }
                difference := a - b - borrow
                signed := int(int8(byte(a))) - int(int8(byte(b))) - borrow

                runImmediate(cpu, memory, 0xe9, byte(a), byte(b), carry)
                sbcA := cpu.A
                sbcStatus := cpu.Status

                if sbcA != byte(difference) {
                    test.Fatalf("sbc 0x%x - 0x%x - %v: A is 0x%x", a, b, borrow, sbcA)
                }
                if sbcStatus.Has(FlagCarry) != (difference >= 0) {
                    test.Fatalf("sbc 0x%x - 0x%x - %v: wrong carry", a, b, borrow)
                }
                if sbcStatus.Has(FlagOverflow) != (signed < -128 || signed > 127) {
                    test.Fatalf("sbc 0x%x - 0x%x - %v: wrong overflow", a, b, borrow)
                }

                /* sbc is adc of the one's complement */
                runImmediate(cpu, memory, 0x69, byte(a), SbcOperand(byte(b)), carry)
                if cpu.A != sbcA || cpu.Status != sbcStatus {
                    test.Fatalf("sbc 0x%x 0x%x %v does not match adc of 0x%x", a, b, carry, SbcOperand(byte(b)))
                }
            }
        }
    }
}

func TestCMPExhaustive(test *testing.T){
    cpu, memory := makeCPU()

    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            runImmediate(cpu, memory, 0xc9, byte(a), byte(b), false)

            if cpu.A != byte(a) {
                test.Fatalf("cmp changed A")
            }
            if cpu.Status.Has(FlagCarry) != (a >= b) {
                test.Fatalf("cmp 0x%x 0x%x: wrong carry", a, b)
            }
            if cpu.Status.Has(FlagZero) != (a == b) {
                test.Fatalf("cmp 0x%x 0x%x: wrong zero", a, b)
            }
            if cpu.Status.Has(FlagNegative) != (byte(a - b) & 0x80 != 0) {
                test.Fatalf("cmp 0x%x 0x%x: wrong negative", a, b)
            }
        }
    }
}

func TestSbcOperand(test *testing.T){
    for value := 0; value < 256; value++ {
        if SbcOperand(byte(value)) != ^byte(value) {
            test.Fatalf("SbcOperand(0x%x) = 0x%x", value, SbcOperand(byte(value)))
        }
    }
}

/* shifting left then right gives back the value with bit 7 cleared */
func TestShiftRoundTrip(test *testing.T){
    cpu, _ := makeCPU()
    for value := 0; value < 256; value++ {
        out := cpu.doLsr(cpu.doAsl(byte(value)))
        if out != byte(value) & 0x7f {
            test.Fatalf("asl/lsr of 0x%x gave 0x%x", value, out)
        }

        /* 9 rotations through carry is the identity */
        cpu.Status.Set(FlagCarry, false)
        rotated := byte(value)
        for i := 0; i < 9; i++ {
            rotated = cpu.doRol(rotated)
        }
        if rotated != byte(value) || cpu.Status.Has(FlagCarry) {
            test.Fatalf("9 rol of 0x%x gave 0x%x", value, rotated)
        }
    }
}
