package properties

import (
    "fmt"
    "log"

    m6502 "github.com/kazzmir/m6502/lib"
    test_utils "github.com/kazzmir/m6502/test/all-test/utils"
)

/* arithmetic and stack properties checked over every input */

type testMachine struct {
    cpu *m6502.CPUState
    memory *m6502.Memory
}

func makeMachine() *testMachine {
    memory := m6502.NewMemory()
    return &testMachine{
        cpu: m6502.NewCPU(memory),
        memory: memory,
    }
}

/* run one immediate mode instruction at 0x0600 */
func (machine *testMachine) immediate(code byte, a byte, value byte, carry bool) error {
    machine.memory.Write(0x0600, code)
    machine.memory.Write(0x0601, value)
    machine.cpu.PC = 0x0600
    machine.cpu.A = a
    machine.cpu.Status = m6502.FlagUnused | m6502.FlagBreak
    machine.cpu.Status.Set(m6502.FlagCarry, carry)
    _, err := machine.cpu.Step()
    return err
}

func checkAdc() error {
    machine := makeMachine()
    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            for _, carry := range []bool{false, true} {
                err := machine.immediate(0x69, byte(a), byte(b), carry)
                if err != nil {
                    return err
                }

                carryIn := 0
                if carry {
                    carryIn = 1
                }
                sum := a + b + carryIn
                result := byte(sum)
                overflow := (byte(a) ^ result) & (byte(b) ^ result) & 0x80 != 0

                cpu := machine.cpu
                if cpu.A != result || cpu.Status.Has(m6502.FlagCarry) != (sum > 0xff) || cpu.Status.Has(m6502.FlagOverflow) != overflow {
                    return fmt.Errorf("adc 0x%02x 0x%02x carry %v gave %v", a, b, carry, cpu.String())
                }
            }
        }
    }
    return nil
}

/* sbc must behave exactly like adc of the inverted operand */
func checkSbc() error {
    sbc := makeMachine()
    adc := makeMachine()
    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            for _, carry := range []bool{false, true} {
                err := sbc.immediate(0xe9, byte(a), byte(b), carry)
                if err != nil {
                    return err
                }
                err = adc.immediate(0x69, byte(a), m6502.SbcOperand(byte(b)), carry)
                if err != nil {
                    return err
                }

                if sbc.cpu.A != adc.cpu.A || sbc.cpu.Status != adc.cpu.Status {
                    return fmt.Errorf("sbc 0x%02x 0x%02x carry %v gave %v but adc gave %v", a, b, carry, sbc.cpu.String(), adc.cpu.String())
                }
            }
        }
    }
    return nil
}

func checkCmp() error {
    machine := makeMachine()
    for a := 0; a < 256; a++ {
        for b := 0; b < 256; b++ {
            err := machine.immediate(0xc9, byte(a), byte(b), false)
            if err != nil {
                return err
            }
            cpu := machine.cpu
            if cpu.Status.Has(m6502.FlagCarry) != (a >= b) || cpu.Status.Has(m6502.FlagZero) != (a == b) || cpu.A != byte(a) {
                return fmt.Errorf("cmp 0x%02x 0x%02x gave %v", a, b, cpu.Status.String())
            }
        }
    }
    return nil
}

/* pha then pla from every stack position with every value */
func checkPushPull() error {
    machine := makeMachine()
    for sp := 0; sp < 256; sp++ {
        for value := 0; value < 256; value++ {
            /* pha; lda #0; pla */
            machine.memory.Copy(0x0600, []byte{0x48, 0xa9, 0x00, 0x68})
            machine.cpu.PC = 0x0600
            machine.cpu.SP = byte(sp)
            machine.cpu.A = byte(value)
            for i := 0; i < 3; i++ {
                _, err := machine.cpu.Step()
                if err != nil {
                    return err
                }
            }

            if machine.cpu.A != byte(value) || machine.cpu.SP != byte(sp) {
                return fmt.Errorf("pha/pla of 0x%02x from sp 0x%02x gave %v", value, sp, machine.cpu.String())
            }
        }
    }
    return nil
}

/* jsr to an rts from every stack position and a spread of call sites */
func checkCallReturn() error {
    machine := makeMachine()
    for sp := 0; sp < 256; sp++ {
        for site := uint16(0x0600); site < 0x0700; site += 0x11 {
            machine.memory.Copy(site, []byte{0x20, 0x00, 0x80})
            machine.memory.Write(0x8000, 0x60)
            machine.cpu.PC = site
            machine.cpu.SP = byte(sp)
            for i := 0; i < 2; i++ {
                _, err := machine.cpu.Step()
                if err != nil {
                    return err
                }
            }

            if machine.cpu.PC != site + 3 || machine.cpu.SP != byte(sp) {
                return fmt.Errorf("jsr/rts at 0x%04x from sp 0x%02x gave %v", site, sp, machine.cpu.String())
            }
        }
    }
    return nil
}

func Run(debug bool) (bool, error) {
    checks := []struct {
        name string
        check func() error
    }{
        {"adc", checkAdc},
        {"sbc", checkSbc},
        {"cmp", checkCmp},
        {"pha/pla", checkPushPull},
        {"jsr/rts", checkCallReturn},
    }

    pass := true
    for _, check := range checks {
        err := check.check()
        if err != nil {
            log.Printf("%v", err)
            log.Print(test_utils.Failure(check.name))
            pass = false
        } else if debug {
            log.Print(test_utils.Success(check.name))
        }
    }
    return pass, nil
}
