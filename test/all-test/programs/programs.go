package programs

import (
    "fmt"
    "log"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/data"
    test_utils "github.com/kazzmir/m6502/test/all-test/utils"
)

/* the bundled sample programs and the state they must finish in */
type Expectation struct {
    Name string
    Check func(cpu *m6502.CPUState) error
}

var Expectations = []Expectation{
    Expectation{
        Name: "multiply",
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 0x1e || cpu.LoadMemory(0x00) != 0x1e {
                return fmt.Errorf("expected 0x1e in A and $00: %v", cpu.String())
            }
            return nil
        },
    },
    Expectation{
        Name: "stack",
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 15 || cpu.SP != 0xff {
                return fmt.Errorf("expected A=15 and an empty stack: %v", cpu.String())
            }
            return nil
        },
    },
    Expectation{
        Name: "subroutine",
        Check: func(cpu *m6502.CPUState) error {
            if cpu.X != 5 || cpu.SP != 0xfd || cpu.PC != 0x0613 {
                return fmt.Errorf("unexpected state %v", cpu.String())
            }
            return nil
        },
    },
    Expectation{
        Name: "fill",
        Check: func(cpu *m6502.CPUState) error {
            for i := 0; i < 256; i++ {
                address := uint16(0x0200 + i)
                if cpu.LoadMemory(address) != byte(i) {
                    return fmt.Errorf("screen byte 0x%04x is 0x%x", address, cpu.LoadMemory(address))
                }
            }
            return nil
        },
    },
}

/* programs that do not finish on their own get this many instructions */
const MaxSteps = 1000000

func runProgram(expectation Expectation, debug bool) error {
    program, err := data.LoadProgram(expectation.Name)
    if err != nil {
        return err
    }

    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)
    if debug {
        cpu.Debug = 1
    }
    err = cpu.Load(program)
    if err != nil {
        return err
    }
    cpu.Reset()

    steps := 0
    reason, err := cpu.RunWithCallback(func(cpu *m6502.CPUState) bool {
        steps += 1
        return steps <= MaxSteps
    })
    if err != nil {
        return err
    }

    if reason != m6502.HaltBreak {
        return fmt.Errorf("did not reach brk after %v steps", MaxSteps)
    }

    return expectation.Check(cpu)
}

func Run(debug bool) (bool, error) {
    pass := true
    for _, expectation := range Expectations {
        err := runProgram(expectation, debug)
        if err != nil {
            log.Printf("%v: %v", expectation.Name, err)
            log.Print(test_utils.Failure(expectation.Name))
            pass = false
        } else if debug {
            log.Print(test_utils.Success(expectation.Name))
        }
    }
    return pass, nil
}
