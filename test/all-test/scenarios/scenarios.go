package scenarios

import (
    "fmt"
    "log"

    m6502 "github.com/kazzmir/m6502/lib"
    test_utils "github.com/kazzmir/m6502/test/all-test/utils"
)

/* small programs loaded at the default address and run until brk */
type Scenario struct {
    Name string
    Program []byte
    /* set up memory before the run */
    Setup func(memory *m6502.Memory)
    Check func(cpu *m6502.CPUState) error
}

func checkFlag(cpu *m6502.CPUState, name string, flag m6502.StatusFlags, expected bool) error {
    if cpu.Status.Has(flag) != expected {
        return fmt.Errorf("expected %v to be %v in %v", name, expected, cpu.Status.String())
    }
    return nil
}

var Scenarios = []Scenario{
    Scenario{
        Name: "lda immediate",
        Program: []byte{0xa9, 0x05, 0x00},
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 5 {
                return fmt.Errorf("A is 0x%x", cpu.A)
            }
            if err := checkFlag(cpu, "zero", m6502.FlagZero, false); err != nil {
                return err
            }
            return checkFlag(cpu, "negative", m6502.FlagNegative, false)
        },
    },
    Scenario{
        Name: "adc carry",
        Program: []byte{0xa9, 0xfa, 0x69, 0x0a, 0x00},
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 4 {
                return fmt.Errorf("A is 0x%x", cpu.A)
            }
            return checkFlag(cpu, "carry", m6502.FlagCarry, true)
        },
    },
    Scenario{
        Name: "adc overflow",
        Program: []byte{0xa9, 0x64, 0x69, 0x32, 0x00},
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 150 {
                return fmt.Errorf("A is %v", cpu.A)
            }
            return checkFlag(cpu, "overflow", m6502.FlagOverflow, true)
        },
    },
    Scenario{
        Name: "jmp indirect",
        Program: []byte{0x6c, 0x00, 0x20, 0x00},
        Setup: func(memory *m6502.Memory){
            m6502.Write16(memory, 0x2000, 0x1234)
        },
        Check: func(cpu *m6502.CPUState) error {
            /* the brk at 0x1234 moves the pc one past itself */
            if cpu.PC != 0x1235 {
                return fmt.Errorf("PC is 0x%04x", cpu.PC)
            }
            return nil
        },
    },
    Scenario{
        Name: "jmp indirect page bug",
        Program: []byte{0x6c, 0xff, 0x30, 0x00},
        Setup: func(memory *m6502.Memory){
            memory.Write(0x30ff, 0x80)
            memory.Write(0x3000, 0x40)
            /* never used, the high byte comes from the start of the page */
            memory.Write(0x3100, 0x50)
        },
        Check: func(cpu *m6502.CPUState) error {
            if cpu.PC != 0x4081 {
                return fmt.Errorf("PC is 0x%04x", cpu.PC)
            }
            return nil
        },
    },
    Scenario{
        Name: "pha pla",
        /* lda #$42; pha; lda #0; pla; brk */
        Program: []byte{0xa9, 0x42, 0x48, 0xa9, 0x00, 0x68, 0x00},
        Check: func(cpu *m6502.CPUState) error {
            if cpu.A != 0x42 || cpu.SP != 0xff {
                return fmt.Errorf("A is 0x%x and SP is 0x%x", cpu.A, cpu.SP)
            }
            return nil
        },
    },
    Scenario{
        Name: "jsr rts",
        /* jsr $0606; ldx #1; brk; ldy #2; rts */
        Program: []byte{0x20, 0x06, 0x06, 0xa2, 0x01, 0x00, 0xa0, 0x02, 0x60},
        Check: func(cpu *m6502.CPUState) error {
            if cpu.X != 1 || cpu.Y != 2 || cpu.SP != 0xff || cpu.PC != 0x0606 {
                return fmt.Errorf("unexpected state %v", cpu.String())
            }
            return nil
        },
    },
}

func runScenario(scenario Scenario, debug bool) error {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)
    if debug {
        cpu.Debug = 1
    }

    err := cpu.Load(scenario.Program)
    if err != nil {
        return err
    }
    if scenario.Setup != nil {
        scenario.Setup(memory)
    }
    cpu.Reset()

    reason, err := cpu.RunWithCallback(nil)
    if err != nil {
        return err
    }
    if reason != m6502.HaltBreak {
        return fmt.Errorf("stopped with %v instead of brk", reason)
    }

    return scenario.Check(cpu)
}

func Run(debug bool) (bool, error) {
    pass := true
    for _, scenario := range Scenarios {
        err := runScenario(scenario, debug)
        if err != nil {
            log.Printf("%v: %v", scenario.Name, err)
            log.Print(test_utils.Failure(scenario.Name))
            pass = false
        } else if debug {
            log.Print(test_utils.Success(scenario.Name))
        }
    }
    return pass, nil
}
