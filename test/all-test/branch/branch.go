package branch

import (
    "fmt"
    "log"

    m6502 "github.com/kazzmir/m6502/lib"
    test_utils "github.com/kazzmir/m6502/test/all-test/utils"
)

/* Every conditional branch is run with its flag both set and clear, for every
 * displacement, from a few addresses including ones next to a page boundary.
 * A taken branch must land on BranchTarget and one that is not taken must
 * land on the next instruction.
 */

type branchCase struct {
    Opcode byte
    Name string
    Flag m6502.StatusFlags
    /* branch is taken when the flag has this value */
    TakenWhen bool
}

var cases = []branchCase{
    {0x90, "bcc", m6502.FlagCarry, false},
    {0xb0, "bcs", m6502.FlagCarry, true},
    {0xd0, "bne", m6502.FlagZero, false},
    {0xf0, "beq", m6502.FlagZero, true},
    {0x10, "bpl", m6502.FlagNegative, false},
    {0x30, "bmi", m6502.FlagNegative, true},
    {0x50, "bvc", m6502.FlagOverflow, false},
    {0x70, "bvs", m6502.FlagOverflow, true},
}

var origins = []uint16{0x0600, 0x06fd, 0x06fe, 0x0780}

/* where the pc should be after stepping a branch at origin */
func expectedPC(origin uint16, displacement byte, taken bool) uint16 {
    if !taken {
        return origin + 2
    }
    target := m6502.BranchTarget(origin, displacement)
    /* a jump onto the displacement byte itself looks like no jump to the run loop */
    if target == origin + 1 {
        return origin + 2
    }
    return target
}

func runCase(testCase branchCase, debug bool) error {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)

    for _, origin := range origins {
        for displacement := 0; displacement < 256; displacement++ {
            for _, flag := range []bool{false, true} {
                memory.Write(origin, testCase.Opcode)
                memory.Write(origin + 1, byte(displacement))
                cpu.PC = origin
                cpu.Status = m6502.FlagUnused | m6502.FlagBreak
                cpu.Status.Set(testCase.Flag, flag)

                _, err := cpu.Step()
                if err != nil {
                    return err
                }

                expected := expectedPC(origin, byte(displacement), flag == testCase.TakenWhen)
                if cpu.PC != expected {
                    return fmt.Errorf("%v at 0x%04x with displacement 0x%02x and flag %v: pc is 0x%04x, expected 0x%04x", testCase.Name, origin, displacement, flag, cpu.PC, expected)
                }
            }
        }
    }

    if debug {
        log.Printf("%v checked from %v origins", testCase.Name, len(origins))
    }

    return nil
}

func Run(debug bool) (bool, error) {
    pass := true
    for _, testCase := range cases {
        err := runCase(testCase, debug)
        if err != nil {
            log.Printf("%v", err)
            log.Print(test_utils.Failure(testCase.Name))
            pass = false
        } else {
            log.Print(test_utils.Success(testCase.Name))
        }
    }

    return pass, nil
}
