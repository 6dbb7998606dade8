package script

import (
    "errors"
    "testing"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/data"
)

func makeCPU(program []byte) *m6502.CPUState {
    cpu := m6502.NewCPU(m6502.NewMemory())
    cpu.Load(program)
    cpu.Reset()
    return cpu
}

func TestStepStops(test *testing.T){
    hook, err := LoadString("count", `
count = 0
function step()
    count = count + 1
    return count <= 3
end
`, 1)
    if err != nil {
        test.Fatalf("could not load script: %v", err)
    }
    defer hook.Close()

    /* inx forever */
    cpu := makeCPU([]byte{0xe8, 0x4c, 0x00, 0x06})
    reason, err := cpu.RunWithCallback(hook.Step)
    if err != nil {
        test.Fatalf("unexpected error: %v", err)
    }
    if reason != m6502.HaltHook {
        test.Fatalf("expected the hook to stop the cpu but got %v", reason)
    }
    /* inx, jmp, inx */
    if cpu.X != 2 || cpu.PC != 0x0601 {
        test.Fatalf("unexpected state %v", cpu.String())
    }
}

func TestRegisters(test *testing.T){
    hook, err := LoadString("registers", `
function step()
    if reg("pc") == 0x0602 then
        setreg("a", reg("x") + 0x10)
        write(0x20, read(0x21) + 1)
        return false
    end
end
`, 1)
    if err != nil {
        test.Fatalf("could not load script: %v", err)
    }
    defer hook.Close()

    /* ldx #5; nop; brk */
    cpu := makeCPU([]byte{0xa2, 0x05, 0xea, 0x00})
    cpu.StoreMemory(0x21, 0x41)

    reason, err := cpu.RunWithCallback(hook.Step)
    if err != nil || reason != m6502.HaltHook {
        test.Fatalf("unexpected result %v %v", reason, err)
    }

    if cpu.A != 0x15 {
        test.Fatalf("expected A to be 0x15 but got 0x%x", cpu.A)
    }
    if cpu.LoadMemory(0x20) != 0x42 {
        test.Fatalf("write did not happen")
    }
}

func TestMissingStep(test *testing.T){
    _, err := LoadString("empty", "x = 1", 1)
    if err == nil {
        test.Fatalf("expected an error without a step function")
    }

    var scriptError *ScriptError
    if !errors.As(err, &scriptError) || scriptError.Name != "empty" {
        test.Fatalf("expected a script error but got %v", err)
    }
}

func TestSyntaxError(test *testing.T){
    _, err := LoadString("broken", "function step(", 1)
    if err == nil {
        test.Fatalf("expected a syntax error")
    }
}

func TestRuntimeError(test *testing.T){
    hook, err := LoadString("bad register", `
function step()
    return reg("q") == 0
end
`, 1)
    if err != nil {
        test.Fatalf("could not load script: %v", err)
    }
    defer hook.Close()

    cpu := makeCPU([]byte{0xea, 0x00})
    reason, err := cpu.RunWithCallback(hook.Step)
    if err != nil || reason != m6502.HaltHook {
        test.Fatalf("unexpected result %v %v", reason, err)
    }
    if hook.Err == nil {
        test.Fatalf("the script error should be kept")
    }
}

func TestChain(test *testing.T){
    hook, err := LoadString("nothing", "function step() end", 1)
    if err != nil {
        test.Fatalf("could not load script: %v", err)
    }
    defer hook.Close()

    calls := 0
    chained := hook.Chain(func(cpu *m6502.CPUState) bool {
        calls += 1
        return calls < 2
    })

    cpu := makeCPU([]byte{0xea, 0xea, 0xea, 0x00})
    reason, _ := cpu.RunWithCallback(chained)
    if reason != m6502.HaltHook || calls != 2 {
        test.Fatalf("expected the second hook to stop after 2 calls: %v %v", reason, calls)
    }
}

func TestRandomSnake(test *testing.T){
    hook, err := LoadFile("testdata/random.lua", 3)
    if err != nil {
        test.Fatalf("could not load script: %v", err)
    }
    defer hook.Close()

    program, err := data.LoadProgram("snake")
    if err != nil {
        test.Fatalf("could not load snake: %v", err)
    }

    cpu := makeCPU(program)
    reason, err := cpu.RunWithCallback(hook.Step)
    if err != nil {
        test.Fatalf("snake failed: %v", err)
    }
    if reason != m6502.HaltHook {
        test.Fatalf("expected the script to stop snake but got %v", reason)
    }

    value := cpu.LoadMemory(0xfe)
    if value < 1 || value >= 16 {
        test.Fatalf("random byte out of range: %v", value)
    }
}
