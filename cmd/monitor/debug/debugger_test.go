package debug

import (
    "context"
    "testing"
    "time"

    m6502 "github.com/kazzmir/m6502/lib"
)

/* ldx #0; inx; cpx #5; bne; brk */
var countProgram = []byte{0xa2, 0x00, 0xe8, 0xe0, 0x05, 0xd0, 0xfb, 0x00}

type runResult struct {
    reason m6502.HaltReason
    err error
}

func startCPU(debugger *DefaultDebugger) (*m6502.CPUState, chan runResult) {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)
    cpu.Load(countProgram)
    cpu.Reset()

    done := make(chan runResult, 1)
    go func(){
        reason, err := cpu.RunWithCallback(debugger.Handle)
        done <- runResult{reason: reason, err: err}
    }()

    return cpu, done
}

/* wait until the debugger reports being stopped at pc */
func waitForStop(test *testing.T, stops chan Snapshot, pc uint16) Snapshot {
    select {
        case snapshot := <-stops:
            if snapshot.CPU.PC != pc {
                test.Fatalf("expected to stop at 0x%04x but stopped at 0x%04x", pc, snapshot.CPU.PC)
            }
            return snapshot
        case <-time.After(time.Second):
            test.Fatalf("debugger did not stop at 0x%04x", pc)
    }
    return Snapshot{}
}

func TestDebuggerStep(test *testing.T){
    quit, cancel := context.WithCancel(context.Background())
    defer cancel()

    debugger := MakeDebugger(quit)
    stops := make(chan Snapshot, 10)
    debugger.OnStop = func(snapshot Snapshot){
        stops <- snapshot
    }

    _, done := startCPU(debugger)

    waitForStop(test, stops, 0x0600)
    debugger.Commands <- DebugCommandStep
    snapshot := waitForStop(test, stops, 0x0602)
    if snapshot.CPU.X != 0 || !snapshot.Stopped {
        test.Fatalf("unexpected state after one step: %v", snapshot.CPU.String())
    }

    debugger.Commands <- DebugCommandStep
    snapshot = waitForStop(test, stops, 0x0603)
    if snapshot.CPU.X != 1 {
        test.Fatalf("inx should have run")
    }

    debugger.Commands <- DebugCommandContinue
    select {
        case result := <-done:
            if result.err != nil || result.reason != m6502.HaltBreak {
                test.Fatalf("expected the program to finish at brk: %v %v", result.reason, result.err)
            }
        case <-time.After(time.Second):
            test.Fatalf("continue did not run to the end")
    }
}

func TestDebuggerBreakpoint(test *testing.T){
    quit, cancel := context.WithCancel(context.Background())
    defer cancel()

    debugger := MakeDebugger(quit)
    stops := make(chan Snapshot, 10)
    debugger.OnStop = func(snapshot Snapshot){
        stops <- snapshot
    }

    /* the brk at the end */
    id := debugger.AddPCBreakpoint(0x0607)

    _, done := startCPU(debugger)
    waitForStop(test, stops, 0x0600)
    debugger.Commands <- DebugCommandContinue

    snapshot := waitForStop(test, stops, 0x0607)
    if snapshot.CPU.X != 5 {
        test.Fatalf("loop should have finished before the breakpoint, X is %v", snapshot.CPU.X)
    }

    debugger.RemoveBreakpoint(id)
    if len(debugger.GetBreakpoints()) != 0 {
        test.Fatalf("breakpoint was not removed")
    }

    debugger.Commands <- DebugCommandContinue
    result := <-done
    if result.reason != m6502.HaltBreak {
        test.Fatalf("expected brk but got %v", result.reason)
    }
}

func TestDebuggerCommandFunc(test *testing.T){
    quit, cancel := context.WithCancel(context.Background())
    defer cancel()

    debugger := MakeDebugger(quit)
    stops := make(chan Snapshot, 10)
    debugger.OnStop = func(snapshot Snapshot){
        stops <- snapshot
    }

    _, done := startCPU(debugger)
    waitForStop(test, stops, 0x0600)

    debugger.Commands <- MakeCommandFunc("poke", func(cpu *m6502.CPUState){
        cpu.StoreMemory(0x10, 0x42)
        cpu.A = 7
    })

    /* the command runs and the debugger stops again at the same place */
    snapshot := waitForStop(test, stops, 0x0600)
    if snapshot.Memory[0x10] != 0x42 || snapshot.CPU.A != 7 {
        test.Fatalf("command did not run on the cpu")
    }

    debugger.Commands <- DebugCommandQuit
    result := <-done
    if result.reason != m6502.HaltHook {
        test.Fatalf("quit should stop the run loop through the hook, got %v", result.reason)
    }
}

func TestDebuggerCancel(test *testing.T){
    quit, cancel := context.WithCancel(context.Background())
    debugger := MakeDebugger(quit)
    _, done := startCPU(debugger)

    cancel()
    select {
        case result := <-done:
            if result.reason != m6502.HaltHook {
                test.Fatalf("unexpected reason %v", result.reason)
            }
        case <-time.After(time.Second):
            test.Fatalf("cancel did not release the cpu")
    }
}

func TestToggleBreakpoint(test *testing.T){
    debugger := MakeDebugger(context.Background())
    if !debugger.ToggleBreakpoint(0x1234) {
        test.Fatalf("first toggle should add")
    }
    if debugger.ToggleBreakpoint(0x1234) {
        test.Fatalf("second toggle should remove")
    }
    if len(debugger.GetBreakpoints()) != 0 {
        test.Fatalf("breakpoints should be empty")
    }
}
