package debug

import (
    "context"
    "log"
    "sync"

    m6502 "github.com/kazzmir/m6502/lib"
)

type DebugCommand interface {
    Name() string
}

type DebugCommandSimple struct {
    name string
}

func (command *DebugCommandSimple) Name() string {
    return command.name
}

func makeCommand(name string) DebugCommand {
    return &DebugCommandSimple{name: name}
}

var DebugCommandStep DebugCommand = makeCommand("step")
var DebugCommandContinue DebugCommand = makeCommand("continue")
var DebugCommandQuit DebugCommand = makeCommand("quit")

/* run something on the cpu goroutine while the cpu is stopped, such as a
 * reset or saving the machine. the debugger stays stopped afterwards
 */
type DebugCommandFunc struct {
    name string
    Do func(cpu *m6502.CPUState)
}

func (command *DebugCommandFunc) Name() string {
    return command.name
}

func MakeCommandFunc(name string, do func(cpu *m6502.CPUState)) DebugCommand {
    return &DebugCommandFunc{name: name, Do: do}
}

// break when the cpu's PC is at a specific value
type Breakpoint struct {
    PC uint16
    Id uint64
}

func (breakpoint *Breakpoint) Hit(cpu *m6502.CPUState) bool {
    return breakpoint.PC == cpu.PC
}

/* how much of memory the snapshot keeps: the zero page and the stack */
const SnapshotMemory = 0x200

/* registers and low memory as they were at the last instruction boundary */
type Snapshot struct {
    CPU m6502.CPUState
    Memory [SnapshotMemory]byte
    Stopped bool
}

type Debugger interface {
    Handle(*m6502.CPUState) bool
}

type DefaultDebugger struct {
    Commands chan DebugCommand
    Breakpoints []Breakpoint
    BreakpointId uint64

    /* called on the cpu goroutine every time the debugger stops */
    OnStop func(snapshot Snapshot)

    lock sync.Mutex
    stopped bool
    snapshot Snapshot
    steps uint64
    quit context.Context
}

func (debugger *DefaultDebugger) IsStopped() bool {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    return debugger.stopped
}

func (debugger *DefaultDebugger) ContinueUntilBreak(){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    debugger.stopped = false
}

func (debugger *DefaultDebugger) Stop(){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    debugger.stopped = true
}

func (debugger *DefaultDebugger) AddPCBreakpoint(pc uint16) uint64 {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    id := debugger.BreakpointId
    debugger.Breakpoints = append(debugger.Breakpoints, Breakpoint{
        PC: pc,
        Id: id,
    })
    debugger.BreakpointId += 1
    return id
}

func (debugger *DefaultDebugger) RemoveBreakpoint(id uint64){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    var out []Breakpoint
    for _, breakpoint := range debugger.Breakpoints {
        if breakpoint.Id != id {
            out = append(out, breakpoint)
        }
    }
    debugger.Breakpoints = out
}

/* add a breakpoint at pc, or remove it if there already is one. returns true
 * if a breakpoint now exists at pc
 */
func (debugger *DefaultDebugger) ToggleBreakpoint(pc uint16) bool {
    for _, breakpoint := range debugger.GetBreakpoints() {
        if breakpoint.PC == pc {
            debugger.RemoveBreakpoint(breakpoint.Id)
            return false
        }
    }
    debugger.AddPCBreakpoint(pc)
    return true
}

func (debugger *DefaultDebugger) GetBreakpoints() []Breakpoint {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    out := make([]Breakpoint, len(debugger.Breakpoints))
    copy(out, debugger.Breakpoints)
    return out
}

func (debugger *DefaultDebugger) GetSnapshot() Snapshot {
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    return debugger.snapshot
}

func (debugger *DefaultDebugger) takeSnapshot(cpu *m6502.CPUState, withMemory bool){
    debugger.lock.Lock()
    defer debugger.lock.Unlock()
    debugger.snapshot.CPU = cpu.Copy()
    debugger.snapshot.Stopped = debugger.stopped
    if withMemory {
        for i := range debugger.snapshot.Memory {
            debugger.snapshot.Memory[i] = cpu.LoadMemory(uint16(i))
        }
    }
}

func (debugger *DefaultDebugger) notifyStop(cpu *m6502.CPUState){
    debugger.takeSnapshot(cpu, true)
    if debugger.OnStop != nil {
        debugger.OnStop(debugger.GetSnapshot())
    }
}

/* block until a command lets the cpu execute the next instruction */
func (debugger *DefaultDebugger) waitForCommand(cpu *m6502.CPUState) bool {
    debugger.notifyStop(cpu)
    for {
        select {
            case <-debugger.quit.Done():
                return false
            case command := <-debugger.Commands:
                if command == DebugCommandStep {
                    log.Printf("[debug] step")
                    return true
                }
                if command == DebugCommandContinue {
                    log.Printf("[debug] continue")
                    debugger.ContinueUntilBreak()
                    debugger.takeSnapshot(cpu, false)
                    return true
                }
                if command == DebugCommandQuit {
                    return false
                }
                if function, ok := command.(*DebugCommandFunc); ok {
                    log.Printf("[debug] %v", function.Name())
                    function.Do(cpu)
                    debugger.notifyStop(cpu)
                }
        }
    }
}

/* The step hook. While stopped it blocks until a command arrives. Returns
 * false when the cpu should stop running altogether.
 */
func (debugger *DefaultDebugger) Handle(cpu *m6502.CPUState) bool {
    debugger.steps += 1

    if !debugger.IsStopped() {
        for _, breakpoint := range debugger.GetBreakpoints() {
            if breakpoint.Hit(cpu) {
                log.Printf("[debug] breakpoint %v at 0x%04x", breakpoint.Id, breakpoint.PC)
                debugger.Stop()
                break
            }
        }
    }

    if debugger.IsStopped() {
        return debugger.waitForCommand(cpu)
    }

    /* keep the registers fresh while running, memory less often */
    debugger.takeSnapshot(cpu, debugger.steps % 4096 == 0)

    return true
}

func MakeDebugger(quit context.Context) *DefaultDebugger {
    return &DefaultDebugger{
        Commands: make(chan DebugCommand, 5),
        stopped: true,
        BreakpointId: 1,
        quit: quit,
    }
}
