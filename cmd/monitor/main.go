package main

/* terminal debugger for 6502 programs */

import (
    "context"
    "errors"
    "fmt"
    "log"
    "os"
    "strconv"
    "strings"
    "time"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/cmd/monitor/debug"
    "github.com/kazzmir/m6502/data"
    "github.com/kazzmir/m6502/util"

    "github.com/jroimartin/gocui"
)

type Monitor struct {
    cpu *m6502.CPUState
    memory *m6502.Memory
    debugger *debug.DefaultDebugger
    logs *logBuffer
    savePath string
    program []byte
    loadAddress uint16
}

func (monitor *Monitor) saveState(cpu *m6502.CPUState){
    file, err := os.Create(monitor.savePath)
    if err != nil {
        log.Printf("Could not save state: %v", err)
        return
    }
    defer file.Close()

    err = m6502.SaveMachine(file, cpu, monitor.memory)
    if err != nil {
        log.Printf("Could not save state: %v", err)
        return
    }
    log.Printf("Saved state to %v", monitor.savePath)
}

func (monitor *Monitor) reset(cpu *m6502.CPUState){
    for i := range monitor.memory.Ram {
        monitor.memory.Ram[i] = 0
    }
    err := cpu.LoadAt(monitor.program, monitor.loadAddress)
    if err != nil {
        log.Printf("Could not reload program: %v", err)
    }
    cpu.Reset()
    cpu.Cycle = 0
    log.Printf("Reset, PC is 0x%04x", cpu.PC)
}

/* Put the pc back on an opcode that could not be run, so stepping again
 * fails again instead of carrying on with the bytes after it. Only a reset
 * gets the program going again.
 */
func rewindOnError(cpu *m6502.CPUState, err error) bool {
    var unimplemented *m6502.UnimplementedOpcodeError
    if errors.As(err, &unimplemented) {
        cpu.PC = unimplemented.PC
        return true
    }
    return false
}

func setView(gui *gocui.Gui, name string, title string, x0, y0, x1, y1 int) (*gocui.View, error) {
    view, err := gui.SetView(name, x0, y0, x1, y1)
    if err != nil && err != gocui.ErrUnknownView {
        return nil, err
    }
    if err == gocui.ErrUnknownView {
        view.Title = title
    }
    return view, nil
}

func (monitor *Monitor) layout(gui *gocui.Gui) error {
    maxX, maxY := gui.Size()
    left := 38
    logHeight := 8
    if maxY < 24 {
        logHeight = 4
    }

    snapshot := monitor.debugger.GetSnapshot()
    breakpoints := monitor.debugger.GetBreakpoints()

    registers, err := setView(gui, "registers", "Registers", 0, 0, left - 1, 6)
    if err != nil {
        return err
    }
    registers.Clear()
    fmt.Fprint(registers, formatRegisters(snapshot))

    disassembly, err := setView(gui, "disassembly", "Disassembly", 0, 7, left - 1, maxY - logHeight - 1)
    if err != nil {
        return err
    }
    disassembly.Clear()
    if snapshot.Stopped {
        _, height := disassembly.Size()
        lines := formatDisassembly(monitor.memory, snapshot.CPU.PC, breakpoints, height)
        fmt.Fprint(disassembly, strings.Join(lines, "\n"))
    } else {
        fmt.Fprint(disassembly, "running, press p to pause")
    }

    zeroPage, err := setView(gui, "zeropage", "Zero page", left, 0, maxX - 13, maxY - logHeight - 1)
    if err != nil {
        return err
    }
    zeroPage.Clear()
    fmt.Fprint(zeroPage, formatPage(snapshot.Memory[0:0x100], 0))

    stack, err := setView(gui, "stack", "Stack", maxX - 12, 0, maxX - 1, maxY - logHeight - 1)
    if err != nil {
        return err
    }
    stack.Clear()
    fmt.Fprint(stack, formatStack(snapshot))

    logView, err := setView(gui, "log", "Log", 0, maxY - logHeight, maxX - 1, maxY - 1)
    if err != nil {
        return err
    }
    logView.Clear()
    _, height := logView.Size()
    fmt.Fprint(logView, strings.Join(monitor.logs.Tail(height), "\n"))

    return nil
}

func (monitor *Monitor) send(command debug.DebugCommand){
    select {
        case monitor.debugger.Commands <- command:
        default:
            log.Printf("Busy, dropped %v", command.Name())
    }
}

func (monitor *Monitor) bindKeys(gui *gocui.Gui) error {
    quit := func(gui *gocui.Gui, view *gocui.View) error {
        return gocui.ErrQuit
    }

    bindings := []struct {
        key interface{}
        handler func(*gocui.Gui, *gocui.View) error
    }{
        {gocui.KeyCtrlC, quit},
        {'q', quit},
        {'s', func(gui *gocui.Gui, view *gocui.View) error {
            if monitor.debugger.IsStopped() {
                monitor.send(debug.DebugCommandStep)
            }
            return nil
        }},
        {'c', func(gui *gocui.Gui, view *gocui.View) error {
            if monitor.debugger.IsStopped() {
                monitor.send(debug.DebugCommandContinue)
            }
            return nil
        }},
        {'p', func(gui *gocui.Gui, view *gocui.View) error {
            monitor.debugger.Stop()
            return nil
        }},
        {'b', func(gui *gocui.Gui, view *gocui.View) error {
            pc := monitor.debugger.GetSnapshot().CPU.PC
            if monitor.debugger.ToggleBreakpoint(pc) {
                log.Printf("Breakpoint set at 0x%04x", pc)
            } else {
                log.Printf("Breakpoint removed at 0x%04x", pc)
            }
            return nil
        }},
        {'r', func(gui *gocui.Gui, view *gocui.View) error {
            monitor.debugger.Stop()
            monitor.send(debug.MakeCommandFunc("reset", monitor.reset))
            return nil
        }},
        {'w', func(gui *gocui.Gui, view *gocui.View) error {
            if !monitor.debugger.IsStopped() {
                log.Printf("Pause before saving")
                return nil
            }
            monitor.send(debug.MakeCommandFunc("save", monitor.saveState))
            return nil
        }},
    }

    for _, binding := range bindings {
        err := gui.SetKeybinding("", binding.key, gocui.ModNone, binding.handler)
        if err != nil {
            return err
        }
    }

    return nil
}

func Run(program []byte, loadAddress uint16, savePath string, breakpoints []uint16) error {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)
    err := cpu.LoadAt(program, loadAddress)
    if err != nil {
        return err
    }
    cpu.Reset()

    logs := makeLogBuffer(500)
    log.SetOutput(logs)
    defer log.SetOutput(os.Stderr)

    group := util.NewThreadGroup(context.Background())
    defer group.Wait()
    defer group.Cancel()

    debugger := debug.MakeDebugger(group.Context())
    for _, breakpoint := range breakpoints {
        debugger.AddPCBreakpoint(breakpoint)
    }

    monitor := &Monitor{
        cpu: cpu,
        memory: memory,
        debugger: debugger,
        logs: logs,
        savePath: savePath,
        program: program,
        loadAddress: loadAddress,
    }

    gui, err := gocui.NewGui(gocui.OutputNormal)
    if err != nil {
        return err
    }
    defer gui.Close()

    gui.SetManagerFunc(monitor.layout)
    err = monitor.bindKeys(gui)
    if err != nil {
        return err
    }

    /* the run loop goes back to waiting for commands whenever the program halts */
    group.SpawnWithCancel(func(quit context.Context, cancel context.CancelFunc){
        for quit.Err() == nil {
            reason, err := cpu.RunContext(quit, debugger.Handle)
            if err != nil {
                log.Printf("Error: %v", err)
                rewindOnError(cpu, err)
            } else if reason == m6502.HaltBreak {
                log.Printf("Program reached brk at 0x%04x", cpu.PC - 1)
            }
            debugger.Stop()
        }
    })

    /* redraw periodically so the registers follow a running program */
    group.Spawn(func(){
        ticker := time.NewTicker(time.Second / 10)
        defer ticker.Stop()
        for {
            select {
                case <-group.Done():
                    return
                case <-ticker.C:
                    gui.Update(func(gui *gocui.Gui) error {
                        return nil
                    })
            }
        }
    })

    err = gui.MainLoop()
    if err != nil && err != gocui.ErrQuit {
        return err
    }
    return nil
}

func parseAddress(value string) (uint16, error) {
    address, err := strconv.ParseUint(value, 0, 16)
    return uint16(address), err
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    var path string
    builtin := ""
    savePath := "m6502-state.json"
    loadAddress := m6502.DefaultLoadAddress
    var breakpoints []uint16

    argIndex := 1
    nextArgument := func(name string) string {
        argIndex += 1
        if argIndex >= len(os.Args) {
            log.Fatalf("Expected an argument for %v", name)
        }
        return os.Args[argIndex]
    }

    for argIndex < len(os.Args) {
        arg := os.Args[argIndex]
        switch arg {
            case "-builtin", "--builtin":
                builtin = nextArgument(arg)
            case "-save", "--save":
                savePath = nextArgument(arg)
            case "-load", "--load":
                address, err := parseAddress(nextArgument(arg))
                if err != nil {
                    log.Fatalf("Invalid load address: %v", err)
                }
                loadAddress = address
            case "-break", "--break":
                address, err := parseAddress(nextArgument(arg))
                if err != nil {
                    log.Fatalf("Invalid breakpoint: %v", err)
                }
                breakpoints = append(breakpoints, address)
            default:
                path = arg
        }
        argIndex += 1
    }

    var program []byte
    var err error
    if path != "" {
        program, err = os.ReadFile(path)
    } else if builtin != "" {
        program, err = data.LoadProgram(builtin)
    } else {
        fmt.Printf("monitor [-builtin name] [-load 0x0600] [-break 0x0610] [-save state.json] [program.bin]\n")
        return
    }

    if err != nil {
        log.Fatalf("Could not load program: %v", err)
    }

    err = Run(program, loadAddress, savePath, breakpoints)
    if err != nil {
        log.Printf("Error: %v", err)
        os.Exit(1)
    }
}
