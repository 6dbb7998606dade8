package main

/* run a 6502 program without any display and print the final registers */

import (
    "errors"
    "fmt"
    "log"
    "os"
    "strconv"
    "time"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/data"
    "github.com/kazzmir/m6502/script"
)

type Options struct {
    Program []byte
    LoadAddress uint16
    /* stop after this many instructions, 0 means no limit */
    MaxSteps uint64
    Trace bool
    Script string
    Seed uint64
    SavePath string
    RestorePath string
}

type Result struct {
    Reason m6502.HaltReason
    Steps uint64
    CPU m6502.CPUState
}

/* a hook that stops the cpu once max instructions have run */
func makeStepLimit(max uint64, steps *uint64) m6502.StepHook {
    return func(cpu *m6502.CPUState) bool {
        if max > 0 && *steps >= max {
            return false
        }
        *steps += 1
        return true
    }
}

func saveMachine(path string, cpu *m6502.CPUState, memory *m6502.Memory) error {
    file, err := os.Create(path)
    if err != nil {
        return err
    }
    defer file.Close()
    return m6502.SaveMachine(file, cpu, memory)
}

func restoreMachine(path string, cpu *m6502.CPUState, memory *m6502.Memory) error {
    file, err := os.Open(path)
    if err != nil {
        return err
    }
    defer file.Close()
    return m6502.LoadMachine(file, cpu, memory)
}

func Run(options Options) (Result, error) {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)

    if options.RestorePath != "" {
        err := restoreMachine(options.RestorePath, cpu, memory)
        if err != nil {
            return Result{}, fmt.Errorf("could not restore %v: %w", options.RestorePath, err)
        }
    } else {
        err := cpu.LoadAt(options.Program, options.LoadAddress)
        if err != nil {
            return Result{}, err
        }
        cpu.Reset()
    }

    if options.Trace {
        cpu.Debug = 1
    }

    var steps uint64
    hook := makeStepLimit(options.MaxSteps, &steps)

    var luaHook *script.Hook
    if options.Script != "" {
        var err error
        luaHook, err = script.LoadFile(options.Script, options.Seed)
        if err != nil {
            return Result{}, err
        }
        defer luaHook.Close()
        hook = luaHook.Chain(hook)
    }

    start := time.Now()
    reason, runErr := cpu.RunWithCallback(hook)
    log.Printf("Ran %v instructions in %v", steps, time.Since(start))

    /* a failing step() stops the cpu like a hook returning false, but it is an error */
    if luaHook != nil && luaHook.Err != nil {
        runErr = errors.Join(runErr, luaHook.Err)
    }

    if options.SavePath != "" {
        err := saveMachine(options.SavePath, cpu, memory)
        if err != nil {
            return Result{}, errors.Join(runErr, err)
        }
        log.Printf("Saved machine to %v", options.SavePath)
    }

    return Result{
        Reason: reason,
        Steps: steps,
        CPU: cpu.Copy(),
    }, runErr
}

func parseAddress(value string) (uint16, error) {
    address, err := strconv.ParseUint(value, 0, 16)
    return uint16(address), err
}

func help(){
    fmt.Printf("m6502 [options] [program.bin]\n")
    fmt.Printf("  -load <address>     where to load the program, default 0x0600\n")
    fmt.Printf("  -builtin <name>     run one of the bundled programs\n")
    fmt.Printf("  -list               show the bundled programs\n")
    fmt.Printf("  -steps <n>          stop after n instructions\n")
    fmt.Printf("  -trace              log every instruction\n")
    fmt.Printf("  -script <file.lua>  call step() from a lua file before each instruction\n")
    fmt.Printf("  -seed <n>           seed for random() in scripts\n")
    fmt.Printf("  -save <file>        write the machine to a json file when done\n")
    fmt.Printf("  -restore <file>     resume a machine saved with -save\n")
    fmt.Printf("  -disassemble        print the program instead of running it\n")
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    options := Options{
        LoadAddress: m6502.DefaultLoadAddress,
        Seed: uint64(time.Now().UnixNano()),
    }

    var path string
    var builtin string
    disassemble := false

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
            case "-h", "--help":
                help()
                return
            case "-list", "--list":
                programs, err := data.ListPrograms()
                if err != nil {
                    log.Fatalf("Could not list programs: %v", err)
                }
                for _, name := range programs {
                    fmt.Println(name)
                }
                return
            case "-load", "--load":
                address, err := parseAddress(nextArgument(arg))
                if err != nil {
                    log.Fatalf("Invalid load address: %v", err)
                }
                options.LoadAddress = address
            case "-builtin", "--builtin":
                builtin = nextArgument(arg)
            case "-steps", "--steps":
                steps, err := strconv.ParseUint(nextArgument(arg), 10, 64)
                if err != nil {
                    log.Fatalf("Invalid step count: %v", err)
                }
                options.MaxSteps = steps
            case "-trace", "--trace":
                options.Trace = true
            case "-script", "--script":
                options.Script = nextArgument(arg)
            case "-seed", "--seed":
                seed, err := strconv.ParseUint(nextArgument(arg), 10, 64)
                if err != nil {
                    log.Fatalf("Invalid seed: %v", err)
                }
                options.Seed = seed
            case "-save", "--save":
                options.SavePath = nextArgument(arg)
            case "-restore", "--restore":
                options.RestorePath = nextArgument(arg)
            case "-disassemble", "--disassemble":
                disassemble = true
            default:
                path = arg
        }
        argIndex += 1
    }

    var err error
    if path != "" {
        options.Program, err = os.ReadFile(path)
    } else if builtin != "" {
        options.Program, err = data.LoadProgram(builtin)
    } else if options.RestorePath == "" {
        help()
        return
    }

    if err != nil {
        log.Fatalf("Could not load program: %v", err)
    }

    if disassemble {
        lines, err := m6502.DisassembleProgram(options.Program, options.LoadAddress)
        for _, line := range lines {
            fmt.Println(line)
        }
        if err != nil {
            log.Printf("Error: %v", err)
            os.Exit(1)
        }
        return
    }

    result, err := Run(options)
    fmt.Printf("%v after %v steps: %v\n", result.Reason, result.Steps, result.CPU.String())
    if err != nil {
        log.Printf("Error: %v", err)
        os.Exit(1)
    }
}
