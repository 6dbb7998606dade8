package main

import (
    "context"
    "fmt"
    "log"
    "os"
    "strconv"
    "time"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/data"
    "github.com/kazzmir/m6502/util"
)

type Options struct {
    Debug bool
    Terminal bool
    Record string
    Seed uint64
}

func loadProgram(path string, builtin string) ([]byte, error) {
    if path != "" {
        return os.ReadFile(path)
    }
    return data.LoadProgram(builtin)
}

func Run(program []byte, config ConfigData, options Options) error {
    memory := m6502.NewMemory()
    cpu := m6502.NewCPU(memory)
    if options.Debug {
        cpu.Debug = 1
    }

    err := cpu.Load(program)
    if err != nil {
        return err
    }
    cpu.Reset()

    group := util.NewThreadGroup(context.Background())
    host := MakeHost(group.Context(), options.Seed, config.StepDelay)

    if options.Record != "" {
        frames := make(chan []byte, 8)
        host.Frames = frames
        group.Spawn(func(){
            err := util.RecordVideo(group.Context(), options.Record, ScreenWidth, ScreenHeight, config.Scale, frames)
            if err != nil {
                log.Printf("Warning: could not record: %v", err)
            }
        })
    }

    /* the window or terminal closes once the program stops */
    group.SpawnErr(func(quit context.Context) error {
        defer group.Cancel()
        reason, err := cpu.RunContext(quit, host.Step)
        log.Printf("Program stopped (%v) %v", reason, cpu.String())
        if err != nil {
            return fmt.Errorf("cpu stopped at 0x%04x: %w", cpu.PC, err)
        }
        return nil
    })

    if options.Terminal {
        err = RunTerminal(host, group.Context(), group.Cancel)
    } else {
        game := MakeSnakeGame(host, config, group.Context(), group.Cancel)
        err = RunWindow(game, config.Scale)
    }

    group.Cancel()
    runErr := group.Wait()

    if err != nil {
        return err
    }
    return runErr
}

func help(){
    fmt.Printf("snake [options] [program.bin]\n")
    fmt.Printf("  -builtin <name>   run a builtin program instead of a file (default snake)\n")
    fmt.Printf("  -size <n>         window scale\n")
    fmt.Printf("  -delay <duration> sleep after every instruction, e.g. 7us\n")
    fmt.Printf("  -terminal         draw in the terminal instead of a window\n")
    fmt.Printf("  -record <file>    record the screen with ffmpeg\n")
    fmt.Printf("  -seed <n>         seed for the random byte\n")
    fmt.Printf("  -save-config      write the current settings to the config file\n")
    fmt.Printf("  -debug            log every instruction\n")
}

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    config, err := LoadConfigData()
    if err != nil && !os.IsNotExist(err) {
        log.Printf("Using the default config: %v", err)
    }

    var path string
    builtin := "snake"
    saveConfig := false
    options := Options{
        Seed: uint64(time.Now().UnixNano()),
    }

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
            case "-h", "-help", "--help":
                help()
                return
            case "-debug", "--debug":
                options.Debug = true
            case "-terminal", "--terminal":
                options.Terminal = true
            case "-record", "--record":
                options.Record = nextArgument(arg)
            case "-builtin", "--builtin":
                builtin = nextArgument(arg)
            case "-save-config", "--save-config":
                saveConfig = true
            case "-size", "--size":
                size, err := strconv.Atoi(nextArgument(arg))
                if err != nil || size < 1 {
                    log.Fatalf("Invalid size: %v", err)
                }
                config.Scale = size
            case "-delay", "--delay":
                delay, err := time.ParseDuration(nextArgument(arg))
                if err != nil {
                    log.Fatalf("Invalid delay: %v", err)
                }
                config.StepDelay = delay
            case "-seed", "--seed":
                seed, err := strconv.ParseUint(nextArgument(arg), 10, 64)
                if err != nil {
                    log.Fatalf("Invalid seed: %v", err)
                }
                options.Seed = seed
            default:
                path = arg
        }

        argIndex += 1
    }

    if saveConfig {
        err := SaveConfigData(config)
        if err != nil {
            log.Printf("Could not save config: %v", err)
        }
    }

    program, err := loadProgram(path, builtin)
    if err != nil {
        log.Fatalf("Could not load program: %v", err)
    }

    if !options.Terminal && !util.HasDisplay() {
        log.Printf("No display found, drawing in the terminal")
        options.Terminal = true
    }

    err = Run(program, config, options)
    if err != nil {
        log.Printf("Error: %v", err)
        os.Exit(1)
    }
}
