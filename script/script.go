package script

/* Lua step hooks. A script defines a global function step() that is called
 * before every instruction. Inside step() the script can look at and change
 * the machine through these globals:
 *
 *   read(address)          byte at address
 *   write(address, value)  store a byte
 *   reg(name)              register value, one of a x y sp pc p cycle
 *   setreg(name, value)    change a register
 *   random(low, high)      random number in [low, high)
 *
 * step() returning false stops the run loop. Returning nothing keeps going.
 */

import (
    "fmt"
    "log"
    "math/rand/v2"
    "strings"

    m6502 "github.com/kazzmir/m6502/lib"

    lua "github.com/yuin/gopher-lua"
)

const StepFunction = "step"

type ScriptError struct {
    Name string
    Err error
}

func (err *ScriptError) Error() string {
    return fmt.Sprintf("script %v: %v", err.Name, err.Err)
}

func (err *ScriptError) Unwrap() error {
    return err.Err
}

type Hook struct {
    Name string
    state *lua.LState
    step lua.LValue
    cpu *m6502.CPUState
    rand *rand.Rand
    /* set when step() raised an error, the run loop is stopped at that point */
    Err error
}

func (hook *Hook) currentCPU() *m6502.CPUState {
    if hook.cpu == nil {
        hook.state.RaiseError("no cpu is running")
    }
    return hook.cpu
}

func checkAddress(state *lua.LState, n int) uint16 {
    address := state.CheckInt(n)
    if address < 0 || address > 0xffff {
        state.ArgError(n, fmt.Sprintf("address out of range: %v", address))
    }
    return uint16(address)
}

func (hook *Hook) luaRead(state *lua.LState) int {
    address := checkAddress(state, 1)
    state.Push(lua.LNumber(hook.currentCPU().LoadMemory(address)))
    return 1
}

func (hook *Hook) luaWrite(state *lua.LState) int {
    address := checkAddress(state, 1)
    value := state.CheckInt(2)
    hook.currentCPU().StoreMemory(address, byte(value))
    return 0
}

func (hook *Hook) luaReg(state *lua.LState) int {
    cpu := hook.currentCPU()
    name := strings.ToLower(state.CheckString(1))
    var value float64
    switch name {
        case "a": value = float64(cpu.A)
        case "x": value = float64(cpu.X)
        case "y": value = float64(cpu.Y)
        case "sp": value = float64(cpu.SP)
        case "pc": value = float64(cpu.PC)
        case "p": value = float64(cpu.Status)
        case "cycle": value = float64(cpu.Cycle)
        default:
            state.ArgError(1, fmt.Sprintf("unknown register '%v'", name))
    }
    state.Push(lua.LNumber(value))
    return 1
}

func (hook *Hook) luaSetReg(state *lua.LState) int {
    cpu := hook.currentCPU()
    name := strings.ToLower(state.CheckString(1))
    value := state.CheckInt(2)
    switch name {
        case "a": cpu.A = byte(value)
        case "x": cpu.X = byte(value)
        case "y": cpu.Y = byte(value)
        case "sp": cpu.SP = byte(value)
        case "pc": cpu.PC = uint16(value)
        case "p": cpu.Status = m6502.StatusFlags(value)
        default:
            state.ArgError(1, fmt.Sprintf("unknown register '%v'", name))
    }
    return 0
}

func (hook *Hook) luaRandom(state *lua.LState) int {
    low := state.CheckInt(1)
    high := state.CheckInt(2)
    if high <= low {
        state.ArgError(2, fmt.Sprintf("empty range [%v, %v)", low, high))
    }
    state.Push(lua.LNumber(low + hook.rand.IntN(high - low)))
    return 1
}

func newHook(name string, seed uint64) *Hook {
    hook := &Hook{
        Name: name,
        state: lua.NewState(),
        rand: rand.New(rand.NewPCG(seed, seed + 1)),
    }

    hook.state.SetGlobal("read", hook.state.NewFunction(hook.luaRead))
    hook.state.SetGlobal("write", hook.state.NewFunction(hook.luaWrite))
    hook.state.SetGlobal("reg", hook.state.NewFunction(hook.luaReg))
    hook.state.SetGlobal("setreg", hook.state.NewFunction(hook.luaSetReg))
    hook.state.SetGlobal("random", hook.state.NewFunction(hook.luaRandom))

    return hook
}

func (hook *Hook) findStep() error {
    step := hook.state.GetGlobal(StepFunction)
    if step.Type() != lua.LTFunction {
        hook.state.Close()
        return &ScriptError{Name: hook.Name, Err: fmt.Errorf("no %v() function defined", StepFunction)}
    }
    hook.step = step
    return nil
}

func LoadFile(path string, seed uint64) (*Hook, error) {
    hook := newHook(path, seed)
    err := hook.state.DoFile(path)
    if err != nil {
        hook.state.Close()
        return nil, &ScriptError{Name: path, Err: err}
    }
    err = hook.findStep()
    if err != nil {
        return nil, err
    }
    return hook, nil
}

func LoadString(name string, source string, seed uint64) (*Hook, error) {
    hook := newHook(name, seed)
    err := hook.state.DoString(source)
    if err != nil {
        hook.state.Close()
        return nil, &ScriptError{Name: name, Err: err}
    }
    err = hook.findStep()
    if err != nil {
        return nil, err
    }
    return hook, nil
}

/* the step hook to pass to RunWithCallback */
func (hook *Hook) Step(cpu *m6502.CPUState) bool {
    hook.cpu = cpu
    defer func(){
        hook.cpu = nil
    }()

    err := hook.state.CallByParam(lua.P{
        Fn: hook.step,
        NRet: 1,
        Protect: true,
    })
    if err != nil {
        hook.Err = &ScriptError{Name: hook.Name, Err: err}
        log.Printf("Script error at 0x%04x: %v", cpu.PC, err)
        return false
    }

    result := hook.state.Get(-1)
    hook.state.Pop(1)

    if result == lua.LNil {
        return true
    }

    return lua.LVAsBool(result)
}

/* combine with another hook, both run and either can stop the cpu */
func (hook *Hook) Chain(next m6502.StepHook) m6502.StepHook {
    return func(cpu *m6502.CPUState) bool {
        if !hook.Step(cpu) {
            return false
        }
        if next != nil {
            return next(cpu)
        }
        return true
    }
}

func (hook *Hook) Close() {
    hook.state.Close()
}
