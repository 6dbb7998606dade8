package lib

import (
    "context"
    "errors"
    "fmt"
    "log"
)

const ResetVector uint16 = 0xfffc

/* where Load() puts programs, this is where the snake demo expects to live */
const DefaultLoadAddress uint16 = 0x0600

const StackBase uint16 = 0x0100

var ErrUnimplementedOpcode = errors.New("unimplemented opcode")
var ErrInvalidAddressingMode = errors.New("invalid addressing mode")

/* the byte fetched at PC has no entry in the opcode table */
type UnimplementedOpcodeError struct {
    Opcode byte
    /* address the opcode was fetched from */
    PC uint16
}

func (err *UnimplementedOpcodeError) Error() string {
    return fmt.Sprintf("unimplemented opcode 0x%02x at 0x%04x", err.Opcode, err.PC)
}

func (err *UnimplementedOpcodeError) Is(target error) bool {
    return target == ErrUnimplementedOpcode
}

/* an instruction asked the resolver for an address in a mode that has none.
 * this is always a bug in the opcode table or a handler
 */
type InvalidAddressingModeError struct {
    Mode AddressingMode
    Mnemonic Mnemonic
}

func (err *InvalidAddressingModeError) Error() string {
    if err.Mnemonic != "" {
        return fmt.Sprintf("addressing mode %v cannot be resolved for %v", err.Mode, err.Mnemonic)
    }
    return fmt.Sprintf("addressing mode %v cannot be resolved", err.Mode)
}

func (err *InvalidAddressingModeError) Is(target error) bool {
    return target == ErrInvalidAddressingMode
}

/* why RunWithCallback stopped */
type HaltReason int

const (
    HaltNone HaltReason = iota
    /* a BRK instruction was executed */
    HaltBreak
    /* the step hook asked to stop */
    HaltHook
    /* the context passed to RunContext was cancelled */
    HaltCancel
)

func (reason HaltReason) String() string {
    switch reason {
        case HaltNone: return "none"
        case HaltBreak: return "brk"
        case HaltHook: return "hook"
        case HaltCancel: return "cancel"
    }
    return "unknown"
}

/* Called once per iteration of the run loop before the next opcode is
 * fetched. It may read or change anything in the cpu or on its bus.
 * Returning false stops the loop.
 */
type StepHook func(cpu *CPUState) bool

type CPUState struct {
    A byte `json:"a"`
    X byte `json:"x"`
    Y byte `json:"y"`
    SP byte `json:"sp"`
    PC uint16 `json:"pc"`
    Status StatusFlags `json:"status"`

    /* sum of the nominal cycle cost of every executed instruction */
    Cycle uint64 `json:"cycle"`

    Debug uint `json:"debug,omitempty"`

    Bus Bus `json:"-"`
}

func NewCPU(bus Bus) *CPUState {
    return &CPUState{
        Status: FlagUnused | FlagBreak,
        SP: 0xff,
        PC: 0x8000,
        Bus: bus,
    }
}

func (cpu *CPUState) LoadMemory(address uint16) byte {
    return cpu.Bus.Read(address)
}

func (cpu *CPUState) StoreMemory(address uint16, value byte){
    cpu.Bus.Write(address, value)
}

func (cpu *CPUState) Reset() {
    cpu.A = 0
    cpu.X = 0
    cpu.Status = FlagUnused | FlagBreak
    cpu.SP = 0xff
    cpu.PC = Read16(cpu.Bus, ResetVector)
}

/* copy the program to DefaultLoadAddress and point the reset vector at it */
func (cpu *CPUState) Load(program []byte) error {
    return cpu.LoadAt(program, DefaultLoadAddress)
}

func (cpu *CPUState) LoadAt(program []byte, address uint16) error {
    if int(address) + len(program) > 0x10000 {
        return fmt.Errorf("program of %v bytes does not fit at 0x%04x", len(program), address)
    }

    for i, value := range program {
        cpu.StoreMemory(address + uint16(i), value)
    }
    Write16(cpu.Bus, ResetVector, address)
    return nil
}

func (cpu *CPUState) LoadAndRun(program []byte) error {
    err := cpu.Load(program)
    if err != nil {
        return err
    }
    cpu.Reset()
    return cpu.Run()
}

/* Execute a single instruction. Returns true if the instruction was BRK,
 * in which case the cpu should not be stepped any further.
 */
func (cpu *CPUState) Step() (bool, error) {
    fetchPC := cpu.PC
    code := cpu.LoadMemory(cpu.PC)
    cpu.PC += 1

    opcode, ok := LookupOpCode(code)
    if !ok {
        return false, &UnimplementedOpcodeError{Opcode: code, PC: fetchPC}
    }

    if cpu.Debug > 0 {
        instruction, _ := Disassemble(cpu.Bus, fetchPC)
        log.Printf("PC: 0x%x Execute instruction %v A:%X X:%X Y:%X P:%X SP:%X CYC:%v\n", fetchPC, instruction.String(), cpu.A, cpu.X, cpu.Y, byte(cpu.Status), cpu.SP, cpu.Cycle)
    }

    postFetch := cpu.PC

    halt, err := cpu.Execute(opcode)
    if err != nil {
        return false, err
    }

    cpu.Cycle += uint64(opcode.Cycles)

    if halt {
        return true, nil
    }

    /* the handler did not jump anywhere, so skip over the operand bytes */
    if cpu.PC == postFetch {
        cpu.PC += uint16(opcode.Length - 1)
    }

    return false, nil
}

func (cpu *CPUState) Run() error {
    _, err := cpu.RunWithCallback(nil)
    return err
}

func (cpu *CPUState) RunWithCallback(hook StepHook) (HaltReason, error) {
    for {
        if hook != nil && !hook(cpu) {
            return HaltHook, nil
        }

        halt, err := cpu.Step()
        if err != nil {
            return HaltNone, err
        }

        if halt {
            return HaltBreak, nil
        }
    }
}

/* like RunWithCallback but also stops when quit is done. the context is
 * checked at the same point the hook runs, before each fetch
 */
func (cpu *CPUState) RunContext(quit context.Context, hook StepHook) (HaltReason, error) {
    cancelled := false
    reason, err := cpu.RunWithCallback(func(cpu *CPUState) bool {
        select {
            case <-quit.Done():
                cancelled = true
                return false
            default:
        }

        if hook != nil {
            return hook(cpu)
        }
        return true
    })

    if cancelled {
        return HaltCancel, err
    }

    return reason, err
}

/* run a decoded opcode whose operand bytes start at cpu.PC */
func (cpu *CPUState) Execute(opcode *OpCode) (bool, error) {
    var err error

    switch opcode.Mnemonic {
        case BRK:
            return true, nil
        case NOP:

        case LDA: err = cpu.doLoad(&cpu.A, opcode.Mode)
        case LDX: err = cpu.doLoad(&cpu.X, opcode.Mode)
        case LDY: err = cpu.doLoad(&cpu.Y, opcode.Mode)
        case STA: err = cpu.doStore(cpu.A, opcode.Mode)
        case STX: err = cpu.doStore(cpu.X, opcode.Mode)
        case STY: err = cpu.doStore(cpu.Y, opcode.Mode)

        case TAX: cpu.doTransfer(&cpu.X, cpu.A)
        case TAY: cpu.doTransfer(&cpu.Y, cpu.A)
        case TXA: cpu.doTransfer(&cpu.A, cpu.X)
        case TYA: cpu.doTransfer(&cpu.A, cpu.Y)
        case TSX: cpu.doTransfer(&cpu.X, cpu.SP)
        case TXS:
            /* the only transfer that leaves the flags alone */
            cpu.SP = cpu.X

        case ADC: err = cpu.adc(opcode.Mode)
        case SBC: err = cpu.sbc(opcode.Mode)
        case CMP: err = cpu.compare(cpu.A, opcode.Mode)
        case CPX: err = cpu.compare(cpu.X, opcode.Mode)
        case CPY: err = cpu.compare(cpu.Y, opcode.Mode)

        case AND: err = cpu.logic(opcode.Mode, func(a byte, value byte) byte { return a & value })
        case ORA: err = cpu.logic(opcode.Mode, func(a byte, value byte) byte { return a | value })
        case EOR: err = cpu.logic(opcode.Mode, func(a byte, value byte) byte { return a ^ value })
        case BIT: err = cpu.bit(opcode.Mode)

        case ASL: err = cpu.modify(opcode.Mode, cpu.doAsl)
        case LSR: err = cpu.modify(opcode.Mode, cpu.doLsr)
        case ROL: err = cpu.modify(opcode.Mode, cpu.doRol)
        case ROR: err = cpu.modify(opcode.Mode, cpu.doRor)

        case INC: err = cpu.modify(opcode.Mode, cpu.doInc)
        case DEC: err = cpu.modify(opcode.Mode, cpu.doDec)
        case INX: cpu.X = cpu.doInc(cpu.X)
        case INY: cpu.Y = cpu.doInc(cpu.Y)
        case DEX: cpu.X = cpu.doDec(cpu.X)
        case DEY: cpu.Y = cpu.doDec(cpu.Y)

        case BCC: cpu.branch(!cpu.Status.Has(FlagCarry))
        case BCS: cpu.branch(cpu.Status.Has(FlagCarry))
        case BNE: cpu.branch(!cpu.Status.Has(FlagZero))
        case BEQ: cpu.branch(cpu.Status.Has(FlagZero))
        case BPL: cpu.branch(!cpu.Status.Has(FlagNegative))
        case BMI: cpu.branch(cpu.Status.Has(FlagNegative))
        case BVC: cpu.branch(!cpu.Status.Has(FlagOverflow))
        case BVS: cpu.branch(cpu.Status.Has(FlagOverflow))

        case JMP: err = cpu.jmp(opcode.Mode)
        case JSR: err = cpu.jsr(opcode.Mode)
        case RTS: cpu.rts()
        case RTI: cpu.rti()

        case PHA: cpu.PushStack(cpu.A)
        case PHP: cpu.PushStack(byte(cpu.Status))
        case PLA:
            cpu.A = cpu.PopStack()
            cpu.Status.SetZeroAndNegative(cpu.A)
        case PLP:
            /* all 8 bits come back exactly as they were pushed */
            cpu.Status = StatusFlags(cpu.PopStack())

        case CLC: cpu.Status.Set(FlagCarry, false)
        case CLD: cpu.Status.Set(FlagDecimal, false)
        case CLI: cpu.Status.Set(FlagInterruptDisable, false)
        case CLV: cpu.Status.Set(FlagOverflow, false)
        case SEC: cpu.Status.Set(FlagCarry, true)
        case SED: cpu.Status.Set(FlagDecimal, true)
        case SEI: cpu.Status.Set(FlagInterruptDisable, true)

        default:
            return false, fmt.Errorf("unable to execute instruction %v at PC 0x%x", opcode.String(), cpu.PC - 1)
    }

    var modeError *InvalidAddressingModeError
    if errors.As(err, &modeError) {
        modeError.Mnemonic = opcode.Mnemonic
    }

    return false, err
}
