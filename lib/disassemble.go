package lib

import (
    "bytes"
    "fmt"
    "io"
)

type Instruction struct {
    /* where the opcode byte lives */
    Address uint16
    OpCode *OpCode
    Operands []byte
}

func (instruction *Instruction) Length() uint16 {
    return 1 + uint16(len(instruction.Operands))
}

func (instruction *Instruction) OperandByte() (byte, error) {
    if len(instruction.Operands) != 1 {
        return 0, fmt.Errorf("dont have one operand for %v, only have %v", instruction.OpCode.Mnemonic, len(instruction.Operands))
    }
    return instruction.Operands[0], nil
}

func (instruction *Instruction) OperandWord() (uint16, error) {
    if len(instruction.Operands) != 2 {
        return 0, fmt.Errorf("dont have two operands for %v, only have %v", instruction.OpCode.Mnemonic, len(instruction.Operands))
    }
    high := instruction.Operands[1]
    low := instruction.Operands[0]
    return (uint16(high) << 8) | uint16(low), nil
}

/* the raw bytes, like "A9 05" */
func (instruction *Instruction) Hex() string {
    var out bytes.Buffer
    out.WriteString(fmt.Sprintf("%02X", instruction.OpCode.Code))
    for _, operand := range instruction.Operands {
        out.WriteString(fmt.Sprintf(" %02X", operand))
    }
    return out.String()
}

/* assembler syntax, like "LDA #$05" or "STA ($10),Y" */
func (instruction *Instruction) String() string {
    if instruction.OpCode == nil {
        return "???"
    }

    name := string(instruction.OpCode.Mnemonic)
    byteOperand, _ := instruction.OperandByte()
    wordOperand, _ := instruction.OperandWord()

    switch instruction.OpCode.Mode {
        case Immediate: return fmt.Sprintf("%v #$%02X", name, byteOperand)
        case Accumulator: return fmt.Sprintf("%v A", name)
        case ZeroPage: return fmt.Sprintf("%v $%02X", name, byteOperand)
        case ZeroPage_X: return fmt.Sprintf("%v $%02X,X", name, byteOperand)
        case ZeroPage_Y: return fmt.Sprintf("%v $%02X,Y", name, byteOperand)
        case Absolute: return fmt.Sprintf("%v $%04X", name, wordOperand)
        case Absolute_X: return fmt.Sprintf("%v $%04X,X", name, wordOperand)
        case Absolute_Y: return fmt.Sprintf("%v $%04X,Y", name, wordOperand)
        case Indirect: return fmt.Sprintf("%v ($%04X)", name, wordOperand)
        case Indirect_X: return fmt.Sprintf("%v ($%02X,X)", name, byteOperand)
        case Indirect_Y: return fmt.Sprintf("%v ($%02X),Y", name, byteOperand)
        case NoneAddressing:
            /* branches show where they go, not the raw displacement */
            return fmt.Sprintf("%v $%04X", name, BranchTarget(instruction.Address, byteOperand))
    }

    return name
}

/* decode the instruction at address without executing it */
func Disassemble(bus Bus, address uint16) (Instruction, error) {
    code := bus.Read(address)
    opcode, ok := LookupOpCode(code)
    if !ok {
        return Instruction{Address: address}, &UnimplementedOpcodeError{Opcode: code, PC: address}
    }

    operands := make([]byte, opcode.Length - 1)
    for i := range operands {
        operands[i] = bus.Read(address + uint16(i + 1))
    }

    return Instruction{
        Address: address,
        OpCode: opcode,
        Operands: operands,
    }, nil
}

/* decode count instructions starting at address. decoding stops early at the
 * first undocumented opcode
 */
func DisassembleRange(bus Bus, address uint16, count int) []Instruction {
    var out []Instruction
    for i := 0; i < count; i++ {
        instruction, err := Disassemble(bus, address)
        if err != nil {
            break
        }
        out = append(out, instruction)
        address += instruction.Length()
    }
    return out
}

/* decodes a raw program image that will be loaded at origin */
type InstructionReader struct {
    data *bytes.Reader
    origin uint16
}

func NewInstructionReader(data []byte, origin uint16) *InstructionReader {
    return &InstructionReader{
        data: bytes.NewReader(data),
        origin: origin,
    }
}

/* instructions can vary in their size. returns io.EOF once the data runs out */
func (reader *InstructionReader) ReadInstruction() (Instruction, error) {
    address := reader.origin + uint16(reader.data.Size() - int64(reader.data.Len()))

    first, err := reader.data.ReadByte()
    if err != nil {
        return Instruction{}, err
    }

    opcode, ok := LookupOpCode(first)
    if !ok {
        return Instruction{Address: address}, &UnimplementedOpcodeError{Opcode: first, PC: address}
    }

    operands := make([]byte, opcode.Length - 1)
    _, err = io.ReadFull(reader.data, operands)
    if err != nil {
        return Instruction{}, fmt.Errorf("unable to read %v operands for instruction %v at 0x%04x", opcode.Length - 1, opcode.Mnemonic, address)
    }

    return Instruction{
        Address: address,
        OpCode: opcode,
        Operands: operands,
    }, nil
}

/* one line per instruction: address, bytes, assembler text */
func DisassembleProgram(program []byte, origin uint16) ([]string, error) {
    reader := NewInstructionReader(program, origin)
    var lines []string
    for {
        instruction, err := reader.ReadInstruction()
        if err == io.EOF {
            return lines, nil
        }
        if err != nil {
            return lines, err
        }
        lines = append(lines, fmt.Sprintf("%04X  %-8v  %v", instruction.Address, instruction.Hex(), instruction.String()))
    }
}
