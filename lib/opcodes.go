package lib

import (
    "fmt"
)

/* opcode references
 * https://www.masswerk.at/6502/6502_instruction_set.html
 * http://www.6502.org/tutorials/6502opcodes.html
 * http://www.obelisk.me.uk/6502/reference.html
 */

type Mnemonic string

const (
    ADC Mnemonic = "ADC"
    AND Mnemonic = "AND"
    ASL Mnemonic = "ASL"
    BCC Mnemonic = "BCC"
    BCS Mnemonic = "BCS"
    BEQ Mnemonic = "BEQ"
    BIT Mnemonic = "BIT"
    BMI Mnemonic = "BMI"
    BNE Mnemonic = "BNE"
    BPL Mnemonic = "BPL"
    BRK Mnemonic = "BRK"
    BVC Mnemonic = "BVC"
    BVS Mnemonic = "BVS"
    CLC Mnemonic = "CLC"
    CLD Mnemonic = "CLD"
    CLI Mnemonic = "CLI"
    CLV Mnemonic = "CLV"
    CMP Mnemonic = "CMP"
    CPX Mnemonic = "CPX"
    CPY Mnemonic = "CPY"
    DEC Mnemonic = "DEC"
    DEX Mnemonic = "DEX"
    DEY Mnemonic = "DEY"
    EOR Mnemonic = "EOR"
    INC Mnemonic = "INC"
    INX Mnemonic = "INX"
    INY Mnemonic = "INY"
    JMP Mnemonic = "JMP"
    JSR Mnemonic = "JSR"
    LDA Mnemonic = "LDA"
    LDX Mnemonic = "LDX"
    LDY Mnemonic = "LDY"
    LSR Mnemonic = "LSR"
    NOP Mnemonic = "NOP"
    ORA Mnemonic = "ORA"
    PHA Mnemonic = "PHA"
    PHP Mnemonic = "PHP"
    PLA Mnemonic = "PLA"
    PLP Mnemonic = "PLP"
    ROL Mnemonic = "ROL"
    ROR Mnemonic = "ROR"
    RTI Mnemonic = "RTI"
    RTS Mnemonic = "RTS"
    SBC Mnemonic = "SBC"
    SEC Mnemonic = "SEC"
    SED Mnemonic = "SED"
    SEI Mnemonic = "SEI"
    STA Mnemonic = "STA"
    STX Mnemonic = "STX"
    STY Mnemonic = "STY"
    TAX Mnemonic = "TAX"
    TAY Mnemonic = "TAY"
    TSX Mnemonic = "TSX"
    TXA Mnemonic = "TXA"
    TXS Mnemonic = "TXS"
    TYA Mnemonic = "TYA"
)

type OpCode struct {
    Code byte
    Mnemonic Mnemonic
    /* total length of the instruction including the opcode byte */
    Length byte
    /* nominal cycle cost, page crossing penalties are not included */
    Cycles byte
    Mode AddressingMode
}

func (opcode *OpCode) String() string {
    return fmt.Sprintf("%02X %v %v", opcode.Code, opcode.Mnemonic, opcode.Mode)
}

func op(code byte, mnemonic Mnemonic, length byte, cycles byte, mode AddressingMode) OpCode {
    return OpCode{Code: code, Mnemonic: mnemonic, Length: length, Cycles: cycles, Mode: mode}
}

var documentedOpCodes = []OpCode{
    op(0x00, BRK, 1, 7, Implied),
    op(0xea, NOP, 1, 2, Implied),

    op(0x69, ADC, 2, 2, Immediate),
    op(0x65, ADC, 2, 3, ZeroPage),
    op(0x75, ADC, 2, 4, ZeroPage_X),
    op(0x6d, ADC, 3, 4, Absolute),
    op(0x7d, ADC, 3, 4, Absolute_X),
    op(0x79, ADC, 3, 4, Absolute_Y),
    op(0x61, ADC, 2, 6, Indirect_X),
    op(0x71, ADC, 2, 5, Indirect_Y),

    op(0xe9, SBC, 2, 2, Immediate),
    op(0xe5, SBC, 2, 3, ZeroPage),
    op(0xf5, SBC, 2, 4, ZeroPage_X),
    op(0xed, SBC, 3, 4, Absolute),
    op(0xfd, SBC, 3, 4, Absolute_X),
    op(0xf9, SBC, 3, 4, Absolute_Y),
    op(0xe1, SBC, 2, 6, Indirect_X),
    op(0xf1, SBC, 2, 5, Indirect_Y),

    op(0x29, AND, 2, 2, Immediate),
    op(0x25, AND, 2, 3, ZeroPage),
    op(0x35, AND, 2, 4, ZeroPage_X),
    op(0x2d, AND, 3, 4, Absolute),
    op(0x3d, AND, 3, 4, Absolute_X),
    op(0x39, AND, 3, 4, Absolute_Y),
    op(0x21, AND, 2, 6, Indirect_X),
    op(0x31, AND, 2, 5, Indirect_Y),

    op(0x49, EOR, 2, 2, Immediate),
    op(0x45, EOR, 2, 3, ZeroPage),
    op(0x55, EOR, 2, 4, ZeroPage_X),
    op(0x4d, EOR, 3, 4, Absolute),
    op(0x5d, EOR, 3, 4, Absolute_X),
    op(0x59, EOR, 3, 4, Absolute_Y),
    op(0x41, EOR, 2, 6, Indirect_X),
    op(0x51, EOR, 2, 5, Indirect_Y),

    op(0x09, ORA, 2, 2, Immediate),
    op(0x05, ORA, 2, 3, ZeroPage),
    op(0x15, ORA, 2, 4, ZeroPage_X),
    op(0x0d, ORA, 3, 4, Absolute),
    op(0x1d, ORA, 3, 4, Absolute_X),
    op(0x19, ORA, 3, 4, Absolute_Y),
    op(0x01, ORA, 2, 6, Indirect_X),
    op(0x11, ORA, 2, 5, Indirect_Y),

    op(0xc9, CMP, 2, 2, Immediate),
    op(0xc5, CMP, 2, 3, ZeroPage),
    op(0xd5, CMP, 2, 4, ZeroPage_X),
    op(0xcd, CMP, 3, 4, Absolute),
    op(0xdd, CMP, 3, 4, Absolute_X),
    op(0xd9, CMP, 3, 4, Absolute_Y),
    op(0xc1, CMP, 2, 6, Indirect_X),
    op(0xd1, CMP, 2, 5, Indirect_Y),

    op(0xe0, CPX, 2, 2, Immediate),
    op(0xe4, CPX, 2, 3, ZeroPage),
    op(0xec, CPX, 3, 4, Absolute),

    op(0xc0, CPY, 2, 2, Immediate),
    op(0xc4, CPY, 2, 3, ZeroPage),
    op(0xcc, CPY, 3, 4, Absolute),

    op(0x24, BIT, 2, 3, ZeroPage),
    op(0x2c, BIT, 3, 4, Absolute),

    op(0x0a, ASL, 1, 2, Accumulator),
    op(0x06, ASL, 2, 5, ZeroPage),
    op(0x16, ASL, 2, 6, ZeroPage_X),
    op(0x0e, ASL, 3, 6, Absolute),
    op(0x1e, ASL, 3, 7, Absolute_X),

    op(0x4a, LSR, 1, 2, Accumulator),
    op(0x46, LSR, 2, 5, ZeroPage),
    op(0x56, LSR, 2, 6, ZeroPage_X),
    op(0x4e, LSR, 3, 6, Absolute),
    op(0x5e, LSR, 3, 7, Absolute_X),

    op(0x2a, ROL, 1, 2, Accumulator),
    op(0x26, ROL, 2, 5, ZeroPage),
    op(0x36, ROL, 2, 6, ZeroPage_X),
    op(0x2e, ROL, 3, 6, Absolute),
    op(0x3e, ROL, 3, 7, Absolute_X),

    op(0x6a, ROR, 1, 2, Accumulator),
    op(0x66, ROR, 2, 5, ZeroPage),
    op(0x76, ROR, 2, 6, ZeroPage_X),
    op(0x6e, ROR, 3, 6, Absolute),
    op(0x7e, ROR, 3, 7, Absolute_X),

    op(0xe6, INC, 2, 5, ZeroPage),
    op(0xf6, INC, 2, 6, ZeroPage_X),
    op(0xee, INC, 3, 6, Absolute),
    op(0xfe, INC, 3, 7, Absolute_X),

    op(0xc6, DEC, 2, 5, ZeroPage),
    op(0xd6, DEC, 2, 6, ZeroPage_X),
    op(0xce, DEC, 3, 6, Absolute),
    op(0xde, DEC, 3, 7, Absolute_X),

    op(0xe8, INX, 1, 2, Implied),
    op(0xc8, INY, 1, 2, Implied),
    op(0xca, DEX, 1, 2, Implied),
    op(0x88, DEY, 1, 2, Implied),

    op(0xa9, LDA, 2, 2, Immediate),
    op(0xa5, LDA, 2, 3, ZeroPage),
    op(0xb5, LDA, 2, 4, ZeroPage_X),
    op(0xad, LDA, 3, 4, Absolute),
    op(0xbd, LDA, 3, 4, Absolute_X),
    op(0xb9, LDA, 3, 4, Absolute_Y),
    op(0xa1, LDA, 2, 6, Indirect_X),
    op(0xb1, LDA, 2, 5, Indirect_Y),

    op(0xa2, LDX, 2, 2, Immediate),
    op(0xa6, LDX, 2, 3, ZeroPage),
    op(0xb6, LDX, 2, 4, ZeroPage_Y),
    op(0xae, LDX, 3, 4, Absolute),
    op(0xbe, LDX, 3, 4, Absolute_Y),

    op(0xa0, LDY, 2, 2, Immediate),
    op(0xa4, LDY, 2, 3, ZeroPage),
    op(0xb4, LDY, 2, 4, ZeroPage_X),
    op(0xac, LDY, 3, 4, Absolute),
    op(0xbc, LDY, 3, 4, Absolute_X),

    op(0x85, STA, 2, 3, ZeroPage),
    op(0x95, STA, 2, 4, ZeroPage_X),
    op(0x8d, STA, 3, 4, Absolute),
    op(0x9d, STA, 3, 5, Absolute_X),
    op(0x99, STA, 3, 5, Absolute_Y),
    op(0x81, STA, 2, 6, Indirect_X),
    op(0x91, STA, 2, 6, Indirect_Y),

    op(0x86, STX, 2, 3, ZeroPage),
    op(0x96, STX, 2, 4, ZeroPage_Y),
    op(0x8e, STX, 3, 4, Absolute),

    op(0x84, STY, 2, 3, ZeroPage),
    op(0x94, STY, 2, 4, ZeroPage_X),
    op(0x8c, STY, 3, 4, Absolute),

    op(0xaa, TAX, 1, 2, Implied),
    op(0xa8, TAY, 1, 2, Implied),
    op(0x8a, TXA, 1, 2, Implied),
    op(0x98, TYA, 1, 2, Implied),
    op(0xba, TSX, 1, 2, Implied),
    op(0x9a, TXS, 1, 2, Implied),

    op(0x48, PHA, 1, 3, Implied),
    op(0x08, PHP, 1, 3, Implied),
    op(0x68, PLA, 1, 4, Implied),
    op(0x28, PLP, 1, 4, Implied),

    op(0x4c, JMP, 3, 3, Absolute),
    op(0x6c, JMP, 3, 5, Indirect),
    op(0x20, JSR, 3, 6, Absolute),
    op(0x60, RTS, 1, 6, Implied),
    op(0x40, RTI, 1, 6, Implied),

    op(0x90, BCC, 2, 2, NoneAddressing),
    op(0xb0, BCS, 2, 2, NoneAddressing),
    op(0xf0, BEQ, 2, 2, NoneAddressing),
    op(0xd0, BNE, 2, 2, NoneAddressing),
    op(0x30, BMI, 2, 2, NoneAddressing),
    op(0x10, BPL, 2, 2, NoneAddressing),
    op(0x50, BVC, 2, 2, NoneAddressing),
    op(0x70, BVS, 2, 2, NoneAddressing),

    op(0x18, CLC, 1, 2, Implied),
    op(0xd8, CLD, 1, 2, Implied),
    op(0x58, CLI, 1, 2, Implied),
    op(0xb8, CLV, 1, 2, Implied),
    op(0x38, SEC, 1, 2, Implied),
    op(0xf8, SED, 1, 2, Implied),
    op(0x78, SEI, 1, 2, Implied),
}

/* indexed by opcode byte, nil for undocumented opcodes. written once in init() */
var opcodeTable [256]*OpCode

func init(){
    for i := range documentedOpCodes {
        opcode := &documentedOpCodes[i]

        /* make sure I don't do something dumb */
        if opcodeTable[opcode.Code] != nil {
            panic(fmt.Sprintf("internal error: opcode 0x%02x is defined twice (%v and %v)", opcode.Code, opcodeTable[opcode.Code].Mnemonic, opcode.Mnemonic))
        }
        if opcode.Length < 1 || opcode.Length > 3 {
            panic(fmt.Sprintf("internal error: invalid length %v for opcode 0x%02x", opcode.Length, opcode.Code))
        }

        opcodeTable[opcode.Code] = opcode
    }
}

/* the returned opcode is shared, callers must not modify it */
func LookupOpCode(code byte) (*OpCode, bool) {
    opcode := opcodeTable[code]
    return opcode, opcode != nil
}

/* all documented opcodes in table order */
func AllOpCodes() []OpCode {
    out := make([]OpCode, len(documentedOpCodes))
    copy(out, documentedOpCodes)
    return out
}
