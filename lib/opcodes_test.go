package lib

import (
    "errors"
    "testing"
)

func TestOpcodeTable(test *testing.T){
    all := AllOpCodes()
    if len(all) != 151 {
        test.Fatalf("expected 151 documented opcodes but have %v", len(all))
    }

    mnemonics := make(map[Mnemonic]bool)
    for _, opcode := range all {
        mnemonics[opcode.Mnemonic] = true

        found, ok := LookupOpCode(opcode.Code)
        if !ok || found.Mnemonic != opcode.Mnemonic || found.Mode != opcode.Mode {
            test.Fatalf("lookup of 0x%02x does not match the table", opcode.Code)
        }

        if opcode.Cycles < 2 || opcode.Cycles > 7 {
            test.Fatalf("opcode %v has an odd cycle count %v", opcode.String(), opcode.Cycles)
        }
    }

    if len(mnemonics) != 56 {
        test.Fatalf("expected 56 mnemonics but found %v", len(mnemonics))
    }

    count := 0
    for code := 0; code < 256; code++ {
        if _, ok := LookupOpCode(byte(code)); ok {
            count += 1
        }
    }
    if count != 151 {
        test.Fatalf("lookup found %v opcodes", count)
    }
}

/* length follows from the addressing mode */
func TestOpcodeLengths(test *testing.T){
    for _, opcode := range AllOpCodes() {
        var expected byte
        switch opcode.Mode {
            case Implied, Accumulator: expected = 1
            case Immediate, ZeroPage, ZeroPage_X, ZeroPage_Y, Indirect_X, Indirect_Y, NoneAddressing: expected = 2
            case Absolute, Absolute_X, Absolute_Y, Indirect: expected = 3
        }

        if opcode.Length != expected {
            test.Fatalf("opcode %v should have length %v but has %v", opcode.String(), expected, opcode.Length)
        }
    }
}

func TestKnownOpcodes(test *testing.T){
    tests := []struct {
        code byte
        mnemonic Mnemonic
        mode AddressingMode
        cycles byte
    }{
        {0xa9, LDA, Immediate, 2},
        {0xb1, LDA, Indirect_Y, 5},
        {0x6c, JMP, Indirect, 5},
        {0x20, JSR, Absolute, 6},
        {0x0a, ASL, Accumulator, 2},
        {0x9d, STA, Absolute_X, 5},
        {0xb6, LDX, ZeroPage_Y, 4},
        {0xd0, BNE, NoneAddressing, 2},
        {0x40, RTI, Implied, 6},
        {0xfe, INC, Absolute_X, 7},
    }

    for _, check := range tests {
        opcode, ok := LookupOpCode(check.code)
        if !ok {
            test.Fatalf("opcode 0x%02x is missing", check.code)
        }
        if opcode.Mnemonic != check.mnemonic || opcode.Mode != check.mode || opcode.Cycles != check.cycles {
            test.Fatalf("opcode 0x%02x is %v", check.code, opcode.String())
        }
    }
}

func TestUndocumentedOpcodes(test *testing.T){
    for _, code := range []byte{0x02, 0x03, 0x1a, 0x80, 0xa3, 0xeb, 0xff} {
        if _, ok := LookupOpCode(code); ok {
            test.Fatalf("0x%02x should not be in the table", code)
        }

        cpu, memory := makeCPU()
        memory.Write(0x0600, code)
        cpu.PC = 0x0600
        _, err := cpu.Step()
        if !errors.Is(err, ErrUnimplementedOpcode) {
            test.Fatalf("0x%02x should fail with an unimplemented opcode error but got %v", code, err)
        }
    }
}
