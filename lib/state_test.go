package lib

import (
    "bytes"
    "encoding/json"
    "testing"
)

func TestSerialize(test *testing.T){
    cpu, _ := runProgram(test, []byte{0xa9, 0x42, 0xa2, 0x10, 0x00})

    var buffer bytes.Buffer
    err := cpu.Serialize(&buffer)
    if err != nil {
        test.Fatalf("serialize failed: %v", err)
    }

    var other CPUState
    err = json.Unmarshal(buffer.Bytes(), &other)
    if err != nil {
        test.Fatalf("could not decode: %v", err)
    }

    if !cpu.Equals(other) {
        test.Fatalf("state differs after a round trip: %v vs %v", cpu.String(), other.String())
    }
}

func TestRestoreKeepsBus(test *testing.T){
    cpu, memory := makeCPU()
    other := CPUState{A: 1, X: 2, Y: 3, SP: 0x80, PC: 0x1234, Status: FlagCarry}

    cpu.Restore(&other)
    if !cpu.Equals(other) {
        test.Fatalf("restore did not copy the registers")
    }

    if cpu.Bus != memory {
        test.Fatalf("restore replaced the bus")
    }
}

func TestSaveMachine(test *testing.T){
    cpu, memory := runProgram(test, []byte{0xa9, 0x07, 0x85, 0x20, 0x00})

    var buffer bytes.Buffer
    err := SaveMachine(&buffer, cpu, memory)
    if err != nil {
        test.Fatalf("save failed: %v", err)
    }

    cpu2, memory2 := makeCPU()
    err = LoadMachine(bytes.NewReader(buffer.Bytes()), cpu2, memory2)
    if err != nil {
        test.Fatalf("load failed: %v", err)
    }

    if !cpu2.Equals(cpu.Copy()) {
        test.Fatalf("registers differ: %v vs %v", cpu2.String(), cpu.String())
    }

    if memory2.Read(0x20) != 0x07 || memory2.Read(0x0600) != 0xa9 {
        test.Fatalf("ram was not restored")
    }

    /* the restored machine keeps running from where it stopped */
    memory2.Write(cpu2.PC, 0xe8)
    memory2.Write(cpu2.PC + 1, 0x00)
    err = cpu2.Run()
    if err != nil || cpu2.X != 1 {
        test.Fatalf("restored machine did not run: %v", err)
    }
}

func TestLoadMachineSizeMismatch(test *testing.T){
    cpu, memory := makeCPU()
    var buffer bytes.Buffer
    SaveMachine(&buffer, cpu, memory)

    small := NewEmptyMemory()
    small.Ram = make([]byte, 0x100)
    err := LoadMachine(&buffer, cpu, small)
    if err == nil {
        test.Fatalf("loading into a smaller ram should fail")
    }
}
