package lib

import (
    "encoding/json"
    "fmt"
    "io"
)

func (cpu *CPUState) Serialize(writer io.Writer) error {
    encoder := json.NewEncoder(writer)
    return encoder.Encode(cpu)
}

/* registers only, the copy shares the same bus */
func (cpu *CPUState) Copy() CPUState {
    return CPUState{
        A: cpu.A,
        X: cpu.X,
        Y: cpu.Y,
        SP: cpu.SP,
        PC: cpu.PC,
        Status: cpu.Status,
        Cycle: cpu.Cycle,
        Debug: cpu.Debug,
        Bus: cpu.Bus,
    }
}

/* overwrite the registers with the ones from other, keeping our own bus */
func (cpu *CPUState) Restore(other *CPUState){
    bus := cpu.Bus
    *cpu = other.Copy()
    cpu.Bus = bus
}

func (cpu *CPUState) Equals(other CPUState) bool {
    return cpu.A == other.A &&
           cpu.X == other.X &&
           cpu.Y == other.Y &&
           cpu.SP == other.SP &&
           cpu.PC == other.PC &&
           cpu.Cycle == other.Cycle &&
           cpu.Status == other.Status
}

func (cpu *CPUState) String() string {
    return fmt.Sprintf("A:0x%X X:0x%X Y:0x%X SP:0x%X P:0x%X PC:0x%X Cycle:%v", cpu.A, cpu.X, cpu.Y, cpu.SP, byte(cpu.Status), cpu.PC, cpu.Cycle)
}

/* everything needed to resume a machine later */
type MachineState struct {
    CPU CPUState `json:"cpu"`
    Ram []byte `json:"ram"`
}

func SaveMachine(writer io.Writer, cpu *CPUState, memory *Memory) error {
    state := MachineState{
        CPU: cpu.Copy(),
        Ram: memory.Ram,
    }
    encoder := json.NewEncoder(writer)
    return encoder.Encode(&state)
}

/* restore registers into cpu and ram into memory */
func LoadMachine(reader io.Reader, cpu *CPUState, memory *Memory) error {
    var state MachineState
    decoder := json.NewDecoder(reader)
    err := decoder.Decode(&state)
    if err != nil {
        return err
    }

    if len(state.Ram) != len(memory.Ram) {
        return fmt.Errorf("saved ram is 0x%x bytes but memory has 0x%x", len(state.Ram), len(memory.Ram))
    }

    copy(memory.Ram, state.Ram)
    cpu.Restore(&state.CPU)
    return nil
}
