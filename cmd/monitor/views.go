package main

import (
    "fmt"
    "strings"
    "sync"

    m6502 "github.com/kazzmir/m6502/lib"
    "github.com/kazzmir/m6502/cmd/monitor/debug"
)

func formatRegisters(snapshot debug.Snapshot) string {
    cpu := snapshot.CPU
    state := "running"
    if snapshot.Stopped {
        state = "stopped"
    }

    var out strings.Builder
    out.WriteString(fmt.Sprintf("PC: %04X  SP: %02X\n", cpu.PC, cpu.SP))
    out.WriteString(fmt.Sprintf("A: %02X  X: %02X  Y: %02X\n", cpu.A, cpu.X, cpu.Y))
    out.WriteString(fmt.Sprintf("P: %v (%02X)\n", cpu.Status.String(), byte(cpu.Status)))
    out.WriteString(fmt.Sprintf("Cycle: %v\n", cpu.Cycle))
    out.WriteString(fmt.Sprintf("State: %v", state))
    return out.String()
}

/* instructions starting at pc. the current instruction is marked with '>'
 * and breakpoints with '*'
 */
func formatDisassembly(bus m6502.Bus, pc uint16, breakpoints []debug.Breakpoint, count int) []string {
    isBreakpoint := make(map[uint16]bool)
    for _, breakpoint := range breakpoints {
        isBreakpoint[breakpoint.PC] = true
    }

    var lines []string
    address := pc
    for i := 0; i < count; i++ {
        marker := " "
        if isBreakpoint[address] {
            marker = "*"
        }
        current := " "
        if address == pc {
            current = ">"
        }

        instruction, err := m6502.Disassemble(bus, address)
        if err != nil {
            lines = append(lines, fmt.Sprintf("%v%v%04X  %02X        ???", current, marker, address, bus.Read(address)))
            address += 1
            continue
        }

        lines = append(lines, fmt.Sprintf("%v%v%04X  %-8v  %v", current, marker, address, instruction.Hex(), instruction.String()))
        address += instruction.Length()
    }

    return lines
}

/* 16 bytes per line with the address of the first byte */
func formatPage(memory []byte, base uint16) string {
    var out strings.Builder
    for row := 0; row < len(memory); row += 16 {
        if row > 0 {
            out.WriteString("\n")
        }
        out.WriteString(fmt.Sprintf("%04X:", int(base) + row))
        end := row + 16
        if end > len(memory) {
            end = len(memory)
        }
        for _, value := range memory[row:end] {
            out.WriteString(fmt.Sprintf(" %02X", value))
        }
    }
    return out.String()
}

/* the used part of the stack, top first */
func formatStack(snapshot debug.Snapshot) string {
    var out strings.Builder
    sp := int(snapshot.CPU.SP)
    for address := sp + 1; address <= 0xff; address++ {
        out.WriteString(fmt.Sprintf("01%02X: %02X\n", address, snapshot.Memory[0x100 + address]))
    }
    if out.Len() == 0 {
        return "empty"
    }
    return strings.TrimSuffix(out.String(), "\n")
}

/* keeps the last few lines written to it, used as the log output */
type logBuffer struct {
    lock sync.Mutex
    lines []string
    partial string
    max int
}

func makeLogBuffer(max int) *logBuffer {
    return &logBuffer{max: max}
}

func (buffer *logBuffer) Write(data []byte) (int, error) {
    buffer.lock.Lock()
    defer buffer.lock.Unlock()

    text := buffer.partial + string(data)
    parts := strings.Split(text, "\n")
    buffer.partial = parts[len(parts) - 1]
    buffer.lines = append(buffer.lines, parts[:len(parts) - 1]...)
    if len(buffer.lines) > buffer.max {
        buffer.lines = buffer.lines[len(buffer.lines) - buffer.max:]
    }

    return len(data), nil
}

/* the last count lines */
func (buffer *logBuffer) Tail(count int) []string {
    buffer.lock.Lock()
    defer buffer.lock.Unlock()
    start := len(buffer.lines) - count
    if start < 0 {
        start = 0
    }
    out := make([]string, len(buffer.lines) - start)
    copy(out, buffer.lines[start:])
    return out
}
