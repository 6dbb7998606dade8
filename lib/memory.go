package lib

import (
    "fmt"
    "log"
)

/* Everything the cpu knows about the outside world. Reads and writes are
 * synchronous and the cpu assumes nobody else touches the bus in the middle
 * of an instruction.
 */
type Bus interface {
    Read(address uint16) byte
    Write(address uint16, value byte)
}

/* little endian, low byte at address. the two reads are not atomic */
func Read16(bus Bus, address uint16) uint16 {
    low := uint16(bus.Read(address))
    high := uint16(bus.Read(address + 1))
    return (high<<8) | low
}

func Write16(bus Bus, address uint16, value uint16){
    bus.Write(address, byte(value & 0xff))
    bus.Write(address + 1, byte(value >> 8))
}

/* 64k address space split into 256 pages. each page points into some backing
 * slice, so the same ram can be mirrored at several locations. reads from an
 * unmapped page return 0 and writes to it are dropped.
 */
type Memory struct {
    /* the ram allocated by NewMemory, mapped over the whole address space */
    Ram []byte
    Maps [][]byte
    Debug uint
}

func NewMemory() *Memory {
    memory := &Memory{
        Ram: make([]byte, 0x10000),
        Maps: make([][]byte, 256),
    }

    /* empty maps and exactly 256 pages of ram, so this only fails if MapMemory is broken */
    err := memory.MapMemory(0x0, memory.Ram)
    if err != nil {
        panic(err)
    }

    return memory
}

/* a memory with no pages mapped at all */
func NewEmptyMemory() *Memory {
    return &Memory{
        Maps: make([][]byte, 256),
    }
}

func (memory *Memory) MapMemory(location uint16, data []byte) error {
    if location & 0xff != 0 {
        return fmt.Errorf("Must map on a page boundary: 0x%x", location)
    }

    if len(data) % 256 != 0 {
        return fmt.Errorf("Mapping a non-page aligned memory slice: %v", len(data))
    }

    base := int(location >> 8)
    pages := len(data) / 256
    if base + pages > 256 {
        return fmt.Errorf("Cannot map 0x%x bytes at 0x%x, it extends past the end of memory", len(data), location)
    }

    for page := 0; page < pages; page++ {
        if memory.Maps[base + page] != nil {
            return fmt.Errorf("Memory is already mapped at page 0x%x", base + page)
        }
    }

    for page := 0; page < pages; page++ {
        memory.Maps[base + page] = data[page * 256:page * 256 + 256]
    }

    return nil
}

func (memory *Memory) UnmapMemory(location uint16, length int) error {
    if location & 0xff != 0 {
        return fmt.Errorf("Expected address to be page aligned: 0x%x", location)
    }

    if length & 0xff != 0 {
        return fmt.Errorf("Expected memory length to be page aligned: %v at 0x%x", length, location)
    }

    page := int(location >> 8)
    pages := length >> 8

    if page + pages > 0x100 {
        return fmt.Errorf("Cannot unmap pages past 0x100: 0x%x", page + pages)
    }

    for i := 0; i < pages; i++ {
        memory.Maps[page + i] = nil
    }

    return nil
}

func (memory *Memory) GetMemoryPage(address uint16) []byte {
    return memory.Maps[address >> 8]
}

func (memory *Memory) Read(address uint16) byte {
    page := memory.Maps[address >> 8]
    if page == nil {
        if memory.Debug > 0 {
            log.Printf("Warning: read from unmapped address 0x%x", address)
        }
        return 0
    }

    return page[address & 0xff]
}

func (memory *Memory) Write(address uint16, value byte){
    page := memory.Maps[address >> 8]
    if page == nil {
        if memory.Debug > 0 {
            log.Printf("Warning: write of 0x%x to unmapped address 0x%x", value, address)
        }
        return
    }

    page[address & 0xff] = value
}

/* copy data into memory starting at address, wrapping at the end of the address space */
func (memory *Memory) Copy(address uint16, data []byte){
    for i, value := range data {
        memory.Write(address + uint16(i), value)
    }
}
