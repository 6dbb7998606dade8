package lib

import (
    "testing"
)

func TestMemoryReadWrite(test *testing.T){
    memory := NewMemory()
    memory.Write(0x1234, 0x56)
    if memory.Read(0x1234) != 0x56 {
        test.Fatalf("read back 0x%x", memory.Read(0x1234))
    }

    if memory.Ram[0x1234] != 0x56 {
        test.Fatalf("write did not reach the ram")
    }

    Write16(memory, 0xfffc, 0xbeef)
    if Read16(memory, 0xfffc) != 0xbeef || memory.Read(0xfffc) != 0xef {
        test.Fatalf("16-bit values should be little endian")
    }
}

func TestMemoryRead16Wrap(test *testing.T){
    memory := NewMemory()
    memory.Write(0xffff, 0x34)
    memory.Write(0x0000, 0x12)
    if Read16(memory, 0xffff) != 0x1234 {
        test.Fatalf("Read16 should wrap to 0x0000 for the high byte")
    }
}

func TestMemoryMapping(test *testing.T){
    memory := NewEmptyMemory()

    if memory.Read(0x100) != 0 {
        test.Fatalf("unmapped memory should read as 0")
    }
    memory.Write(0x100, 5)

    ram := make([]byte, 0x800)
    err := memory.MapMemory(0x0000, ram)
    if err != nil {
        test.Fatalf("map failed: %v", err)
    }

    /* mirror the same ram a second time */
    err = memory.MapMemory(0x0800, ram)
    if err != nil {
        test.Fatalf("map failed: %v", err)
    }

    memory.Write(0x0010, 0x42)
    if memory.Read(0x0810) != 0x42 {
        test.Fatalf("mirrored read failed")
    }

    if memory.MapMemory(0x0400, make([]byte, 0x100)) == nil {
        test.Fatalf("mapping over an existing page should fail")
    }

    if memory.MapMemory(0x1001, make([]byte, 0x100)) == nil {
        test.Fatalf("mapping off a page boundary should fail")
    }

    if memory.MapMemory(0x2000, make([]byte, 0x80)) == nil {
        test.Fatalf("mapping a partial page should fail")
    }

    if memory.MapMemory(0xff00, make([]byte, 0x200)) == nil {
        test.Fatalf("mapping past the end of memory should fail")
    }

    err = memory.UnmapMemory(0x0800, 0x800)
    if err != nil {
        test.Fatalf("unmap failed: %v", err)
    }

    if memory.Read(0x0810) != 0 || memory.GetMemoryPage(0x0810) != nil {
        test.Fatalf("unmapped page is still readable")
    }

    if memory.UnmapMemory(0x0801, 0x100) == nil {
        test.Fatalf("unmapping off a page boundary should fail")
    }
}

func TestMemoryCopy(test *testing.T){
    memory := NewMemory()
    memory.Copy(0xfffe, []byte{1, 2, 3})
    if memory.Read(0xfffe) != 1 || memory.Read(0xffff) != 2 || memory.Read(0x0000) != 3 {
        test.Fatalf("copy should wrap at the end of memory")
    }
}

func TestNewMemoryMapsAllRam(test *testing.T){
    memory := NewMemory()
    for page := 0; page < 256; page++ {
        mapped := memory.GetMemoryPage(uint16(page << 8))
        if len(mapped) != 256 {
            test.Fatalf("page 0x%02x is not mapped", page)
        }
        mapped[0x42] = byte(page)
        if memory.Ram[page * 256 + 0x42] != byte(page) {
            test.Fatalf("page 0x%02x is not backed by the ram", page)
        }
    }

    /* ram covers everything, so mapping more on top fails */
    if memory.MapMemory(0x8000, make([]byte, 256)) == nil {
        test.Fatalf("mapping over the ram should fail")
    }
}
