package main

import (
    "bytes"
    "image/color"
    "strings"
    "testing"

    m6502 "github.com/kazzmir/m6502/lib"
)

func TestByteColor(test *testing.T){
    tests := []struct {
        value byte
        expected color.RGBA
    }{
        {0, color.RGBA{0, 0, 0, 255}},
        {1, color.RGBA{255, 255, 255, 255}},
        {2, color.RGBA{128, 128, 128, 255}},
        {9, color.RGBA{128, 128, 128, 255}},
        {10, color.RGBA{255, 0, 0, 255}},
        {4, color.RGBA{0, 255, 0, 255}},
        {12, color.RGBA{0, 0, 255, 255}},
        {6, color.RGBA{255, 0, 255, 255}},
        {14, color.RGBA{255, 255, 0, 255}},
        {15, color.RGBA{0, 255, 255, 255}},
        {0xff, color.RGBA{0, 255, 255, 255}},
    }

    for _, check := range tests {
        if ByteColor(check.value) != check.expected {
            test.Fatalf("color for %v should be %v but was %v", check.value, check.expected, ByteColor(check.value))
        }
    }
}

func TestScreenUpdate(test *testing.T){
    memory := m6502.NewMemory()
    screen := MakeScreen()

    if !screen.Update(memory) {
        test.Fatalf("first update should change the pixels")
    }

    if screen.Update(memory) {
        test.Fatalf("second update should not change anything")
    }

    /* bottom right corner */
    memory.Write(0x05ff, 5)
    if !screen.Update(memory) {
        test.Fatalf("writing to the screen should change the frame")
    }

    if screen.At(31, 31) != ByteColor(5) {
        test.Fatalf("corner should be blue")
    }

    /* memory right after the screen is not part of it */
    memory.Write(0x0600, 5)
    if screen.Update(memory) {
        test.Fatalf("0x0600 is outside the screen")
    }
}

func TestTerminalInput(test *testing.T){
    var input terminalInput

    action, key := input.feed('w')
    if action != terminalKey || key != KeyUp {
        test.Fatalf("w should be up")
    }

    for _, value := range []byte{0x1b, '['} {
        action, _ = input.feed(value)
        if action != terminalNone {
            test.Fatalf("escape prefix should not produce a key")
        }
    }
    action, key = input.feed('D')
    if action != terminalKey || key != KeyLeft {
        test.Fatalf("ESC [ D should be left")
    }

    action, _ = input.feed(0x03)
    if action != terminalQuit {
        test.Fatalf("ctrl-c should quit")
    }

    action, _ = input.feed('p')
    if action != terminalPause {
        test.Fatalf("p should pause")
    }
}

func TestRenderTerminalFrame(test *testing.T){
    memory := m6502.NewMemory()
    memory.Write(ScreenAddress, 1)
    screen := MakeScreen()
    screen.Update(memory)

    var out bytes.Buffer
    renderTerminalFrame(&out, screen)

    lines := strings.Split(out.String(), "\r\n")
    /* 16 rows plus the empty string after the last newline */
    if len(lines) != ScreenHeight / 2 + 1 {
        test.Fatalf("expected %v lines but got %v", ScreenHeight / 2 + 1, len(lines))
    }

    if !strings.HasPrefix(lines[0], "\x1b[H\x1b[38;2;255;255;255m\x1b[48;2;0;0;0m") {
        test.Fatalf("first cell should be white over black: %q", lines[0][:40])
    }
}
