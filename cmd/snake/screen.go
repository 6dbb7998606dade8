package main

import (
    "image/color"

    m6502 "github.com/kazzmir/m6502/lib"
)

const ScreenWidth = 32
const ScreenHeight = 32

/* one byte per pixel, row major */
const ScreenAddress uint16 = 0x0200

/* the demo palette. anything past 14 shows up as cyan */
func ByteColor(value byte) color.RGBA {
    switch value {
        case 0: return color.RGBA{R: 0, G: 0, B: 0, A: 255}
        case 1: return color.RGBA{R: 255, G: 255, B: 255, A: 255}
        case 2, 9: return color.RGBA{R: 128, G: 128, B: 128, A: 255}
        case 3, 10: return color.RGBA{R: 255, G: 0, B: 0, A: 255}
        case 4, 11: return color.RGBA{R: 0, G: 255, B: 0, A: 255}
        case 5, 12: return color.RGBA{R: 0, G: 0, B: 255, A: 255}
        case 6, 13: return color.RGBA{R: 255, G: 0, B: 255, A: 255}
        case 7, 14: return color.RGBA{R: 255, G: 255, B: 0, A: 255}
    }

    return color.RGBA{R: 0, G: 255, B: 255, A: 255}
}

/* RGBA pixels of the last frame read out of memory */
type Screen struct {
    Pixels []byte
}

func MakeScreen() Screen {
    return Screen{
        Pixels: make([]byte, ScreenWidth * ScreenHeight * 4),
    }
}

/* Refresh the pixels from the screen area of the bus. Returns true if any
 * pixel changed color.
 */
func (screen *Screen) Update(bus m6502.Bus) bool {
    changed := false
    for i := 0; i < ScreenWidth * ScreenHeight; i++ {
        rgba := ByteColor(bus.Read(ScreenAddress + uint16(i)))
        pixel := screen.Pixels[i*4:i*4+4]
        if pixel[0] != rgba.R || pixel[1] != rgba.G || pixel[2] != rgba.B || pixel[3] != rgba.A {
            pixel[0] = rgba.R
            pixel[1] = rgba.G
            pixel[2] = rgba.B
            pixel[3] = rgba.A
            changed = true
        }
    }

    return changed
}

func (screen *Screen) At(x int, y int) color.RGBA {
    offset := (y * ScreenWidth + x) * 4
    return color.RGBA{
        R: screen.Pixels[offset],
        G: screen.Pixels[offset+1],
        B: screen.Pixels[offset+2],
        A: screen.Pixels[offset+3],
    }
}

func (screen *Screen) Copy() Screen {
    pixels := make([]byte, len(screen.Pixels))
    copy(pixels, screen.Pixels)
    return Screen{Pixels: pixels}
}
