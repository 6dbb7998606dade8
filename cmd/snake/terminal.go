package main

import (
    "bufio"
    "context"
    "fmt"
    "io"
    "os"
    "strings"

    "golang.org/x/term"
)

/* translate raw terminal input into keys for the program. arrow keys arrive
 * as ESC [ A..D
 */
type terminalInput struct {
    escape int
}

const (
    terminalNone = iota
    terminalKey
    terminalPause
    terminalQuit
)

func (input *terminalInput) feed(value byte) (int, byte) {
    switch input.escape {
        case 1:
            if value == '[' {
                input.escape = 2
                return terminalNone, 0
            }
            input.escape = 0
        case 2:
            input.escape = 0
            switch value {
                case 'A': return terminalKey, KeyUp
                case 'B': return terminalKey, KeyDown
                case 'C': return terminalKey, KeyRight
                case 'D': return terminalKey, KeyLeft
            }
            return terminalNone, 0
    }

    switch value {
        case 0x1b:
            input.escape = 1
            return terminalNone, 0
        /* ctrl-c does not raise a signal in raw mode */
        case 0x03, 'q', 'Q':
            return terminalQuit, 0
        case 'p', 'P':
            return terminalPause, 0
        case 'w', 'W': return terminalKey, KeyUp
        case 's', 'S': return terminalKey, KeyDown
        case 'a', 'A': return terminalKey, KeyLeft
        case 'd', 'D': return terminalKey, KeyRight
    }

    return terminalNone, 0
}

/* two screen rows per text row using the upper half block, foreground is the
 * top pixel and background the bottom one
 */
func renderTerminalFrame(out io.Writer, screen Screen){
    var builder strings.Builder
    builder.WriteString("\x1b[H")
    for y := 0; y < ScreenHeight; y += 2 {
        for x := 0; x < ScreenWidth; x++ {
            top := screen.At(x, y)
            bottom := screen.At(x, y + 1)
            builder.WriteString(fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B))
        }
        builder.WriteString("\x1b[0m\r\n")
    }
    io.WriteString(out, builder.String())
}

/* Draw frames to the terminal until quit is done. Stdin is put in raw mode
 * so single key presses reach the program.
 */
func RunTerminal(host *Host, quit context.Context, cancel context.CancelFunc) error {
    fd := int(os.Stdin.Fd())
    if !term.IsTerminal(fd) {
        return fmt.Errorf("stdin is not a terminal")
    }

    width, height, err := term.GetSize(int(os.Stdout.Fd()))
    if err == nil && (width < ScreenWidth || height < ScreenHeight / 2 + 1) {
        return fmt.Errorf("terminal is %vx%v but needs at least %vx%v", width, height, ScreenWidth, ScreenHeight / 2 + 1)
    }

    oldState, err := term.MakeRaw(fd)
    if err != nil {
        return fmt.Errorf("could not set raw mode: %v", err)
    }
    defer term.Restore(fd, oldState)

    /* hide the cursor and clear the screen */
    fmt.Fprint(os.Stdout, "\x1b[?25l\x1b[2J")
    defer fmt.Fprint(os.Stdout, "\x1b[0m\x1b[?25h\r\n")

    go func(){
        reader := bufio.NewReader(os.Stdin)
        var input terminalInput
        for {
            value, err := reader.ReadByte()
            if err != nil {
                cancel()
                return
            }

            action, key := input.feed(value)
            switch action {
                case terminalKey: host.Press(key)
                case terminalPause: host.TogglePause()
                case terminalQuit:
                    cancel()
                    return
            }
        }
    }()

    output := bufio.NewWriter(os.Stdout)
    for {
        select {
            case <-quit.Done():
                return nil
            case <-host.Updates():
                renderTerminalFrame(output, host.Frame())
                output.Flush()
        }
    }
}
