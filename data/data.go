package data

import (
    "bufio"
    "embed"
    "fmt"
    "io"
    "io/fs"
    "path"
    "sort"
    "strconv"
    "strings"
)

/* sample programs stored as hex text. every program is meant to be loaded at
 * 0x0600
 */
//go:embed programs/*
var ProgramsFS embed.FS

func OpenFile(name string) (fs.File, error) {
    return ProgramsFS.Open("programs/" + name)
}

/* Parse whitespace separated hex bytes. Anything after a ';' on a line is a
 * comment.
 */
func ParseHex(reader io.Reader) ([]byte, error) {
    var out []byte
    scanner := bufio.NewScanner(reader)
    line := 0
    for scanner.Scan() {
        line += 1
        text := scanner.Text()
        comment := strings.IndexByte(text, ';')
        if comment != -1 {
            text = text[:comment]
        }

        for _, field := range strings.Fields(text) {
            value, err := strconv.ParseUint(field, 16, 8)
            if err != nil {
                return nil, fmt.Errorf("line %v: invalid byte '%v': %v", line, field, err)
            }
            out = append(out, byte(value))
        }
    }

    return out, scanner.Err()
}

/* the bytes of a builtin program, name is given without the .hex extension */
func LoadProgram(name string) ([]byte, error) {
    file, err := OpenFile(name + ".hex")
    if err != nil {
        return nil, fmt.Errorf("no builtin program named '%v'", name)
    }
    defer file.Close()

    return ParseHex(file)
}

func ListPrograms() ([]string, error) {
    entries, err := fs.ReadDir(ProgramsFS, "programs")
    if err != nil {
        return nil, err
    }

    var out []string
    for _, entry := range entries {
        if entry.IsDir() || path.Ext(entry.Name()) != ".hex" {
            continue
        }
        out = append(out, strings.TrimSuffix(entry.Name(), ".hex"))
    }

    sort.Strings(out)
    return out, nil
}
