package main

import (
    "log"
    "os"

    branch "github.com/kazzmir/m6502/test/all-test/branch"
    "github.com/kazzmir/m6502/test/all-test/programs"
    "github.com/kazzmir/m6502/test/all-test/properties"
    "github.com/kazzmir/m6502/test/all-test/scenarios"
    test_utils "github.com/kazzmir/m6502/test/all-test/utils"
)

func main(){
    log.SetFlags(log.Lshortfile | log.Lmicroseconds)

    debug := false
    for _, arg := range os.Args[1:] {
        if arg == "-debug" || arg == "--debug" {
            debug = true
        }
    }

    suites := []struct {
        name string
        run func(bool) (bool, error)
    }{
        {"scenarios", scenarios.Run},
        {"programs", programs.Run},
        {"properties", properties.Run},
        {"branch", branch.Run},
    }

    var summary test_utils.Summary
    for _, suite := range suites {
        ok, err := suite.run(debug)
        log.Print(summary.Add(suite.name, ok, err))
    }

    log.Print(summary.String())
    if !summary.Ok() {
        os.Exit(1)
    }
}
