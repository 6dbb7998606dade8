package utils

import (
    "fmt"
    "github.com/fatih/color"
)

func Failure(message string) string {
    red := color.New(color.FgRed).SprintFunc()
    return fmt.Sprintf("%v %v", message, red("failed"))
}

func Success(message string) string {
    green := color.New(color.FgGreen).SprintFunc()
    return fmt.Sprintf("%v %v", message, green("passed"))
}

func Errored(message string, err error) string {
    yellow := color.New(color.FgYellow).SprintFunc()
    return fmt.Sprintf("%v %v: %v", message, yellow("error"), err)
}

/* counts suite results for the final line */
type Summary struct {
    Passed int
    Failed int
}

/* record the outcome of a suite and return the line to print for it */
func (summary *Summary) Add(name string, ok bool, err error) string {
    if err != nil {
        summary.Failed += 1
        return Errored(name, err)
    }
    if !ok {
        summary.Failed += 1
        return Failure(name)
    }
    summary.Passed += 1
    return Success(name)
}

func (summary *Summary) Ok() bool {
    return summary.Failed == 0
}

func (summary *Summary) String() string {
    bold := color.New(color.Bold).SprintFunc()
    return fmt.Sprintf("%v %v passed, %v failed", bold("total"), summary.Passed, summary.Failed)
}
