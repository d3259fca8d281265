package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// terminalConsole renders engine output on stdout, notices plain and
// errors in red.
type terminalConsole struct {
	errColor *color.Color
}

func newConsole(noColor bool) *terminalConsole {
	if noColor {
		color.NoColor = true
	}
	return &terminalConsole{errColor: color.New(color.FgRed)}
}

func (c *terminalConsole) Notice(msg string) {
	fmt.Println(msg)
}

func (c *terminalConsole) Error(msg string) {
	c.errColor.Fprintln(os.Stdout, msg)
}
