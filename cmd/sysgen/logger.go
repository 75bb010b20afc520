package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Status symbols, modeled after signale.
var (
	symbolSuccess = color.New(color.FgGreen)
	symbolInfo    = color.New(color.FgBlue)
	symbolWarn    = color.New(color.FgYellow)
	symbolError   = color.New(color.FgRed)
	dim           = color.New(color.Faint)
)

// consoleLogger prints the CLI's status lines.
type consoleLogger struct {
	out   io.Writer
	err   io.Writer
	quiet bool
}

var console = &consoleLogger{out: os.Stdout, err: os.Stderr}

// Success prints a green check followed by the dimmed message.
func (c *consoleLogger) Success(format string, args ...any) {
	c.line(c.out, symbolSuccess.Sprint("✔"), dim.Sprintf(format, args...))
}

// Info prints a blue dot followed by the dimmed message.
func (c *consoleLogger) Info(format string, args ...any) {
	c.line(c.out, symbolInfo.Sprint("●"), dim.Sprintf(format, args...))
}

// Warn prints to stderr, in quiet mode too.
func (c *consoleLogger) Warn(format string, args ...any) {
	fmt.Fprintln(c.err, symbolWarn.Sprint("▲"), dim.Sprintf(format, args...))
}

// Wait announces a long-running state such as watching.
func (c *consoleLogger) Wait(format string, args ...any) {
	c.line(c.out, symbolInfo.Sprint("⋯"), fmt.Sprintf(format, args...))
}

// Error prints err in red. It is never silenced.
func (c *consoleLogger) Error(err error) {
	fmt.Fprintln(c.err, symbolError.Sprintf("× %v", err))
}

func (c *consoleLogger) line(w io.Writer, symbol, msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(w, symbol, msg)
}
