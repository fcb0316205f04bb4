package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and
// TTY detection.
func shouldColorize(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
	}
	return false
}

// Console writes status lines for a filter run, colorizing warnings and
// errors when the destination is a terminal.
type Console struct {
	w    io.Writer
	mode ColorMode
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, mode ColorMode) *Console {
	return &Console{w: w, mode: mode}
}

// Infof writes a plain status line.
func (c *Console) Infof(format string, args ...interface{}) {
	fmt.Fprintf(c.w, format+"\n", args...)
}

// Warnf writes a yellow warning line.
func (c *Console) Warnf(format string, args ...interface{}) {
	c.writeColored(colorYellow, format, args...)
}

// Errorf writes a red error line.
func (c *Console) Errorf(format string, args ...interface{}) {
	c.writeColored(colorRed, format, args...)
}

// Verbosef writes a gray progress line.
func (c *Console) Verbosef(format string, args ...interface{}) {
	c.writeColored(colorGray, format, args...)
}

func (c *Console) writeColored(color, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if shouldColorize(c.mode, c.w) {
		fmt.Fprintln(c.w, color+line+colorReset)
		return
	}
	fmt.Fprintln(c.w, line)
}
