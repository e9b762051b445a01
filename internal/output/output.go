// Package output prints user-facing status lines.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

var (
	blue  = color.New(color.FgBlue, color.OpBold)
	green = color.New(color.FgGreen, color.OpBold)
	red   = color.New(color.FgRed, color.OpBold)
)

// Printer writes status lines. Colour is a property of the Printer value,
// not of the process.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
}

// New returns a Printer on stdout and stderr.
func New(noColor bool) *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr, NoColor: noColor}
}

// Info prints a progress line.
func (p *Printer) Info(format string, args ...any) {
	p.print(false, blue, format, args...)
}

// Success prints a completion line.
func (p *Printer) Success(format string, args ...any) {
	p.print(false, green, format, args...)
}

// Error prints a failure line on the error stream.
func (p *Printer) Error(format string, args ...any) {
	p.print(true, red, format, args...)
}

func (p *Printer) print(toErr bool, style color.Style, format string, args ...any) {
	if p == nil {
		return
	}
	w := p.Out
	if toErr {
		w = p.Err
	}
	if w == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !p.NoColor {
		msg = style.Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}
