package console

import (
	"fmt"
	"io"
)

// lineEnder is implemented by ports that need a specific line terminator.
type lineEnder interface {
	LineEnding() string
}

// Printer writes whole lines to a console.
type Printer struct {
	w   io.Writer
	eol string
}

// NewPrinter terminates lines with "\n" unless w asks for something else.
func NewPrinter(w io.Writer) *Printer {
	eol := "\n"
	if le, ok := w.(lineEnder); ok {
		eol = le.LineEnding()
	}
	return &Printer{w: w, eol: eol}
}

// Println formats its operands like fmt.Sprint and ends the line.
func (p *Printer) Println(a ...any) error {
	_, err := io.WriteString(p.w, fmt.Sprint(a...)+p.eol)
	return err
}
