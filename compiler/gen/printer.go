package gen

import (
	"fmt"
	"strings"
)

// Printer writes indented source lines. Providers that print their
// language by hand share it.
type Printer struct {
	b      strings.Builder
	indent string
	depth  int
}

// NewPrinter returns a printer using the given indentation unit.
func NewPrinter(indent string) *Printer {
	return &Printer{indent: indent}
}

// Line writes one indented line. An empty format writes a blank line
// without indentation.
func (p *Printer) Line(format string, args ...any) {
	if format == "" {
		p.b.WriteByte('\n')
		return
	}
	p.b.WriteString(strings.Repeat(p.indent, p.depth))
	if len(args) == 0 {
		p.b.WriteString(format)
	} else {
		fmt.Fprintf(&p.b, format, args...)
	}
	p.b.WriteByte('\n')
}

// In increases the indentation.
func (p *Printer) In() { p.depth++ }

// Out decreases the indentation.
func (p *Printer) Out() {
	if p.depth > 0 {
		p.depth--
	}
}

// String returns the text written so far.
func (p *Printer) String() string { return p.b.String() }

// Grouped returns the members of d in the conventional declaration order:
// fields, constructors, properties, then methods. Order within each group
// is kept.
func Grouped(d *TypeDecl) []Member {
	ms := make([]Member, 0, len(d.Members))
	for _, f := range d.Fields() {
		ms = append(ms, f)
	}
	for _, c := range d.Constructors() {
		ms = append(ms, c)
	}
	for _, p := range d.Properties() {
		ms = append(ms, p)
	}
	for _, m := range d.Methods() {
		ms = append(ms, m)
	}
	return ms
}
