// Package ui provides stderr-based UI output for phase0.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/phase0/internal/ansi"
	"github.com/papapumpkin/phase0/internal/boundary"
)

// Printer writes human-oriented status lines. Machine-readable output
// (field maps, classifications) goes to stdout and never through a Printer.
type Printer struct {
	out     io.Writer
	color   bool
	verbose bool
}

// New returns a Printer writing coloured output to stderr.
func New() *Printer {
	return &Printer{out: os.Stderr, color: true}
}

// NewWithWriter returns a Printer writing plain output to w.
func NewWithWriter(w io.Writer) *Printer {
	return &Printer{out: w}
}

// SetVerbose toggles Debug output.
func (p *Printer) SetVerbose(v bool) {
	p.verbose = v
}

func (p *Printer) paint(s string, codes ...string) string {
	if !p.color {
		return s
	}
	return ansi.Wrap(s, codes...)
}

// Debug prints msg only in verbose mode.
func (p *Printer) Debug(msg string) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.out, p.paint("debug: "+msg, ansi.Dim))
}

// Info prints a dimmed status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.paint(msg, ansi.Dim))
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.paint("✓ ", ansi.Green, ansi.Bold)+msg)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.paint("error: ", ansi.Red, ansi.Bold)+msg)
}

// Finding prints one boundary violation.
func (p *Printer) Finding(f boundary.Finding) {
	marker := p.paint("✗", ansi.Red, ansi.Bold)
	if f.Kind == boundary.FindingUnclassified {
		marker = p.paint("?", ansi.Yellow, ansi.Bold)
	}
	fmt.Fprintf(p.out, "  %s %s\n", marker, f.String())
}

// CheckSummary prints the totals of one evaluation run.
func (p *Printer) CheckSummary(edges int, findings []boundary.Finding) {
	if len(findings) == 0 {
		p.Success(fmt.Sprintf("%d import(s) checked, no boundary violations", edges))
		return
	}
	var denied, gaps int
	for _, f := range findings {
		if f.Kind == boundary.FindingUnclassified {
			gaps++
		} else {
			denied++
		}
	}
	fmt.Fprintf(p.out, "%s %d import(s) checked: %d denied, %d unclassified\n",
		p.paint("✗", ansi.Red, ansi.Bold), edges, denied, gaps)
}

// PolicySummary describes a compiled policy.
func (p *Printer) PolicySummary(source string, pol *boundary.Policy) {
	types := pol.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	p.Success(fmt.Sprintf("%s: %d module type(s) [%s], default %s",
		source, len(types), strings.Join(names, ", "), pol.Default()))
}
