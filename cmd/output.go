package cmd

import (
	"fmt"
	"github.com/cottand/dnf/internal/metrics"
	"github.com/cottand/dnf/parser"
	"github.com/fatih/color"
	"io"
)

var (
	typeColor  = color.New(color.FgCyan)
	classColor = color.New(color.Faint)
	errorColor = color.New(color.FgRed)
)

// printer writes results to out and problems to errOut
type printer struct {
	out    io.Writer
	errOut io.Writer
	// classes makes class declarations show up in the output too
	classes bool
}

func (p printer) results(results []parser.Result) {
	for _, result := range results {
		if result.Class != nil {
			if p.classes {
				_, _ = classColor.Fprintln(p.out, result)
			}
			continue
		}
		_, _ = typeColor.Fprintln(p.out, result)
	}
}

func (p printer) errors(errs *parser.Errors) {
	for _, err := range errs.Errors() {
		_, _ = errorColor.Fprintln(p.errOut, err)
	}
}

func (p printer) stats(m *metrics.Normalization) error {
	samples, err := m.Snapshot()
	if err != nil {
		return err
	}
	for _, sample := range samples {
		_, _ = fmt.Fprintf(p.errOut, "%s %g\n", sample.Name, sample.Value)
	}
	return nil
}
