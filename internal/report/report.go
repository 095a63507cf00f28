// Package report formats a coordinator.Result as the single output line of a run.
package report

import (
	"fmt"
	"io"

	"github.com/vk/burstpi/internal/coordinator"
)

// Style selects the output line format.
type Style int

const (
	// Verbose is a human-readable sentence.
	Verbose Style = iota
	// Compact is a fixed-width, whitespace-separated machine-parsable line.
	Compact
)

// Writer writes results to an underlying stream in one style.
type Writer struct {
	out   io.Writer
	style Style
}

// New creates a result Writer.
func New(out io.Writer, style Style) *Writer {
	return &Writer{out: out, style: style}
}

// Write emits exactly one newline-terminated line describing res. The
// reported sample count is the number of samples actually drawn.
func (w *Writer) Write(res *coordinator.Result) error {
	var err error
	switch w.style {
	case Compact:
		_, err = fmt.Fprintf(w.out, "%12.10f %10.3e %10.6f %d\n",
			res.Estimate, res.AbsError, res.Seconds(), res.EffectiveSamples)
	default:
		_, err = fmt.Fprintf(w.out, "Pi: %12.10f, error: %10.3e, seconds: %g, samples: %d\n",
			res.Estimate, res.AbsError, res.Seconds(), res.EffectiveSamples)
	}
	if err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
