package outputters

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/hackerhouse/hhboard/internal/config"
	"github.com/hackerhouse/hhboard/internal/output"
)

// Outputter handles output formatting
type Outputter struct {
	config *config.Config
	out    io.Writer
}

// NewOutputter creates a new Outputter writing to out, or to stdout when
// out is nil.
func NewOutputter(config *config.Config, out io.Writer) *Outputter {
	if out == nil {
		out = os.Stdout
	}
	return &Outputter{
		config: config,
		out:    out,
	}
}

// Formatter returns the formatter for the configured format
func (o *Outputter) Formatter() (output.Formatter, error) {
	return o.FormatterFor(o.config.Format)
}

// FormatterFor returns the formatter for format
func (o *Outputter) FormatterFor(format string) (output.Formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(o.out, o.config.Output, o.config.Quiet, o.config.Verbose, isTerminal(o.out)), nil
	case "json":
		return output.NewJSONFormatter(o.out, true, o.config.Output), nil
	case "markdown":
		return output.NewMarkdownFormatter(o.out, o.config.Verbose, o.config.Output), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
