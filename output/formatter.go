package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/flatcat/tabulate"
)

// ErrUnsupportedFormat is returned by New for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *tabulate.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Format names an output encoding.
type Format string

const (
	CSV       Format = "csv"
	CSVQuoted Format = "csv-quoted"
	JSON      Format = "json"
	JSONL     Format = "jsonl"
	YAML      Format = "yaml"
	Table     Format = "table"
	Markdown  Format = "markdown"
	Parquet   Format = "parquet"
)

var formats = []Format{CSV, CSVQuoted, JSON, JSONL, YAML, Table, Markdown, Parquet}

// Formats returns every supported format name.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Options tunes formatters that support it.
type Options struct {
	// Sanitize guards csv-quoted cells against spreadsheet formula injection.
	Sanitize bool
}

// New returns the formatter for f writing to w.
func New(f Format, w io.Writer, opts Options) (Formatter, error) {
	switch f {
	case CSV:
		return NewCSVFormatter(w), nil
	case CSVQuoted:
		q := NewQuotedCSVFormatter(w)
		q.Sanitize = opts.Sanitize
		return q, nil
	case JSON, JSONL:
		return NewJSONFormatter(w), nil
	case YAML:
		return NewYAMLFormatter(w), nil
	case Table:
		return NewTableFormatter(w), nil
	case Markdown:
		return NewMarkdownFormatter(w), nil
	case Parquet:
		return NewParquetFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
