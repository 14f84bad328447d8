package output

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/flatcat/tabulate"
)

// CSVFormatter writes a header line and one line per row with fields joined
// by commas. Cells are written verbatim: a cell containing a comma, quote or
// newline produces a line with the wrong field count. Use
// QuotedCSVFormatter when cells may contain those characters.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as unquoted CSV
func (c *CSVFormatter) Format(t *tabulate.Table) error {
	bw := bufio.NewWriter(c.writer)

	if err := writeJoined(bw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeJoined(bw, row); err != nil {
			return err
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

func writeJoined(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, ",")); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// QuotedCSVFormatter writes RFC 4180 CSV, quoting cells where needed.
type QuotedCSVFormatter struct {
	writer io.Writer
	// Sanitize prefixes cells that a spreadsheet would run as a formula.
	Sanitize bool
}

// NewQuotedCSVFormatter creates a new quoting CSV formatter
func NewQuotedCSVFormatter(w io.Writer) *QuotedCSVFormatter {
	return &QuotedCSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *QuotedCSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as quoted CSV
func (c *QuotedCSVFormatter) Format(t *tabulate.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := c.writeRecord(csvWriter, t.Header); err != nil {
		return err
	}

	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i, cell := range row {
			if c.Sanitize {
				cell = sanitizeCell(cell)
			}
			record[i] = cell
		}
		if err := c.writeRecord(csvWriter, record[:len(row)]); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// writeRecord writes one record. encoding/csv writes a lone empty field as
// a blank line, which readers skip, so that record is written as "" here.
func (c *QuotedCSVFormatter) writeRecord(csvWriter *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return csvWriter.Write(record)
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	_, err := io.WriteString(c.writer, "\"\"\n")
	return err
}

// sanitizeCell guards against CSV injection by prefixing characters that
// could trigger formula execution in spreadsheet applications.
func sanitizeCell(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
