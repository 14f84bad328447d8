package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/flatcat/tabulate"
)

// TableFormatter renders an aligned, bordered text table.
type TableFormatter struct {
	writer   io.Writer
	markdown bool
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// NewMarkdownFormatter creates a formatter that renders a GitHub flavored
// markdown table.
func NewMarkdownFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w, markdown: true}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders the table. Cells are never wrapped or reformatted.
func (f *TableFormatter) Format(t *tabulate.Table) error {
	table := tablewriter.NewWriter(f.writer)
	table.SetHeader(t.Header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)

	if f.markdown {
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
	}

	table.AppendBulk(t.Rows)
	table.Render()
	return nil
}
