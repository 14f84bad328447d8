package output

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/flatcat/tabulate"
)

// ParquetFormatter writes the table as a parquet file with one required
// string column per header column.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes every row. Parquet orders group fields by name, so each
// header column is placed by looking up its leaf column index.
func (p *ParquetFormatter) Format(t *tabulate.Table) error {
	group := make(parquet.Group, len(t.Header))
	for _, col := range t.Header {
		group[col] = parquet.String()
	}
	schema := parquet.NewSchema("flatcat", group)

	leaf := make([]int, len(t.Header))
	for i, col := range t.Header {
		lc, ok := schema.Lookup(col)
		if !ok {
			return fmt.Errorf("column %q missing from parquet schema", col)
		}
		leaf[i] = lc.ColumnIndex
	}

	writer := parquet.NewWriter(p.writer, schema)
	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, cells := range t.Rows {
		row := make(parquet.Row, len(t.Header))
		for i, cell := range cells {
			row[leaf[i]] = parquet.ValueOf(cell).Level(0, 0, leaf[i])
		}
		rows = append(rows, row)
	}

	if _, err := writer.WriteRows(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
