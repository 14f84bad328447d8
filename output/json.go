package output

import (
	"bufio"
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/flatcat/tabulate"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row, with keys in header order. Every
// value is a string, exactly as it appears in the table.
func (j *JSONFormatter) Format(t *tabulate.Table) error {
	keys := make([][]byte, len(t.Header))
	for i, col := range t.Header {
		b, err := json.Marshal(col)
		if err != nil {
			return err
		}
		keys[i] = b
	}

	bw := bufio.NewWriter(j.writer)
	for _, row := range t.Rows {
		bw.WriteByte('{')
		for i, cell := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.Write(keys[i])
			bw.WriteByte(':')
			v, err := json.Marshal(cell)
			if err != nil {
				return err
			}
			bw.Write(v)
		}
		bw.WriteString("}\n")
	}
	return bw.Flush()
}
