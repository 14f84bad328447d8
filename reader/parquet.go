package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/flatcat/document"
)

// ParquetReader reads parquet rows as document objects.
type ParquetReader struct {
	pqFile *parquet.File
}

// NewParquetReader opens parquet data held in r.
//
// Example:
//
//	f, _ := os.Open("data.parquet")
//	st, _ := f.Stat()
//	pr, err := NewParquetReader(f, st.Size())
func NewParquetReader(r io.ReaderAt, size int64) (*ParquetReader, error) {
	pqFile, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	return &ParquetReader{pqFile: pqFile}, nil
}

// Schema returns the parquet file schema.
func (r *ParquetReader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// ReadAll reads every row into memory and returns them as an array of
// objects whose members follow the schema's field order.
func (r *ParquetReader) ReadAll() (*document.Node, error) {
	fields := r.Schema().Fields()

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	var rows []*document.Node
	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows), err)
		}

		node, err := groupNode(row, fields)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(rows), err)
		}
		rows = append(rows, node)
	}

	return document.NewArray(rows...), nil
}

func parseParquet(data []byte) (*document.Node, error) {
	r, err := NewParquetReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return r.ReadAll()
}
