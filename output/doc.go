// Package output provides formatters that render a flattened table.
//
// Every formatter consumes a *tabulate.Table: a header and rows that are
// already aligned to it. Formatters never reorder, coerce or drop cells.
//
// # Supported Formats
//
//   - csv: header line plus one line per row, fields joined by "," with no
//     quoting (cells containing commas break the column count)
//   - csv-quoted: RFC 4180 CSV with optional formula-injection guarding
//   - json, jsonl: one JSON object per row, keys in header order
//   - yaml: a sequence of mappings, keys in header order
//   - table, markdown: aligned text tables
//   - parquet: one required string column per header column
//
// # Basic Usage
//
//	formatter, err := output.New(output.CSV, os.Stdout, output.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(table); err != nil {
//	    log.Fatal(err)
//	}
//
// # Compressed Output
//
// Wrap the destination before handing it to a formatter and close the
// wrapper afterwards:
//
//	zw, err := output.Compress(file, output.Gzip)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	formatter.SetOutput(zw)
//	if err := formatter.Format(table); err != nil {
//	    log.Fatal(err)
//	}
//	if err := zw.Close(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Formatter Interface
//
// Implement custom formatters by satisfying the Formatter interface:
//
//	type Formatter interface {
//	    Format(t *tabulate.Table) error
//	    SetOutput(w io.Writer)
//	}
package output
