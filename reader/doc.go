// Package reader turns raw input into document trees.
//
// It understands JSON, YAML, TOML and Parquet input, optionally compressed
// with gzip or zstd. Object members keep the order of the source: the order
// of the text for JSON, YAML and TOML, and the schema order for Parquet.
//
// # Basic Usage
//
// Reading a single file, with the format taken from its extension:
//
//	doc, err := reader.ReadFile("health-data.json", reader.FormatAuto)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Parsing bytes that are already in memory:
//
//	doc, err := reader.Parse(data, reader.FormatYAML)
//
// # Multi-file Operations
//
// Reading every file matching a glob pattern, one document per file:
//
//	docs, err := reader.ReadMultipleFiles("data/*.json", reader.FormatAuto)
//
// # Parquet
//
// A parquet file becomes an array with one object per row:
//
//	pr, err := reader.NewParquetReader(f, size)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := pr.ReadAll()
//
// # Errors
//
// Malformed input is reported as a *ParseError, which wraps the decoder's
// own error:
//
//	var perr *reader.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Path, perr.Format)
//	}
//
// The package uses github.com/parquet-go/parquet-go, gopkg.in/yaml.v3,
// github.com/BurntSushi/toml and github.com/klauspost/compress.
package reader
