package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/flatcat/document"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatParquet Format = "parquet"
)

// ErrUnsupportedFormat is returned for unknown format names and for paths
// whose extension does not identify a format.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Stdin is the path that reads standard input.
const Stdin = "-"

// maxFiles bounds how many files a glob pattern may expand to.
const maxFiles = 1000

// ParseError reports a document that could not be decoded.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse %s document: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("failed to parse %s document %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatJSON, FormatYAML, FormatTOML, FormatParquet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks a format from the file extension, ignoring a trailing
// .gz or .zst.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		name = strings.TrimSuffix(name, ext)
	}
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("%w: cannot detect format of %q", ErrUnsupportedFormat, path)
	}
}

// Parse decodes data in the given format. Compressed data is inflated
// first. There is no file name to detect a format from, so FormatAuto means
// JSON here.
func Parse(data []byte, format Format) (*document.Node, error) {
	data, err := decompress(data)
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}

	var doc *document.Node
	switch format {
	case FormatJSON, FormatAuto:
		format = FormatJSON
		doc, err = parseJSON(data)
	case FormatYAML:
		doc, err = parseYAML(data)
	case FormatTOML:
		doc, err = parseTOML(data)
	case FormatParquet:
		doc, err = parseParquet(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, &ParseError{Format: format, Err: err}
	}
	return doc, nil
}

// ReadFile reads and parses one file. With FormatAuto the format comes from
// the extension; stdin defaults to JSON.
func ReadFile(path string, format Format) (*document.Node, error) {
	if format == FormatAuto || format == "" {
		if path == Stdin {
			format = FormatJSON
		} else {
			detected, err := DetectFormat(path)
			if err != nil {
				return nil, err
			}
			format = detected
		}
	}

	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data, format)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return doc, nil
}

func readAll(path string) ([]byte, error) {
	if path == Stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// ReadMultipleFiles reads every file matching a glob pattern, in sorted
// order, one document per file.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// A pattern without wildcards reads a single file.
func ReadMultipleFiles(pattern string, format Format) ([]*document.Node, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		doc, err := ReadFile(pattern, format)
		if err != nil {
			return nil, err
		}
		return []*document.Node{doc}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	docs := make([]*document.Node, 0, len(matches))
	for _, path := range matches {
		doc, err := ReadFile(path, format)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
