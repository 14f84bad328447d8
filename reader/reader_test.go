package reader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/flatcat/document"
)

func memberNames(n *document.Node) []string {
	names := make([]string, 0, n.Len())
	for _, m := range n.Members() {
		names = append(names, m.Name)
	}
	return names
}

func lookup(t *testing.T, n *document.Node, path ...string) *document.Node {
	t.Helper()
	for _, p := range path {
		next, ok := n.Get(p)
		require.Truef(t, ok, "missing member %q", p)
		n = next
	}
	return n
}

func TestParseJSON_KeepsMemberOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"zeta":1,"alpha":{"y":true,"b":null},"mid":[1,"two"]}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, memberNames(doc))
	assert.Equal(t, []string{"y", "b"}, memberNames(lookup(t, doc, "alpha")))
	assert.Equal(t, document.Null, lookup(t, doc, "alpha", "b").Kind())
	assert.Equal(t, "true", lookup(t, doc, "alpha", "y").Render())

	mid := lookup(t, doc, "mid")
	require.Equal(t, document.Array, mid.Kind())
	require.Len(t, mid.Elements(), 2)
	assert.Equal(t, "two", mid.Elements()[1].Render())
}

func TestParseJSON_NumberLiterals(t *testing.T) {
	doc, err := Parse([]byte(`{"a":1.50,"b":1e3,"c":-0,"d":12345678901234567890}`), FormatJSON)
	require.NoError(t, err)

	for name, want := range map[string]string{"a": "1.50", "b": "1e3", "c": "-0", "d": "12345678901234567890"} {
		n := lookup(t, doc, name)
		assert.Equal(t, document.Number, n.Kind())
		assert.Equal(t, want, n.Render())
	}
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated object", `{"a":1`},
		{"missing value", `{"a":}`},
		{"trailing value", `{} {}`},
		{"trailing garbage", `{"a":1} x`},
		{"bad literal", `{"a":tru}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), FormatJSON)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
			assert.Equal(t, FormatJSON, perr.Format)
			assert.NotNil(t, perr.Unwrap())
		})
	}
}

func TestParseJSON_TopLevelScalar(t *testing.T) {
	doc, err := Parse([]byte(` "x" `), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, document.String, doc.Kind())
}

func TestParseYAML(t *testing.T) {
	input := `
region: North Verdania
warehouse:
  name: Arctic Depot
  coord: "(51.5074, -0.1278)"
supply:
  - amount: 3000
    date: 2024-01-01
    verified: yes
    ratio: 0.5
    note: ~
  - amount: 1500
    active: True
base: &base
  kind: cold
copy: *base
`
	doc, err := Parse([]byte(input), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "warehouse", "supply", "base", "copy"}, memberNames(doc))
	assert.Equal(t, []string{"name", "coord"}, memberNames(lookup(t, doc, "warehouse")))

	supply := lookup(t, doc, "supply")
	require.Len(t, supply.Elements(), 2)
	first := supply.Elements()[0]
	assert.Equal(t, "3000", lookup(t, first, "amount").Render())
	assert.Equal(t, document.Number, lookup(t, first, "amount").Kind())
	assert.Equal(t, "2024-01-01", lookup(t, first, "date").Render())
	// YAML 1.2 does not treat "yes" as a boolean.
	assert.Equal(t, document.String, lookup(t, first, "verified").Kind())
	assert.Equal(t, "0.5", lookup(t, first, "ratio").Render())
	assert.Equal(t, document.Null, lookup(t, first, "note").Kind())
	assert.Equal(t, "true", lookup(t, supply.Elements()[1], "active").Render())

	assert.Equal(t, "cold", lookup(t, doc, "copy", "kind").Render())
}

func TestParseYAML_EmptyIsNull(t *testing.T) {
	doc, err := Parse([]byte(""), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, document.Null, doc.Kind())
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := Parse([]byte("a: [1, 2"), FormatYAML)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FormatYAML, perr.Format)
}

func TestParseYAML_ExcessiveAliasing(t *testing.T) {
	// Seven levels of ten references each expand to ten million scalars.
	var b strings.Builder
	b.WriteString("a: &a [x, x, x, x, x, x, x, x, x, x]\n")
	prev := "a"
	for _, name := range []string{"b", "c", "d", "e", "f", "g"} {
		fmt.Fprintf(&b, "%s: &%s [", name, name)
		for i := 0; i < 10; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("*" + prev)
		}
		b.WriteString("]\n")
		prev = name
	}

	_, err := Parse([]byte(b.String()), FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, errExcessiveAliasing)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseYAML_ModerateAliasing(t *testing.T) {
	var b strings.Builder
	b.WriteString("base: &base {kind: cold, temp: 4}\nitems:\n")
	for i := 0; i < 500; i++ {
		b.WriteString("  - *base\n")
	}

	doc, err := Parse([]byte(b.String()), FormatYAML)
	require.NoError(t, err)
	assert.Len(t, lookup(t, doc, "items").Elements(), 500)
}

func TestParseTOML_KeepsKeyOrder(t *testing.T) {
	input := `
title = "supply"
count = 3

[warehouse]
name = "Arctic Depot"
coord = "(51.5074, -0.1278)"

[[supply]]
date = 2024-01-01
amount = 3000

[[supply]]
date = 2024-02-01
amount = 1500
`
	doc, err := Parse([]byte(input), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "count", "warehouse", "supply"}, memberNames(doc))
	assert.Equal(t, []string{"name", "coord"}, memberNames(lookup(t, doc, "warehouse")))
	assert.Equal(t, "3", lookup(t, doc, "count").Render())

	supply := lookup(t, doc, "supply")
	require.Equal(t, document.Array, supply.Kind())
	require.Len(t, supply.Elements(), 2)
	assert.Equal(t, []string{"date", "amount"}, memberNames(supply.Elements()[0]))
	assert.Equal(t, "1500", lookup(t, supply.Elements()[1], "amount").Render())
}

func TestParseTOML_Malformed(t *testing.T) {
	_, err := Parse([]byte("a = "), FormatTOML)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, FormatTOML, perr.Format)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_Compressed(t *testing.T) {
	raw := []byte(`{"b":1,"a":2}`)

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	zst := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())

	for name, data := range map[string][]byte{"gzip": gz.Bytes(), "zstd": zst} {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse(data, FormatJSON)
			require.NoError(t, err)
			assert.Equal(t, []string{"b", "a"}, memberNames(doc))
		})
	}
}

func TestParse_CorruptCompressedStream(t *testing.T) {
	_, err := Parse([]byte{0x1f, 0x8b, 0x00, 0x01}, FormatJSON)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"parquet", FormatParquet, false},
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data/health-data.json", FormatJSON, false},
		{"a.JSON.gz", FormatJSON, false},
		{"a.yaml", FormatYAML, false},
		{"a.yml.zst", FormatYAML, false},
		{"conf.toml", FormatTOML, false},
		{"rows.parquet", FormatParquet, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: x\n"), 0o644))

	doc, err := ReadFile(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, memberNames(doc))
}

func TestReadFile_ParseErrorCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":`), 0o644))

	_, err := ReadFile(path, FormatAuto)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, path, perr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"), FormatAuto)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var perr *ParseError
	assert.False(t, errors.As(err, &perr), "read failures are not parse errors")
}

func TestReadFile_ExplicitFormatOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":"v"}`), 0o644))

	_, err := ReadFile(path, FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	doc, err := ReadFile(path, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "v", lookup(t, doc, "k").Render())
}

func TestReadMultipleFiles_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	docs, err := ReadMultipleFiles(path, FormatAuto)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestReadMultipleFiles_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"file1.json": `{"id":1}`,
		"file2.json": `{"id":2}`,
		"file3.json": `{"id":3}`,
		"other.yaml": `id: 4`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	docs, err := ReadMultipleFiles(filepath.Join(dir, "file*.json"), FormatAuto)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, []string{"1", "2", "3"}[i], lookup(t, doc, "id").Render())
	}
}

func TestReadMultipleFiles_NoMatches(t *testing.T) {
	_, err := ReadMultipleFiles(filepath.Join(t.TempDir(), "*.json"), FormatAuto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match pattern")
}

func TestReadMultipleFiles_OneBadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"a":1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"a":`), 0o644))

	_, err := ReadMultipleFiles(filepath.Join(dir, "*.json"), FormatAuto)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, err.Error(), "b.json")
}
