// Package tabulate reconciles flat records with differing key sets into one
// header and a row matrix aligned to it.
//
// Columns are named by a ColumnNamer. The default, LastSegment, keeps only
// the text after the last "." of a path key, so "x.amount" and "y.amount"
// share the column "amount". The header lists each column name once, in
// the order it is first met while walking every distinct path key sorted
// ascending.
package tabulate

import (
	"errors"
	"sort"
	"strings"

	"github.com/vegasq/flatcat/flatten"
)

// ErrEmptyInput is returned when there are no records to tabulate.
var ErrEmptyInput = errors.New("no records to tabulate")

// ColumnNamer derives a column name from a path key.
type ColumnNamer func(pathKey string) string

// LastSegment names a column after the text following the last "." in the
// path key, or the whole key when it has no ".". Array suffixes on that
// segment are kept: "a.b[2]" becomes "b[2]". Unrelated fields that share a
// leaf name are merged into one column.
func LastSegment(pathKey string) string {
	if i := strings.LastIndexByte(pathKey, '.'); i >= 0 {
		return pathKey[i+1:]
	}
	return pathKey
}

// FullPath uses the path key itself as the column name. No two distinct
// keys are merged.
func FullPath(pathKey string) string { return pathKey }

// Table is a header plus rows aligned to it.
type Table struct {
	Header []string
	Rows   [][]string
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Header) }

// Limit keeps at most n rows. n <= 0 keeps everything.
func (t *Table) Limit(n int) {
	if n > 0 && len(t.Rows) > n {
		t.Rows = t.Rows[:n]
	}
}

// Option configures tabulation.
type Option func(*options)

type options struct {
	namer ColumnNamer
}

// WithColumnNamer replaces the LastSegment policy.
func WithColumnNamer(namer ColumnNamer) Option {
	return func(o *options) {
		if namer != nil {
			o.namer = namer
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{namer: LastSegment}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Tabulate derives the header from the keys observed in records and builds
// one row per record, in record order.
//
// When a record has several keys that map to the same column, the first of
// them in ascending key order supplies the cell. Columns a record has no key
// for are left empty.
func Tabulate(records []flatten.Record, opts ...Option) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	o := buildOptions(opts)

	header := deriveHeader(sortedPathKeys(records), o.namer)
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[col] = i
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, alignRow(rec, index, o.namer))
	}

	return &Table{Header: header, Rows: rows}, nil
}

// sortedPathKeys returns the distinct path keys of all records, ascending.
func sortedPathKeys(records []flatten.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range rec.Keys() {
			seen[k] = true
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deriveHeader(sortedKeys []string, namer ColumnNamer) []string {
	seen := make(map[string]bool)
	header := make([]string, 0, len(sortedKeys))
	for _, k := range sortedKeys {
		col := namer(k)
		if seen[col] {
			continue
		}
		seen[col] = true
		header = append(header, col)
	}
	return header
}

func alignRow(rec flatten.Record, index map[string]int, namer ColumnNamer) []string {
	row := make([]string, len(index))
	filled := make([]bool, len(index))
	for _, k := range rec.SortedKeys() {
		i, ok := index[namer(k)]
		if !ok || filled[i] {
			continue
		}
		v, _ := rec.Get(k)
		row[i] = v
		filled[i] = true
	}
	return row
}
