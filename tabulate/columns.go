package tabulate

import "github.com/vegasq/flatcat/flatten"

// ColumnInfo describes one header column.
type ColumnInfo struct {
	Name string `json:"name" yaml:"name"`
	// Paths lists the path keys merged into the column, ascending.
	Paths []string `json:"paths" yaml:"paths"`
	// Records counts the records that have a value for the column.
	Records int `json:"records" yaml:"records"`
}

// Columns reports, in header order, which path keys feed each column.
func Columns(records []flatten.Record, opts ...Option) ([]ColumnInfo, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	o := buildOptions(opts)

	keys := sortedPathKeys(records)
	header := deriveHeader(keys, o.namer)
	infos := make([]ColumnInfo, len(header))
	index := make(map[string]int, len(header))
	for i, col := range header {
		infos[i].Name = col
		index[col] = i
	}
	for _, k := range keys {
		i := index[o.namer(k)]
		infos[i].Paths = append(infos[i].Paths, k)
	}

	for _, rec := range records {
		counted := make(map[int]bool)
		for _, k := range rec.Keys() {
			i := index[o.namer(k)]
			if !counted[i] {
				counted[i] = true
				infos[i].Records++
			}
		}
	}

	return infos, nil
}
