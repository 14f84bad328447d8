package main

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/flatcat/output"
	"github.com/vegasq/flatcat/tabulate"
)

func (a *app) newColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <input>",
		Short: "Show which path keys feed each column",
		Long: `Print one line per output column: its name, the path keys merged into it,
and how many records carry a value for it. Use it to spot columns that
collapse several paths sharing a last segment.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runColumns,
	}
}

func (a *app) runColumns(cmd *cobra.Command, args []string) error {
	cfg, logger, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	docs, err := readInputs(args[0], cfg, logger)
	if err != nil {
		return err
	}

	converter, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}
	infos, err := converter.Columns(docs...)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	table := columnsTable(infos)
	return writeOutput(cmd, cfg, func(w io.Writer) error {
		formatter, err := output.New(format, w, output.Options{Sanitize: cfg.Sanitize})
		if err != nil {
			return err
		}
		return formatter.Format(table)
	})
}

// columnsTable lays column descriptions out as a table so every output
// format can render them.
func columnsTable(infos []tabulate.ColumnInfo) *tabulate.Table {
	t := &tabulate.Table{
		Header: []string{"column", "paths", "records"},
		Rows:   make([][]string, len(infos)),
	}
	for i, info := range infos {
		t.Rows[i] = []string{info.Name, strings.Join(info.Paths, " "), strconv.Itoa(info.Records)}
	}
	return t
}
