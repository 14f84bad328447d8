package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vegasq/flatcat/output"
	"github.com/vegasq/flatcat/tabulate"
)

func (a *app) newRecordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "records <input>",
		Short: "Print the flat records before tabulation",
		Long: `Print every flat record as one JSON object per line, keyed by full path
in the order the paths were first set. This is the intermediate form that
the table is built from.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runRecords,
	}
}

func (a *app) runRecords(cmd *cobra.Command, args []string) error {
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
	records := converter.Records(docs...)
	if len(records) == 0 {
		return tabulate.ErrEmptyInput
	}
	if cfg.Limit > 0 && len(records) > cfg.Limit {
		records = records[:cfg.Limit]
	}

	return writeOutput(cmd, cfg, func(w io.Writer) error {
		formatter := output.NewJSONFormatter(w)
		for _, rec := range records {
			keys := rec.Keys()
			row := make([]string, len(keys))
			for i, k := range keys {
				row[i], _ = rec.Get(k)
			}
			if err := formatter.Format(&tabulate.Table{Header: keys, Rows: [][]string{row}}); err != nil {
				return err
			}
		}
		return nil
	})
}
