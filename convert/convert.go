// Package convert runs the flatten and tabulate stages over parsed
// documents.
package convert

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vegasq/flatcat/document"
	"github.com/vegasq/flatcat/filter"
	"github.com/vegasq/flatcat/flatten"
	"github.com/vegasq/flatcat/tabulate"
)

// Options configures a Converter.
type Options struct {
	Emit      flatten.EmitRule
	FullPaths bool
	// Filter drops rows that do not match; nil keeps all.
	Filter filter.Expression
	// Limit keeps at most this many rows after filtering; zero keeps all.
	Limit  int
	Logger *zap.Logger
}

// Converter turns documents into a table.
type Converter struct {
	emit    flatten.EmitRule
	tabOpts []tabulate.Option
	filter  filter.Expression
	limit   int
	logger  *zap.Logger
}

// New creates a Converter.
func New(opts Options) *Converter {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var tabOpts []tabulate.Option
	if opts.FullPaths {
		tabOpts = append(tabOpts, tabulate.WithColumnNamer(tabulate.FullPath))
	}

	return &Converter{
		emit:    opts.Emit,
		tabOpts: tabOpts,
		filter:  opts.Filter,
		limit:   opts.Limit,
		logger:  logger,
	}
}

// Records flattens docs in order and concatenates their records.
func (c *Converter) Records(docs ...*document.Node) []flatten.Record {
	return c.records(c.logger, docs)
}

// records flattens docs, logging through logger so that the entries carry
// its fields.
func (c *Converter) records(logger *zap.Logger, docs []*document.Node) []flatten.Record {
	flattener := flatten.New(
		flatten.WithEmitRule(c.emit),
		flatten.WithLogger(logger.Named("flatten")),
	)

	var records []flatten.Record
	for i, doc := range docs {
		recs := flattener.Flatten(doc)
		logger.Debug("document flattened",
			zap.Int("document", i),
			zap.Int("records", len(recs)),
		)
		records = append(records, recs...)
	}
	return records
}

// Convert flattens and tabulates docs, then filters and limits the rows.
// It returns tabulate.ErrEmptyInput when the documents produce no records.
func (c *Converter) Convert(docs ...*document.Node) (*tabulate.Table, error) {
	logger := c.logger.With(zap.String("run_id", uuid.NewString()))

	records := c.records(logger, docs)
	table, err := tabulate.Tabulate(records, c.tabOpts...)
	if err != nil {
		logger.Warn("conversion produced no table",
			zap.Int("documents", len(docs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to tabulate %d documents: %w", len(docs), err)
	}

	tabulated := len(table.Rows)
	if err := filter.Apply(table, c.filter); err != nil {
		return nil, err
	}
	if dropped := tabulated - len(table.Rows); dropped > 0 {
		logger.Debug("rows filtered", zap.Int("dropped", dropped))
	}
	table.Limit(c.limit)

	logger.Info("conversion complete",
		zap.Int("documents", len(docs)),
		zap.Int("records", len(records)),
		zap.Int("columns", table.Width()),
		zap.Int("rows", len(table.Rows)),
		zap.Stringer("emit", c.emit),
	)
	return table, nil
}

// Columns reports which path keys feed each column of the table Convert
// would build.
func (c *Converter) Columns(docs ...*document.Node) ([]tabulate.ColumnInfo, error) {
	return tabulate.Columns(c.Records(docs...), c.tabOpts...)
}
