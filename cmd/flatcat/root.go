package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vegasq/flatcat/convert"
	"github.com/vegasq/flatcat/document"
	"github.com/vegasq/flatcat/flatten"
	"github.com/vegasq/flatcat/internal/config"
	"github.com/vegasq/flatcat/internal/logging"
	"github.com/vegasq/flatcat/output"
	"github.com/vegasq/flatcat/reader"
)

// app carries state shared by the root command and its subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "flatcat [flags] <input>",
		Short: "Flatten nested documents into a CSV table",
		Long: `flatcat walks a nested JSON, YAML, TOML or Parquet document, turns every
level of nesting into a flat record of path keys, and writes the records as
one table whose columns are named after the last segment of each path.

Input may be a file, a glob pattern (each match is a separate document) or
"-" for stdin. Gzip and zstd compressed input is detected automatically.`,
		Example: `  flatcat data.json
  flatcat -f table data.yaml
  flatcat --emit top -o out.csv.gz --compress gzip data.json
  flatcat -w "amount > 1000" data.json
  flatcat columns data.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runConvert,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ./flatcat.yaml or ./flatcat.toml)")
	flags.StringP("format", "f", string(output.CSV), "output format: "+formatList())
	flags.String("input-format", string(reader.FormatAuto), "input format: auto, json, yaml, toml, parquet")
	flags.StringP("output", "o", "", "output file (default stdout)")
	flags.String("compress", string(output.NoCompression), "output compression: none, gzip, zstd")
	flags.String("emit", flatten.EmitEveryLevel.String(), "record emission: levels (every nesting level) or top (whole document once)")
	flags.Bool("full-paths", false, "name columns by full path key instead of last segment")
	flags.Bool("sanitize", false, "guard csv-quoted cells against formula injection")
	flags.StringP("where", "w", "", "keep only rows matching a filter (e.g. \"amount > 1000 and region = 'North'\")")
	flags.Int("limit", 0, "limit number of rows (0 = unlimited)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.String("log-format", string(logging.HumanFormat), "log format: human, json")

	for key, name := range map[string]string{
		"format":       "format",
		"input_format": "input-format",
		"output":       "output",
		"compress":     "compress",
		"emit":         "emit",
		"full_paths":   "full-paths",
		"sanitize":     "sanitize",
		"where":        "where",
		"limit":        "limit",
		"log.level":    "log-level",
		"log.format":   "log-format",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	rootCmd.AddCommand(a.newColumnsCommand())
	rootCmd.AddCommand(a.newRecordsCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func formatList() string {
	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// setup loads the configuration and builds the logger for one run.
func (a *app) setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(logging.Config{
		Format: logging.Format(cfg.Log.Format),
		Level:  cfg.Log.Level,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newConverter(cfg *config.Config, logger *zap.Logger) (*convert.Converter, error) {
	expr, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	return convert.New(convert.Options{
		Emit:      cfg.EmitRule(),
		FullPaths: cfg.FullPaths,
		Filter:    expr,
		Limit:     cfg.Limit,
		Logger:    logger,
	}), nil
}

// readInputs parses the input argument, which may be a glob pattern.
func readInputs(input string, cfg *config.Config, logger *zap.Logger) ([]*document.Node, error) {
	format, err := reader.ParseFormat(cfg.InputFormat)
	if err != nil {
		return nil, err
	}

	docs, err := reader.ReadMultipleFiles(input, format)
	if err != nil {
		return nil, err
	}
	logger.Debug("input read",
		zap.String("input", input),
		zap.String("input_format", string(format)),
		zap.Int("documents", len(docs)),
	)
	return docs, nil
}

func (a *app) runConvert(cmd *cobra.Command, args []string) error {
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
	table, err := converter.Convert(docs...)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	return writeOutput(cmd, cfg, func(w io.Writer) error {
		formatter, err := output.New(format, w, output.Options{Sanitize: cfg.Sanitize})
		if err != nil {
			return err
		}
		return formatter.Format(table)
	})
}

// writeOutput opens the configured sink, applies compression and hands the
// writer to write. The sink is only created once there is something to
// write.
func writeOutput(cmd *cobra.Command, cfg *config.Config, write func(w io.Writer) error) (err error) {
	var sink io.Writer = cmd.OutOrStdout()
	if cfg.Output != "" && cfg.Output != "-" {
		f, ferr := os.Create(cfg.Output)
		if ferr != nil {
			return fmt.Errorf("failed to create output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		sink = f
	}

	compression, err := output.ParseCompression(cfg.Compress)
	if err != nil {
		return err
	}
	w, err := output.Compress(sink, compression)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish output: %w", err)
	}
	return nil
}
