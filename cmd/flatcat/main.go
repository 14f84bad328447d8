// Command flatcat flattens nested JSON, YAML, TOML or Parquet documents into
// a single table and writes it as CSV or another tabular format.
package main

import (
	"os"

	"github.com/fatih/color"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	os.Exit(Execute(os.Args[1:]))
}

// Execute runs flatcat with args and returns the process exit status.
func Execute(args []string) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
