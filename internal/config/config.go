// Package config loads flatcat settings from defaults, an optional config
// file, FLATCAT_* environment variables and command-line flags, in rising
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vegasq/flatcat/filter"
	"github.com/vegasq/flatcat/flatten"
	"github.com/vegasq/flatcat/internal/logging"
	"github.com/vegasq/flatcat/output"
	"github.com/vegasq/flatcat/reader"
)

// EnvPrefix prefixes every environment variable flatcat reads.
const EnvPrefix = "FLATCAT"

// Config represents the flatcat configuration
type Config struct {
	Format      string    `mapstructure:"format"`
	InputFormat string    `mapstructure:"input_format"`
	Output      string    `mapstructure:"output"`
	Compress    string    `mapstructure:"compress"`
	Emit        string    `mapstructure:"emit"`
	FullPaths   bool      `mapstructure:"full_paths"`
	Sanitize    bool      `mapstructure:"sanitize"`
	Where       string    `mapstructure:"where"`
	Limit       int       `mapstructure:"limit"`
	Log         LogConfig `mapstructure:"log"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("format", string(output.CSV))
	v.SetDefault("input_format", string(reader.FormatAuto))
	v.SetDefault("output", "")
	v.SetDefault("compress", string(output.NoCompression))
	v.SetDefault("emit", flatten.EmitEveryLevel.String())
	v.SetDefault("full_paths", false)
	v.SetDefault("sanitize", false)
	v.SetDefault("where", "")
	v.SetDefault("limit", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", string(logging.HumanFormat))
}

// Load reads the configuration held by v. When file is set it must exist;
// otherwise flatcat.yaml or flatcat.toml in the working directory is used
// if present.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("flatcat")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); file != "" || !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if _, err := reader.ParseFormat(c.InputFormat); err != nil {
		return fmt.Errorf("input_format: %w", err)
	}
	if _, err := output.ParseCompression(c.Compress); err != nil {
		return fmt.Errorf("compress: %w", err)
	}
	if _, ok := flatten.ParseEmitRule(c.Emit); !ok {
		return fmt.Errorf("emit must be \"levels\" or \"top\", got %q", c.Emit)
	}
	if _, err := c.Filter(); err != nil {
		return fmt.Errorf("where: %w", err)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	switch logging.Format(c.Log.Format) {
	case logging.HumanFormat, logging.JSONFormat:
	default:
		return fmt.Errorf("log.format must be \"human\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// EmitRule returns the parsed emission rule.
func (c *Config) EmitRule() flatten.EmitRule {
	rule, _ := flatten.ParseEmitRule(c.Emit)
	return rule
}

// Filter parses the where expression. It returns nil when none is set.
func (c *Config) Filter() (filter.Expression, error) {
	if strings.TrimSpace(c.Where) == "" {
		return nil, nil
	}
	return filter.Parse(c.Where)
}
