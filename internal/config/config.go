package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "TASKREPORT"

type Config struct {
	Author    string `mapstructure:"author"`
	Format    string `mapstructure:"format"`
	OutputDir string `mapstructure:"output_dir"`
	PageSize  string `mapstructure:"page_size"`
	LogLevel  string `mapstructure:"log_level"`
	Compress  bool   `mapstructure:"compress"`
}

var defaults = map[string]any{
	"author":     "Little Farms System",
	"format":     "pdf",
	"output_dir": "",
	"page_size":  "A4",
	"log_level":  "warn",
	"compress":   true,
}

var pageSizes = []string{"A3", "A4", "A5", "Letter", "Legal"}

var formats = []string{"pdf", "xlsx", "csv", "json"}

// Load reads the configuration from, in increasing priority: defaults, the
// optional config file at path, TASKREPORT_* environment variables and the
// flags in fs that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for key := range defaults {
			flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if !containsFold(formats, c.Format) {
		return fmt.Errorf("unsupported format %q (want one of %s)", c.Format, strings.Join(formats, ", "))
	}
	if !containsFold(pageSizes, c.PageSize) {
		return fmt.Errorf("unsupported page size %q (want one of %s)", c.PageSize, strings.Join(pageSizes, ", "))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured log level. Validate has already accepted it.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
