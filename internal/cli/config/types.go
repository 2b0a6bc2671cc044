// Package config loads findsqlite settings from defaults, an optional YAML
// file, FINDSQLITE_ environment variables and command-line flags.
package config

import (
	"github.com/leapstack-labs/findsqlite/internal/finder"
	"github.com/leapstack-labs/findsqlite/internal/logging"
	"github.com/leapstack-labs/findsqlite/pkg/sqlfmt"
)

// Config holds all CLI configuration options.
type Config struct {
	Meta      bool   `koanf:"meta" yaml:"meta"`
	Schema    bool   `koanf:"schema" yaml:"schema"`
	NoFmt     bool   `koanf:"no_fmt" yaml:"no_fmt"`
	Pretty    bool   `koanf:"pretty" yaml:"pretty"`
	Sep       string `koanf:"sep" yaml:"sep"`
	Log       string `koanf:"log" yaml:"log"`
	LogFormat string `koanf:"log_format" yaml:"log_format"`
	Workers   int    `koanf:"workers" yaml:"workers"`
	Stats     bool   `koanf:"stats" yaml:"stats"`

	// File is the config file that was read, if any.
	File string `koanf:"-" yaml:"-"`
}

// Default configuration values.
const (
	DefaultSep       = finder.DefaultSeparator
	DefaultLog       = "off"
	DefaultLogFormat = logging.FormatAuto
	DefaultWorkers   = 0 // GOMAXPROCS
	EnvPrefix        = "FINDSQLITE_"
)

// ConfigFileNames are looked up in the working directory when no --config
// flag is given.
var ConfigFileNames = []string{"findsqlite.yaml", "findsqlite.yml"}

// SQLMode derives the SQL rendering mode. Pretty is ignored when
// normalization is disabled.
func (c *Config) SQLMode() sqlfmt.Mode {
	return sqlfmt.ModeFor(!c.NoFmt, c.Pretty)
}

// FinderOptions converts the configuration into pipeline options.
func (c *Config) FinderOptions() finder.Options {
	return finder.Options{
		ShowMetadata: c.Meta,
		ShowSchema:   c.Schema,
		SQLMode:      c.SQLMode(),
		Separator:    c.Sep,
		Workers:      c.Workers,
	}
}
