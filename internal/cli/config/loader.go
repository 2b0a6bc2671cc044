package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	yamlv3 "gopkg.in/yaml.v3"
)

// flagKeys maps flag names that differ from their config keys.
var flagKeys = map[string]string{
	"no-fmt":     "no_fmt",
	"log-format": "log_format",
}

// ignoredFlags are command-line only.
var ignoredFlags = map[string]bool{
	"config":  true,
	"help":    true,
	"version": true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > findsqlite.yaml > findsqlite.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"meta":       false,
		"schema":     false,
		"no_fmt":     false,
		"pretty":     false,
		"sep":        DefaultSep,
		"log":        DefaultLog,
		"log_format": DefaultLogFormat,
		"workers":    DefaultWorkers,
		"stats":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFile := findConfigFile(cfgFile)
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 3. Environment variables: FINDSQLITE_LOG_FORMAT -> log_format
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags that were explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || ignoredFlags[f.Name] {
				return "", nil
			}
			key := f.Name
			if mapped, ok := flagKeys[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode, rejecting keys that do not belong to Config
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			TagName:          "koanf",
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = configFile

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// MarshalYAML double-quotes string values so separators made of whitespace
// or newlines survive a round trip through a config file.
func (c Config) MarshalYAML() (any, error) {
	type plain Config
	var node yamlv3.Node
	if err := node.Encode(plain(c)); err != nil {
		return nil, err
	}
	quoteStrings(&node)
	return &node, nil
}

func quoteStrings(node *yamlv3.Node) {
	if node.Kind == yamlv3.MappingNode {
		for i := 1; i < len(node.Content); i += 2 {
			quoteStrings(node.Content[i])
		}
		return
	}
	if node.Kind == yamlv3.ScalarNode && node.ShortTag() == "!!str" {
		node.Style = yamlv3.DoubleQuotedStyle
	}
}

// Write encodes the effective configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
