package config

import "github.com/spf13/pflag"

// RegisterFlags defines the scan flags on fs. Defaults shown in help match
// the built-in defaults; only flags the user sets override other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolP("meta", "m", false, "Include file metadata for each database")
	fs.BoolP("schema", "s", false, "Include the schema of each database")
	fs.BoolP("no-fmt", "n", false, "Print schema SQL exactly as stored")
	fs.BoolP("pretty", "p", false, "Pretty-print schema SQL (ignored with --no-fmt)")
	fs.String("sep", DefaultSep, "Separator written after each database block")
	fs.IntP("workers", "j", DefaultWorkers, "Number of concurrent workers (0 = GOMAXPROCS)")
	fs.Bool("stats", false, "Print a run summary to stderr")
}

// RegisterLogFlags defines the diagnostics flags on fs.
func RegisterLogFlags(fs *pflag.FlagSet) {
	fs.StringP("log", "l", DefaultLog, "Log level (debug|info|warn|error|off)")
	fs.String("log-format", DefaultLogFormat, "Log format (auto|text|json)")
}
