// Package finder drives the discovery pipeline: it walks a directory tree,
// confirms SQLite databases by their header, extracts each database's schema
// and metadata and writes one output block per database.
package finder

import (
	"log/slog"
	"runtime"

	"github.com/leapstack-labs/findsqlite/pkg/sqlfmt"
)

// DefaultSeparator is written after every block that has a section.
const DefaultSeparator = "\n"

// Options controls what a run reports and how. It is shared read-only by all
// workers.
type Options struct {
	ShowMetadata bool
	ShowSchema   bool
	SQLMode      sqlfmt.Mode
	Separator    string
	Workers      int // <= 0 means runtime.GOMAXPROCS(0)

	Logger *slog.Logger
}

// DefaultOptions returns the options used when no flags are given.
func DefaultOptions() Options {
	return Options{
		SQLMode:   sqlfmt.ModeCompact,
		Separator: DefaultSeparator,
	}
}

// hasSections reports whether any section beyond the path was requested.
func (o Options) hasSections() bool {
	return o.ShowMetadata || o.ShowSchema
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
