// Package schema reads table, view and index definitions from SQLite files.
package schema

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/findsqlite/pkg/sqlfmt"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// catalogQuery lists the defining SQL of every table, view and index.
const catalogQuery = `SELECT sql FROM sqlite_master WHERE type IN ('table', 'view', 'index')`

// Indent is prepended to every rendered schema line (two nesting levels).
const Indent = "    "

// Opener opens a database handle for path.
type Opener func(ctx context.Context, path string) (*sql.DB, error)

// Extractor pulls schema definitions out of database files.
// It holds no per-file state and is safe for concurrent use.
type Extractor struct {
	mode   sqlfmt.Mode
	open   Opener
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOpener replaces the default read-only SQLite opener.
func WithOpener(open Opener) Option {
	return func(e *Extractor) { e.open = open }
}

// WithLogger sets the logger used for skipped catalog rows.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// NewExtractor creates an extractor that formats definitions with mode.
func NewExtractor(mode sqlfmt.Mode, opts ...Option) *Extractor {
	e := &Extractor{
		mode: mode,
		open: OpenReadOnly,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	return e
}

// OpenReadOnly opens path with the SQLite driver in read-only mode, so
// inspecting a file never creates or modifies it.
func OpenReadOnly(_ context.Context, path string) (*sql.DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	u := url.URL{Scheme: "file", OmitHost: true, Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite", u.String())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// Extract returns the schema definitions of the database at path, formatted
// and sorted ascending. Identical definitions are all kept.
//
// Catalog rows without text (internal auto-indexes) or with text that is not
// valid UTF-8 are skipped; any failure to open or query the catalog fails the
// whole file.
func (e *Extractor) Extract(ctx context.Context, path string) ([]string, error) {
	db, err := e.open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rows, err := db.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []string
	for rows.Next() {
		var value any
		if err := rows.Scan(&value); err != nil {
			e.logger.Warn("skipping unreadable catalog row", "path", path, "error", err)
			continue
		}

		text, ok := e.decode(path, value)
		if !ok {
			continue
		}
		entries = append(entries, sqlfmt.Format(e.mode, text))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	sort.Strings(entries)
	return entries, nil
}

func (e *Extractor) decode(path string, value any) (string, bool) {
	var text string
	switch v := value.(type) {
	case nil:
		e.logger.Debug("skipping catalog row without sql", "path", path)
		return "", false
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		e.logger.Warn("skipping catalog row with non-text sql", "path", path, "type", fmt.Sprintf("%T", v))
		return "", false
	}

	if !utf8.ValidString(text) {
		e.logger.Warn("skipping catalog row with invalid UTF-8", "path", path)
		return "", false
	}
	return text, true
}

// Render joins entries one per line, indenting every line (including the
// continuation lines of multi-line definitions) with Indent.
func Render(entries []string) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, line := range strings.Split(entry, "\n") {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(Indent)
			b.WriteString(line)
		}
	}
	return b.String()
}
