package finder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/findsqlite/internal/fileinfo"
	"github.com/leapstack-labs/findsqlite/internal/logging"
	"github.com/leapstack-labs/findsqlite/pkg/schema"
	"github.com/leapstack-labs/findsqlite/pkg/sniff"
)

// ErrRoot is returned when the root path cannot be scanned at all.
var ErrRoot = errors.New("cannot scan root path")

// Finder runs the discovery pipeline. A Finder is good for a single Run.
type Finder struct {
	opts      Options
	extractor *schema.Extractor
	logger    *slog.Logger
	out       *syncWriter
	stats     counters
}

// New creates a finder. A nil Options.Logger discards diagnostics.
func New(opts Options) *Finder {
	logger := logging.OrDiscard(opts.Logger).With("run_id", uuid.NewString())

	return &Finder{
		opts:      opts,
		extractor: schema.NewExtractor(opts.SQLMode, schema.WithLogger(logger)),
		logger:    logger,
	}
}

// Run scans root and writes one block per confirmed database to out. Per-file
// failures are logged and counted; the returned error is non-nil only when
// root is unusable or ctx is cancelled.
func (f *Finder) Run(ctx context.Context, root string, out io.Writer) (Stats, error) {
	scan, err := resolveRoot(root)
	if err != nil {
		return Stats{}, err
	}

	f.out = newSyncWriter(out)
	workers := f.opts.workers()
	f.logger.Info("starting scan", "root", root, "workers", workers)

	paths := make(chan string, workers)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer close(paths)
		return f.walk(egctx, scan, paths)
	})

	for range workers {
		eg.Go(func() error {
			for path := range paths {
				if egctx.Err() != nil {
					continue
				}
				f.process(egctx, path)
			}
			return nil
		})
	}

	err = eg.Wait()
	stats := f.stats.snapshot()
	f.logger.Info("scan finished",
		"visited", stats.Visited,
		"signatures", stats.Signatures,
		"reported", stats.Reported,
	)
	switch {
	case err == nil:
		return stats, nil
	case errors.Is(err, ErrRoot):
		return stats, err
	}
	return stats, fmt.Errorf("scan interrupted: %w", err)
}

// process runs one candidate through sniffing, extraction and metadata
// capture, then writes its block.
func (f *Finder) process(ctx context.Context, path string) {
	ok, err := sniff.HasSQLiteHeader(path)
	if err != nil {
		f.fail(&StageError{Kind: KindSignature, Path: path, Err: err})
		return
	}
	if !ok {
		return
	}
	f.stats.signatures.Add(1)

	// Extraction always runs: a file that cannot be queried is not reported.
	entries, err := f.extractor.Extract(ctx, path)
	if err != nil {
		f.fail(&StageError{Kind: KindExtraction, Path: path, Err: err})
		return
	}

	block := Block{Path: path}
	if f.opts.ShowSchema {
		block.Schema = entries
	}
	if f.opts.ShowMetadata {
		snap, err := fileinfo.Capture(path)
		if err != nil {
			f.fail(&StageError{Kind: KindMetadata, Path: path, Err: err})
		} else {
			block.Metadata = &snap
		}
	}

	if err := f.out.WriteBlock(block.Render(f.opts)); err != nil {
		f.logger.Error("failed to write output", "path", path, "error", err)
		return
	}
	f.stats.reported.Add(1)
}

func (f *Finder) fail(err *StageError) {
	f.stats.failures[err.Kind].Add(1)

	level := slog.LevelWarn
	if err.Kind == KindTraversal {
		level = slog.LevelDebug
	}
	f.logger.Log(context.Background(), level, "skipping file",
		"kind", err.Kind.String(),
		"path", err.Path,
		"error", err.Err,
	)
}
