package finder

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// scanRoot is the root path after a single lstat.
type scanRoot struct {
	path string // path handed to WalkDir, or the file itself
	file bool   // root names a regular file (possibly through a symlink)
}

// resolveRoot stats root once. A symlinked root is resolved so that a link to
// a file is scanned as that file and a link to a directory is descended.
func resolveRoot(root string) (scanRoot, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return scanRoot{}, fmt.Errorf("%w: %w", ErrRoot, err)
	}

	walkPath := root
	if info.Mode()&fs.ModeSymlink != 0 {
		if info, err = os.Stat(root); err != nil {
			return scanRoot{}, fmt.Errorf("%w: %w", ErrRoot, err)
		}
		if info.IsDir() {
			walkPath = root + string(filepath.Separator)
		}
	}

	return scanRoot{path: walkPath, file: info.Mode().IsRegular()}, nil
}

// walk sends every regular file under root to paths. Entries that cannot be
// read are reported and skipped; only an unreadable root or cancellation
// stops the walk early.
func (f *Finder) walk(ctx context.Context, root scanRoot, paths chan<- string) error {
	if root.file {
		f.stats.visited.Add(1)
		f.stats.candidates.Add(1)
		return send(ctx, paths, root.path)
	}

	return filepath.WalkDir(root.path, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root.path {
				return fmt.Errorf("%w: %w", ErrRoot, err)
			}
			// For a directory this skips its contents and carries on with siblings.
			f.fail(&StageError{Kind: KindTraversal, Path: path, Err: err})
			return nil
		}

		f.stats.visited.Add(1)
		if !d.Type().IsRegular() {
			return nil
		}
		f.stats.candidates.Add(1)
		return send(ctx, paths, path)
	})
}

func send(ctx context.Context, paths chan<- string, path string) error {
	select {
	case paths <- path:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
