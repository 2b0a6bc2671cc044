package finder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/findsqlite/internal/testutil"
	"github.com/leapstack-labs/findsqlite/pkg/sniff"
	"github.com/leapstack-labs/findsqlite/pkg/sqlfmt"
)

func run(t *testing.T, root string, opts Options) (string, Stats) {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = testutil.NewTestLogger(t)
	}
	var out bytes.Buffer
	stats, err := New(opts).Run(context.Background(), root, &out)
	require.NoError(t, err)
	return out.String(), stats
}

func schemaOpts() Options {
	return Options{ShowSchema: true, SQLMode: sqlfmt.ModeCompact, Separator: "\n", Workers: 4}
}

func TestRun_EndToEnd(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(root, "a.db")
	testutil.CreateDB(t, dbPath, "CREATE TABLE t (x)")
	testutil.WriteFile(t, root, "b.txt", []byte("hello"))

	out, stats := run(t, root, schemaOpts())

	assert.Equal(t, fmt.Sprintf("%q\n  schema:\n    CREATE TABLE t (x)\n\n", dbPath), out)
	assert.Equal(t, int64(2), stats.Candidates)
	assert.Equal(t, int64(1), stats.Signatures)
	assert.Equal(t, int64(1), stats.Reported)
}

func TestRun_IgnoresNamesAndExtensions(t *testing.T) {
	root := t.TempDir()
	disguised := filepath.Join(root, "nested", "photo.jpg")
	testutil.CreateDB(t, disguised, "CREATE TABLE t (x)")

	// Same length as a SQLite header, different content.
	testutil.WriteFile(t, root, "fake.db", []byte("SQLite format 4\x00"))
	testutil.WriteFile(t, root, "empty.sqlite", nil)

	out, stats := run(t, root, Options{Separator: "\n"})

	assert.Equal(t, fmt.Sprintf("%q\n", disguised), out)
	assert.Equal(t, int64(1), stats.Signatures)
}

func TestRun_ManyDatabasesProduceContiguousBlocks(t *testing.T) {
	root := t.TempDir()
	const n = 40

	opts := Options{ShowSchema: true, SQLMode: sqlfmt.ModePretty, Separator: "\n", Workers: 8}
	var want []string
	for i := range n {
		path := filepath.Join(root, fmt.Sprintf("dir%d", i%5), fmt.Sprintf("db%02d.sqlite", i))
		table := fmt.Sprintf("CREATE TABLE t%02d (id INTEGER PRIMARY KEY, name TEXT NOT NULL, email TEXT UNIQUE, created_at TEXT)", i)
		view := fmt.Sprintf("CREATE VIEW v%02d AS SELECT id, name FROM t%02d WHERE id > 1", i, i)
		testutil.CreateDB(t, path, table, view)

		block := Block{Path: path, Schema: []string{sqlfmt.Pretty(table), sqlfmt.Pretty(view)}}
		want = append(want, block.Render(opts))
	}

	out, stats := run(t, root, opts)

	assert.Equal(t, int64(n), stats.Reported)
	total := 0
	for _, block := range want {
		assert.Contains(t, out, block)
		assert.Equal(t, 1, strings.Count(out, block))
		total += len(block)
	}
	assert.Len(t, out, total, "output contains only whole blocks")
}

func TestRun_TruncatedDatabaseIsDropped(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "truncated.db", sniff.Signature[:])
	good := filepath.Join(root, "good.db")
	testutil.CreateDB(t, good, "CREATE TABLE t (x)")

	logger, records := testutil.NewCapturingLogger(t)
	opts := schemaOpts()
	opts.Logger = logger

	out, stats := run(t, root, opts)

	assert.Equal(t, fmt.Sprintf("%q\n  schema:\n    CREATE TABLE t (x)\n\n", good), out)
	assert.Equal(t, int64(2), stats.Signatures)
	assert.Equal(t, int64(1), stats.FailuresOf(KindExtraction))
	assert.Equal(t, 1, records.Count(slog.LevelWarn, "skipping file"))
}

func TestRun_RootIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.db")
	testutil.CreateDB(t, path, "CREATE TABLE t (x)")

	out, _ := run(t, path, Options{})
	assert.Equal(t, fmt.Sprintf("%q\n", path), out)
}

func TestRun_EmptyDatabase(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "empty.db")
	testutil.CreateDB(t, path)

	out, _ := run(t, root, schemaOpts())
	assert.Equal(t, fmt.Sprintf("%q\n  schema:\n\n", path), out)
}

func TestRun_EmptyTree(t *testing.T) {
	out, stats := run(t, t.TempDir(), schemaOpts())
	assert.Empty(t, out)
	assert.Equal(t, int64(0), stats.Candidates)
}

func TestRun_Metadata(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.db")
	testutil.CreateDB(t, path, "CREATE TABLE t (x)")

	opts := Options{ShowMetadata: true, ShowSchema: true, SQLMode: sqlfmt.ModeCompact, Separator: "\n"}
	out, stats := run(t, root, opts)

	if stats.FailuresOf(KindMetadata) > 0 {
		// Some filesystems do not record a creation time; the block survives without metadata.
		assert.Equal(t, fmt.Sprintf("%q\n  schema:\n    CREATE TABLE t (x)\n\n", path), out)
		return
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, fmt.Sprintf("%q\n  meta:\n    uid: ", path)))
	assert.Contains(t, out, fmt.Sprintf("\n    size: %d\n", info.Size()))
	assert.Contains(t, out, "\n    created: ")
	assert.True(t, strings.HasSuffix(out, "\n  schema:\n    CREATE TABLE t (x)\n\n"))
}

func TestRun_SymlinksBelowRootAreNotFollowed(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "elsewhere.db")
	testutil.CreateDB(t, target, "CREATE TABLE t (x)")
	require.NoError(t, os.Symlink(target, filepath.Join(root, "link.db")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "broken.db")))

	out, stats := run(t, root, Options{})
	assert.Empty(t, out)
	assert.Equal(t, int64(0), stats.Candidates)
}

func TestRun_SymlinkedRootDirectoryIsScanned(t *testing.T) {
	target := t.TempDir()
	testutil.CreateDB(t, filepath.Join(target, "a.db"), "CREATE TABLE t (x)")
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(target, link))

	out, _ := run(t, link, Options{})
	assert.Equal(t, fmt.Sprintf("%q\n", filepath.Join(link, "a.db")), out)
}

func TestRun_UnreadableFileIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	path := filepath.Join(root, "locked.db")
	testutil.CreateDB(t, path, "CREATE TABLE t (x)")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

	out, stats := run(t, root, Options{})
	assert.Empty(t, out)
	assert.Equal(t, int64(1), stats.FailuresOf(KindSignature))
}

func TestRun_UnreadableDirectoryIsSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	locked := filepath.Join(root, "locked")
	testutil.CreateDB(t, filepath.Join(locked, "hidden.db"), "CREATE TABLE t (x)")
	visible := filepath.Join(root, "visible.db")
	testutil.CreateDB(t, visible, "CREATE TABLE t (x)")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	out, stats := run(t, root, Options{})
	assert.Equal(t, fmt.Sprintf("%q\n", visible), out)
	assert.Equal(t, int64(1), stats.FailuresOf(KindTraversal))
}

func TestRun_MissingRoot(t *testing.T) {
	var out bytes.Buffer
	_, err := New(Options{}).Run(context.Background(), filepath.Join(t.TempDir(), "nope"), &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoot)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out.String())
}

func TestRun_UnreadableRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	testutil.CreateDB(t, filepath.Join(root, "a.db"), "CREATE TABLE t (x)")
	require.NoError(t, os.Chmod(root, 0o000))
	t.Cleanup(func() { _ = os.Chmod(root, 0o750) })

	var out bytes.Buffer
	_, err := New(Options{}).Run(context.Background(), root, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRoot)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Empty(t, out.String())
}

func TestRun_BrokenSymlinkRoot(t *testing.T) {
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(filepath.Join(t.TempDir(), "gone"), link))

	_, err := New(Options{}).Run(context.Background(), link, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrRoot)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolveRoot(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "f.db", []byte("x"))
	fileLink := filepath.Join(t.TempDir(), "file-link")
	require.NoError(t, os.Symlink(file, fileLink))
	dirLink := filepath.Join(t.TempDir(), "dir-link")
	require.NoError(t, os.Symlink(dir, dirLink))

	tests := []struct {
		name string
		root string
		want scanRoot
	}{
		{name: "directory", root: dir, want: scanRoot{path: dir}},
		{name: "file", root: file, want: scanRoot{path: file, file: true}},
		{name: "link to file", root: fileLink, want: scanRoot{path: fileLink, file: true}},
		{name: "link to directory", root: dirLink, want: scanRoot{path: dirLink + string(filepath.Separator)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveRoot(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	testutil.CreateDB(t, filepath.Join(root, "a.db"), "CREATE TABLE t (x)")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := New(Options{}).Run(ctx, root, &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestStageError(t *testing.T) {
	err := &StageError{Kind: KindExtraction, Path: "/x.db", Err: os.ErrPermission}

	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Equal(t, "extraction error for /x.db: permission denied", err.Error())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestStatsRender(t *testing.T) {
	var s Stats
	s.Visited = 12
	s.Reported = 3
	s.Failures[KindExtraction] = 2

	var buf bytes.Buffer
	s.Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "entries visited")
	assert.Contains(t, out, "12")
	assert.Contains(t, out, "extraction errors")
	assert.Equal(t, int64(2), s.FailuresOf(KindExtraction))
	assert.Equal(t, int64(0), s.FailuresOf(Kind(-1)))
}
