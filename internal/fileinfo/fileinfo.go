// Package fileinfo captures and renders ownership, permission, size and
// timestamp metadata of a file.
//
// A snapshot is all-or-nothing: if any field, including the creation time,
// cannot be read on the host, Capture fails and nothing is rendered.
package fileinfo

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
)

var (
	// ErrTimestampUnavailable is returned when the filesystem does not report
	// one of the three timestamps (usually the creation time).
	ErrTimestampUnavailable = errors.New("timestamp unavailable")

	// ErrUnsupported is returned on platforms without an owner/birth time stat.
	ErrUnsupported = errors.New("file metadata not supported on this platform")
)

// TimeFormat is the layout used for all rendered timestamps.
const TimeFormat = time.RFC3339Nano

const indent = "    "

// Snapshot is file metadata captured at a single point in time.
type Snapshot struct {
	UID      uint32
	GID      uint32
	Size     int64
	Mode     fs.FileMode
	Created  time.Time
	Modified time.Time
	Accessed time.Time
}

// Capture stats path and returns its metadata.
func Capture(path string) (Snapshot, error) {
	snap, err := stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Render formats the snapshot as indented "name: value" lines.
// Timestamps are rendered in UTC.
func (s Snapshot) Render() string {
	lines := []string{
		fmt.Sprintf("uid: %d", s.UID),
		fmt.Sprintf("gid: %d", s.GID),
		fmt.Sprintf("size: %d", s.Size),
		fmt.Sprintf("permissions: %s (%04o)", s.Mode, uint32(s.Mode.Perm())),
		"created: " + s.Created.UTC().Format(TimeFormat),
		"modified: " + s.Modified.UTC().Format(TimeFormat),
		"accessed: " + s.Accessed.UTC().Format(TimeFormat),
	}
	return indent + strings.Join(lines, "\n"+indent)
}
