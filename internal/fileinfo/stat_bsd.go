//go:build darwin || freebsd

package fileinfo

import (
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func stat(path string) (Snapshot, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Snapshot{}, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	// Filesystems without birth time support report a negative value.
	if st.Btim.Sec < 0 {
		return Snapshot{}, fmt.Errorf("%s: creation time: %w", path, ErrTimestampUnavailable)
	}

	return Snapshot{
		UID:      st.Uid,
		GID:      st.Gid,
		Size:     st.Size,
		Mode:     fileMode(uint32(st.Mode)),
		Created:  time.Unix(st.Btim.Unix()),
		Modified: time.Unix(st.Mtim.Unix()),
		Accessed: time.Unix(st.Atim.Unix()),
	}, nil
}
