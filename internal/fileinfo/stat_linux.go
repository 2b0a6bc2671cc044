package fileinfo

import (
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

const wantMask = unix.STATX_UID | unix.STATX_GID | unix.STATX_SIZE | unix.STATX_MODE |
	unix.STATX_ATIME | unix.STATX_MTIME | unix.STATX_BTIME

func stat(path string) (Snapshot, error) {
	var st unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, wantMask, &st); err != nil {
		return Snapshot{}, &fs.PathError{Op: "statx", Path: path, Err: err}
	}

	if st.Mask&unix.STATX_BTIME == 0 {
		return Snapshot{}, fmt.Errorf("%s: creation time: %w", path, ErrTimestampUnavailable)
	}
	if st.Mask&(unix.STATX_ATIME|unix.STATX_MTIME) != unix.STATX_ATIME|unix.STATX_MTIME {
		return Snapshot{}, fmt.Errorf("%s: access or modification time: %w", path, ErrTimestampUnavailable)
	}

	return Snapshot{
		UID:      st.Uid,
		GID:      st.Gid,
		Size:     int64(st.Size), //nolint:gosec // G115: file sizes fit in int64
		Mode:     fileMode(uint32(st.Mode)),
		Created:  statxTime(st.Btime),
		Modified: statxTime(st.Mtime),
		Accessed: statxTime(st.Atime),
	}, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
