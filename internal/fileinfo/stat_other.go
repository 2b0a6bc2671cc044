//go:build !linux && !darwin && !freebsd

package fileinfo

import "fmt"

func stat(path string) (Snapshot, error) {
	return Snapshot{}, fmt.Errorf("%s: %w", path, ErrUnsupported)
}
