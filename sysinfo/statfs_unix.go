//go:build linux || darwin || freebsd

package sysinfo

import (
	"context"

	"golang.org/x/sys/unix"
)

// diskFree counts free blocks, including those reserved for root.
func diskFree(_ context.Context, path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bfree) * uint64(st.Bsize), nil
}
