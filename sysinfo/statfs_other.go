//go:build !(linux || darwin || freebsd)

package sysinfo

import (
	"context"

	"github.com/shirou/gopsutil/v4/disk"
)

func diskFree(ctx context.Context, path string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
