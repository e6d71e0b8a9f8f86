package sysinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Resources reports kernel statistics for the CPU, memory and disk rows.
type Resources interface {
	LoadAverage(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (total, free uint64, err error)
	DiskFree(ctx context.Context, path string) (uint64, error)
}

// HostResources reads statistics from the running system.
type HostResources struct{}

// LoadAverage returns the one-minute load average.
func (HostResources) LoadAverage(ctx context.Context) (float64, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not get CPU load: %w", err)
	}
	return avg.Load1, nil
}

// Memory returns total and free physical memory in bytes. Page cache and
// reclaimable slab count as free.
func (HostResources) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("could not get memory: %w", err)
	}
	return vm.Total, freeMemory(vm), nil
}

// freeMemory is MemFree + Buffers + Cached + SReclaimable - Shmem, clamped to [0, Total].
func freeMemory(vm *mem.VirtualMemoryStat) uint64 {
	free := vm.Free + vm.Buffers + vm.Cached + vm.Sreclaimable
	if vm.Shared >= free {
		return 0
	}
	return min(free-vm.Shared, vm.Total)
}

// DiskFree returns the free bytes on the filesystem holding path.
func (HostResources) DiskFree(ctx context.Context, path string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	free, err := diskFree(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("could not get disk usage: %w", err)
	}
	return free, nil
}

// cpuFact renders the load average the way the greeter always has: load*10 as a percentage.
func cpuFact(load float64) string {
	return fmt.Sprintf("%d%% Used", uint32(max(load, 0)*10))
}

func memoryFact(total, free uint64) string {
	used := uint64(0)
	if total > free {
		used = total - free
	}
	return FormatBytes(used) + " Used"
}

func diskFact(free uint64) string {
	return FormatBytes(free) + " Free"
}
