//go:build linux

package hwinfo

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Detect reads total physical memory via sysinfo(2) and the logical core
// count via runtime.NumCPU. There is no fallback: tuning values derived from
// a guessed memory size would be worse than refusing to run.
func Detect() (HostResources, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return HostResources{}, fmt.Errorf("sysinfo: %w", err)
	}

	total := uint64(info.Totalram) * uint64(info.Unit)
	if total == 0 {
		return HostResources{}, fmt.Errorf("sysinfo reported zero total memory")
	}

	cores := runtime.NumCPU()
	if cores < 1 {
		return HostResources{}, fmt.Errorf("unable to determine CPU core count")
	}

	return HostResources{
		TotalMemoryBytes: total,
		CPUCores:         cores,
	}, nil
}
