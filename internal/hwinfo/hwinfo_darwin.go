//go:build darwin

package hwinfo

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Detect reads total physical memory via the hw.memsize sysctl and the
// logical core count via runtime.NumCPU.
func Detect() (HostResources, error) {
	memsize, err := unix.SysctlUint64("hw.memsize")
	if err != nil {
		return HostResources{}, fmt.Errorf("sysctl hw.memsize: %w", err)
	}
	if memsize == 0 {
		return HostResources{}, fmt.Errorf("sysctl reported zero total memory")
	}

	cores := runtime.NumCPU()
	if cores < 1 {
		return HostResources{}, fmt.Errorf("unable to determine CPU core count")
	}

	return HostResources{
		TotalMemoryBytes: memsize,
		CPUCores:         cores,
	}, nil
}
