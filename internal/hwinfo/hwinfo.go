// Package hwinfo detects the host resources that drive PostgreSQL tuning:
// total physical memory and logical CPU core count. Detection happens once at
// the start of a provisioning run; the result is treated as immutable.
package hwinfo

// HostResources contains the detected host resources.
type HostResources struct {
	// TotalMemoryBytes is the total physical RAM in bytes.
	TotalMemoryBytes uint64

	// CPUCores is the number of logical CPU cores available.
	CPUCores int
}

const bytesPerGB = 1 << 30

// MemoryGB returns total memory rounded down to whole gigabytes.
func (r HostResources) MemoryGB() int {
	return int(r.TotalMemoryBytes / bytesPerGB)
}
