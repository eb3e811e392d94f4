// Package tuning derives a PostgreSQL tuning profile from detected host
// resources. The derivation is a pure function: the same inputs always
// produce the same profile, and nothing here touches the host.
package tuning

import (
	"math"

	"github.com/cmathews/vecforge/internal/hwinfo"
)

// Profile is the set of memory and parallelism parameters derived from host
// resources. Field names carry their unit; values are non-negative integers.
type Profile struct {
	// SharedBuffersGB is the engine page cache, 25% of RAM rounded to the
	// nearest GB with a 1 GB floor.
	SharedBuffersGB int

	// EffectiveCacheGB is the planner's estimate of total OS+DB cache,
	// 75% of RAM truncated to whole GB.
	EffectiveCacheGB int

	// WorkMemMB is the per-sort/hash budget within a single query.
	WorkMemMB int

	// MaintenanceWorkMemMB is the budget for index builds and vacuuming.
	MaintenanceWorkMemMB int

	MaxConnections              int
	MaxWorkerProcesses          int
	MaxParallelWorkersPerGather int
	MaxParallelWorkers          int
}

// Calculate derives a Profile from host resources.
//
// The ratios target a dedicated database host running vector-similarity
// workloads: large shared buffers for index pages, a modest per-operation
// work_mem (many concurrent similarity scans), and parallelism scaled to the
// core count. On degenerate hosts every value except the shared-buffers floor
// may legitimately be zero; callers must not "fix" that silently.
func Calculate(hw hwinfo.HostResources) Profile {
	memGB := hw.MemoryGB()
	cores := hw.CPUCores

	sharedBuffers := int(math.Round(float64(memGB) * 0.25))
	if sharedBuffers < 1 {
		sharedBuffers = 1
	}

	return Profile{
		SharedBuffersGB:             sharedBuffers,
		EffectiveCacheGB:            memGB * 3 / 4,
		WorkMemMB:                   memGB * 4,
		MaintenanceWorkMemMB:        memGB * 64,
		MaxConnections:              cores * 4,
		MaxWorkerProcesses:          cores,
		MaxParallelWorkersPerGather: cores / 2,
		MaxParallelWorkers:          cores,
	}
}
