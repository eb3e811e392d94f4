package main

import (
	"fmt"

	"github.com/cmathews/vecforge/internal/config"
	"github.com/cmathews/vecforge/internal/pgconf"
	"github.com/cmathews/vecforge/internal/tuning"
)

// printPlan shows the detected resources, the derived profile, and the
// configuration files a real run would write.
func printPlan(cfg *config.Config, memGB, cores int, profile tuning.Profile) {
	fmt.Printf("Detected host resources:\n")
	fmt.Printf("  Memory:    %d GB\n", memGB)
	fmt.Printf("  CPU cores: %d\n", cores)
	fmt.Println()

	fmt.Printf("Derived tuning profile:\n")
	fmt.Printf("  shared_buffers:                  %d GB\n", profile.SharedBuffersGB)
	fmt.Printf("  effective_cache_size:            %d GB\n", profile.EffectiveCacheGB)
	fmt.Printf("  work_mem:                        %d MB\n", profile.WorkMemMB)
	fmt.Printf("  maintenance_work_mem:            %d MB\n", profile.MaintenanceWorkMemMB)
	fmt.Printf("  max_connections:                 %d\n", profile.MaxConnections)
	fmt.Printf("  max_worker_processes:            %d\n", profile.MaxWorkerProcesses)
	fmt.Printf("  max_parallel_workers_per_gather: %d\n", profile.MaxParallelWorkersPerGather)
	fmt.Printf("  max_parallel_workers:            %d\n", profile.MaxParallelWorkers)
	fmt.Println()

	fmt.Printf("--- %s/postgresql.conf ---\n", cfg.Postgres.DataDir)
	fmt.Print(pgconf.RenderPostgresqlConf(profile, cfg.Postgres.Port))
	fmt.Println()

	fmt.Printf("--- %s/pg_hba.conf ---\n", cfg.Postgres.DataDir)
	fmt.Print(pgconf.RenderHBAConf(pgconf.AccessRules()))
}
