// Package pgconf renders and writes the PostgreSQL configuration files for a
// provisioned host: postgresql.conf (tuned values plus fixed workload policy)
// and pg_hba.conf (the access-control table). Rendering is deterministic and
// side-effect free; Writer performs the filesystem work.
package pgconf

import (
	"fmt"
	"strings"

	"github.com/cmathews/vecforge/internal/tuning"
)

// AuthMethod represents pg_hba.conf authentication methods.
type AuthMethod string

const (
	AuthPeer        AuthMethod = "peer"
	AuthScramSHA256 AuthMethod = "scram-sha-256"
)

// HBARule is one line of the access-control table.
type HBARule struct {
	Type     string // "local" or "host"
	Database string
	User     string
	Address  string // empty for local rules
	Method   AuthMethod
}

// AccessRules returns the fixed access-control policy, in order:
// local socket via peer auth, loopback (v4 and v6) via scram-sha-256, and a
// catch-all external rule via scram-sha-256.
//
// The catch-all rule is a deliberate trade-off so the application can reach
// the database from anywhere during bring-up. Operators must replace it with
// the application subnet before exposing the host; RenderHBAConf carries the
// same warning in the generated file.
func AccessRules() []HBARule {
	return []HBARule{
		{Type: "local", Database: "all", User: "all", Method: AuthPeer},
		{Type: "host", Database: "all", User: "all", Address: "127.0.0.1/32", Method: AuthScramSHA256},
		{Type: "host", Database: "all", User: "all", Address: "::1/128", Method: AuthScramSHA256},
		{Type: "host", Database: "all", User: "all", Address: "0.0.0.0/0", Method: AuthScramSHA256},
	}
}

// RenderHBAConf renders the access-control table as pg_hba.conf text.
func RenderHBAConf(rules []HBARule) string {
	var b strings.Builder

	b.WriteString("# pg_hba.conf generated by vecforge\n")
	b.WriteString("# WARNING: the 0.0.0.0/0 rule admits any address with a valid password.\n")
	b.WriteString("# Tighten it to the application subnet before production exposure.\n")
	b.WriteString("\n")
	b.WriteString("# TYPE  DATABASE        USER            ADDRESS                 METHOD\n")

	for _, r := range rules {
		if r.Type == "local" {
			fmt.Fprintf(&b, "%-7s %-15s %-15s %-23s %s\n", r.Type, r.Database, r.User, "", r.Method)
		} else {
			fmt.Fprintf(&b, "%-7s %-15s %-15s %-23s %s\n", r.Type, r.Database, r.User, r.Address, r.Method)
		}
	}

	return b.String()
}

// RenderPostgresqlConf renders the full postgresql.conf: connection settings,
// the tuned memory and parallelism values, then the fixed policy block.
//
// The fixed block is workload policy, not hardware derivation: WAL and
// checkpoint spacing for moderate write rates, random_page_cost tuned for
// solid-state storage, autovacuum cadence for tables with churning embedding
// rows, statement-duration logging for slow similarity queries, and
// scram-sha-256 password hashing. pg_stat_statements is preloaded so query
// statistics are available from first boot.
func RenderPostgresqlConf(p tuning.Profile, port int) string {
	var b strings.Builder

	b.WriteString("# postgresql.conf generated by vecforge\n")
	b.WriteString("# Tuned for vector-search workloads; values derived from detected hardware.\n")
	b.WriteString("\n")

	b.WriteString("# Connections\n")
	fmt.Fprintf(&b, "listen_addresses = '*'\n")
	fmt.Fprintf(&b, "port = %d\n", port)
	fmt.Fprintf(&b, "max_connections = %d\n", p.MaxConnections)
	b.WriteString("\n")

	b.WriteString("# Memory (derived from detected RAM)\n")
	fmt.Fprintf(&b, "shared_buffers = %dGB\n", p.SharedBuffersGB)
	fmt.Fprintf(&b, "effective_cache_size = %dGB\n", p.EffectiveCacheGB)
	fmt.Fprintf(&b, "work_mem = %dMB\n", p.WorkMemMB)
	fmt.Fprintf(&b, "maintenance_work_mem = %dMB\n", p.MaintenanceWorkMemMB)
	b.WriteString("\n")

	b.WriteString("# Parallelism (derived from CPU core count)\n")
	fmt.Fprintf(&b, "max_worker_processes = %d\n", p.MaxWorkerProcesses)
	fmt.Fprintf(&b, "max_parallel_workers_per_gather = %d\n", p.MaxParallelWorkersPerGather)
	fmt.Fprintf(&b, "max_parallel_workers = %d\n", p.MaxParallelWorkers)
	b.WriteString("\n")

	b.WriteString("# WAL and checkpoints\n")
	b.WriteString("wal_buffers = 16MB\n")
	b.WriteString("min_wal_size = 1GB\n")
	b.WriteString("max_wal_size = 4GB\n")
	b.WriteString("checkpoint_completion_target = 0.9\n")
	b.WriteString("checkpoint_timeout = 15min\n")
	b.WriteString("\n")

	b.WriteString("# Planner (solid-state storage)\n")
	b.WriteString("random_page_cost = 1.1\n")
	b.WriteString("effective_io_concurrency = 200\n")
	b.WriteString("default_statistics_target = 100\n")
	b.WriteString("\n")

	b.WriteString("# Autovacuum\n")
	b.WriteString("autovacuum = on\n")
	b.WriteString("autovacuum_max_workers = 3\n")
	b.WriteString("autovacuum_naptime = 30s\n")
	b.WriteString("\n")

	b.WriteString("# Logging\n")
	b.WriteString("log_min_duration_statement = 1000\n")
	b.WriteString("log_line_prefix = '%m [%p] %q%u@%d '\n")
	b.WriteString("log_timezone = 'UTC'\n")
	b.WriteString("timezone = 'UTC'\n")
	b.WriteString("\n")

	b.WriteString("# Security and extensions\n")
	b.WriteString("password_encryption = scram-sha-256\n")
	b.WriteString("shared_preload_libraries = 'pg_stat_statements'\n")

	return b.String()
}
