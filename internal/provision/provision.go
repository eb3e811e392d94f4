// Package provision runs the provisioning pipeline end to end: detect
// hardware, derive tuning, install packages, write configuration, restart the
// service, and create the application credential. The pipeline is strictly
// sequential and fail-fast: the first error aborts the run and is reported to
// the caller, which decides how to exit. Nothing is rolled back; the config
// backups are the only recovery aid.
package provision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmathews/vecforge/internal/config"
	"github.com/cmathews/vecforge/internal/creds"
	"github.com/cmathews/vecforge/internal/hwinfo"
	"github.com/cmathews/vecforge/internal/logger"
	"github.com/cmathews/vecforge/internal/pgconf"
	"github.com/cmathews/vecforge/internal/svcctl"
	"github.com/cmathews/vecforge/internal/tuning"
)

// Stage sentinels. Callers can map a failed run back to the stage that broke
// with errors.Is.
var (
	ErrDetect      = errors.New("resource detection failed")
	ErrInstall     = errors.New("package installation failed")
	ErrConfigWrite = errors.New("configuration write failed")
	ErrService     = errors.New("service control failed")
	ErrProvision   = errors.New("database provisioning failed")
)

// Installer runs the OS package-manager steps.
type Installer interface {
	Install(ctx context.Context) error
}

// Admin issues administrative statements against the database instance.
type Admin interface {
	Ping(ctx context.Context) error
	CreateRole(ctx context.Context, name, password string) error
	CreateDatabase(ctx context.Context, name, owner string) error
	EnableVector(ctx context.Context, database string) error
}

// Pipeline holds the collaborators of a provisioning run. All side-effecting
// dependencies are injected so the flow is testable without a real host.
type Pipeline struct {
	Config     *config.Config
	Installer  Installer
	Controller svcctl.Controller
	Admin      Admin

	// SkipInstall assumes packages and cluster are already in place.
	SkipInstall bool

	// Detect and Sleep default to the real implementations.
	Detect func() (hwinfo.HostResources, error)
	Sleep  func(time.Duration)
}

func (p *Pipeline) detect() (hwinfo.HostResources, error) {
	if p.Detect != nil {
		return p.Detect()
	}
	return hwinfo.Detect()
}

func (p *Pipeline) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Plan detects hardware and returns the derived profile without mutating
// anything. Used by the dry-run command.
func (p *Pipeline) Plan() (hwinfo.HostResources, tuning.Profile, error) {
	hw, err := p.detect()
	if err != nil {
		return hwinfo.HostResources{}, tuning.Profile{}, fmt.Errorf("%w: %w", ErrDetect, err)
	}
	return hw, tuning.Calculate(hw), nil
}

// Run executes the full pipeline and returns the report for the created
// credential. The credential is generated only after the service is confirmed
// reachable; a start failure aborts before any password exists.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	hw, profile, err := p.Plan()
	if err != nil {
		return nil, err
	}
	logger.Info("detected host resources",
		"memory_gb", hw.MemoryGB(), "cpu_cores", hw.CPUCores)
	logger.Info("derived tuning profile",
		"shared_buffers_gb", profile.SharedBuffersGB,
		"effective_cache_gb", profile.EffectiveCacheGB,
		"max_connections", profile.MaxConnections)

	if !p.SkipInstall {
		if err := p.Installer.Install(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInstall, err)
		}
	}

	// Stop before touching config files so the server never reloads a
	// half-written file.
	if err := p.Controller.Stop(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrService, err)
	}

	writer := pgconf.NewWriter(p.Config.Postgres.DataDir)
	if err := writer.WriteAll(profile, p.Config.Postgres.Port); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigWrite, err)
	}

	if err := p.Controller.Start(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrService, err)
	}
	if err := p.Controller.EnableOnBoot(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrService, err)
	}

	// Fixed grace period for startup before the first connection attempt.
	p.sleep(p.Config.Postgres.StartWait)

	if err := p.Admin.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrService, err)
	}

	cred, err := creds.New(p.Config.App.Username, p.Config.App.Database)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvision, err)
	}

	// One-shot semantics: each statement fails loudly on duplicates. A
	// re-run against a provisioned host stops at CreateRole, by design.
	if err := p.Admin.CreateRole(ctx, cred.Username, cred.Password); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvision, err)
	}
	if err := p.Admin.CreateDatabase(ctx, cred.Database, cred.Username); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvision, err)
	}
	if err := p.Admin.EnableVector(ctx, cred.Database); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvision, err)
	}

	logger.Info("provisioning complete",
		"role", cred.Username, "database", cred.Database)

	return &Report{
		Host:     "localhost",
		Port:     p.Config.Postgres.Port,
		Username: cred.Username,
		Password: cred.Password,
		Database: cred.Database,
	}, nil
}
