// Package pkgmgr drives the OS package manager steps of a provisioning run:
// PGDG repository setup, disabling the distribution's built-in postgresql
// module stream, installing the server and pgvector packages, and running
// initdb on an empty data directory. Targets RHEL-family hosts with dnf.
package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cmathews/vecforge/internal/config"
	"github.com/cmathews/vecforge/internal/execx"
	"github.com/cmathews/vecforge/internal/logger"
)

// Manager runs the installation steps through an injected Runner.
type Manager struct {
	runner execx.Runner
	cfg    *config.Config
}

// New creates a Manager.
func New(runner execx.Runner, cfg *config.Config) *Manager {
	return &Manager{runner: runner, cfg: cfg}
}

// Install runs the full installation sequence. Each step is fatal on error;
// there are no retries. A failed step leaves the host with whatever the
// package manager already applied.
func (m *Manager) Install(ctx context.Context) error {
	if err := m.ensureRepo(ctx); err != nil {
		return err
	}
	if err := m.disableModule(ctx); err != nil {
		return err
	}
	if err := m.installPackages(ctx); err != nil {
		return err
	}
	return m.initDB(ctx)
}

// ensureRepo installs the PGDG repository RPM unless it is already present.
func (m *Manager) ensureRepo(ctx context.Context) error {
	if _, err := m.runner.Output(ctx, "rpm", "-q", "pgdg-redhat-repo"); err == nil {
		logger.Debug("pgdg repository already installed")
		return nil
	}

	logger.Info("installing pgdg repository", "url", m.cfg.Install.RepoRPMURL)
	if err := m.runner.Run(ctx, "dnf", "install", "-y", m.cfg.Install.RepoRPMURL); err != nil {
		return fmt.Errorf("install pgdg repository: %w", err)
	}
	return nil
}

// disableModule disables the distribution's conflicting module stream so the
// PGDG packages win.
func (m *Manager) disableModule(ctx context.Context) error {
	mod := m.cfg.Install.DisableModule
	if mod == "" {
		return nil
	}

	logger.Info("disabling module stream", "module", mod)
	if err := m.runner.Run(ctx, "dnf", "-qy", "module", "disable", mod); err != nil {
		return fmt.Errorf("disable module %s: %w", mod, err)
	}
	return nil
}

func (m *Manager) installPackages(ctx context.Context) error {
	args := append([]string{"install", "-y"}, m.cfg.Install.Packages...)

	logger.Info("installing packages", "packages", m.cfg.Install.Packages)
	if err := m.runner.Run(ctx, "dnf", args...); err != nil {
		return fmt.Errorf("install packages: %w", err)
	}
	return nil
}

// initDB initializes the cluster when the data directory has no PG_VERSION
// marker. An initialized directory is left untouched.
func (m *Manager) initDB(ctx context.Context) error {
	marker := filepath.Join(m.cfg.Postgres.DataDir, "PG_VERSION")
	if _, err := os.Stat(marker); err == nil {
		logger.Debug("data directory already initialized", "data_dir", m.cfg.Postgres.DataDir)
		return nil
	}

	setup := fmt.Sprintf("/usr/pgsql-%d/bin/postgresql-%d-setup",
		m.cfg.Postgres.Version, m.cfg.Postgres.Version)

	logger.Info("initializing database cluster", "setup", setup)
	if err := m.runner.Run(ctx, setup, "initdb"); err != nil {
		return fmt.Errorf("initdb: %w", err)
	}
	return nil
}
