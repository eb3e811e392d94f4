// Package svcctl controls the PostgreSQL service unit on the host. It wraps
// the platform service manager behind a small interface so the provisioning
// pipeline can be tested without an init system.
package svcctl

import (
	"context"
	"fmt"

	"github.com/kardianos/service"

	"github.com/cmathews/vecforge/internal/execx"
	"github.com/cmathews/vecforge/internal/logger"
)

// Controller manages the lifecycle of the database service unit.
type Controller interface {
	Stop(ctx context.Context) error
	Start(ctx context.Context) error
	EnableOnBoot(ctx context.Context) error
}

// noopProgram satisfies service.Interface. vecforge only controls an existing
// unit, it never runs as the service itself.
type noopProgram struct{}

func (noopProgram) Start(service.Service) error { return nil }
func (noopProgram) Stop(service.Service) error  { return nil }

// SystemController drives the named unit through the platform service
// manager (systemctl on Linux). Enable-on-boot goes through the Runner since
// the service manager API only exposes enablement for units it installed.
type SystemController struct {
	unit   string
	svc    service.Service
	runner execx.Runner
}

var _ Controller = (*SystemController)(nil)

// NewSystemController creates a controller for the named service unit.
func NewSystemController(unit string, runner execx.Runner) (*SystemController, error) {
	svc, err := service.New(noopProgram{}, &service.Config{Name: unit})
	if err != nil {
		return nil, fmt.Errorf("bind service %s: %w", unit, err)
	}

	return &SystemController{unit: unit, svc: svc, runner: runner}, nil
}

// Stop stops the unit. A unit that is already stopped (or not yet installed)
// is not an error: the first provisioning run stops a service that may never
// have started.
func (c *SystemController) Stop(ctx context.Context) error {
	logger.Info("stopping service", "unit", c.unit)
	if err := c.svc.Stop(); err != nil {
		status, statusErr := c.svc.Status()
		if statusErr == nil && status == service.StatusStopped {
			logger.Debug("service already stopped", "unit", c.unit)
			return nil
		}
		logger.Warn("service stop failed, continuing", "unit", c.unit, "error", err)
	}
	return nil
}

// Start starts the unit. Failure here is fatal to the run: provisioning must
// not continue against a service that did not come up.
func (c *SystemController) Start(ctx context.Context) error {
	logger.Info("starting service", "unit", c.unit)
	if err := c.svc.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.unit, err)
	}
	return nil
}

// EnableOnBoot marks the unit to start at boot.
func (c *SystemController) EnableOnBoot(ctx context.Context) error {
	logger.Info("enabling service on boot", "unit", c.unit)
	if err := c.runner.Run(ctx, "systemctl", "enable", c.unit); err != nil {
		return fmt.Errorf("enable %s: %w", c.unit, err)
	}
	return nil
}
