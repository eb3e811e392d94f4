package main

import (
	"fmt"

	"github.com/cmathews/vecforge/internal/config"
	"github.com/cmathews/vecforge/internal/dbadmin"
	"github.com/cmathews/vecforge/internal/execx"
	"github.com/cmathews/vecforge/internal/pkgmgr"
	"github.com/cmathews/vecforge/internal/provision"
	"github.com/cmathews/vecforge/internal/svcctl"
)

// newPipeline wires the production collaborators into a pipeline.
func newPipeline(cfg *config.Config) (*provision.Pipeline, error) {
	runner := &execx.System{Elevate: true}

	controller, err := svcctl.NewSystemController(cfg.Postgres.Service, runner)
	if err != nil {
		return nil, fmt.Errorf("service controller: %w", err)
	}

	return &provision.Pipeline{
		Config:     cfg,
		Installer:  pkgmgr.New(runner, cfg),
		Controller: controller,
		Admin: dbadmin.NewClient(
			cfg.Postgres.SocketDir,
			cfg.Postgres.Port,
			cfg.Postgres.AdminUser,
		),
	}, nil
}
