package main

import (
	"fmt"
	"testing"

	"github.com/cmathews/vecforge/internal/provision"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"detect", fmt.Errorf("%w: sysinfo", provision.ErrDetect), ExitDetect},
		{"install", fmt.Errorf("%w: dnf", provision.ErrInstall), ExitInstall},
		{"config write", fmt.Errorf("%w: read-only fs", provision.ErrConfigWrite), ExitConfigWrite},
		{"service", fmt.Errorf("%w: unit failed", provision.ErrService), ExitService},
		{"provision", fmt.Errorf("%w: duplicate role", provision.ErrProvision), ExitProvision},
		{"unknown", fmt.Errorf("something else"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
