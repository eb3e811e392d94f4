// Package execx provides the command-execution capability used for package
// installation and service management. Callers receive a Runner so the
// provisioning pipeline can be exercised in tests without touching the host
// or elevating privileges.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cmathews/vecforge/internal/logger"
)

// Runner executes external commands. Run streams the child's output to the
// parent's stderr so failures surface whatever the underlying tool printed;
// Output captures stdout for probing commands.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// System is the production Runner. When Elevate is set and the process is not
// already root, commands are prefixed with "sudo -n" (non-interactive: a
// missing sudo grant fails immediately instead of hanging on a prompt).
type System struct {
	Elevate bool
}

var _ Runner = (*System)(nil)

func (s *System) command(ctx context.Context, name string, args ...string) *exec.Cmd {
	if s.Elevate && os.Geteuid() != 0 {
		args = append([]string{"-n", name}, args...)
		name = "sudo"
	}
	return exec.CommandContext(ctx, name, args...)
}

// Run executes the command, passing its output through.
func (s *System) Run(ctx context.Context, name string, args ...string) error {
	cmd := s.command(ctx, name, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	logger.Debug("running command", "cmd", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}

// Output executes the command and returns its trimmed stdout.
func (s *System) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := s.command(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running command", "cmd", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w (stderr: %s)", strings.Join(cmd.Args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}
