package pkgmgr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmathews/vecforge/internal/config"
)

// fakeRunner records commands and fails those matching failOn.
type fakeRunner struct {
	calls     []string
	failOn    string
	repoQuery error // result of the rpm -q probe
}

func (f *fakeRunner) record(name string, args ...string) string {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	return call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	call := f.record(name, args...)
	if f.failOn != "" && strings.Contains(call, f.failOn) {
		return fmt.Errorf("exit status 1")
	}
	return nil
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	call := f.record(name, args...)
	if strings.HasPrefix(call, "rpm -q") {
		return "", f.repoQuery
	}
	if f.failOn != "" && strings.Contains(call, f.failOn) {
		return "", fmt.Errorf("exit status 1")
	}
	return "", nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Postgres.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

func TestInstall_FullSequence(t *testing.T) {
	cfg := testConfig(t)
	r := &fakeRunner{repoQuery: fmt.Errorf("not installed")}

	if err := New(r, cfg).Install(context.Background()); err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}

	want := []string{
		"rpm -q pgdg-redhat-repo",
		"dnf install -y " + cfg.Install.RepoRPMURL,
		"dnf -qy module disable postgresql",
		"dnf install -y postgresql16-server postgresql16-contrib pgvector_16",
		"/usr/pgsql-16/bin/postgresql-16-setup initdb",
	}

	if len(r.calls) != len(want) {
		t.Fatalf("got %d calls %v, want %d", len(r.calls), r.calls, len(want))
	}
	for i, w := range want {
		if r.calls[i] != w {
			t.Errorf("call %d = %q, want %q", i, r.calls[i], w)
		}
	}
}

func TestInstall_RepoAlreadyPresent(t *testing.T) {
	cfg := testConfig(t)
	r := &fakeRunner{repoQuery: nil} // rpm -q succeeds

	if err := New(r, cfg).Install(context.Background()); err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}

	for _, c := range r.calls {
		if strings.Contains(c, cfg.Install.RepoRPMURL) {
			t.Errorf("repo RPM reinstalled although already present: %q", c)
		}
	}
}

func TestInstall_SkipsInitDBWhenInitialized(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(cfg.Postgres.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.Postgres.DataDir, "PG_VERSION"), []byte("16\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := &fakeRunner{repoQuery: nil}
	if err := New(r, cfg).Install(context.Background()); err != nil {
		t.Fatalf("Install() returned error: %v", err)
	}

	for _, c := range r.calls {
		if strings.Contains(c, "initdb") {
			t.Errorf("initdb ran against an initialized data directory: %q", c)
		}
	}
}

func TestInstall_StopsAtFirstFailure(t *testing.T) {
	cfg := testConfig(t)
	r := &fakeRunner{repoQuery: nil, failOn: "module disable"}

	err := New(r, cfg).Install(context.Background())
	if err == nil {
		t.Fatal("Install() succeeded despite module-disable failure")
	}

	// Nothing after the failed step may run.
	for _, c := range r.calls {
		if strings.Contains(c, "postgresql16-server") || strings.Contains(c, "initdb") {
			t.Errorf("step ran after a fatal failure: %q", c)
		}
	}
}
