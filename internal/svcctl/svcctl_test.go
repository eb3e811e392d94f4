package svcctl

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls []string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return f.err
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return "", f.err
}

func TestEnableOnBoot(t *testing.T) {
	r := &fakeRunner{}
	c := &SystemController{unit: "postgresql-16", runner: r}

	if err := c.EnableOnBoot(context.Background()); err != nil {
		t.Fatalf("EnableOnBoot() returned error: %v", err)
	}

	if len(r.calls) != 1 || r.calls[0] != "systemctl enable postgresql-16" {
		t.Errorf("calls = %v, want [systemctl enable postgresql-16]", r.calls)
	}
}

func TestEnableOnBoot_Failure(t *testing.T) {
	r := &fakeRunner{err: fmt.Errorf("exit status 1")}
	c := &SystemController{unit: "postgresql-16", runner: r}

	err := c.EnableOnBoot(context.Background())
	if err == nil {
		t.Fatal("EnableOnBoot() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "postgresql-16") {
		t.Errorf("error %q does not name the unit", err)
	}
}

func TestNewSystemController(t *testing.T) {
	c, err := NewSystemController("postgresql-16", &fakeRunner{})
	if err != nil {
		// Hosts without a detectable init system (minimal containers)
		// cannot bind a service handle at all.
		t.Skipf("no service system available: %v", err)
	}
	if c.unit != "postgresql-16" {
		t.Errorf("unit = %q, want postgresql-16", c.unit)
	}
}
