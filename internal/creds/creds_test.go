package creds

import (
	"regexp"
	"testing"
)

var alnum = regexp.MustCompile(`^[A-Za-z0-9]+$`)

func TestNew_PasswordShape(t *testing.T) {
	c, err := New("vectorapp", "vectordb")
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if len(c.Password) != 24 {
		t.Errorf("password length = %d, want 24", len(c.Password))
	}
	if !alnum.MatchString(c.Password) {
		t.Errorf("password %q contains non-alphanumeric characters", c.Password)
	}
	if c.Username != "vectorapp" || c.Database != "vectordb" {
		t.Errorf("credential identity = %s/%s, want vectorapp/vectordb", c.Username, c.Database)
	}
}

func TestNew_Regenerates(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		c, err := New("u", "d")
		if err != nil {
			t.Fatalf("New() returned error: %v", err)
		}
		if seen[c.Password] {
			t.Fatalf("password repeated across runs: %q", c.Password)
		}
		seen[c.Password] = true
	}
}
