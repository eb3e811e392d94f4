package pgconf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteAll_FreshDirectory(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	if err := w.WriteAll(testProfile, 5432); err != nil {
		t.Fatalf("WriteAll() returned error: %v", err)
	}

	for _, name := range []string{"postgresql.conf", "pg_hba.conf"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	// No pre-existing files means no backups.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".bak.") {
			t.Errorf("unexpected backup %s for a fresh directory", e.Name())
		}
	}
}

func TestWriteAll_BacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	orig := "# original config\n"
	if err := os.WriteFile(filepath.Join(dir, "postgresql.conf"), []byte(orig), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }

	if err := w.WriteAll(testProfile, 5432); err != nil {
		t.Fatalf("WriteAll() returned error: %v", err)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "postgresql.conf.bak.20250314"))
	if err != nil {
		t.Fatalf("expected day-stamped backup: %v", err)
	}
	if string(backup) != orig {
		t.Errorf("backup content = %q, want original %q", backup, orig)
	}
}

func TestWriteAll_SameDayBackupOverwritten(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "postgresql.conf"), []byte("first\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }

	if err := w.WriteAll(testProfile, 5432); err != nil {
		t.Fatal(err)
	}

	// Second run the same day: the freshly written config becomes the new
	// backup. Last write per day wins.
	if err := w.WriteAll(testProfile, 5432); err != nil {
		t.Fatal(err)
	}

	backup, err := os.ReadFile(filepath.Join(dir, "postgresql.conf.bak.20250314"))
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) == "first\n" {
		t.Errorf("same-day backup was not overwritten")
	}

	entries, _ := os.ReadDir(dir)
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "postgresql.conf.bak.") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("found %d backups for one day, want 1", backups)
	}
}

func TestWriteAll_UnwritableDirectory(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := w.WriteAll(testProfile, 5432); err == nil {
		t.Fatal("WriteAll() into a missing directory succeeded, want error")
	}
}
