package hwinfo

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	r, err := Detect()
	if err != nil {
		t.Fatalf("Detect() returned error: %v", err)
	}

	if r.CPUCores != runtime.NumCPU() {
		t.Errorf("CPUCores = %d, want %d (runtime.NumCPU())", r.CPUCores, runtime.NumCPU())
	}

	// Any host capable of running PostgreSQL has at least 512MB.
	if r.TotalMemoryBytes < 512*1024*1024 {
		t.Errorf("TotalMemoryBytes = %d, want >= 512MB", r.TotalMemoryBytes)
	}

	if r.MemoryGB() < 0 {
		t.Errorf("MemoryGB() = %d, want >= 0", r.MemoryGB())
	}
}

func TestMemoryGB(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  int
	}{
		{0, 0},
		{1 << 30, 1},
		{(1 << 30) - 1, 0},
		{16 << 30, 16},
		{(16 << 30) + (512 << 20), 16},
	}

	for _, tt := range tests {
		r := HostResources{TotalMemoryBytes: tt.bytes}
		if got := r.MemoryGB(); got != tt.want {
			t.Errorf("MemoryGB(%d bytes) = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}
