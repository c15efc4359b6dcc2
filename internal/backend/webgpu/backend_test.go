//go:build windows

package webgpu

import (
	"testing"

	"github.com/born-ml/reindex/internal/tensor"
)

// newTestBackend returns a backend or skips when no adapter is present.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	if !IsAvailable() {
		t.Skip("WebGPU not available")
	}
	backend, err := New()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}
	t.Cleanup(backend.Release)
	return backend
}

func TestIsAvailable(t *testing.T) {
	available := IsAvailable()
	t.Logf("WebGPU available: %v", available)
}

func TestListAdapters(t *testing.T) {
	adapters, err := ListAdapters()
	if err != nil {
		t.Logf("WebGPU not available: %v", err)
		t.Skip("WebGPU not available on this system")
	}

	for i, info := range adapters {
		t.Logf("Adapter %d: %s (%s), backend %v", i, info.Device, info.Vendor, info.BackendType)
	}
}

func TestNew(t *testing.T) {
	backend := newTestBackend(t)

	if backend.Name() == "" {
		t.Error("Backend name should not be empty")
	}
	t.Logf("Backend name: %s", backend.Name())

	if backend.Device() != tensor.WebGPU {
		t.Errorf("Expected device WebGPU, got %v", backend.Device())
	}
}

func TestAlignedSize(t *testing.T) {
	tests := []struct {
		n, align, want uint64
	}{
		{0, 4, 4},
		{1, 4, 4},
		{4, 4, 4},
		{10, 4, 12},
		{112, 16, 112},
		{113, 16, 128},
	}
	for _, tt := range tests {
		if got := alignedSize(tt.n, tt.align); got != tt.want {
			t.Errorf("alignedSize(%d, %d) = %d, want %d", tt.n, tt.align, got, tt.want)
		}
	}
}
