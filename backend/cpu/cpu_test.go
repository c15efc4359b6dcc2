// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu_test

import (
	"testing"

	"github.com/born-ml/reindex/backend/cpu"
	"github.com/born-ml/reindex/tensor"
)

func TestNew(t *testing.T) {
	b := cpu.New()
	if b.Name() != "cpu" {
		t.Errorf("Name() = %q, want cpu", b.Name())
	}
	if b.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", b.Device())
	}
}

func TestNewWithConfig(t *testing.T) {
	b := cpu.NewWithConfig(cpu.Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1})
	if b == nil {
		t.Fatal("NewWithConfig returned nil")
	}
}
