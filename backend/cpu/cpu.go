// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"github.com/born-ml/reindex/internal/config"
	"github.com/born-ml/reindex/internal/parallel"
	"github.com/born-ml/reindex/internal/reindex"
)

// Backend is the CPU reindex executor.
type Backend = reindex.CPUExecutor

// Compile-time check that Backend implements reindex.Executor.
var _ reindex.Executor = (*Backend)(nil)

// Config controls how workgroups are spread over goroutines.
type Config = parallel.Config

// New creates a CPU executor configured from the environment.
func New() *Backend {
	return reindex.NewCPUExecutor(config.Load().Parallel)
}

// NewWithConfig creates a CPU executor with explicit parallelism settings.
func NewWithConfig(cfg Config) *Backend {
	return reindex.NewCPUExecutor(cfg)
}
