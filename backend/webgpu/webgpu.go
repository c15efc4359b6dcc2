//go:build windows

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU reindex executor.
//
// WebGPU is a cross-platform graphics and compute API that works on:
//   - Windows (via Dawn/D3D12)
//   - macOS (via Dawn/Metal)
//   - Linux (via Dawn/Vulkan)
//
// Float16 kernels are rejected: the device is created without shader-f16.
//
// Example:
//
//	import (
//	    "github.com/born-ml/reindex/backend/cpu"
//	    "github.com/born-ml/reindex/backend/webgpu"
//	    "github.com/born-ml/reindex/reindex"
//	)
//
//	func main() {
//	    var exec reindex.Executor = cpu.New()
//	    if webgpu.IsAvailable() {
//	        gpu, err := webgpu.New()
//	        if err == nil {
//	            defer gpu.Release()
//	            exec = gpu
//	        }
//	    }
//	    rc := reindex.NewContext(exec, reindex.LoadConfig())
//	}
package webgpu

import (
	internalwebgpu "github.com/born-ml/reindex/internal/backend/webgpu"
	"github.com/born-ml/reindex/internal/reindex"
)

// Backend is the WebGPU reindex executor.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements reindex.Executor.
var _ reindex.Executor = (*Backend)(nil)

// New creates a new WebGPU backend.
//
// Call Release() when done to free GPU resources. Returns an error if WebGPU
// initialization fails (e.g., no compatible GPU).
func New() (*Backend, error) {
	return internalwebgpu.New()
}

// IsAvailable checks if WebGPU is available on the current system.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
