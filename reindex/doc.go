// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package reindex rearranges the elements of rank 4 or lower tensors: permute
// (transpose), slice and broadcast copies.
//
// Every operation runs through an explicit Context that owns the kernel cache,
// the executor and the configuration. There is no package-level device state.
//
// # Basic Usage
//
//	import (
//	    "context"
//
//	    "github.com/born-ml/reindex/backend/cpu"
//	    "github.com/born-ml/reindex/reindex"
//	)
//
//	func main() {
//	    rc := reindex.NewContext(cpu.New(), reindex.LoadConfig())
//	    // [[1 2 3] [4 5 6]] -> [[1 4] [2 5] [3 6]]
//	    out, err := reindex.Permute(context.Background(), rc, []float32{1, 2, 3, 4, 5, 6}, []int{2, 3}, []int{1, 0})
//	}
//
// # Kernels
//
// Each (data type, packing, variant) triple is specialized once into a WGSL
// compute kernel with 8x8 workgroups. The same kernel is run by the CPU
// executor, which emulates the dispatch grid with goroutines, and by the
// WebGPU executor on windows.
//
// # Configuration
//
// LoadConfig reads BORN_REINDEX_CHECKED, BORN_REINDEX_WORKERS and
// BORN_REINDEX_MIN_CHUNK. In checked mode metadata is validated before every
// dispatch.
package reindex
