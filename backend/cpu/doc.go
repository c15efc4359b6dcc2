// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go reindex executor.
//
// # Overview
//
// The executor runs the same kernels the GPU runs. Each workgroup of the
// dispatch grid is handled by a goroutine, bounded by the configured worker
// count, and each of its 8x8 workers copies one unit from source to
// destination.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/reindex/backend/cpu"
//	    "github.com/born-ml/reindex/reindex"
//	)
//
//	func main() {
//	    rc := reindex.NewContext(cpu.New(), reindex.LoadConfig())
//	}
package cpu
