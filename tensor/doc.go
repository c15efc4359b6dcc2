// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the element types, shapes and raw buffers that
// reindex operations read and write.
//
// # Overview
//
// A RawTensor is a flat little-endian byte buffer with a Shape, a DataType and a
// Device. Supported data types:
//   - Float32, Float16 (github.com/x448/float16)
//   - Int32, Uint32
//
// # Basic Usage
//
//	import "github.com/born-ml/reindex/tensor"
//
//	raw, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	values := raw.AsFloat32()
//
// Bytes and Elements convert between typed slices and byte buffers without copying.
package tensor
