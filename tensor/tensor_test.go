// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/x448/float16"

	"github.com/born-ml/reindex/tensor"
)

// TestRawTensorAPI verifies RawTensor type alias exposes expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want float32", raw.DType())
	}
	if raw.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", raw.ByteSize())
	}
}

func TestFromSlice(t *testing.T) {
	raw, err := tensor.FromSlice([]int32{1, 2, 3, 4}, tensor.Shape{2, 2})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	got := raw.AsInt32()
	for i, want := range []int32{1, 2, 3, 4} {
		if got[i] != want {
			t.Errorf("AsInt32()[%d] = %d, want %d", i, got[i], want)
		}
	}

	if _, err := tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{2, 2}); err == nil {
		t.Error("FromSlice should reject a length that does not match the shape")
	}
}

func TestDataTypeOf(t *testing.T) {
	if got := tensor.DataTypeOf[float16.Float16](); got != tensor.Float16 {
		t.Errorf("DataTypeOf[float16.Float16]() = %v, want float16", got)
	}
	dt, ok := tensor.ParseDataType("u32")
	if !ok || dt != tensor.Uint32 {
		t.Errorf("ParseDataType(u32) = %v, %v", dt, ok)
	}
}
