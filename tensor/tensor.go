// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/reindex/internal/tensor"
)

// DType is the constraint satisfied by every supported element type.
type DType = tensor.DType

// DataType identifies an element type at run time.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float16 = tensor.Float16
	Int32   = tensor.Int32
	Uint32  = tensor.Uint32
)

// Device identifies where a buffer lives.
type Device = tensor.Device

// Supported devices.
const (
	CPU    = tensor.CPU
	WebGPU = tensor.WebGPU
)

// Shape is a tensor shape, outermost dimension first.
type Shape = tensor.Shape

// RawTensor is a shaped byte buffer of a single data type.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// FromSlice copies values into a new CPU tensor of the given shape.
func FromSlice[T DType](values []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(values, shape)
}

// ParseDataType parses names such as "f32", "float16" or "u32".
func ParseDataType(name string) (DataType, bool) {
	return tensor.ParseDataType(name)
}

// DataTypeOf returns the DataType of T.
func DataTypeOf[T DType]() DataType {
	return tensor.DataTypeOf[T]()
}

// Bytes reinterprets values as bytes without copying.
func Bytes[T DType](values []T) []byte {
	return tensor.Bytes(values)
}

// Elements reinterprets data as a slice of T without copying.
func Elements[T DType](data []byte) []T {
	return tensor.Elements[T](data)
}
