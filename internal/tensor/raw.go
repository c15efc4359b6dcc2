package tensor

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a flat byte buffer
// with a row-major shape and a runtime element type.
type RawTensor struct {
	data   []byte
	shape  Shape
	dtype  DataType
	device Device
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated but not initialized (contains zeros).
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromSlice creates a CPU RawTensor holding a copy of values.
func FromSlice[T DType](values []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, shape.NumElements(), len(values))
	}
	raw, err := NewRaw(shape, DataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}
	copy(raw.data, Bytes(values))
	return raw, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	return Elements[float32](r.data)
}

// AsFloat16 interprets the data as []float16.Float16.
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	if r.dtype != Float16 {
		panic(fmt.Sprintf("tensor dtype is %s, not float16", r.dtype))
	}
	return Elements[float16.Float16](r.data)
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	return Elements[int32](r.data)
}

// AsUint32 interprets the data as []uint32.
// Panics if the tensor's dtype is not Uint32.
func (r *RawTensor) AsUint32() []uint32 {
	if r.dtype != Uint32 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint32", r.dtype))
	}
	return Elements[uint32](r.data)
}

// Bytes reinterprets values as their backing bytes without copying.
func Bytes[T DType](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	var zero T
	//nolint:gosec // unsafe.Slice for zero-copy conversion, length derived from len(values)
	return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
}

// Elements reinterprets data as a []T without copying.
// Trailing bytes that do not fill a whole element are ignored.
func Elements[T DType](data []byte) []T {
	var zero T
	n := len(data) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by n
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n)
}
